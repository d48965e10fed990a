package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	outcomeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)

	winTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	loseTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	markedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// OutcomeText is the plain body of the end-of-round dialog: the round's
// statistics followed by the top-five list, with the round's own entry marked.
func OutcomeText(out cannon.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Shots fired: %d\n", out.ShotsFired)
	fmt.Fprintf(&sb, "Total time: %.1f seconds\n", out.Elapsed.Seconds())
	fmt.Fprintf(&sb, "Score: %d\n\n", out.Score)
	sb.WriteString("High Scores:")
	for i, score := range out.HighScores {
		fmt.Fprintf(&sb, "\n%d. %d", i+1, score)
		if i == out.Marked {
			sb.WriteString(" (*)")
		}
	}
	return sb.String()
}

// renderOutcome draws the dialog box centered in a width x height area.
func renderOutcome(out cannon.Outcome, width, height int) string {
	title := winTitleStyle.Render("You Win!")
	if out.Kind == cannon.OutcomeLose {
		title = loseTitleStyle.Render("You Lose!")
	}

	lines := strings.Split(OutcomeText(out), "\n")
	if out.Marked >= 0 {
		// Rows 0-4 are stats and the header; list entries follow.
		idx := 5 + out.Marked
		if idx < len(lines) {
			lines[idx] = markedStyle.Render(lines[idx])
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		"",
		hintStyle.Render("Press Enter to continue"),
	)
	box := outcomeBoxStyle.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
