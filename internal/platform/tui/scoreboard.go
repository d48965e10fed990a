package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cannon/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of stats sidebar
	recentRounds       = 50 // Rounds loaded into the history tab
	loadTimeout        = 5 * time.Second
)

// scoreboardTab selects the table shown by the scoreboard.
type scoreboardTab int

const (
	tabHighScores scoreboardTab = iota
	tabRounds
)

func (t scoreboardTab) String() string {
	if t == tabRounds {
		return "Recent Rounds"
	}
	return "High Scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Refresh, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store    *storage.Store
	tab      scoreboardTab
	scores   []int
	rounds   []storage.RoundRecord
	stats    *storage.RoundStats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model and loads its data.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	return m
}

// load reads the high scores, history and stats from the store.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	m.err = nil
	if m.scores, m.err = m.store.LoadHighScores(ctx); m.err != nil {
		return
	}
	if m.rounds, m.err = m.store.RecentRounds(ctx, recentRounds); m.err != nil {
		return
	}
	m.stats, m.err = m.store.Stats(ctx)
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable builds the table for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabRounds:
		columns = []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Level", Width: 6},
			{Title: "Result", Width: 7},
			{Title: "Score", Width: 8},
			{Title: "Shots", Width: 6},
			{Title: "Time", Width: 7},
		}
		for _, r := range m.rounds {
			rows = append(rows, table.Row{
				r.CreatedAt.Local().Format("Jan 02 15:04"),
				fmt.Sprintf("%d", r.Level),
				r.Outcome,
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.ShotsFired),
				fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
			})
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("CANNON - "+strings.ToUpper(m.tab.String()), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.renderTableContent())

	if m.showSidebar() {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content))
	} else {
		b.WriteString(centerText(content, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate round statistics.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.Rounds == 0 {
		return "Stats\n\nNo rounds yet."
	}
	s := m.stats
	lines := []string{
		"Stats",
		"",
		fmt.Sprintf("Rounds:     %d", s.Rounds),
		fmt.Sprintf("Wins:       %d", s.Wins),
		fmt.Sprintf("Best score: %d", s.BestScore),
		fmt.Sprintf("Best level: %d", s.BestLevel),
		fmt.Sprintf("Avg score:  %.1f", s.AvgScore),
		fmt.Sprintf("Shots:      %d", s.TotalShots),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, "", "Last played:", s.LastPlayed.Local().Format("Jan 02 15:04"))
	}
	return strings.Join(lines, "\n")
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No scores database.")
	case m.err != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	case m.tab == tabRounds && len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a game to start the history!")
	}
	return m.table.View()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
