package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
)

// MenuChoice is what the player picked on the start menu.
type MenuChoice int

const (
	MenuPlay MenuChoice = iota
	MenuScores
	MenuQuit
)

// MenuItem is one line of the start menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: MenuPlay, Title: "Play"},
	{Choice: MenuScores, Title: "High Scores"},
	{Choice: MenuQuit, Title: "Quit"},
}

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// menuKeys defines the start menu bindings.
var menuKeys = struct {
	Up, Down, Left, Right, Select, Quit key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
	Left:   key.NewBinding(key.WithKeys("left", "a", "h")),
	Right:  key.NewBinding(key.WithKeys("right", "d", "l")),
	Select: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor     int
	difficulty int
	width      int
	height     int
	config     core.RuntimeConfig
	chosen     *MenuChoice
}

// NewMenuModel creates a start menu with preset preselected.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		difficulty: 1,
	}
	for i, d := range difficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		quit := MenuQuit
		m.chosen = &quit
		return m, tea.Quit

	case key.Matches(msg, menuKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, menuKeys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, menuKeys.Left):
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)

	case key.Matches(msg, menuKeys.Right):
		m.difficulty = (m.difficulty + 1) % len(difficulties)

	case key.Matches(msg, menuKeys.Select):
		choice := menuItems[m.cursor].Choice
		m.chosen = &choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.chosen != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  C A N N O N  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Destroy the target before time runs out", m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Difficulty()), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuFooterStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the selected preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
}

// Result reports the menu outcome. A menu closed without a choice quits.
func (m MenuModel) Result() MenuResult {
	res := MenuResult{Choice: MenuQuit, Difficulty: m.Difficulty(), Config: m.config}
	if m.chosen != nil {
		res.Choice = *m.chosen
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, preset),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}
	return m.Result(), nil
}
