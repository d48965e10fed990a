package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
)

// helpRows is the number of terminal rows below the playfield.
const helpRows = 1

// Model is the Bubble Tea model for one game. It never advances the
// simulation itself: it forwards input to the scheduler and draws whatever
// snapshot the scheduler posted last.
type Model struct {
	sched  *scheduler.Scheduler
	bridge *Bridge
	screen *core.Screen
	config core.RuntimeConfig

	snap    cannon.Snapshot
	hasSnap bool
	outcome *outcomeMsg

	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model that sends input to sched and reads frames from bridge.
func NewModel(sched *scheduler.Scheduler, bridge *Bridge, cfg core.RuntimeConfig) Model {
	return Model{
		sched:  sched,
		bridge: bridge,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts listening for frames and round outcomes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.waitForFrame(), m.bridge.waitForOutcome())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case frameMsg:
		m.snap, m.hasSnap = m.bridge.Latest()
		return m, m.bridge.waitForFrame()

	case outcomeMsg:
		m.outcome = &msg
		return m, m.bridge.waitForOutcome()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.bridge.Close()
		m.sched.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.outcome != nil {
		if key.Matches(msg, m.keys.Acknowledge) || key.Matches(msg, m.keys.Fire) {
			close(m.outcome.ack)
			m.outcome = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.AimUp):
		m.sched.Rotate(-RotateStep)
	case key.Matches(msg, m.keys.AimDown):
		m.sched.Rotate(RotateStep)
	case key.Matches(msg, m.keys.Fire):
		m.sched.Fire()
	}
	return m, nil
}

// handleMouse turns a click or a drag into a touch at the matching world point.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.outcome != nil || !m.hasSnap || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	vp := cannon.NewViewport(m.snap.Width, m.snap.Height, m.screen.Width(), m.screen.Height())
	m.sched.Touch(vp.World(msg.X, msg.Y))
	return m, nil
}

// handleResize rescales the playfield. The world keeps its size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".cannon", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	m.draw()
	filename := fmt.Sprintf("cannon_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	if !m.hasSnap {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "Loading...", core.ColorGray)
		return
	}
	cannon.Render(m.snap, m.screen)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.outcome != nil {
		return renderOutcome(m.outcome.outcome, m.config.ScreenW, m.config.ScreenH)
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Options configures Run.
type Options struct {
	Config   core.RuntimeConfig
	Audio    scheduler.AudioSink
	Recorder scheduler.RoundRecorder
	Logger   *log.Logger

	// Extra surfaces receive every frame alongside the terminal, e.g. a spectator hub.
	Extra []scheduler.Surface

	// ProgramOptions are appended to the defaults (alt screen, mouse).
	ProgramOptions []tea.ProgramOption
}

// NewScheduler builds the scheduler for a TUI session and returns it with its bridge.
func NewScheduler(session *cannon.Session, opts Options) (*scheduler.Scheduler, *Bridge) {
	bridge := NewBridge()

	var surface scheduler.Surface = bridge
	if len(opts.Extra) > 0 {
		surface = append(scheduler.Multi{bridge}, opts.Extra...)
	}

	schedOpts := []scheduler.Option{
		scheduler.WithSurface(surface),
		scheduler.WithPresenter(bridge),
	}
	if opts.Config.TickRate > 0 {
		schedOpts = append(schedOpts, scheduler.WithFPS(opts.Config.TickRate))
	}
	if opts.Audio != nil {
		schedOpts = append(schedOpts, scheduler.WithAudio(opts.Audio))
	}
	if opts.Recorder != nil {
		schedOpts = append(schedOpts, scheduler.WithRecorder(opts.Recorder))
	}
	if opts.Logger != nil {
		schedOpts = append(schedOpts, scheduler.WithLogger(opts.Logger))
	}
	return scheduler.New(session, schedOpts...), bridge
}

// Run plays session in the terminal until the user quits or ctx is cancelled.
// The scheduler and the Bubble Tea program run as one task group: whichever
// finishes first stops the other.
func Run(ctx context.Context, session *cannon.Session, opts Options) error {
	sched, bridge := NewScheduler(session, opts)
	defer bridge.Close()

	g, gctx := errgroup.WithContext(ctx)

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	}, opts.ProgramOptions...)
	p := tea.NewProgram(NewModel(sched, bridge, opts.Config), programOpts...)

	g.Go(func() error {
		err := sched.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer sched.Stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
