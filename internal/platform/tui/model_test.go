package tui

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
)

func newTestModel(t *testing.T) (Model, *scheduler.Scheduler) {
	t.Helper()
	s := cannon.New(config.DefaultCannonConfig())
	s.NewGame()

	sched, bridge := NewScheduler(s, Options{
		Config: core.DefaultConfig(),
		Logger: log.New(io.Discard),
	})
	t.Cleanup(bridge.Close)

	m := NewModel(sched, bridge, core.DefaultConfig())
	if _, err := sched.RunFrame(); err != nil {
		t.Fatalf("RunFrame() failed: %v", err)
	}
	return update(t, m, frameMsg{}), sched
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestBridgeKeepsNewestFrame(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	for _, score := range []int{1, 2} {
		f, err := b.Acquire()
		if err != nil {
			t.Fatalf("Acquire() failed: %v", err)
		}
		if err := f.Draw(cannon.Snapshot{Score: score}); err != nil {
			t.Fatalf("Draw() failed: %v", err)
		}
		f.Post()
	}

	if len(b.frames) != 1 {
		t.Errorf("pending notifications = %d, expected 1", len(b.frames))
	}
	snap, ok := b.Latest()
	if !ok || snap.Score != 2 {
		t.Errorf("Latest() = %d, %v, expected 2, true", snap.Score, ok)
	}
}

func TestBridgePostWithoutDraw(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	f, err := b.Acquire()
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	f.Post()

	if _, ok := b.Latest(); ok {
		t.Error("Latest() reported a frame that was never drawn")
	}
}

func TestBridgeClosed(t *testing.T) {
	b := NewBridge()
	b.Close()
	b.Close()

	if _, err := b.Acquire(); !errors.Is(err, scheduler.ErrSurfaceUnavailable) {
		t.Errorf("Acquire() = %v, expected ErrSurfaceUnavailable", err)
	}

	select {
	case <-b.PresentOutcome(cannon.Outcome{}):
	case <-time.After(time.Second):
		t.Error("PresentOutcome() on a closed bridge did not acknowledge")
	}

	if msg := b.waitForFrame()(); msg != nil {
		t.Errorf("waitForFrame() = %v, expected nil", msg)
	}
}

func TestMouseClickFires(t *testing.T) {
	m, sched := newTestModel(t)

	m = update(t, m, tea.MouseMsg{
		X:      m.screen.Width() / 2,
		Y:      m.screen.Height() / 2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if _, err := sched.RunFrame(); err != nil {
		t.Fatalf("RunFrame() failed: %v", err)
	}

	snap := sched.Snapshot()
	if snap.ShotsFired != 1 {
		t.Errorf("ShotsFired = %d, expected 1", snap.ShotsFired)
	}
	if !snap.Ball.OnScreen {
		t.Error("ball not in flight after click")
	}
}

func TestMouseReleaseIgnored(t *testing.T) {
	m, sched := newTestModel(t)

	update(t, m, tea.MouseMsg{
		X:      10,
		Y:      10,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	if _, err := sched.RunFrame(); err != nil {
		t.Fatalf("RunFrame() failed: %v", err)
	}

	if got := sched.Snapshot().ShotsFired; got != 0 {
		t.Errorf("ShotsFired = %d, expected 0", got)
	}
}

func TestArrowKeysRotate(t *testing.T) {
	m, sched := newTestModel(t)
	before := sched.Snapshot().Cannon.Angle

	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("down"))
	update(t, m, keyMsg("up"))
	if _, err := sched.RunFrame(); err != nil {
		t.Fatalf("RunFrame() failed: %v", err)
	}

	got := sched.Snapshot().Cannon.Angle
	if math.Abs(got-(before+RotateStep)) > 1e-9 {
		t.Errorf("Angle = %f, expected %f", got, before+RotateStep)
	}
}

func TestOutcomeDialog(t *testing.T) {
	m, sched := newTestModel(t)

	ack := make(chan struct{})
	out := cannon.Outcome{
		Kind:       cannon.OutcomeLose,
		ShotsFired: 3,
		Elapsed:    10 * time.Second,
		Score:      -15,
		HighScores: []int{50, 40, 30, 20, -15},
		Marked:     4,
	}
	m = update(t, m, outcomeMsg{outcome: out, ack: ack})

	view := m.View()
	for _, want := range []string{"You Lose!", "Shots fired: 3", "5. -15 (*)", "Press Enter"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	// Game input is ignored while the dialog is open.
	m = update(t, m, keyMsg("down"))
	if _, err := sched.RunFrame(); err != nil {
		t.Fatalf("RunFrame() failed: %v", err)
	}
	if got := sched.Snapshot().Cannon.Angle; got != 0 {
		t.Errorf("Angle = %f while dialog open, expected 0", got)
	}

	m = update(t, m, keyMsg("enter"))
	select {
	case <-ack:
	default:
		t.Fatal("Enter did not acknowledge the outcome")
	}
	if m.outcome != nil {
		t.Error("dialog still open after Enter")
	}

	// A second Enter must not close ack again.
	update(t, m, keyMsg("enter"))
}

func TestQuitStopsScheduler(t *testing.T) {
	m, sched := newTestModel(t)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce QuitMsg")
	}
	if v := next.View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
	if _, err := sched.RunFrame(); !errors.Is(err, scheduler.ErrStopped) {
		t.Errorf("RunFrame() after quit = %v, expected ErrStopped", err)
	}
}

func TestResizeKeepsWorld(t *testing.T) {
	m, sched := newTestModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d, expected 120x%d", m.screen.Width(), m.screen.Height(), 40-helpRows)
	}
	if w := sched.Snapshot().Width; w != config.DefaultCannonConfig().World.Width {
		t.Errorf("world width = %f after terminal resize", w)
	}
}

func TestOutcomeText(t *testing.T) {
	out := cannon.Outcome{
		ShotsFired: 2,
		Elapsed:    1500 * time.Millisecond,
		Score:      40,
		HighScores: []int{50, 40, 0, 0, 0},
		Marked:     1,
	}

	expected := "Shots fired: 2\n" +
		"Total time: 1.5 seconds\n" +
		"Score: 40\n\n" +
		"High Scores:\n" +
		"1. 50\n" +
		"2. 40 (*)\n" +
		"3. 0\n" +
		"4. 0\n" +
		"5. 0"
	if got := OutcomeText(out); got != expected {
		t.Errorf("OutcomeText() = %q, expected %q", got, expected)
	}
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "cannon", core.ColorRed)
	s.DrawText(0, 1, "ball", core.ColorYellow)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"cannon", "ball"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q", want)
		}
	}
}
