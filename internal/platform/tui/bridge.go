// Package tui provides the Bubble Tea front end for the cannon game.
// The scheduler drives the simulation on its own goroutine; the Bridge
// carries its frames and outcomes into the Bubble Tea event loop.
package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
)

// frameMsg tells the model a newer snapshot is available.
type frameMsg struct{}

// outcomeMsg opens the end-of-round dialog. Closing ack resumes the scheduler.
type outcomeMsg struct {
	outcome cannon.Outcome
	ack     chan struct{}
}

// Bridge is the scheduler.Surface and scheduler.Presenter of a TUI session.
// Posting a frame never blocks: only the newest snapshot is kept and at most
// one frame notification is pending.
type Bridge struct {
	latest   atomic.Pointer[cannon.Snapshot]
	frames   chan struct{}
	outcomes chan outcomeMsg

	closed    chan struct{}
	closeOnce sync.Once
}

var (
	_ scheduler.Surface   = (*Bridge)(nil)
	_ scheduler.Presenter = (*Bridge)(nil)
)

// NewBridge creates an open bridge.
func NewBridge() *Bridge {
	return &Bridge{
		frames:   make(chan struct{}, 1),
		outcomes: make(chan outcomeMsg, 1),
		closed:   make(chan struct{}),
	}
}

// Acquire implements scheduler.Surface.
func (b *Bridge) Acquire() (scheduler.Frame, error) {
	select {
	case <-b.closed:
		return nil, scheduler.ErrSurfaceUnavailable
	default:
	}
	return &bridgeFrame{bridge: b}, nil
}

// PresentOutcome implements scheduler.Presenter. Once the bridge is closed
// the returned channel is already closed so the scheduler never waits on a
// dialog nobody can answer.
func (b *Bridge) PresentOutcome(out cannon.Outcome) <-chan struct{} {
	ack := make(chan struct{})
	select {
	case b.outcomes <- outcomeMsg{outcome: out, ack: ack}:
	case <-b.closed:
		close(ack)
	}
	return ack
}

// Latest returns the newest posted snapshot.
func (b *Bridge) Latest() (cannon.Snapshot, bool) {
	p := b.latest.Load()
	if p == nil {
		return cannon.Snapshot{}, false
	}
	return *p, true
}

// Close releases any goroutine waiting on the bridge.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.closed) })
}

// waitForFrame is a command that blocks until a frame has been posted.
func (b *Bridge) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.frames:
			return frameMsg{}
		case <-b.closed:
			return nil
		}
	}
}

// waitForOutcome is a command that blocks until a round ends.
func (b *Bridge) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.outcomes:
			return msg
		case <-b.closed:
			return nil
		}
	}
}

type bridgeFrame struct {
	bridge *Bridge
	snap   *cannon.Snapshot
}

func (f *bridgeFrame) Draw(snap cannon.Snapshot) error {
	f.snap = &snap
	return nil
}

// Post publishes the drawn snapshot, if any.
func (f *bridgeFrame) Post() {
	if f.snap == nil {
		return
	}
	f.bridge.latest.Store(f.snap)
	select {
	case f.bridge.frames <- struct{}{}:
	default:
	}
}
