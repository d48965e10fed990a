// Package scheduler drives a cannon.Session in real time. One goroutine runs
// the frame loop; input producers on other goroutines enqueue commands that
// are applied at the start of the next frame.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/core"
)

const (
	defaultFPS         = 60
	defaultInputBuffer = 64
	recordTimeout      = 2 * time.Second
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSurface sets where frames are drawn.
func WithSurface(s Surface) Option { return func(sc *Scheduler) { sc.surface = s } }

// WithPresenter sets the round outcome UI. Without one, outcomes are
// acknowledged immediately.
func WithPresenter(p Presenter) Option { return func(sc *Scheduler) { sc.presenter = p } }

// WithAudio forwards gameplay events to a sound sink.
func WithAudio(a AudioSink) Option { return func(sc *Scheduler) { sc.audio = a } }

// WithRecorder stores every finished round.
func WithRecorder(r RoundRecorder) Option { return func(sc *Scheduler) { sc.recorder = r } }

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(sc *Scheduler) { sc.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(sc *Scheduler) { sc.logger = l } }

// WithFPS sets the target frame rate of Run.
func WithFPS(fps int) Option {
	return func(sc *Scheduler) {
		if fps > 0 {
			sc.fps = fps
		}
	}
}

// WithInputBuffer sets how many commands can wait for the next frame.
func WithInputBuffer(n int) Option {
	return func(sc *Scheduler) {
		if n > 0 {
			sc.inputSize = n
		}
	}
}

// Scheduler owns a Session and serializes every access to it.
type Scheduler struct {
	mu      sync.Mutex
	session *cannon.Session
	last    time.Time
	frames  uint64

	surface   Surface
	presenter Presenter
	audio     AudioSink
	recorder  RoundRecorder
	clock     Clock
	logger    *log.Logger
	fps       int
	inputSize int

	input    chan command
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	running  atomic.Bool
}

// New creates a scheduler for session. The session starts its first round
// when Run begins if it has not been started already.
func New(session *cannon.Session, opts ...Option) *Scheduler {
	s := &Scheduler{
		session:   session,
		clock:     wallClock{},
		logger:    log.Default(),
		fps:       defaultFPS,
		inputSize: defaultInputBuffer,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.input = make(chan command, s.inputSize)
	return s
}

// Run executes the frame loop until Stop is called or ctx is cancelled.
// After a round ends it waits for the presenter's acknowledgement, then
// starts the next round. Returns nil after Stop and ctx.Err() on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.done)

	s.mu.Lock()
	if s.session.Phase() == cannon.PhaseIdle {
		s.session.NewGame()
	}
	s.last = s.clock.Now()
	s.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	s.logger.Debug("frame loop started", "fps", s.fps)
	defer s.logger.Debug("frame loop stopped")

	for {
		select {
		case <-s.stop:
			return nil
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-ticker.C:
		}

		out, err := s.RunFrame()
		if errors.Is(err, ErrStopped) {
			return nil
		}
		if out == nil {
			continue
		}

		if err := s.finishRound(ctx, *out); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}

// RunFrame runs exactly one frame: apply queued input, advance the session
// by the time since the previous frame, forward events to audio, render.
// It returns the round outcome on the frame the round ended.
func (s *Scheduler) RunFrame() (*cannon.Outcome, error) {
	select {
	case <-s.stop:
		return nil, ErrStopped
	default:
	}

	s.mu.Lock()
	now := s.clock.Now()
	var dt time.Duration
	if !s.last.IsZero() {
		dt = now.Sub(s.last)
	}
	s.last = now

	s.applyInput()
	res := s.session.Advance(dt.Seconds())
	snap := s.session.Snapshot()
	s.frames++
	s.mu.Unlock()

	if s.audio != nil {
		for _, e := range res.Events {
			s.audio.Play(e)
		}
	}
	s.render(snap)

	return res.Outcome, nil
}

// render draws one frame. Post runs once on every path, including a
// panicking Draw.
func (s *Scheduler) render(snap cannon.Snapshot) {
	if s.surface == nil {
		return
	}

	frame, err := s.surface.Acquire()
	if err != nil {
		if !errors.Is(err, ErrSurfaceUnavailable) {
			s.logger.Warn("surface acquire failed", "error", err)
		}
		return
	}
	defer frame.Post()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("frame draw panicked", "panic", r)
		}
	}()

	if err := frame.Draw(snap); err != nil {
		s.logger.Warn("frame draw failed", "error", err)
	}
}

// finishRound records the outcome, waits for acknowledgement and starts
// the next round.
func (s *Scheduler) finishRound(ctx context.Context, out cannon.Outcome) error {
	s.logger.Info("round finished",
		"round", out.RoundID,
		"outcome", out.Kind,
		"level", out.Level,
		"score", out.Score,
		"shots", out.ShotsFired,
		"elapsed", out.Elapsed,
	)

	if s.recorder != nil {
		rctx, cancel := context.WithTimeout(ctx, recordTimeout)
		if err := s.recorder.RecordRound(rctx, out); err != nil {
			s.logger.Warn("round history not saved", "round", out.RoundID, "error", err)
		}
		cancel()
	}

	if s.presenter != nil {
		ack := s.presenter.PresentOutcome(out)
		select {
		case <-ack:
		case <-s.stop:
			return ErrStopped
		case <-ctx.Done():
			s.Stop()
			return fmt.Errorf("scheduler: waiting for acknowledgement: %w", ctx.Err())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Resizes and aiming queued while the outcome was shown still apply.
	// Touches and fire requests are no-ops outside a round.
	s.applyInput()
	s.session.Acknowledge()
	s.last = s.clock.Now()
	return nil
}

// Stop asks the loop to exit. It is safe to call more than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Wait blocks until Run has returned, including any frame in flight.
// It must only be called once Run has been started.
func (s *Scheduler) Wait() {
	<-s.done
}

// Done returns a channel closed when Run returns.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Snapshot returns the current session state.
func (s *Scheduler) Snapshot() cannon.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

// Frames returns how many frames have run.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Session returns the scheduled session. Callers must not use it while the
// loop is running; it is meant for inspection after Wait.
func (s *Scheduler) Session() *cannon.Session {
	return s.session
}

// Touch queues an aim-and-fire at a world point.
func (s *Scheduler) Touch(p core.Point) bool {
	return s.enqueue(command{kind: cmdTouch, point: p})
}

// Aim queues an absolute barrel angle.
func (s *Scheduler) Aim(angle float64) bool {
	return s.enqueue(command{kind: cmdAim, angle: angle})
}

// Rotate queues a barrel rotation relative to its current angle.
func (s *Scheduler) Rotate(delta float64) bool {
	return s.enqueue(command{kind: cmdRotate, angle: delta})
}

// Fire queues a shot along the current barrel angle.
func (s *Scheduler) Fire() bool {
	return s.enqueue(command{kind: cmdFire})
}

// Resize queues a new playfield size.
func (s *Scheduler) Resize(w, h float64) bool {
	return s.enqueue(command{kind: cmdResize, point: core.Pt(w, h)})
}
