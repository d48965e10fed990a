package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
)

//go:generate go tool mockgen -destination=./mocks/scheduler_mock.go -package=mocks . Surface,Frame,Presenter,AudioSink,RoundRecorder

var (
	// ErrSurfaceUnavailable is returned by Acquire when there is nothing to draw on.
	// The frame is simulated but not rendered.
	ErrSurfaceUnavailable = errors.New("scheduler: surface unavailable")

	// ErrStopped is returned by RunFrame once Stop has been called.
	ErrStopped = errors.New("scheduler: stopped")

	// ErrAlreadyRunning is returned by a second concurrent Run.
	ErrAlreadyRunning = errors.New("scheduler: already running")
)

// Surface hands out drawing frames. Acquire may fail, in which case the
// scheduler skips rendering for that frame only.
type Surface interface {
	Acquire() (Frame, error)
}

// Frame is one acquired drawing target. Post is called exactly once for every
// frame returned by Acquire, whether Draw succeeds, fails or panics.
type Frame interface {
	Draw(snap cannon.Snapshot) error
	Post()
}

// Presenter shows a finished round to the player. The returned channel is
// closed (or sent to) when the player acknowledges the outcome.
type Presenter interface {
	PresentOutcome(out cannon.Outcome) <-chan struct{}
}

// AudioSink plays gameplay sound effects. Play must not block.
type AudioSink interface {
	Play(e cannon.Event)
}

// RoundRecorder stores finished rounds.
type RoundRecorder interface {
	RecordRound(ctx context.Context, out cannon.Outcome) error
}

// Clock supplies the current time for frame deltas.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Multi fans one frame out to several surfaces. Surfaces that fail to
// acquire are skipped; Acquire fails only when all of them do.
type Multi []Surface

// Acquire implements Surface.
func (m Multi) Acquire() (Frame, error) {
	frames := make(multiFrame, 0, len(m))
	for _, s := range m {
		f, err := s.Acquire()
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, ErrSurfaceUnavailable
	}
	return frames, nil
}

type multiFrame []Frame

func (m multiFrame) Draw(snap cannon.Snapshot) error {
	var errs []error
	for _, f := range m {
		if err := f.Draw(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiFrame) Post() {
	for _, f := range m {
		f.Post()
	}
}
