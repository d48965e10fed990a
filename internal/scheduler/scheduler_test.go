package scheduler_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
	"github.com/vovakirdan/tui-cannon/internal/scheduler/mocks"
)

// fakeClock advances by step on every Now call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newSession(startTime float64) *cannon.Session {
	cfg := config.DefaultCannonConfig()
	cfg.Round.StartTime = startTime
	s := cannon.New(cfg)
	s.NewGame()
	return s
}

func waitOrFail(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestRunFrameDrawsAndPostsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	surface := mocks.NewMockSurface(ctrl)
	frame := mocks.NewMockFrame(ctrl)
	surface.EXPECT().Acquire().Return(frame, nil)
	frame.EXPECT().Draw(gomock.Any()).DoAndReturn(func(snap cannon.Snapshot) error {
		if snap.Phase != cannon.PhasePlaying.String() {
			t.Errorf("Draw() phase = %s, expected playing", snap.Phase)
		}
		return nil
	})
	frame.EXPECT().Post().Times(1)

	s := scheduler.New(newSession(10),
		scheduler.WithSurface(surface),
		scheduler.WithClock(newFakeClock(100*time.Millisecond)),
		scheduler.WithLogger(quietLogger()),
	)

	out, err := s.RunFrame()
	if err != nil {
		t.Fatalf("RunFrame() error = %v", err)
	}
	if out != nil {
		t.Errorf("RunFrame() outcome = %+v, expected nil", out)
	}
}

func TestPostRunsWhenDrawFails(t *testing.T) {
	tests := []struct {
		name string
		draw func(cannon.Snapshot) error
	}{
		{"error", func(cannon.Snapshot) error { return errors.New("broken pipe") }},
		{"panic", func(cannon.Snapshot) error { panic("draw exploded") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			surface := mocks.NewMockSurface(ctrl)
			frame := mocks.NewMockFrame(ctrl)
			surface.EXPECT().Acquire().Return(frame, nil)
			frame.EXPECT().Draw(gomock.Any()).DoAndReturn(tt.draw)
			frame.EXPECT().Post().Times(1)

			s := scheduler.New(newSession(10),
				scheduler.WithSurface(surface),
				scheduler.WithLogger(quietLogger()),
			)
			if _, err := s.RunFrame(); err != nil {
				t.Errorf("RunFrame() error = %v", err)
			}
		})
	}
}

func TestAcquireFailureStillSimulates(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := mocks.NewMockSurface(ctrl)
	surface.EXPECT().Acquire().Return(nil, scheduler.ErrSurfaceUnavailable).Times(2)

	s := scheduler.New(newSession(10),
		scheduler.WithSurface(surface),
		scheduler.WithClock(newFakeClock(time.Second)),
		scheduler.WithLogger(quietLogger()),
	)

	s.RunFrame()
	s.RunFrame()

	if got := s.Snapshot().TimeLeft; got != 9 {
		t.Errorf("TimeLeft = %g, expected 9 after one second", got)
	}
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, expected 2", s.Frames())
	}
}

func TestInputAppliedBeforeAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	audio := mocks.NewMockAudioSink(ctrl)
	audio.EXPECT().Play(cannon.EventCannonFired).Times(1)

	s := scheduler.New(newSession(10),
		scheduler.WithAudio(audio),
		scheduler.WithClock(newFakeClock(time.Millisecond)),
		scheduler.WithLogger(quietLogger()),
	)

	if !s.Touch(core.Pt(480, 100)) {
		t.Fatal("Touch() = false with an empty queue")
	}
	s.RunFrame()

	snap := s.Snapshot()
	if !snap.Ball.OnScreen {
		t.Error("ball not in flight after queued touch")
	}
	if snap.ShotsFired != 1 {
		t.Errorf("ShotsFired = %d, expected 1", snap.ShotsFired)
	}
}

func TestRotateAndFire(t *testing.T) {
	s := scheduler.New(newSession(10), scheduler.WithLogger(quietLogger()))

	s.Aim(1)
	s.Rotate(0.25)
	s.Fire()
	s.RunFrame()

	snap := s.Snapshot()
	if snap.Cannon.Angle != 1.25 {
		t.Errorf("Angle = %g, expected 1.25", snap.Cannon.Angle)
	}
	if !snap.Ball.OnScreen {
		t.Error("Fire() did not launch the ball")
	}
}

func TestInputQueueDropsWhenFull(t *testing.T) {
	s := scheduler.New(newSession(10),
		scheduler.WithInputBuffer(2),
		scheduler.WithLogger(quietLogger()),
	)

	if !s.Fire() || !s.Fire() {
		t.Fatal("Fire() rejected while the queue had room")
	}
	if s.Fire() {
		t.Error("Fire() = true on a full queue, expected drop")
	}

	// The frame drains the queue.
	s.RunFrame()
	if !s.Fire() {
		t.Error("Fire() = false after the queue was drained")
	}
}

func TestResizeQueued(t *testing.T) {
	s := scheduler.New(newSession(10), scheduler.WithLogger(quietLogger()))

	s.Resize(480, 270)
	s.RunFrame()

	snap := s.Snapshot()
	if snap.Width != 480 || snap.Height != 270 {
		t.Errorf("snapshot size = %gx%g, expected 480x270", snap.Width, snap.Height)
	}
}

func TestStopIsIdempotentAndJoins(t *testing.T) {
	s := scheduler.New(newSession(1000),
		scheduler.WithFPS(500),
		scheduler.WithLogger(quietLogger()),
	)

	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()

	// Let a few frames run.
	deadline := time.Now().Add(5 * time.Second)
	for s.Frames() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	s.Stop()
	waitOrFail(t, s.Done(), "loop exit")
	s.Wait()

	if err := <-errc; err != nil {
		t.Errorf("Run() = %v, expected nil after Stop", err)
	}
	if _, err := s.RunFrame(); !errors.Is(err, scheduler.ErrStopped) {
		t.Errorf("RunFrame() after Stop = %v, expected ErrStopped", err)
	}
}

func TestRunTwiceRejected(t *testing.T) {
	s := scheduler.New(newSession(1000),
		scheduler.WithFPS(500),
		scheduler.WithLogger(quietLogger()),
	)

	go s.Run(context.Background())
	deadline := time.Now().Add(5 * time.Second)
	for s.Frames() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if err := s.Run(context.Background()); !errors.Is(err, scheduler.ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, expected ErrAlreadyRunning", err)
	}

	s.Stop()
	s.Wait()
}

func TestContextCancelStopsRun(t *testing.T) {
	s := scheduler.New(newSession(1000),
		scheduler.WithFPS(500),
		scheduler.WithLogger(quietLogger()),
	)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	cancel()

	waitOrFail(t, s.Done(), "loop exit")
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
}

func TestOutcomeWaitsForAcknowledgement(t *testing.T) {
	ctrl := gomock.NewController(t)
	presenter := mocks.NewMockPresenter(ctrl)
	recorder := mocks.NewMockRoundRecorder(ctrl)

	presented := make(chan cannon.Outcome, 1)
	never := make(chan struct{})
	presenter.EXPECT().PresentOutcome(gomock.Any()).DoAndReturn(func(out cannon.Outcome) <-chan struct{} {
		presented <- out
		return never
	}).Times(1)
	recorder.EXPECT().RecordRound(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s := scheduler.New(newSession(0.1),
		scheduler.WithPresenter(presenter),
		scheduler.WithRecorder(recorder),
		scheduler.WithClock(newFakeClock(50*time.Millisecond)),
		scheduler.WithFPS(500),
		scheduler.WithLogger(quietLogger()),
	)
	go s.Run(context.Background())

	var out cannon.Outcome
	select {
	case out = <-presented:
	case <-time.After(5 * time.Second):
		t.Fatal("outcome never presented")
	}
	if out.Kind != cannon.OutcomeLose {
		t.Errorf("Kind = %v, expected lose", out.Kind)
	}

	// The loop is parked on the acknowledgement; no frames advance.
	frames := s.Frames()
	time.Sleep(20 * time.Millisecond)
	if s.Frames() != frames {
		t.Errorf("frames advanced from %d to %d while awaiting acknowledgement", frames, s.Frames())
	}
	if s.Snapshot().Phase != cannon.PhaseRoundLost.String() {
		t.Errorf("Phase = %s, expected round_lost", s.Snapshot().Phase)
	}

	s.Stop()
	waitOrFail(t, s.Done(), "loop exit while awaiting acknowledgement")
}

func TestAcknowledgeStartsNextRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	presenter := mocks.NewMockPresenter(ctrl)

	var (
		mu     sync.Mutex
		rounds []string
	)
	twice := make(chan struct{})
	presenter.EXPECT().PresentOutcome(gomock.Any()).DoAndReturn(func(out cannon.Outcome) <-chan struct{} {
		mu.Lock()
		rounds = append(rounds, out.RoundID)
		if len(rounds) == 2 {
			close(twice)
		}
		mu.Unlock()

		ack := make(chan struct{})
		close(ack)
		return ack
	}).MinTimes(2)

	s := scheduler.New(newSession(0.1),
		scheduler.WithPresenter(presenter),
		scheduler.WithClock(newFakeClock(50*time.Millisecond)),
		scheduler.WithFPS(500),
		scheduler.WithLogger(quietLogger()),
	)
	go s.Run(context.Background())

	waitOrFail(t, twice, "second outcome")
	s.Stop()
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if rounds[0] == rounds[1] {
		t.Errorf("both outcomes carry round %s, expected a fresh round after acknowledgement", rounds[0])
	}
}

func TestMultiSurface(t *testing.T) {
	ctrl := gomock.NewController(t)

	down := mocks.NewMockSurface(ctrl)
	up := mocks.NewMockSurface(ctrl)
	frame := mocks.NewMockFrame(ctrl)

	down.EXPECT().Acquire().Return(nil, scheduler.ErrSurfaceUnavailable).AnyTimes()
	up.EXPECT().Acquire().Return(frame, nil)
	frame.EXPECT().Draw(gomock.Any()).Return(nil)
	frame.EXPECT().Post()

	multi := scheduler.Multi{down, up}
	f, err := multi.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := f.Draw(cannon.Snapshot{}); err != nil {
		t.Errorf("Draw() error = %v", err)
	}
	f.Post()

	if _, err := (scheduler.Multi{down}).Acquire(); !errors.Is(err, scheduler.ErrSurfaceUnavailable) {
		t.Errorf("Acquire() with no live surface = %v, expected ErrSurfaceUnavailable", err)
	}
}
