package cannon

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
)

const eps = 1e-9

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(config.DefaultCannonConfig(), opts...)
	s.NewGame()
	return s
}

// freeze stops the blocker and target so a shot's path is predictable.
func freeze(s *Session) {
	s.blocker.Velocity = 0
	s.target.Velocity = 0
}

func runUntilOutcome(s *Session, dt float64, maxFrames int) (StepResult, []Event) {
	var events []Event
	for range maxFrames {
		res := s.Advance(dt)
		events = append(events, res.Events...)
		if res.Outcome != nil {
			return res, events
		}
	}
	return StepResult{}, events
}

func TestLevelOneStraightShotWins(t *testing.T) {
	s := newTestSession(t)
	freeze(s)

	if !s.Fire(math.Pi / 2) {
		t.Fatal("Fire() = false, expected true on a fresh round")
	}

	res, events := runUntilOutcome(s, 1.0/60, 120)
	if res.Outcome == nil {
		t.Fatal("round did not end")
	}
	if res.Outcome.Kind != OutcomeWin {
		t.Errorf("Outcome.Kind = %v, expected win", res.Outcome.Kind)
	}
	if s.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", s.Score())
	}
	// 10s start, about 0.55s of flight, +3s reward
	if tl := s.TimeLeft(); tl < 12 || tl > 13 {
		t.Errorf("TimeLeft() = %g, expected between 12 and 13", tl)
	}
	if s.Phase() != PhaseRoundWon {
		t.Errorf("Phase() = %v, expected round_won", s.Phase())
	}
	if !slices.Contains(events, EventCannonFired) || !slices.Contains(events, EventTargetHit) {
		t.Errorf("events = %v, expected cannon_fired and target_hit", events)
	}
	if s.Ball().OnScreen {
		t.Error("ball still on screen after hitting the target")
	}
}

func TestBlockerDeflectsBall(t *testing.T) {
	s := newTestSession(t)
	freeze(s)
	s.blocker.Line = core.VSeg(s.layout.BlockerDistance, 200, 340)

	s.Fire(math.Pi / 2)
	vy := s.Ball().VY

	// One step that puts the ball centre at x=580, inside the overlap window
	// and still short of the blocker's x.
	dt := (580 - s.layout.BallRadius) / s.layout.BallSpeed
	res := s.Advance(dt)

	ball := s.Ball()
	if ball.VX != -s.layout.BallSpeed {
		t.Errorf("VX = %g, expected %g", ball.VX, -s.layout.BallSpeed)
	}
	if ball.VY != vy {
		t.Errorf("VY = %g, expected unchanged %g", ball.VY, vy)
	}
	if !ball.OnScreen {
		t.Error("ball left the screen on deflection")
	}
	if s.Score() != -15 {
		t.Errorf("Score() = %d, expected -15", s.Score())
	}
	if want := 10 - 2 - dt; math.Abs(s.TimeLeft()-want) > eps {
		t.Errorf("TimeLeft() = %g, expected %g", s.TimeLeft(), want)
	}
	if !slices.Contains(res.Events, EventBlockerHit) {
		t.Errorf("events = %v, expected blocker_hit", res.Events)
	}

	// Still overlapping on the next frame but moving away: no second penalty.
	s.Advance(0.001)
	if s.Score() != -15 {
		t.Errorf("Score() after retreating frame = %d, expected -15", s.Score())
	}
}

func TestBlockerDeflectsOnLongFrame(t *testing.T) {
	s := newTestSession(t)
	freeze(s)

	bx := s.blocker.Line.Start.X
	r := s.layout.BallRadius
	s.ball = Cannonball{
		Pos:      core.Pt(bx-r-1, (s.blocker.Line.Start.Y+s.blocker.Line.End.Y)/2),
		VX:       s.layout.BallSpeed,
		Radius:   r,
		OnScreen: true,
	}

	// At 30 fps one step moves the ball further than its radius, so the
	// centre ends the frame past the blocker while the ball still overlaps it.
	res := s.Advance(1.0 / 30)

	ball := s.Ball()
	if ball.VX != -s.layout.BallSpeed {
		t.Errorf("VX = %g, expected %g", ball.VX, -s.layout.BallSpeed)
	}
	if ball.Pos.X >= bx {
		t.Errorf("Pos.X = %g, expected the ball back on the cannon side of %g", ball.Pos.X, bx)
	}
	if s.Score() != -15 {
		t.Errorf("Score() = %d, expected -15", s.Score())
	}
	if !slices.Contains(res.Events, EventBlockerHit) {
		t.Errorf("events = %v, expected blocker_hit", res.Events)
	}

	res = s.Advance(1.0 / 30)
	if s.Score() != -15 {
		t.Errorf("Score() after retreating frame = %d, expected -15", s.Score())
	}
	if slices.Contains(res.Events, EventBlockerHit) {
		t.Errorf("events = %v, expected no second blocker_hit", res.Events)
	}
}

func TestHitPieceLetsBallThrough(t *testing.T) {
	s := newTestSession(t)
	s.level = 2
	s.NewGame()
	freeze(s)

	shoot := func() {
		s.ball = Cannonball{
			Pos:      core.Pt(800, 150),
			VX:       s.layout.BallSpeed,
			Radius:   s.layout.BallRadius,
			OnScreen: true,
		}
	}

	s.target.Hit[0] = true
	shoot()
	res := s.Advance(0.01)
	if !s.Ball().OnScreen {
		t.Error("ball stopped at an already destroyed piece")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0 after passing a destroyed piece", s.Score())
	}
	if slices.Contains(res.Events, EventTargetHit) {
		t.Error("target_hit reported for a destroyed piece")
	}

	s.target.Hit[0] = false
	shoot()
	s.Advance(0.01)
	if !s.Target().Hit[0] {
		t.Error("piece 0 not marked hit")
	}
	if s.Score() != 20 {
		t.Errorf("Score() = %d, expected 20 (level 2 x 10)", s.Score())
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing with one piece left", s.Phase())
	}
}

func TestTargetSectionBoundary(t *testing.T) {
	tgt := Target{Line: core.VSeg(0, 100, 300), PieceLength: 100, Hit: make([]bool, 2)}

	tests := []struct {
		y        float64
		expected int
	}{
		{100, 0},
		{199.9, 0},
		{200, 1},
		{299, 1},
		{90, -1},
		{300, 2},
	}
	for _, tt := range tests {
		if got := tgt.Section(tt.y); got != tt.expected {
			t.Errorf("Section(%g) = %d, expected %d", tt.y, got, tt.expected)
		}
	}
}

func TestTimeRunsOutLoses(t *testing.T) {
	s := newTestSession(t)

	res := s.Advance(11)
	if res.Outcome == nil || res.Outcome.Kind != OutcomeLose {
		t.Fatalf("Outcome = %+v, expected lose", res.Outcome)
	}
	if s.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %g, expected clamp to 0", s.TimeLeft())
	}
	if !s.GameOver() {
		t.Error("GameOver() = false after losing")
	}

	// Finished rounds are frozen.
	blocker := s.Blocker()
	res = s.Advance(1)
	if res.Outcome != nil || len(res.Events) != 0 {
		t.Errorf("Advance after game over = %+v, expected empty result", res)
	}
	if s.Blocker() != blocker {
		t.Error("blocker moved after game over")
	}
}

func TestWinReportedOnce(t *testing.T) {
	s := newTestSession(t)
	freeze(s)
	s.Fire(math.Pi / 2)

	outcomes := 0
	for range 300 {
		if res := s.Advance(1.0 / 60); res.Outcome != nil {
			outcomes++
		}
	}
	if outcomes != 1 {
		t.Errorf("got %d outcomes, expected exactly 1", outcomes)
	}
	if s.Outcome() == nil || s.Outcome().Kind != OutcomeWin {
		t.Errorf("Outcome() = %+v, expected win", s.Outcome())
	}
}

func TestWinFrameCannotAlsoLose(t *testing.T) {
	s := newTestSession(t)
	freeze(s)
	s.timeLeft = 0.1
	s.ball = Cannonball{
		Pos:      core.Pt(814, 270),
		VX:       10,
		Radius:   s.layout.BallRadius,
		OnScreen: true,
	}

	// The hit reward is smaller than dt, so the clock still runs out this frame.
	res := s.Advance(5)
	if res.Outcome == nil || res.Outcome.Kind != OutcomeWin {
		t.Fatalf("Outcome = %+v, expected win", res.Outcome)
	}
	if s.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %g, expected 0", s.TimeLeft())
	}
	if s.Phase() != PhaseRoundWon {
		t.Errorf("Phase() = %v, expected round_won", s.Phase())
	}
}

func TestInvalidDeltaIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -1},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			before := s.Snapshot()

			s.Advance(tt.dt)

			if s.TimeLeft() != before.TimeLeft {
				t.Errorf("TimeLeft() = %g, expected %g", s.TimeLeft(), before.TimeLeft)
			}
			if s.Blocker().Line != before.Blocker {
				t.Error("blocker moved on an invalid dt")
			}
		})
	}
}

func TestSegmentsStayOnScreen(t *testing.T) {
	s := newTestSession(t)
	h := s.layout.Height
	rng := rand.New(rand.NewPCG(1, 2))

	inside := func(name string, l core.Segment) {
		t.Helper()
		if l.Start.Y < -eps || l.End.Y > h+eps {
			t.Fatalf("%s = [%g, %g], outside [0, %g]", name, l.Start.Y, l.End.Y, h)
		}
	}

	for range 5000 {
		// Mostly frame-sized steps with occasional long stalls.
		dt := rng.Float64() / 30
		if rng.IntN(50) == 0 {
			dt = rng.Float64() * 3
		}
		if rng.IntN(10) == 0 {
			s.Touch(core.Pt(rng.Float64()*s.layout.Width, rng.Float64()*h))
		}

		s.Advance(dt)

		inside("blocker", s.Blocker().Line)
		inside("target", s.Target().Line)
		if !s.Blocker().Line.Vertical() || !s.Target().Line.Vertical() {
			t.Fatalf("segments lost their top-down vertical shape: %+v, %+v", s.Blocker().Line, s.Target().Line)
		}
		if s.TimeLeft() < 0 {
			t.Fatalf("TimeLeft() = %g, expected >= 0", s.TimeLeft())
		}
		if s.GameOver() {
			s.Acknowledge()
		}
	}
}

func TestHitsAreMonotonic(t *testing.T) {
	s := newTestSession(t)
	s.level = 4
	s.NewGame()
	rng := rand.New(rand.NewPCG(7, 7))

	prev := 0
	for range 3000 {
		if rng.IntN(5) == 0 {
			s.Fire(rng.Float64() * math.Pi)
		}
		s.Advance(1.0 / 60)

		n := s.Target().HitCount()
		if n < prev {
			t.Fatalf("HitCount dropped from %d to %d within a round", prev, n)
		}
		prev = n
		if s.GameOver() {
			break
		}
	}
}

func TestBounceReversesAtEdges(t *testing.T) {
	tests := []struct {
		name      string
		line      core.Segment
		v         float64
		wantStart float64
		wantV     float64
	}{
		{"past top", core.VSeg(0, -5, 95), -10, 0, 10},
		{"past bottom", core.VSeg(0, 110, 210), 10, 100, -10},
		{"inside", core.VSeg(0, 50, 150), 10, 50, 10},
		{"past top already moving down", core.VSeg(0, -5, 95), 10, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, v := bounce(tt.line, tt.v, 200)
			if line.Start.Y != tt.wantStart {
				t.Errorf("Start.Y = %g, expected %g", line.Start.Y, tt.wantStart)
			}
			if v != tt.wantV {
				t.Errorf("v = %g, expected %g", v, tt.wantV)
			}
			if line.Length() != tt.line.Length() {
				t.Errorf("Length() = %g, expected %g", line.Length(), tt.line.Length())
			}
		})
	}
}
