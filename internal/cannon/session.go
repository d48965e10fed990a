// Package cannon implements the cannon-versus-target game: the entity model,
// the per-frame simulation step, aiming and firing, and the round/level
// state machine. It has no knowledge of terminals, clocks or threads; the
// scheduler owns a Session and serializes every call into it.
package cannon

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/highscore"
)

// scoreTimeout bounds high-score persistence done at round end.
const scoreTimeout = 2 * time.Second

// ScoreBook is the high-score collaborator. *highscore.Book implements it.
type ScoreBook interface {
	Top(ctx context.Context) ([]int, error)
	InsertScore(ctx context.Context, current int) ([]int, error)
}

// Option configures a Session.
type Option func(*Session)

// WithScoreBook attaches high-score persistence.
func WithScoreBook(b ScoreBook) Option {
	return func(s *Session) { s.book = b }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is the complete mutable state of one player's game.
// It is not safe for concurrent use.
type Session struct {
	cfg    config.CannonConfig
	layout Layout
	book   ScoreBook
	logger *log.Logger

	blocker Blocker
	target  Target
	ball    Cannonball
	cannon  Cannon

	phase      Phase
	roundID    string
	level      int
	score      int
	timeLeft   float64
	shotsFired int
	elapsed    float64
	gameOver   bool
	outcome    *Outcome

	// Base speeds restored at every round start. The blocker's grows per level.
	blockerBase float64
	targetBase  float64

	pending []Event
}

// New creates an idle session sized from cfg.World. Call NewGame to start playing.
func New(cfg config.CannonConfig, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		level:  1,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.layout = NewLayout(cfg.World.Width, cfg.World.Height, cfg.Speed)
	s.resetDifficulty()
	s.placeEntities()
	s.Aim(0)
	return s
}

// NewGame starts a fresh round at the current level, keeping the score.
func (s *Session) NewGame() {
	s.target.Hit = make([]bool, s.level)
	s.placeEntities()

	s.blocker.Velocity = s.blockerBase
	s.target.Velocity = s.targetBase
	s.timeLeft = s.cfg.Round.StartTime
	s.ball.OnScreen = false
	s.shotsFired = 0
	s.elapsed = 0
	s.gameOver = false
	s.outcome = nil
	s.pending = nil
	s.roundID = uuid.NewString()
	s.phase = PhasePlaying
}

// Acknowledge is called once the player has seen the round outcome.
// A win advances to the next level; a loss starts over from level 1.
// It returns false when there is no finished round to acknowledge.
func (s *Session) Acknowledge() bool {
	switch s.phase {
	case PhaseRoundWon:
		s.addLevel()
	case PhaseRoundLost:
		s.level = 1
		s.score = 0
		s.resetDifficulty()
	default:
		return false
	}
	s.NewGame()
	return true
}

// Resize recomputes the layout for a new playfield. A round in progress
// restarts with the new geometry; a finished round keeps its outcome.
func (s *Session) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.layout = NewLayout(w, h, s.cfg.Speed)
	s.blockerBase = s.layout.BlockerVelocity + float64(s.level-1)*s.cfg.Levels.BlockerSpeedup
	s.targetBase = s.layout.TargetVelocity
	s.ball.Radius = s.layout.BallRadius
	s.Aim(s.cannon.Angle)
	if s.phase == PhasePlaying {
		s.NewGame()
		return
	}
	s.placeEntities()
}

// addLevel moves to the next level. Past levels.max the level wraps to 1 and
// the blocker drops back to its base speed; the score carries over.
func (s *Session) addLevel() {
	if maxLevel := s.cfg.Levels.Max; maxLevel > 0 && s.level >= maxLevel {
		s.level = 1
		s.blockerBase = s.layout.BlockerVelocity
		return
	}
	s.level++
	s.blockerBase += s.cfg.Levels.BlockerSpeedup
}

func (s *Session) resetDifficulty() {
	s.blockerBase = s.layout.BlockerVelocity
	s.targetBase = s.layout.TargetVelocity
}

// placeEntities moves the blocker and target back to their base bands and
// recomputes the piece length for the current piece count.
func (s *Session) placeEntities() {
	s.blocker.Line = s.layout.blockerLine()
	s.target.Line = s.layout.targetLine()
	pieces := len(s.target.Hit)
	if pieces == 0 {
		pieces = s.level
	}
	s.target.PieceLength = s.target.Line.Length() / float64(pieces)
	s.ball.Radius = s.layout.BallRadius
	s.cannon.BaseRadius = s.layout.CannonBaseRadius
	s.cannon.Length = s.layout.CannonLength
}

// finish ends the round once. A loss records the score in the high-score list.
func (s *Session) finish(kind OutcomeKind) *Outcome {
	s.gameOver = true
	s.ball.OnScreen = false

	out := &Outcome{
		Kind:       kind,
		RoundID:    s.roundID,
		Level:      s.level,
		ShotsFired: s.shotsFired,
		Elapsed:    time.Duration(s.elapsed * float64(time.Second)),
		Score:      s.score,
		Marked:     -1,
	}
	if kind == OutcomeWin {
		s.phase = PhaseRoundWon
	} else {
		s.phase = PhaseRoundLost
	}

	if s.book != nil {
		ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
		defer cancel()

		var (
			top []int
			err error
		)
		if kind == OutcomeLose {
			top, err = s.book.InsertScore(ctx, s.score)
		} else {
			top, err = s.book.Top(ctx)
		}
		if err != nil {
			s.logger.Warn("high score update failed", "round", s.roundID, "score", s.score, "error", err)
		}
		out.HighScores = top
		out.Marked = highscore.MarkRank(top, s.score)
	}

	s.outcome = out
	return out
}

// Phase returns the current round state.
func (s *Session) Phase() Phase { return s.phase }

// Level returns the current level (and target piece count).
func (s *Session) Level() int { return s.level }

// Score returns the cumulative score. It may be negative.
func (s *Session) Score() int { return s.score }

// TimeLeft returns the seconds left on the round clock.
func (s *Session) TimeLeft() float64 { return s.timeLeft }

// ShotsFired returns the shots fired this round.
func (s *Session) ShotsFired() int { return s.shotsFired }

// Elapsed returns the simulated time of this round in seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// GameOver reports whether the current round has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Outcome returns the finished round's outcome, or nil while playing.
func (s *Session) Outcome() *Outcome { return s.outcome }

// RoundID identifies the current round.
func (s *Session) RoundID() string { return s.roundID }

// Layout returns the current playfield geometry.
func (s *Session) Layout() Layout { return s.layout }

// Ball returns a copy of the projectile.
func (s *Session) Ball() Cannonball { return s.ball }

// Blocker returns a copy of the blocker.
func (s *Session) Blocker() Blocker { return s.blocker }

// Target returns a copy of the target with its own hit slice.
func (s *Session) Target() Target {
	t := s.target
	t.Hit = append([]bool(nil), s.target.Hit...)
	return t
}

// Cannon returns a copy of the cannon.
func (s *Session) Cannon() Cannon { return s.cannon }
