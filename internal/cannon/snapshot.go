package cannon

import "github.com/vovakirdan/tui-cannon/internal/core"

// Snapshot is an immutable copy of everything a renderer needs for one frame.
// It shares no memory with the Session.
type Snapshot struct {
	RoundID    string  `json:"round_id"`
	Phase      string  `json:"phase"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LineWidth  float64 `json:"line_width"`
	Level      int     `json:"level"`
	Score      int     `json:"score"`
	TimeLeft   float64 `json:"time_left"`
	ShotsFired int     `json:"shots_fired"`

	Ball    BallSnapshot    `json:"ball"`
	Cannon  CannonSnapshot  `json:"cannon"`
	Blocker core.Segment    `json:"blocker"`
	Pieces  []PieceSnapshot `json:"pieces"`
}

// BallSnapshot is the projectile as drawn.
type BallSnapshot struct {
	Pos      core.Point `json:"pos"`
	Radius   float64    `json:"radius"`
	OnScreen bool       `json:"on_screen"`
}

// CannonSnapshot is the barrel and its base.
type CannonSnapshot struct {
	Base       core.Point `json:"base"`
	BaseRadius float64    `json:"base_radius"`
	BarrelEnd  core.Point `json:"barrel_end"`
	Angle      float64    `json:"angle"`
}

// PieceSnapshot is one target piece with its display color.
type PieceSnapshot struct {
	Line  core.Segment `json:"line"`
	Hit   bool         `json:"hit"`
	Color core.Color   `json:"color"`
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:    s.roundID,
		Phase:      s.phase.String(),
		Width:      s.layout.Width,
		Height:     s.layout.Height,
		LineWidth:  s.layout.LineWidth,
		Level:      s.level,
		Score:      s.score,
		TimeLeft:   s.timeLeft,
		ShotsFired: s.shotsFired,
		Ball: BallSnapshot{
			Pos:      s.ball.Pos,
			Radius:   s.ball.Radius,
			OnScreen: s.ball.OnScreen,
		},
		Cannon: CannonSnapshot{
			Base:       s.layout.CannonBase(),
			BaseRadius: s.cannon.BaseRadius,
			BarrelEnd:  s.cannon.BarrelEnd,
			Angle:      s.cannon.Angle,
		},
		Blocker: s.blocker.Line,
		Pieces:  make([]PieceSnapshot, s.target.Pieces()),
	}
	for i := range snap.Pieces {
		snap.Pieces[i] = PieceSnapshot{
			Line:  s.target.PieceLine(i),
			Hit:   s.target.Hit[i],
			Color: core.PieceColor(i),
		}
	}
	return snap
}
