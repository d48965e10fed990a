package cannon

import (
	"github.com/vovakirdan/tui-cannon/internal/config"
	"github.com/vovakirdan/tui-cannon/internal/core"
)

// Layout holds every dimension derived from the playfield size.
// Velocities are in pixels per second; y grows downward.
type Layout struct {
	Width  float64
	Height float64

	CannonBaseRadius float64
	CannonLength     float64
	BallRadius       float64
	BallSpeed        float64
	LineWidth        float64

	BlockerDistance float64
	BlockerBegin    float64
	BlockerEnd      float64
	BlockerVelocity float64

	TargetDistance float64
	TargetBegin    float64
	TargetEnd      float64
	TargetVelocity float64
}

// NewLayout computes the layout for a w x h playfield. Speed scales multiply
// the derived ball, blocker and target speeds.
func NewLayout(w, h float64, speed config.SpeedConfig) Layout {
	return Layout{
		Width:  w,
		Height: h,

		CannonBaseRadius: h / 18,
		CannonLength:     w / 8,
		BallRadius:       w / 36,
		BallSpeed:        w * 3 / 2 * speed.Ball,
		LineWidth:        w / 24,

		BlockerDistance: w * 5 / 8,
		BlockerBegin:    h / 8,
		BlockerEnd:      h * 3 / 8,
		BlockerVelocity: h / 2 * speed.Blocker,

		TargetDistance: w * 7 / 8,
		TargetBegin:    h / 8,
		TargetEnd:      h * 7 / 8,
		TargetVelocity: -h / 4 * speed.Target,
	}
}

// Muzzle is where a fired ball starts: one radius in from the left edge at mid height.
func (l Layout) Muzzle() core.Point {
	return core.Pt(l.BallRadius, l.Height/2)
}

// CannonBase is the pivot of the barrel.
func (l Layout) CannonBase() core.Point {
	return core.Pt(0, l.Height/2)
}

func (l Layout) blockerLine() core.Segment {
	return core.VSeg(l.BlockerDistance, l.BlockerBegin, l.BlockerEnd)
}

func (l Layout) targetLine() core.Segment {
	return core.VSeg(l.TargetDistance, l.TargetBegin, l.TargetEnd)
}
