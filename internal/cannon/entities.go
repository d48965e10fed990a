package cannon

import (
	"math"

	"github.com/vovakirdan/tui-cannon/internal/core"
)

// Blocker is the oscillating bar between the cannon and the target.
type Blocker struct {
	Line     core.Segment
	Velocity float64 // Pixels per second, positive is downward
}

// Target is the oscillating bar split into independently destructible pieces.
// len(Hit) is the piece count, which equals the level.
type Target struct {
	Line        core.Segment
	Velocity    float64
	PieceLength float64
	Hit         []bool
}

// Pieces returns the number of pieces in the target.
func (t Target) Pieces() int {
	return len(t.Hit)
}

// HitCount returns how many pieces have been destroyed.
func (t Target) HitCount() int {
	n := 0
	for _, h := range t.Hit {
		if h {
			n++
		}
	}
	return n
}

// Cleared reports whether every piece has been hit.
func (t Target) Cleared() bool {
	return t.HitCount() == t.Pieces()
}

// Section returns the piece index at height y using floor division, so a point
// exactly on a boundary belongs to the piece that starts there.
// The result may fall outside [0, Pieces()).
func (t Target) Section(y float64) int {
	if t.PieceLength <= 0 {
		return -1
	}
	return int(math.Floor((y - t.Line.Start.Y) / t.PieceLength))
}

// PieceLine returns the segment covered by piece i.
func (t Target) PieceLine(i int) core.Segment {
	y0 := t.Line.Start.Y + float64(i)*t.PieceLength
	return core.VSeg(t.Line.Start.X, y0, y0+t.PieceLength)
}

// Cannonball is the single reusable projectile.
type Cannonball struct {
	Pos      core.Point
	VX, VY   float64
	Radius   float64
	OnScreen bool
}

// Overlaps reports whether the ball's bounding extent straddles the vertical
// line on the x axis and overlaps its y range. Touching counts as a miss.
func (b Cannonball) Overlaps(line core.Segment) bool {
	x := line.Start.X
	return b.Pos.X+b.Radius > x &&
		b.Pos.X-b.Radius < x &&
		b.Pos.Y+b.Radius > line.Start.Y &&
		b.Pos.Y-b.Radius < line.End.Y
}

// Approaching reports whether a ball that started the frame at fromX is
// travelling toward the vertical line at x.
func (b Cannonball) Approaching(x, fromX float64) bool {
	return (x-fromX)*b.VX > 0
}

// OutOfBounds reports whether any part of the ball is outside [0,w]x[0,h].
func (b Cannonball) OutOfBounds(w, h float64) bool {
	return b.Pos.X+b.Radius > w || b.Pos.X-b.Radius < 0 ||
		b.Pos.Y+b.Radius > h || b.Pos.Y-b.Radius < 0
}

// Cannon is the aimable barrel anchored at the middle of the left edge.
type Cannon struct {
	BaseRadius float64
	Length     float64
	Angle      float64
	BarrelEnd  core.Point
}

// bounce keeps a vertical segment inside [0, height]. When an endpoint has
// crossed an edge the segment is pushed back to it and the velocity is pointed
// away from that edge.
func bounce(line core.Segment, v, height float64) (core.Segment, float64) {
	top := core.ClampF(line.Start.Y, 0, height-line.Length())
	switch {
	case top > line.Start.Y:
		v = math.Abs(v)
	case top < line.Start.Y:
		v = -math.Abs(v)
	}
	return line.ShiftY(top - line.Start.Y), v
}
