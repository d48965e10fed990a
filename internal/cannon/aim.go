package cannon

import (
	"math"

	"github.com/vovakirdan/tui-cannon/internal/core"
)

// AimAngle converts a touch point into a barrel angle measured from straight
// up. A touch level with the cannon gives 0. Touches below the centre line
// add π, so the barrel sweeps the whole lower half-circle as well.
func AimAngle(touch core.Point, height float64) float64 {
	centerMinusY := height/2 - touch.Y

	angle := 0.0
	if centerMinusY != 0 {
		angle = math.Atan(touch.X / centerMinusY)
	}
	if touch.Y > height/2 {
		angle += math.Pi
	}
	return angle
}

// AimAt points the barrel at touch and returns the angle.
func (s *Session) AimAt(touch core.Point) float64 {
	angle := AimAngle(touch, s.layout.Height)
	s.Aim(angle)
	return angle
}

// Aim rotates the barrel to angle without firing.
func (s *Session) Aim(angle float64) {
	s.cannon.Angle = angle
	s.cannon.BarrelEnd = core.Pt(
		s.layout.CannonLength*math.Sin(angle),
		-s.layout.CannonLength*math.Cos(angle)+s.layout.Height/2,
	)
}

// Fire launches the ball along angle. It does nothing and returns false while
// a ball is already in flight or the round is not being played.
func (s *Session) Fire(angle float64) bool {
	if s.ball.OnScreen || s.phase != PhasePlaying {
		return false
	}

	s.Aim(angle)
	s.ball.Pos = s.layout.Muzzle()
	s.ball.VX = s.layout.BallSpeed * math.Sin(angle)
	s.ball.VY = -s.layout.BallSpeed * math.Cos(angle)
	s.ball.OnScreen = true
	s.shotsFired++
	s.pending = append(s.pending, EventCannonFired)
	return true
}

// FireCurrent fires along the barrel's current angle.
func (s *Session) FireCurrent() bool {
	return s.Fire(s.cannon.Angle)
}

// Touch aims at p and fires. While a ball is in flight the touch is ignored
// entirely and the barrel stays where it is.
func (s *Session) Touch(p core.Point) bool {
	if s.ball.OnScreen || s.phase != PhasePlaying {
		return false
	}
	return s.Fire(s.AimAt(p))
}
