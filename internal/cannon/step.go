package cannon

import "math"

// Advance runs one frame of dt seconds. The order of effects decides which
// event wins when several coincide in one frame:
//
//  1. move the ball
//  2. blocker collision (deflect, time and score penalty)
//  3. screen exit
//  4. target collision (piece hit, time and score reward, maybe win)
//  5. move blocker and target, bouncing at the screen edges
//  6. run the clock down (maybe lose)
//
// A negative or non-finite dt counts as 0. Outside PhasePlaying nothing moves
// and no score changes.
func (s *Session) Advance(dt float64) StepResult {
	if s.phase != PhasePlaying {
		return StepResult{}
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	res := StepResult{Events: s.pending}
	s.pending = nil
	s.elapsed += dt

	if s.ball.OnScreen {
		fromX := s.ball.Pos.X
		s.ball.Pos.X += dt * s.ball.VX
		s.ball.Pos.Y += dt * s.ball.VY

		bx := s.blocker.Line.Start.X
		if s.ball.Approaching(bx, fromX) && s.ball.Overlaps(s.blocker.Line) {
			// A long frame can carry the centre past the line; mirror it back
			// so the next frame sees the ball retreating.
			if (s.ball.Pos.X-bx)*s.ball.VX > 0 {
				s.ball.Pos.X = 2*bx - s.ball.Pos.X
			}
			s.ball.VX = -s.ball.VX
			s.timeLeft -= s.cfg.Round.MissPenalty
			s.score -= s.level * s.cfg.Round.BlockerPenalty
			res.Events = append(res.Events, EventBlockerHit)
		}

		if s.ball.OutOfBounds(s.layout.Width, s.layout.Height) {
			s.ball.OnScreen = false
		}

		if s.ball.OnScreen && s.ball.Overlaps(s.target.Line) {
			if s.hitTarget(&res) && s.target.Cleared() {
				res.Outcome = s.finish(OutcomeWin)
			}
		}
	}

	s.blocker.Line = s.blocker.Line.ShiftY(dt * s.blocker.Velocity)
	s.blocker.Line, s.blocker.Velocity = bounce(s.blocker.Line, s.blocker.Velocity, s.layout.Height)

	s.target.Line = s.target.Line.ShiftY(dt * s.target.Velocity)
	s.target.Line, s.target.Velocity = bounce(s.target.Line, s.target.Velocity, s.layout.Height)

	s.timeLeft -= dt
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		if res.Outcome == nil {
			res.Outcome = s.finish(OutcomeLose)
		}
	}

	return res
}

// hitTarget resolves a ball overlapping the target. Pieces already destroyed
// let the ball pass. Returns true if a piece was hit.
func (s *Session) hitTarget(res *StepResult) bool {
	section := s.target.Section(s.ball.Pos.Y)
	if section < 0 || section >= s.target.Pieces() || s.target.Hit[section] {
		return false
	}

	s.target.Hit[section] = true
	s.ball.OnScreen = false
	s.timeLeft += s.cfg.Round.HitReward
	s.score += s.level * s.cfg.Round.HitPoints
	res.Events = append(res.Events, EventTargetHit)
	return true
}
