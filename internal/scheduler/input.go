package scheduler

import "github.com/vovakirdan/tui-cannon/internal/core"

type commandKind int

const (
	cmdTouch commandKind = iota
	cmdAim
	cmdRotate
	cmdFire
	cmdResize
)

func (k commandKind) String() string {
	switch k {
	case cmdTouch:
		return "touch"
	case cmdAim:
		return "aim"
	case cmdRotate:
		return "rotate"
	case cmdFire:
		return "fire"
	case cmdResize:
		return "resize"
	default:
		return "unknown"
	}
}

// command is one queued input. For cmdResize, point carries width and height.
type command struct {
	kind  commandKind
	point core.Point
	angle float64
}

// enqueue never blocks. A full queue drops the command.
func (s *Scheduler) enqueue(c command) bool {
	select {
	case s.input <- c:
		return true
	default:
		s.logger.Debug("input queue full, dropping command", "kind", c.kind)
		return false
	}
}

// applyInput drains the queue into the session. Caller holds s.mu.
func (s *Scheduler) applyInput() {
	for {
		select {
		case c := <-s.input:
			s.apply(c)
		default:
			return
		}
	}
}

func (s *Scheduler) apply(c command) {
	switch c.kind {
	case cmdTouch:
		s.session.Touch(c.point)
	case cmdAim:
		s.session.Aim(c.angle)
	case cmdRotate:
		s.session.Aim(s.session.Cannon().Angle + c.angle)
	case cmdFire:
		s.session.FireCurrent()
	case cmdResize:
		s.session.Resize(c.point.X, c.point.Y)
	}
}
