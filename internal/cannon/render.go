package cannon

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-cannon/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	BarrelChar = '•'
	BaseChar   = '█'
	LineChar   = '┃'
)

// HUDRows is the number of rows reserved above the playfield.
const HUDRows = 1

// Viewport maps world coordinates to screen cells below the HUD.
type Viewport struct {
	sx, sy float64
}

// NewViewport fits a worldW x worldH playfield into cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	v := Viewport{}
	if worldW > 0 {
		v.sx = float64(cols) / worldW
	}
	if worldH > 0 {
		v.sy = float64(max(rows-HUDRows, 0)) / worldH
	}
	return v
}

// Cell returns the screen cell containing world point p.
func (v Viewport) Cell(p core.Point) (int, int) {
	return int(math.Floor(p.X * v.sx)), HUDRows + int(math.Floor(p.Y*v.sy))
}

// World returns the world point at the centre of screen cell (x, y).
func (v Viewport) World(x, y int) core.Point {
	if v.sx == 0 || v.sy == 0 {
		return core.Point{}
	}
	return core.Pt((float64(x)+0.5)/v.sx, (float64(y-HUDRows)+0.5)/v.sy)
}

// Render draws snap into dst: the status line, blocker, intact target pieces,
// cannon and the ball when it is in flight.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	vp := NewViewport(snap.Width, snap.Height, dst.Width(), dst.Height())

	drawHUD(snap, dst)

	drawVertical(dst, vp, snap.Blocker, core.ColorBlue)
	for _, p := range snap.Pieces {
		if !p.Hit {
			drawVertical(dst, vp, p.Line, p.Color)
		}
	}

	drawCannon(dst, vp, snap.Cannon)

	if snap.Ball.OnScreen {
		x, y := vp.Cell(snap.Ball.Pos)
		dst.SetColored(x, y, BallChar, core.ColorYellow)
	}
}

func drawHUD(snap Snapshot, dst *core.Screen) {
	left := fmt.Sprintf("Time remaining: %.1f seconds", snap.TimeLeft)
	right := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(1, 0, left, core.ColorWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d", snap.Level), core.ColorCyan)
	dst.DrawText(dst.Width()-len(right)-1, 0, right, core.ColorWhite)
}

// drawVertical draws [Start, End) so adjacent pieces don't share a cell.
func drawVertical(dst *core.Screen, vp Viewport, line core.Segment, c core.Color) {
	x, y0 := vp.Cell(line.Start)
	_, y1 := vp.Cell(line.End)
	dst.DrawVLine(x, y0, max(y1-y0, 1), LineChar, c)
}

func drawCannon(dst *core.Screen, vp Viewport, c CannonSnapshot) {
	bx, by := vp.Cell(c.Base)
	ex, ey := vp.Cell(c.BarrelEnd)
	dst.DrawLine(bx, by, ex, ey, BarrelChar, core.ColorRed)

	// Fill every cell whose centre lies inside the base disc.
	rx, ry := vp.Cell(core.Pt(c.Base.X+c.BaseRadius, c.Base.Y+c.BaseRadius))
	for y := 2*by - ry; y <= ry; y++ {
		for x := 0; x <= rx; x++ {
			p := vp.World(x, y)
			if math.Hypot(p.X-c.Base.X, p.Y-c.Base.Y) <= c.BaseRadius {
				dst.SetColored(x, y, BaseChar, core.ColorRed)
			}
		}
	}
}
