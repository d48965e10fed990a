package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the cannon scene.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorGray
	ColorOrange
)

// PieceColor returns the color of an intact target piece.
// Even pieces are green and odd pieces gray, so neighbours stay distinguishable.
func PieceColor(index int) Color {
	if index%2 != 0 {
		return ColorGray
	}
	return ColorGreen
}
