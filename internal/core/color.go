package core

// Color is the semantic color of a screen cell.
// The platform layer decides how each one looks on a terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSky
	ColorGround
	ColorPipe
	ColorPipeEdge
	ColorBird
	ColorHUD
	ColorButton
	ColorOverlay
	ColorFlash
)

// String returns the color's name.
func (c Color) String() string {
	switch c {
	case ColorSky:
		return "sky"
	case ColorGround:
		return "ground"
	case ColorPipe:
		return "pipe"
	case ColorPipeEdge:
		return "pipe-edge"
	case ColorBird:
		return "bird"
	case ColorHUD:
		return "hud"
	case ColorButton:
		return "button"
	case ColorOverlay:
		return "overlay"
	case ColorFlash:
		return "flash"
	default:
		return "default"
	}
}
