package flappy

// Rect is an axis-aligned rectangle in world pixels, y up.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// TapAction is what a tap resolves to.
type TapAction int

const (
	TapNone TapAction = iota
	TapRestart
	TapUnpause
	TapPause
	TapJump
)

// String returns the action's name.
func (a TapAction) String() string {
	switch a {
	case TapRestart:
		return "restart"
	case TapUnpause:
		return "unpause"
	case TapPause:
		return "pause"
	case TapJump:
		return "jump"
	default:
		return "none"
	}
}

// ClassifyTap decides what a tap at (x, y) does in the given state.
func ClassifyTap(state State, pauseButton Rect, x, y float64) TapAction {
	switch state {
	case StateGameOver:
		return TapRestart
	case StatePaused:
		return TapUnpause
	}
	if pauseButton.Contains(x, y) {
		return TapPause
	}
	return TapJump
}
