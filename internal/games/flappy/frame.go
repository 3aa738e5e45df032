package flappy

// Frame is everything an external renderer needs to draw one frame.
// Coordinates are world pixels with the origin at the bottom-left.
type Frame struct {
	State       string      `msgpack:"state"`
	Score       int         `msgpack:"score"`
	HighScore   int         `msgpack:"high_score"`
	WorldWidth  float64     `msgpack:"world_w"`
	WorldHeight float64     `msgpack:"world_h"`
	PlayerX     float64     `msgpack:"player_x"`
	PlayerY     float64     `msgpack:"player_y"`
	PlayerR     float64     `msgpack:"player_r"`
	PipeWidth   float64     `msgpack:"pipe_w"`
	Pairs       []PairFrame `msgpack:"pairs"`
	PauseButton Rect        `msgpack:"pause_button"`
	Speed       float64     `msgpack:"speed"`
	Level       float64     `msgpack:"level"`
	Elapsed     float64     `msgpack:"elapsed"`
}

// PairFrame is the draw geometry of one obstacle pair.
type PairFrame struct {
	X           float64 `msgpack:"x"` // Left edge
	UpperY      float64 `msgpack:"upper_y"`
	UpperHeight float64 `msgpack:"upper_h"`
	LowerHeight float64 `msgpack:"lower_h"`
	Scored      bool    `msgpack:"scored"`
}

// Paused reports whether the frame was taken while paused.
func (f Frame) Paused() bool { return f.State == StatePaused.String() }

// Over reports whether the frame was taken after the player died.
func (f Frame) Over() bool { return f.State == StateGameOver.String() }
