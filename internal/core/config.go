package core

import "time"

// RuntimeConfig contains the per-session settings of the terminal front end.
type RuntimeConfig struct {
	Cols     int   // Screen width in characters
	Rows     int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // Obstacle seed, 0 picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Cols:     80,
		Rows:     24,
		TickRate: 60,
	}
}

// Normalize fills zero or negative fields with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	def := DefaultConfig()
	if c.Cols <= 0 {
		c.Cols = def.Cols
	}
	if c.Rows <= 0 {
		c.Rows = def.Rows
	}
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// FrameTime returns the nominal duration of one frame.
func (c RuntimeConfig) FrameTime() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// FrameSeconds returns FrameTime in seconds.
func (c RuntimeConfig) FrameSeconds() float64 {
	return c.FrameTime().Seconds()
}
