package config

import "math"

// Difficulty computes the scroll speed and spawn interval for a point in play time.
// Both ramps are linear in elapsed time and clamped: speed rises to MaxSpeed,
// the spawn interval falls to MinSpawnInterval.
type Difficulty struct {
	cfg DifficultyConfig
}

// NewDifficulty creates a difficulty ramp.
func NewDifficulty(cfg DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *Difficulty) IsEnabled() bool {
	return d.cfg.Enabled
}

// effective maps elapsed play time to ramp time.
func (d *Difficulty) effective(elapsed float64) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return math.Max(0, elapsed) + math.Max(0, d.cfg.HeadStart)
}

// Speed returns the scroll speed in px/s after elapsed seconds of play.
func (d *Difficulty) Speed(elapsed float64) float64 {
	t := d.effective(elapsed)
	return math.Min(d.cfg.BaseSpeed+d.cfg.SpeedRamp*t, d.cfg.MaxSpeed)
}

// SpawnInterval returns the seconds between obstacle spawns after elapsed seconds of play.
func (d *Difficulty) SpawnInterval(elapsed float64) float64 {
	t := d.effective(elapsed)
	return math.Max(d.cfg.MinSpawnInterval, d.cfg.BaseSpawnInterval-d.cfg.SpawnIntervalDecay*t)
}

// Level returns how far the speed ramp has progressed, from 0.0 to 1.0.
func (d *Difficulty) Level(elapsed float64) float64 {
	span := d.cfg.MaxSpeed - d.cfg.BaseSpeed
	if span <= 0 {
		return 1
	}
	return clampF((d.Speed(elapsed)-d.cfg.BaseSpeed)/span, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
