// Package config provides YAML/TOML game configuration loading, validation
// and the difficulty ramp for cookedbird.
//
// Distances are in world pixels of the fixed logical playfield, times in
// seconds. The physics world works in meters; PixelsPerMeter converts.
package config

// GameConfig contains all tunables of the game.
type GameConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" toml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	UI         UIConfig         `yaml:"ui" toml:"ui"`
}

// WorldConfig defines the logical playfield and simulation constants.
type WorldConfig struct {
	Width              float64 `yaml:"width" toml:"width"`
	Height             float64 `yaml:"height" toml:"height"`
	PixelsPerMeter     float64 `yaml:"pixels_per_meter" toml:"pixels_per_meter"`
	Gravity            float64 `yaml:"gravity" toml:"gravity"` // m/s², downward
	TimeStep           float64 `yaml:"time_step" toml:"time_step"`
	MaxFrameTime       float64 `yaml:"max_frame_time" toml:"max_frame_time"`
	VelocityIterations int     `yaml:"velocity_iterations" toml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations" toml:"position_iterations"`
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	StartX     float64 `yaml:"start_x" toml:"start_x"` // Fraction of world width
	StartY     float64 `yaml:"start_y" toml:"start_y"` // Fraction of world height
	Radius     float64 `yaml:"radius" toml:"radius"`
	JumpHeight float64 `yaml:"jump_height" toml:"jump_height"` // Meters reached by one jump
}

// ObstacleConfig defines obstacle pair geometry and gap placement.
type ObstacleConfig struct {
	PipeWidth     float64 `yaml:"pipe_width" toml:"pipe_width"`
	GapFraction   float64 `yaml:"gap_fraction" toml:"gap_fraction"`     // Gap height / world height
	Margin        float64 `yaml:"margin" toml:"margin"`                 // Edge margin / world height
	MaxDelta      float64 `yaml:"max_delta" toml:"max_delta"`           // Max gap center move / world height
	SensorWidth   float64 `yaml:"sensor_width" toml:"sensor_width"`
	DespawnMargin float64 `yaml:"despawn_margin" toml:"despawn_margin"` // Distance past the left edge
}

// DifficultyConfig defines the time-based difficulty ramp.
type DifficultyConfig struct {
	Enabled            bool    `yaml:"enabled" toml:"enabled"`
	HeadStart          float64 `yaml:"head_start" toml:"head_start"` // Seconds of ramp already elapsed at start
	BaseSpeed          float64 `yaml:"base_speed" toml:"base_speed"` // px/s
	SpeedRamp          float64 `yaml:"speed_ramp" toml:"speed_ramp"` // px/s added per second
	MaxSpeed           float64 `yaml:"max_speed" toml:"max_speed"`
	BaseSpawnInterval  float64 `yaml:"base_spawn_interval" toml:"base_spawn_interval"`
	SpawnIntervalDecay float64 `yaml:"spawn_interval_decay" toml:"spawn_interval_decay"` // Seconds removed per second
	MinSpawnInterval   float64 `yaml:"min_spawn_interval" toml:"min_spawn_interval"`
}

// UIConfig defines on-screen hit boxes.
type UIConfig struct {
	PauseButtonSize   float64 `yaml:"pause_button_size" toml:"pause_button_size"`
	PauseButtonMargin float64 `yaml:"pause_button_margin" toml:"pause_button_margin"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// HeadStartForPreset returns how many seconds into the ramp a preset starts.
func HeadStartForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 30
	case DifficultyHard:
		return 90
	default:
		return 0
	}
}

// ParsePreset validates a preset name. The empty string means "keep the config".
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.HeadStart = HeadStartForPreset(preset)
	}
}
