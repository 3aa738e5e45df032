package config

import (
	_ "embed"
)

//go:embed defaults/cookedbird.yaml
var defaultYAML []byte

// DefaultGameConfig returns the default configuration.
// Mirrors defaults/cookedbird.yaml and backs it up if the embed fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:              1920,
			Height:             1080,
			PixelsPerMeter:     100,
			Gravity:            9.8,
			TimeStep:           1.0 / 60.0,
			MaxFrameTime:       0.25,
			VelocityIterations: 8,
			PositionIterations: 3,
		},
		Player: PlayerConfig{
			StartX:     0.2,
			StartY:     0.5,
			Radius:     40,
			JumpHeight: 0.8,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:     150,
			GapFraction:   0.25,
			Margin:        0.05,
			MaxDelta:      0.3,
			SensorWidth:   10,
			DespawnMargin: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:            true,
			HeadStart:          0,
			BaseSpeed:          1920.0 / 8.0,
			SpeedRamp:          1920.0 / 128.0,
			MaxSpeed:           1920.0 / 0.4,
			BaseSpawnInterval:  2,
			SpawnIntervalDecay: 0.0025,
			MinSpawnInterval:   1,
		},
		UI: UIConfig{
			PauseButtonSize:   120,
			PauseButtonMargin: 20,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
