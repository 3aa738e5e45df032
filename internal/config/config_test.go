package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSpeedMonotonicAndCapped(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	d := NewDifficulty(cfg)

	prev := d.Speed(0)
	if prev != cfg.BaseSpeed {
		t.Errorf("Speed(0) = %f, expected base %f", prev, cfg.BaseSpeed)
	}
	for elapsed := 0.5; elapsed <= 2000; elapsed += 0.5 {
		s := d.Speed(elapsed)
		if s < prev {
			t.Fatalf("Speed decreased at t=%.1f: %f < %f", elapsed, s, prev)
		}
		if s > cfg.MaxSpeed {
			t.Fatalf("Speed exceeded cap at t=%.1f: %f > %f", elapsed, s, cfg.MaxSpeed)
		}
		prev = s
	}
	if prev != cfg.MaxSpeed {
		t.Errorf("Speed should reach the cap eventually, got %f", prev)
	}
}

func TestSpawnIntervalMonotonicAndFloored(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	d := NewDifficulty(cfg)

	prev := d.SpawnInterval(0)
	if prev != cfg.BaseSpawnInterval {
		t.Errorf("SpawnInterval(0) = %f, expected %f", prev, cfg.BaseSpawnInterval)
	}
	for elapsed := 1.0; elapsed <= 1000; elapsed++ {
		iv := d.SpawnInterval(elapsed)
		if iv > prev {
			t.Fatalf("SpawnInterval increased at t=%.0f: %f > %f", elapsed, iv, prev)
		}
		if iv < 1 {
			t.Fatalf("SpawnInterval below 1s at t=%.0f: %f", elapsed, iv)
		}
		prev = iv
	}
	if prev != 1 {
		t.Errorf("SpawnInterval should reach the 1s floor, got %f", prev)
	}
}

func TestDifficultyDisabledStaysAtBase(t *testing.T) {
	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	d := NewDifficulty(cfg.Difficulty)

	if d.IsEnabled() {
		t.Error("Fixed preset should disable progression")
	}
	if got := d.Speed(600); got != cfg.Difficulty.BaseSpeed {
		t.Errorf("Speed with progression off = %f, expected %f", got, cfg.Difficulty.BaseSpeed)
	}
	if got := d.SpawnInterval(600); got != cfg.Difficulty.BaseSpawnInterval {
		t.Errorf("SpawnInterval with progression off = %f, expected %f", got, cfg.Difficulty.BaseSpawnInterval)
	}
	if got := d.Level(600); got != 0 {
		t.Errorf("Level with progression off = %f, expected 0", got)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		headStart float64
	}{
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 30},
		{DifficultyHard, true, 90},
		{DifficultyFixed, false, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.HeadStart != tc.headStart {
				t.Errorf("HeadStart = %f, expected %f", cfg.Difficulty.HeadStart, tc.headStart)
			}
		})
	}

	harder := NewDifficulty(func() DifficultyConfig {
		cfg := DefaultGameConfig()
		ApplyPreset(&cfg, DifficultyHard)
		return cfg.Difficulty
	}())
	easier := NewDifficulty(DefaultGameConfig().Difficulty)
	if harder.Speed(0) <= easier.Speed(0) {
		t.Error("Hard preset should start faster than easy")
	}

	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("Unknown preset should be rejected")
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
}

func TestValidateDefaultsUntouched(t *testing.T) {
	cfg := DefaultGameConfig()
	if notes := Validate(&cfg); len(notes) != 0 {
		t.Errorf("Default config should be valid, got notes: %v", notes)
	}
}

func TestValidateClampsGeometry(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Obstacles.GapFraction = 1.5
	cfg.Obstacles.Margin = -0.2
	cfg.Difficulty.MinSpawnInterval = 0.2
	cfg.Difficulty.MaxSpeed = 10
	cfg.World.Height = -1

	notes := Validate(&cfg)
	if len(notes) != 5 {
		t.Errorf("Expected 5 notes, got %d: %v", len(notes), notes)
	}
	if cfg.Obstacles.GapFraction != 0.95 {
		t.Errorf("GapFraction = %f, expected 0.95", cfg.Obstacles.GapFraction)
	}
	if cfg.Obstacles.Margin != 0 {
		t.Errorf("Margin = %f, expected 0", cfg.Obstacles.Margin)
	}
	if cfg.Difficulty.MinSpawnInterval != 1 {
		t.Errorf("MinSpawnInterval = %f, expected 1", cfg.Difficulty.MinSpawnInterval)
	}
	if cfg.Difficulty.MaxSpeed != cfg.Difficulty.BaseSpeed {
		t.Errorf("MaxSpeed = %f, expected base speed %f", cfg.Difficulty.MaxSpeed, cfg.Difficulty.BaseSpeed)
	}
	if cfg.World.Height != 1080 {
		t.Errorf("Height = %f, expected 1080", cfg.World.Height)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("Embedded YAML does not parse: %v", err)
	}
	def := DefaultGameConfig()

	if cfg.World.Width != def.World.Width || cfg.World.Height != def.World.Height {
		t.Errorf("World size mismatch: %fx%f", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Obstacles != def.Obstacles {
		t.Errorf("Obstacles mismatch: %+v vs %+v", cfg.Obstacles, def.Obstacles)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("Difficulty mismatch: %+v vs %+v", cfg.Difficulty, def.Difficulty)
	}
	if cfg.UI != def.UI {
		t.Errorf("UI mismatch: %+v vs %+v", cfg.UI, def.UI)
	}
}

func TestLoadCustomYAMLLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("difficulty:\n  base_speed: 300\nobstacles:\n  pipe_width: 90\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, notes, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Unexpected notes: %v", notes)
	}
	if cfg.Difficulty.BaseSpeed != 300 {
		t.Errorf("BaseSpeed = %f, expected 300", cfg.Difficulty.BaseSpeed)
	}
	if cfg.Obstacles.PipeWidth != 90 {
		t.Errorf("PipeWidth = %f, expected 90", cfg.Obstacles.PipeWidth)
	}
	if cfg.World.Height != 1080 {
		t.Errorf("Omitted keys should keep defaults, height = %f", cfg.World.Height)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[obstacles]\ngap_fraction = 0.3\n\n[ui]\npause_button_size = 80.0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Obstacles.GapFraction != 0.3 {
		t.Errorf("GapFraction = %f, expected 0.3", cfg.Obstacles.GapFraction)
	}
	if cfg.UI.PauseButtonSize != 80 {
		t.Errorf("PauseButtonSize = %f, expected 80", cfg.UI.PauseButtonSize)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out, err := Encode(DefaultGameConfig(), format)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			var cfg GameConfig
			if err := Decode("x."+format, out, &cfg); err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if cfg.Difficulty != DefaultGameConfig().Difficulty {
				t.Errorf("Difficulty changed through %s: %+v", format, cfg.Difficulty)
			}
		})
	}

	if _, err := Encode(DefaultGameConfig(), "xml"); err == nil {
		t.Error("Encode() should reject unknown formats")
	}
}
