package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.cookedbird/config.yaml|.toml -> ./configs/cookedbird.yaml -> embedded default.
// Files are layered over the defaults, so keys they omit keep their default value.
// The result is always validated; the returned notes describe clamped values.
func Load(customPath string) (GameConfig, []string, error) {
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := Decode(customPath, data, &cfg); err != nil {
			return cfg, nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		notes := Validate(&cfg)
		return cfg, notes, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{
		userConfigPath("config.yaml"),
		userConfigPath("config.toml"),
		filepath.Join("configs", "cookedbird.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := DefaultGameConfig()
		if err := Decode(path, data, &layered); err == nil {
			notes := Validate(&layered)
			return layered, notes, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		cfg = DefaultGameConfig() // Fallback to hardcoded if embed fails
	}
	notes := Validate(&cfg)
	return cfg, notes, nil
}

// Decode parses data into cfg, choosing the format by the file extension of path.
// Unknown extensions are parsed as YAML.
func Decode(path string, data []byte, cfg *GameConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("toml unmarshal: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return nil
}

// Encode renders cfg in the given format ("yaml" or "toml").
func Encode(cfg GameConfig, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("toml encode: %w", err)
		}
		return buf.Bytes(), nil
	case "", "yaml", "yml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("yaml encode: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}

// SupportedExtensions returns the config file extensions Decode understands.
func SupportedExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cookedbird", filename)
}
