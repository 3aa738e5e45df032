// cookedbird is a one-button arcade game played in the terminal.
//
// Usage:
//
//	cookedbird play            - Play locally
//	cookedbird serve           - Start SSH server for remote play
//	cookedbird scores          - Show the game history and high score
//	cookedbird config print    - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set obstacle seed for reproducible games
//	--db <path>           - Set database path (default: ~/.cookedbird/scores.db)
//	--config <path>       - Load a YAML or TOML config file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookedbird/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cookedbird",
	Short: "cookedbird - flap through the gaps in your terminal",
	Long: `cookedbird is a one-button arcade game: keep the bird in the air and
fly it through the gaps between scrolling pipes.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  scores   - View the game history and high score
  config   - Inspect the configuration

Examples:
  cookedbird play
  cookedbird play --difficulty hard --sound
  cookedbird serve --ssh :2222
  cookedbird scores --browse`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Obstacle seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cookedbird/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the config file and applies the difficulty preset.
// Values the validator had to clamp are logged.
func loadGameConfig(logger *log.Logger) (config.GameConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.GameConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, notes, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}
	for _, note := range notes {
		logger.Warn("config adjusted", "note", note)
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// logLevel parses --log-level, falling back to info.
func logLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
