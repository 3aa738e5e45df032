package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cookedbird/internal/core"
	"github.com/vovakirdan/cookedbird/internal/feed"
	"github.com/vovakirdan/cookedbird/internal/games/flappy"
	"github.com/vovakirdan/cookedbird/internal/platform/audio"
	"github.com/vovakirdan/cookedbird/internal/platform/tui"
	"github.com/vovakirdan/cookedbird/internal/storage"
)

var (
	flagSound    bool
	flagVolume   float64
	flagFeedAddr string
	flagPlayer   string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play cookedbird",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W  - Flap (unpause when paused, restart after game over)
  Mouse click - Tap: on the pause button it pauses, elsewhere it flaps
  P/Esc       - Pause
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at the beginning of the speed ramp
  normal - Start 30 seconds into the ramp
  hard   - Start 90 seconds into the ramp
  fixed  - No ramp, the speed stays at the base speed

Examples:
  cookedbird play
  cookedbird play --difficulty hard
  cookedbird play --sound --volume 0.5
  cookedbird play --feed :8080
  cookedbird play --config ./my-cookedbird.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects through the audio device")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve frames to websocket clients on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagPlayer, "player", storage.DefaultPlayer, "High score profile")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.cookedbird/cookedbird.log", "Log file (the screen belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := openFileLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}

	// Terminal size for the first frame; resizes arrive as messages
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.SessionOptions{
		Game: gameCfg,
		Runtime: core.RuntimeConfig{
			Cols:     width,
			Rows:     height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Difficulty: flagDifficulty,
		Player:     flagPlayer,
		Logger:     logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works, scores stay in memory
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if flagSound {
		opts.Sound = openSound(logger)
	}

	if flagFeedAddr != "" {
		hub := feed.NewHub(logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := feed.Serve(ctx, flagFeedAddr, hub); err != nil {
				logger.Error("feed stopped", "error", err)
			}
		}()
		opts.Feed = hub
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// openSound opens the audio device, falling back to silence.
func openSound(logger *log.Logger) flappy.AudioSink {
	synth, err := audio.NewSynth(flagVolume, logger)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return audio.Silent{}
	}
	return synth
}

// openFileLogger creates a logger writing to path. The returned func closes the file.
func openFileLogger(path string) (*log.Logger, func(), error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "cookedbird",
		Level:           logLevel(),
	})
	return logger, func() { f.Close() }, nil
}
