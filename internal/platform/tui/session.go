package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookedbird/internal/config"
	"github.com/vovakirdan/cookedbird/internal/core"
	"github.com/vovakirdan/cookedbird/internal/feed"
	"github.com/vovakirdan/cookedbird/internal/games/flappy"
	"github.com/vovakirdan/cookedbird/internal/platform/audio"
	"github.com/vovakirdan/cookedbird/internal/storage"
)

// SessionOptions configures one player's terminal session.
type SessionOptions struct {
	Game       config.GameConfig
	Runtime    core.RuntimeConfig
	Difficulty string // Preset name, recorded with finished games

	Store  *storage.Store // Optional; nil keeps scores in memory
	Player string         // Empty means storage.DefaultPlayer

	Sound  flappy.AudioSink // Optional extra sink next to the screen flash
	Feed   *feed.Hub        // Optional frame feed
	Logger *log.Logger
}

// NewSession creates the game and its model. The game's sounds go to the
// screen flash and to opts.Sound. A non-zero opts.Runtime.Seed replays the
// same course on every restart; otherwise each restart picks a new seed.
func NewSession(opts SessionOptions) (Model, error) {
	fixedSeed := opts.Runtime.Seed != 0
	rc := opts.Runtime.Normalize()
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}

	flash := NewFlash()
	sinks := audio.Multi{flash}
	if opts.Sound != nil {
		sinks = append(sinks, opts.Sound)
	}
	if opts.Logger != nil {
		logger := opts.Logger
		sinks = append(sinks, flappy.AudioFunc(func(s flappy.Sound) {
			logger.Debug("sound", "sound", s)
		}))
	}

	gameOpts := []flappy.Option{
		flappy.WithSeed(rc.Seed),
		flappy.WithAudio(sinks),
	}
	if opts.Logger != nil {
		gameOpts = append(gameOpts, flappy.WithLogger(opts.Logger))
	}
	if opts.Store != nil {
		gameOpts = append(gameOpts, flappy.WithHighScores(opts.Store.HighScores(opts.Player)))
	}

	game, err := flappy.New(opts.Game, gameOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot create game: %w", err)
	}

	opts.Runtime = rc
	m := NewModel(game, flash, opts)
	m.fixedSeed = fixedSeed
	return m, nil
}
