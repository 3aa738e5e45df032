package flappy

import "github.com/charmbracelet/log"

// Sound identifies a fire-and-forget audio event.
type Sound int

const (
	SoundFlap Sound = iota
	SoundScore
	SoundDeath
)

// String returns the sound's name.
func (s Sound) String() string {
	switch s {
	case SoundFlap:
		return "flap"
	case SoundScore:
		return "score"
	case SoundDeath:
		return "death"
	default:
		return "unknown"
	}
}

// AudioSink receives sound events. Play must not block the frame.
type AudioSink interface {
	Play(s Sound)
}

// HighScoreStore persists the best score across games.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// AudioFunc adapts a function to the AudioSink interface.
type AudioFunc func(s Sound)

// Play calls f(s).
func (f AudioFunc) Play(s Sound) { f(s) }

type nopAudio struct{}

func (nopAudio) Play(Sound) {}

// memoryScores keeps the high score in memory only.
type memoryScores struct{ best int }

func (m *memoryScores) HighScore() (int, error) { return m.best, nil }

func (m *memoryScores) SetHighScore(score int) error {
	if score > m.best {
		m.best = score
	}
	return nil
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithAudio sets the sink that receives sound events.
func WithAudio(a AudioSink) Option {
	return func(g *Game) {
		if a != nil {
			g.audio = a
		}
	}
}

// WithHighScores sets the high score store. Without it the high score lives in memory.
func WithHighScores(s HighScoreStore) Option {
	return func(g *Game) {
		if s != nil {
			g.scores = s
		}
	}
}

// WithSeed sets the obstacle generator seed.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.seed = seed
	}
}
