// Package audio provides sinks for the game's sound events: a procedural
// synthesizer backed by oto, a silent sink and a fan-out helper.
package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	maxVoices    = 4
)

// Synth plays procedurally generated effects through the system audio device.
// Play never blocks: each effect runs on its own goroutine.
type Synth struct {
	ctx    *oto.Context
	ready  chan struct{}
	clips  map[flappy.Sound][]byte
	volume float64
	logger *log.Logger

	active atomic.Int32
	closed atomic.Bool
	wg     sync.WaitGroup
}

// NewSynth opens the audio device. Volume is clamped to [0, 1].
func NewSynth(volume float64, logger *log.Logger) (*Synth, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	return &Synth{
		ctx:    ctx,
		ready:  ready,
		clips:  renderClips(),
		volume: clampF(volume, 0, 1),
		logger: logger,
	}, nil
}

// Play starts the effect for snd. Effects are skipped while the device is
// still starting, after Close, or when too many are already playing.
func (s *Synth) Play(snd flappy.Sound) {
	if s.closed.Load() || s.volume <= 0 {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	clip := s.clips[snd]
	if len(clip) == 0 {
		return
	}
	if s.active.Add(1) > maxVoices {
		s.active.Add(-1)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.active.Add(-1)

		player := s.ctx.NewPlayer(&clipReader{data: clip})
		player.SetVolume(s.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.logger.Debug("audio player close failed", "sound", snd, "error", err)
		}
	}()
}

// Close stops accepting effects and waits for the playing ones to finish.
func (s *Synth) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.wg.Wait()
	return nil
}

type clipReader struct {
	data []byte
	pos  int
}

func (r *clipReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// Silent discards every sound.
type Silent struct{}

// Play does nothing.
func (Silent) Play(flappy.Sound) {}

// Multi sends every sound to each of its sinks in order.
type Multi []flappy.AudioSink

// Play forwards snd to every sink.
func (m Multi) Play(snd flappy.Sound) {
	for _, sink := range m {
		if sink != nil {
			sink.Play(snd)
		}
	}
}

// Close closes every sink that is an io.Closer and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, sink := range m {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
