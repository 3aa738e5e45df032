package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

func TestClipsAreWellFormed(t *testing.T) {
	for snd, clip := range renderClips() {
		t.Run(snd.String(), func(t *testing.T) {
			if len(clip) == 0 {
				t.Fatal("Clip is empty")
			}
			if len(clip)%(4*ChannelCount) != 0 {
				t.Fatalf("Clip length %d is not a whole number of frames", len(clip))
			}
			loud := false
			for i := 0; i < len(clip); i += 4 {
				s := math.Float32frombits(binary.LittleEndian.Uint32(clip[i:]))
				if math.IsNaN(float64(s)) || s < -1 || s > 1 {
					t.Fatalf("Sample %d = %f outside [-1, 1]", i/4, s)
				}
				if math.Abs(float64(s)) > 0.05 {
					loud = true
				}
			}
			if !loud {
				t.Error("Clip is silent")
			}
		})
	}
}

func TestClipDurations(t *testing.T) {
	clips := renderClips()
	frames := func(s flappy.Sound) int { return len(clips[s]) / (4 * ChannelCount) }

	if frames(flappy.SoundFlap) >= frames(flappy.SoundScore) {
		t.Error("Flap should be the shortest effect")
	}
	if frames(flappy.SoundDeath) != int(0.6*SampleRate) {
		t.Errorf("Death clip has %d frames, expected %d", frames(flappy.SoundDeath), int(0.6*SampleRate))
	}
}

type countingSink struct {
	played []flappy.Sound
	err    error
	closed bool
}

func (c *countingSink) Play(s flappy.Sound) { c.played = append(c.played, s) }

func (c *countingSink) Close() error {
	c.closed = true
	return c.err
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{err: errors.New("device gone")}
	m := Multi{a, Silent{}, nil, b}

	m.Play(flappy.SoundScore)
	m.Play(flappy.SoundDeath)

	for _, sink := range []*countingSink{a, b} {
		if len(sink.played) != 2 || sink.played[0] != flappy.SoundScore || sink.played[1] != flappy.SoundDeath {
			t.Errorf("Sink received %v", sink.played)
		}
	}

	err := m.Close()
	if !a.closed || !b.closed {
		t.Error("Close() should close every closer")
	}
	if err == nil {
		t.Error("Close() should report the failing sink")
	}
}

func TestClipReader(t *testing.T) {
	r := &clipReader{data: []byte{1, 2, 3}}
	buf := make([]byte, 2)
	if n, err := r.Read(buf); n != 2 || err != nil {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	if n, err := r.Read(buf); n != 1 || err != nil {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	if _, err := r.Read(buf); err == nil {
		t.Error("Read() past the end should return EOF")
	}
}
