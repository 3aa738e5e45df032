package audio

import (
	"math"

	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

func renderClips() map[flappy.Sound][]byte {
	return map[flappy.Sound][]byte{
		flappy.SoundFlap:  genFlap(),
		flappy.SoundScore: genScore(),
		flappy.SoundDeath: genDeath(),
	}
}

// genFlap is a short upward chirp.
func genFlap() []byte {
	n := int(0.08 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.3)
		freq := 380 + 520*p
		s := fm(t, freq, 1.5, 1.8*env) * env * 0.4
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genScore is a two-note bell.
func genScore() []byte {
	n := int(0.22 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{987.77, 0.00},  // B5
		{1318.51, 0.07}, // E6
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			p := float64(i-start) / float64(n-start)
			env := adsr(p, 0.01, 0.3, 0.25, 0.5)
			mix[i] += fm(t, note.freq, 3.5, 1.2*env) * env * 0.3
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDeath is a falling thud with a noise burst.
func genDeath() []byte {
	n := int(0.6 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5eed)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.005, 0.3, 0.35, 0.5)
		freq := 220 * (1 - 0.6*p)
		s := fm(t, freq, 0.5, 2.5*env) * env * 0.45
		s += lcg(&seed) * math.Max(0, 1-p*6) * 0.25
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat saturates gently instead of clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack, decay and release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*4*ChannelCount) }

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
