package tui

import "github.com/vovakirdan/cookedbird/internal/games/flappy"

// flashFrames is how long each sound is shown on screen, in frames.
var flashFrames = map[flappy.Sound]int{
	flappy.SoundFlap:  0,
	flappy.SoundScore: 12,
	flappy.SoundDeath: 30,
}

// Flash is a visual audio sink: the renderer highlights the HUD or the
// player for a few frames after a sound. It is driven from the update loop
// only.
type Flash struct {
	sound  flappy.Sound
	frames int
}

// NewFlash creates an idle flash.
func NewFlash() *Flash {
	return &Flash{}
}

// Play starts the flash for snd.
func (f *Flash) Play(snd flappy.Sound) {
	n := flashFrames[snd]
	if n <= 0 {
		return
	}
	f.sound = snd
	f.frames = n
}

// Tick counts one frame down.
func (f *Flash) Tick() {
	if f.frames > 0 {
		f.frames--
	}
}

// Active returns the sound being shown, if any.
func (f *Flash) Active() (flappy.Sound, bool) {
	if f == nil || f.frames == 0 {
		return 0, false
	}
	return f.sound, true
}
