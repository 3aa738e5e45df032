package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/cookedbird/internal/core"
	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

func testFrame() flappy.Frame {
	return flappy.Frame{
		State:       flappy.StatePlaying.String(),
		Score:       3,
		HighScore:   7,
		WorldWidth:  1920,
		WorldHeight: 1080,
		PlayerX:     384,
		PlayerY:     540,
		PlayerR:     40,
		PipeWidth:   150,
		Pairs: []flappy.PairFrame{
			{X: 960, UpperY: 700, UpperHeight: 380, LowerHeight: 430},
		},
		PauseButton: flappy.Rect{X: 1780, Y: 940, W: 120, H: 120},
	}
}

func drawTestFrame(f flappy.Frame, flash *Flash) *core.Screen {
	s := core.NewScreen(80, 24)
	DrawFrame(s, core.NewViewport(1920, 1080, 80, 24), f, flash)
	return s
}

func TestDrawFramePipes(t *testing.T) {
	s := drawTestFrame(testFrame(), nil)

	tests := []struct {
		name  string
		x, y  int
		glyph rune
		color core.Color
	}{
		{"upper body", 42, 3, glyphPipe, core.ColorPipe},
		{"upper lip", 42, 7, glyphPipeEdge, core.ColorPipeEdge},
		{"gap", 42, 10, glyphSky, core.ColorSky},
		{"lower lip", 42, 14, glyphPipeEdge, core.ColorPipeEdge},
		{"lower body", 42, 20, glyphPipe, core.ColorPipe},
		{"ground", 10, 23, glyphGround, core.ColorGround},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Cell(tt.x, tt.y)
			if got.Rune != tt.glyph || got.Color != tt.color {
				t.Errorf("Cell(%d, %d) = %q/%v, want %q/%v", tt.x, tt.y, got.Rune, got.Color, tt.glyph, tt.color)
			}
		})
	}
}

func TestDrawFramePlayerAndHUD(t *testing.T) {
	s := drawTestFrame(testFrame(), nil)

	if got := s.Cell(16, 12); got.Rune != glyphBirdEye || got.Color != core.ColorBird {
		t.Errorf("player cell = %q/%v", got.Rune, got.Color)
	}
	if !strings.HasPrefix(s.Row(0), " SCORE: 3") {
		t.Errorf("row 0 = %q", s.Row(0))
	}
	if !strings.HasPrefix(s.Row(1), " HIGHSCORE: 7") {
		t.Errorf("row 1 = %q", s.Row(1))
	}
	if got := s.Get(74, 0); got != '┌' {
		t.Errorf("pause button corner = %q", got)
	}
	if got := s.Get(75, 1); got != '|' {
		t.Errorf("pause button label = %q", got)
	}
}

func TestDrawFrameOverlays(t *testing.T) {
	over := testFrame()
	over.State = flappy.StateGameOver.String()
	s := drawTestFrame(over, nil)
	if !strings.Contains(s.Row(10), "GAME OVER") || !strings.Contains(s.Row(14), "TAP TO RESTART") {
		t.Errorf("game over overlay missing:\n%s", s.String())
	}
	if got := s.Get(16, 12); got != glyphDead {
		t.Errorf("dead player eye = %q", got)
	}
	if got := s.Get(74, 0); got == '┌' {
		t.Error("pause button drawn after game over")
	}

	paused := testFrame()
	paused.State = flappy.StatePaused.String()
	s = drawTestFrame(paused, nil)
	if !strings.Contains(s.Row(10), "PAUSED") || !strings.Contains(s.Row(14), "TAP TO UNPAUSE") {
		t.Errorf("pause overlay missing:\n%s", s.String())
	}
}

func TestFlashHighlightsScore(t *testing.T) {
	flash := NewFlash()
	flash.Play(flappy.SoundFlap)
	if _, ok := flash.Active(); ok {
		t.Fatal("flap should not flash")
	}

	flash.Play(flappy.SoundScore)
	s := drawTestFrame(testFrame(), flash)
	if got := s.Cell(1, 0).Color; got != core.ColorFlash {
		t.Errorf("score color = %v, want flash", got)
	}

	for range flashFrames[flappy.SoundScore] {
		flash.Tick()
	}
	if _, ok := flash.Active(); ok {
		t.Fatal("flash should have expired")
	}
	s = drawTestFrame(testFrame(), flash)
	if got := s.Cell(1, 0).Color; got != core.ColorHUD {
		t.Errorf("score color = %v, want hud", got)
	}
}

func TestRenderScreenLines(t *testing.T) {
	s := drawTestFrame(testFrame(), nil)
	if got := lineCount(RenderScreen(s)); got != 24 {
		t.Errorf("RenderScreen lines = %d, want 24", got)
	}
	if got := lineCount(renderRows(s, 20)); got != 20 {
		t.Errorf("renderRows lines = %d, want 20", got)
	}
	if got := renderRows(s, 0); got != "" {
		t.Errorf("renderRows(0) = %q", got)
	}
}
