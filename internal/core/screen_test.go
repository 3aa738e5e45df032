package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("Size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.Cell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorBird)
	if got := s.Cell(5, 5); got.Rune != 'X' || got.Color != ColorBird {
		t.Errorf("Cell(5, 5) = %+v, expected X in bird color", got)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'A', ColorPipe)
	s.Set(100, 0, 'A', ColorPipe)
	s.Set(0, -1, 'A', ColorPipe)
	s.Set(0, 100, 'A', ColorPipe)

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('#', ColorSky)
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Clear() left content: %q", s.String())
	}
	if s.Cell(3, 3).Color != ColorDefault {
		t.Error("Clear() should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)

	s.DrawText(2, 1, "SCORE: 7", ColorHUD)
	if got := s.Row(1); got != "  SCORE: 7          " {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge
	s.DrawText(17, 0, "abcdef", ColorHUD)
	if got := s.Row(0); !strings.HasSuffix(got, "abc") {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}

	s.DrawTextCentered(2, "PAUSED", ColorOverlay)
	if got := s.Row(2); got != "       PAUSED       " {
		t.Errorf("Row(2) = %q", got)
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), '█', ColorPipe)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			if got := s.Get(x, y) == '█'; got != inside {
				t.Errorf("Cell (%d, %d) filled = %v, expected %v", x, y, got, inside)
			}
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorButton)

	expected := []string{"┌───┐", "│   │", "└───┘"}
	for y, want := range expected {
		if got := s.Row(y)[:len(want)]; got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}

	// Too small for an outline
	s.DrawBox(NewRect(8, 4, 1, 1), ColorButton)
	if s.Get(8, 4) != '█' {
		t.Errorf("Tiny box = %q, expected a filled cell", s.Get(8, 4))
	}
}

func TestScreenRuns(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "ab", ColorSky)
	s.DrawText(2, 0, "cd", ColorPipe)
	s.DrawText(4, 0, "ef", ColorSky)

	var got []string
	s.Runs(0, func(c Color, text string) {
		got = append(got, c.String()+":"+text)
	})
	want := []string{"sky:ab", "pipe:cd", "sky:ef"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Runs() = %v, expected %v", got, want)
	}

	called := false
	s.Runs(5, func(Color, string) { called = true })
	if called {
		t.Error("Runs() on a missing row should not call fn")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X', ColorBird)

	s.Resize(20, 5)
	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Size after resize = %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should discard content")
	}

	s.Resize(-1, 3)
	if s.Width() != 0 || s.String() != "\n\n" {
		t.Errorf("Negative width should give empty rows, got %q", s.String())
	}
}
