package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cookedbird/internal/core"
	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorSky:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorGround:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorPipe:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPipeEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBird:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorButton:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOverlay:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorFlash:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// Glyphs
const (
	glyphSky      = ' '
	glyphGround   = '▁'
	glyphPipe     = '█'
	glyphPipeEdge = '▓'
	glyphBird     = 'o'
	glyphBirdEye  = '@'
	glyphDead     = 'x'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderRows(s, s.Height())
}

// renderRows renders the first n rows of s.
func renderRows(s *core.Screen, n int) string {
	n = core.Clamp(n, 0, s.Height())
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*n*2 + n)

	for y := range n {
		if y > 0 {
			sb.WriteRune('\n')
		}
		s.Runs(y, func(c core.Color, text string) {
			style, ok := colorStyles[c]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(text))
		})
	}
	return sb.String()
}

// DrawFrame draws one game frame onto s through the viewport.
func DrawFrame(s *core.Screen, vp core.Viewport, f flappy.Frame, flash *Flash) {
	s.Fill(glyphSky, core.ColorSky)
	drawGround(s)

	for _, p := range f.Pairs {
		drawPair(s, vp, f, p)
	}

	sound, flashing := flash.Active()
	drawPlayer(s, vp, f, flashing && sound == flappy.SoundDeath)
	drawPauseButton(s, vp, f)
	drawHUD(s, f, flashing && sound == flappy.SoundScore)
	drawOverlay(s, f)
}

func drawGround(s *core.Screen) {
	y := s.Height() - 1
	for x := range s.Width() {
		s.Set(x, y, glyphGround, core.ColorGround)
	}
}

// drawPair draws both bodies of a pair; the row facing the gap is the pipe's lip.
func drawPair(s *core.Screen, vp core.Viewport, f flappy.Frame, p flappy.PairFrame) {
	if p.UpperHeight > 0 {
		r := vp.RectToCells(p.X, p.UpperY, f.PipeWidth, p.UpperHeight)
		s.FillRect(r, glyphPipe, core.ColorPipe)
		if !r.Empty() {
			s.FillRect(core.NewRect(r.X, r.Bottom()-1, r.W, 1), glyphPipeEdge, core.ColorPipeEdge)
		}
	}
	if p.LowerHeight > 0 {
		r := vp.RectToCells(p.X, 0, f.PipeWidth, p.LowerHeight)
		s.FillRect(r, glyphPipe, core.ColorPipe)
		if !r.Empty() {
			s.FillRect(core.NewRect(r.X, r.Y, r.W, 1), glyphPipeEdge, core.ColorPipeEdge)
		}
	}
}

func drawPlayer(s *core.Screen, vp core.Viewport, f flappy.Frame, hit bool) {
	color := core.ColorBird
	if hit {
		color = core.ColorFlash
	}
	r := f.PlayerR
	s.FillRect(vp.RectToCells(f.PlayerX-r, f.PlayerY-r, 2*r, 2*r), glyphBird, color)

	eye := glyphBirdEye
	if f.Over() {
		eye = glyphDead
	}
	col, row := vp.ToCell(f.PlayerX, f.PlayerY)
	s.Set(col, row, eye, color)
}

func drawPauseButton(s *core.Screen, vp core.Viewport, f flappy.Frame) {
	if f.Over() {
		return
	}
	b := f.PauseButton
	r := vp.RectToCells(b.X, b.Y, b.W, b.H)
	s.FillRect(r, ' ', core.ColorButton)
	s.DrawBox(r, core.ColorButton)

	label := "||"
	if f.Paused() {
		label = ">"
	}
	cx, cy := b.Center()
	col, row := vp.ToCell(cx, cy)
	s.DrawText(col-len(label)/2, row, label, core.ColorButton)
}

func drawHUD(s *core.Screen, f flappy.Frame, scored bool) {
	color := core.ColorHUD
	if scored {
		color = core.ColorFlash
	}
	s.DrawText(1, 0, fmt.Sprintf("SCORE: %d", f.Score), color)
	s.DrawText(1, 1, fmt.Sprintf("HIGHSCORE: %d", f.HighScore), core.ColorHUD)
}

func drawOverlay(s *core.Screen, f flappy.Frame) {
	mid := s.Height() / 2
	switch {
	case f.Over():
		s.DrawTextCentered(mid-2, "GAME OVER", core.ColorOverlay)
		s.DrawTextCentered(mid, fmt.Sprintf("SCORE: %d", f.Score), core.ColorHUD)
		s.DrawTextCentered(mid+2, "TAP TO RESTART", core.ColorOverlay)
	case f.Paused():
		s.DrawTextCentered(mid-2, "PAUSED", core.ColorOverlay)
		s.DrawTextCentered(mid+2, "TAP TO UNPAUSE", core.ColorOverlay)
	}
}

// lineCount returns the number of lines in s.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
