package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookedbird/internal/core"
	"github.com/vovakirdan/cookedbird/internal/feed"
	"github.com/vovakirdan/cookedbird/internal/games/flappy"
	"github.com/vovakirdan/cookedbird/internal/storage"
)

// Model is the Bubble Tea model for one game.
// Input is queued as it arrives and applied at the start of the next tick.
type Model struct {
	game     *flappy.Game
	flash    *Flash
	screen   *core.Screen
	viewport core.Viewport
	inputs   *core.InputQueue
	keys     KeyMap
	help     help.Model
	showHelp bool

	store      *storage.Store
	player     string
	difficulty string
	feed       *feed.Hub
	logger     *log.Logger

	config    core.RuntimeConfig
	fixedSeed bool      // Restarts replay config.Seed
	lastTick  time.Time // Zero until the first timestamped tick
	recorded  bool      // Current game over already written to history
	quitting  bool
}

// NewModel creates a model around an existing game. flash should be one of
// the game's audio sinks; it may be nil.
func NewModel(game *flappy.Game, flash *Flash, opts SessionOptions) Model {
	rc := opts.Runtime.Normalize()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	world := game.Config().World

	return Model{
		game:       game,
		flash:      flash,
		screen:     core.NewScreen(rc.Cols, rc.Rows),
		viewport:   core.NewViewport(world.Width, world.Height, rc.Cols, rc.Rows),
		inputs:     core.NewInputQueue(0),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		store:      opts.Store,
		player:     opts.Player,
		difficulty: opts.Difficulty,
		feed:       opts.Feed,
		logger:     logger,
		config:     rc,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if in, ok := mouseInput(msg); ok {
			m.inputs.Push(in)
		}
		return m, nil
	case tea.BlurMsg:
		// Losing the terminal is the external pause signal
		m.game.Pause()
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input. Quit and help act at once; game
// actions wait for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case core.ActionNone:
	default:
		m.inputs.Push(core.Input{Action: action})
	}
	return m, nil
}

// resize rescales the world onto the new terminal size. The game itself is untouched.
func (m *Model) resize(cols, rows int) {
	m.config.Cols = cols
	m.config.Rows = rows
	m.screen.Resize(cols, rows)
	world := m.game.Config().World
	m.viewport = core.NewViewport(world.Width, world.Height, cols, rows)
	m.help.Width = cols
}

// handleTick applies queued input and advances the game by the time since
// the previous tick. Without a usable timestamp a nominal frame is assumed.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, in := range m.inputs.Drain() {
		m.apply(in)
	}

	m.game.Update(m.frameTime(now))
	if m.flash != nil {
		m.flash.Tick()
	}
	m.recordGame()

	if m.feed != nil {
		//nolint:errcheck // Slow subscribers lose frames
		m.feed.Publish(m.game.Frame())
	}
	return m, tickCmd(m.config.TickRate)
}

// frameTime returns the seconds since the previous tick and remembers now.
// Long gaps are left to the game, which clamps them.
func (m *Model) frameTime(now time.Time) float64 {
	dt := m.config.FrameSeconds()
	if !m.lastTick.IsZero() && now.After(m.lastTick) {
		dt = now.Sub(m.lastTick).Seconds()
	}
	if !now.IsZero() {
		m.lastTick = now
	}
	return dt
}

// apply turns one input into a tap in world coordinates.
func (m *Model) apply(in core.Input) {
	var x, y float64
	switch in.Action {
	case core.ActionFlap:
		// The middle of the world is never on the pause button
		world := m.game.Config().World
		x, y = world.Width/2, world.Height/2
	case core.ActionPause:
		if m.game.State() == flappy.StateGameOver {
			return
		}
		x, y = m.game.PauseButton().Center()
	case core.ActionTap:
		x, y = m.viewport.ToWorld(in.Col, in.Row)
	default:
		return
	}
	action := m.game.Tap(x, y)
	m.logger.Debug("tap", "input", in.Action, "x", x, "y", y, "action", action)
	if action == flappy.TapRestart {
		m.reseed()
	}
}

// reseed picks the course of a restarted game.
func (m *Model) reseed() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reseed(m.config.Seed)
}

// recordGame appends a finished game to the history once per game over.
func (m *Model) recordGame() {
	if m.game.State() != flappy.StateGameOver {
		m.recorded = false
		return
	}
	if m.recorded {
		return
	}
	m.recorded = true
	if m.store == nil || m.game.Score() == 0 {
		return
	}
	_, err := m.store.RecordGame(storage.GameRecord{
		Player:     m.player,
		Score:      m.game.Score(),
		Duration:   m.game.Elapsed(),
		Difficulty: m.difficulty,
		Seed:       m.config.Seed,
	})
	if err != nil {
		m.logger.Warn("cannot record game", "error", err)
	}
}

// View renders the game.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.viewport, m.game.Frame(), m.flash)
	if !m.showHelp {
		return RenderScreen(m.screen)
	}
	helpView := m.help.View(m.keys)
	rows := m.screen.Height() - lineCount(helpView)
	return renderRows(m.screen, rows) + "\n" + helpView
}

// Game returns the running game.
func (m Model) Game() *flappy.Game {
	return m.game
}

// Close releases the game.
func (m Model) Close() error {
	if err := m.game.Close(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Run starts the TUI for a session and blocks until the player quits.
func Run(opts SessionOptions) error {
	model, err := NewSession(opts)
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err = p.Run()
	return err
}
