// Package flappy implements the cookedbird gameplay core: a player body falling
// under gravity through an endless stream of gated obstacle pairs.
//
// The game runs on a physics.World. It is driven by Update once per frame and
// by Tap for input, and exposes a Frame for external renderers. A Game is not
// safe for concurrent use.
package flappy

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookedbird/internal/config"
	"github.com/vovakirdan/cookedbird/internal/physics"
)

// Game is one player's session: world, player body, obstacles, score and state.
type Game struct {
	cfg        config.GameConfig
	world      *physics.World
	player     physics.Handle
	generator  *Generator
	obstacles  *Obstacles
	difficulty *config.Difficulty

	state            State
	score            int
	highScore        int
	elapsed          float64 // Seconds of play, frozen outside StatePlaying
	spawnTimer       float64
	deathSoundPlayed bool
	playerVel        *physics.Vec2 // Pause snapshot
	jumpVelocity     float64       // m/s
	startPos         physics.Vec2  // Meters

	seed   int64
	logger *log.Logger
	audio  AudioSink
	scores HighScoreStore
	closed bool
}

// New creates a game in StatePlaying with the player at its start position.
// cfg is validated first; adjusted values are logged at warn level.
func New(cfg config.GameConfig, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		seed:   1,
		logger: log.New(io.Discard),
		audio:  nopAudio{},
		scores: &memoryScores{},
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, note := range config.Validate(&g.cfg) {
		g.logger.Warn("config adjusted", "note", note)
	}
	cfg = g.cfg

	g.world = physics.New(physics.Config{
		Gravity:            cfg.World.Gravity,
		TimeStep:           cfg.World.TimeStep,
		MaxFrameTime:       cfg.World.MaxFrameTime,
		VelocityIterations: cfg.World.VelocityIterations,
		PositionIterations: cfg.World.PositionIterations,
	})
	g.generator = NewGenerator(g.seed, cfg.World, cfg.Obstacles)
	g.obstacles = NewObstacles(g.world, cfg.World, cfg.Obstacles, g.logger)
	g.difficulty = config.NewDifficulty(cfg.Difficulty)
	g.jumpVelocity = math.Sqrt(2 * cfg.World.Gravity * cfg.Player.JumpHeight)

	ppm := cfg.World.PixelsPerMeter
	g.startPos = physics.Vec2{
		X: cfg.Player.StartX * cfg.World.Width / ppm,
		Y: cfg.Player.StartY * cfg.World.Height / ppm,
	}
	player, err := g.world.CreateBody(physics.BodySpec{
		Kind:          physics.KindDynamic,
		Position:      g.startPos,
		FixedRotation: true,
		NeverSleep:    true,
		Radius:        cfg.Player.Radius / ppm,
		Density:       1,
		Tag:           physics.TagPlayer,
	})
	if err != nil {
		g.world.Close()
		return nil, fmt.Errorf("flappy: cannot create player: %w", err)
	}
	g.player = player

	best, err := g.scores.HighScore()
	if err != nil {
		g.logger.Warn("cannot read high score, starting from 0", "error", err)
		best = 0
	}
	g.highScore = best

	g.logger.Debug("game created", "seed", g.seed, "high_score", g.highScore, "ramp", g.difficulty.IsEnabled())
	return g, nil
}

// Update advances the game by one frame of dt seconds.
func (g *Game) Update(dt float64) {
	if g.closed {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	dt = math.Min(dt, g.cfg.World.MaxFrameTime)

	if g.state == StatePlaying {
		g.elapsed += dt
		g.spawnTimer += dt
		if g.spawnTimer >= g.difficulty.SpawnInterval(g.elapsed) {
			g.spawnTimer = 0
			g.spawn()
		}
	}

	if g.state != StatePaused {
		g.world.Step(dt)
		for _, ev := range g.world.DrainContacts() {
			g.handleContact(ev)
		}
	}

	g.clampPlayer()

	if g.state == StateGameOver && !g.deathSoundPlayed {
		g.deathSoundPlayed = true
		g.audio.Play(SoundDeath)
	}

	if n := g.obstacles.Cleanup(); n > 0 {
		g.logger.Debug("obstacles cleaned up", "removed", n, "live", g.obstacles.Len())
	}
}

// spawn creates the next obstacle pair at the current scroll speed.
func (g *Game) spawn() {
	center := g.generator.Next()
	speed := g.difficulty.Speed(g.elapsed)
	if _, err := g.obstacles.Spawn(center, g.generator.GapHeight(), speed); err != nil {
		g.logger.Error("cannot spawn obstacle pair", "error", err)
	}
}

// Tap handles a tap at (x, y) in world pixels and returns what it did.
func (g *Game) Tap(x, y float64) TapAction {
	if g.closed {
		return TapNone
	}
	action := ClassifyTap(g.state, g.PauseButton(), x, y)
	switch action {
	case TapRestart:
		g.Restart()
	case TapUnpause:
		g.Resume()
	case TapPause:
		g.Pause()
	case TapJump:
		g.Jump()
	}
	return action
}

// Jump sets the player's vertical velocity to the jump velocity. Only while playing.
func (g *Game) Jump() {
	if g.closed || g.state != StatePlaying {
		return
	}
	v, err := g.world.Velocity(g.player)
	if err != nil {
		g.logger.Debug("skipping jump", "error", err)
		return
	}
	if err := g.world.SetVelocity(g.player, physics.Vec2{X: v.X, Y: g.jumpVelocity}); err != nil {
		g.logger.Debug("skipping jump", "error", err)
		return
	}
	g.audio.Play(SoundFlap)
}

// Pause snapshots and zeroes every velocity. Only while playing.
func (g *Game) Pause() {
	if g.closed || g.state != StatePlaying {
		return
	}
	if v, err := g.world.Velocity(g.player); err == nil {
		g.playerVel = &v
	}
	g.obstacles.Snapshot()
	g.setPlayerVelocity(physics.Vec2{})
	g.obstacles.Halt()
	g.state = StatePaused
	g.logger.Debug("paused", "score", g.score)
}

// Resume restores the velocities captured by Pause. Only while paused.
func (g *Game) Resume() {
	if g.closed || g.state != StatePaused {
		return
	}
	if g.playerVel != nil {
		g.setPlayerVelocity(*g.playerVel)
		g.playerVel = nil
	}
	g.obstacles.Restore()
	g.state = StatePlaying
	g.logger.Debug("resumed", "score", g.score)
}

// Restart starts a new game. Only after the player died.
func (g *Game) Restart() {
	if g.closed || g.state != StateGameOver {
		return
	}
	g.obstacles.DestroyAll()
	g.generator.Reset()

	if err := g.world.SetPosition(g.player, g.startPos); err != nil {
		g.logger.Debug("skipping player reset", "error", err)
	}
	g.setPlayerVelocity(physics.Vec2{})
	g.world.ResetAccumulator()
	g.world.DrainContacts()

	g.score = 0
	g.elapsed = 0
	g.spawnTimer = 0
	g.playerVel = nil
	g.deathSoundPlayed = false
	g.state = StatePlaying
	g.logger.Debug("restarted")
}

// Reseed restarts the gap sequence from seed. Pairs already on screen stay.
func (g *Game) Reseed(seed int64) {
	if g.closed {
		return
	}
	g.seed = seed
	g.generator.Reseed(seed)
	g.generator.Reset()
	g.logger.Debug("reseeded", "seed", seed)
}

// die moves the game to StateGameOver and freezes every body.
func (g *Game) die() {
	g.obstacles.Halt()
	g.setPlayerVelocity(physics.Vec2{})
	g.state = StateGameOver
	g.logger.Info("game over", "score", g.score, "high_score", g.highScore, "elapsed", g.elapsed)
}

// scorePass counts one passed gap and persists a new high score right away.
func (g *Game) scorePass() {
	g.score++
	g.audio.Play(SoundScore)
	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score
	if err := g.scores.SetHighScore(g.highScore); err != nil {
		g.logger.Warn("cannot persist high score", "score", g.highScore, "error", err)
	}
}

// clampPlayer keeps the player inside the world vertically.
// Touching an edge moves the body back inside and zeroes its vertical velocity.
func (g *Game) clampPlayer() {
	pos, err := g.world.Position(g.player)
	if err != nil {
		return
	}
	ppm := g.cfg.World.PixelsPerMeter
	r := g.cfg.Player.Radius / ppm
	top := g.cfg.World.Height / ppm

	var y float64
	switch {
	case pos.Y-r < 0:
		y = r
	case pos.Y+r > top:
		y = top - r
	default:
		return
	}
	if err := g.world.SetPosition(g.player, physics.Vec2{X: pos.X, Y: y}); err != nil {
		return
	}
	if v, err := g.world.Velocity(g.player); err == nil {
		g.setPlayerVelocity(physics.Vec2{X: v.X})
	}
}

func (g *Game) setPlayerVelocity(v physics.Vec2) {
	if err := g.world.SetVelocity(g.player, v); err != nil {
		g.logger.Debug("skipping player velocity", "error", err)
	}
}

// Close releases every body and the world, and closes the audio sink if it
// is an io.Closer. Calling Close more than once is a no-op.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.obstacles.DestroyAll()
	if err := g.world.DestroyBody(g.player); err != nil {
		g.logger.Debug("skipping player teardown", "error", err)
	}
	g.player = physics.Handle{}
	g.world.Close()

	if c, ok := g.audio.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("flappy: cannot close audio: %w", err)
		}
	}
	return nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Seed returns the seed of the current gap sequence.
func (g *Game) Seed() int64 { return g.seed }

// Score returns the score of the current game.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen, including the current game.
func (g *Game) HighScore() int { return g.highScore }

// Elapsed returns the seconds played in the current game.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Speed returns the current scroll speed in px/s.
func (g *Game) Speed() float64 { return g.difficulty.Speed(g.elapsed) }

// JumpVelocity returns the vertical velocity of a jump in m/s.
func (g *Game) JumpVelocity() float64 { return g.jumpVelocity }

// DeathSoundPlayed reports whether the death sound fired for this game over.
func (g *Game) DeathSoundPlayed() bool { return g.deathSoundPlayed }

// Config returns the validated configuration.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Pairs returns the live obstacle pairs, oldest first.
func (g *Game) Pairs() []*Pair { return g.obstacles.Pairs() }

// Closed reports whether Close was called.
func (g *Game) Closed() bool { return g.closed }

// PauseButton returns the pause button hit box in world pixels.
func (g *Game) PauseButton() Rect {
	ui := g.cfg.UI
	return Rect{
		X: g.cfg.World.Width - ui.PauseButtonMargin - ui.PauseButtonSize,
		Y: g.cfg.World.Height - ui.PauseButtonMargin - ui.PauseButtonSize,
		W: ui.PauseButtonSize,
		H: ui.PauseButtonSize,
	}
}

// PlayerPosition returns the player's center in world pixels.
func (g *Game) PlayerPosition() (x, y float64) {
	pos, err := g.world.Position(g.player)
	if err != nil {
		return 0, 0
	}
	ppm := g.cfg.World.PixelsPerMeter
	return pos.X * ppm, pos.Y * ppm
}

// PlayerVelocity returns the player's velocity in m/s.
func (g *Game) PlayerVelocity() physics.Vec2 {
	v, _ := g.world.Velocity(g.player)
	return v
}

// Frame captures the current draw state.
func (g *Game) Frame() Frame {
	px, py := g.PlayerPosition()
	f := Frame{
		State:       g.state.String(),
		Score:       g.score,
		HighScore:   g.highScore,
		WorldWidth:  g.cfg.World.Width,
		WorldHeight: g.cfg.World.Height,
		PlayerX:     px,
		PlayerY:     py,
		PlayerR:     g.cfg.Player.Radius,
		PipeWidth:   g.cfg.Obstacles.PipeWidth,
		PauseButton: g.PauseButton(),
		Speed:       g.Speed(),
		Level:       g.difficulty.Level(g.elapsed),
		Elapsed:     g.elapsed,
	}
	if g.closed {
		return f
	}
	f.Pairs = make([]PairFrame, 0, g.obstacles.Len())
	for _, p := range g.obstacles.Pairs() {
		cx, ok := g.obstacles.CenterX(p)
		if !ok {
			continue
		}
		f.Pairs = append(f.Pairs, PairFrame{
			X:           cx - g.cfg.Obstacles.PipeWidth/2,
			UpperY:      p.UpperY,
			UpperHeight: p.UpperHeight,
			LowerHeight: p.LowerHeight,
			Scored:      p.Scored,
		})
	}
	return f
}
