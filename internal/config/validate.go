package config

import "fmt"

// Validate clamps out-of-range values in cfg so that every derived size is
// non-negative and every ramp stays within its bounds. It returns one note
// per adjusted field; a nil result means cfg was already valid.
func Validate(cfg *GameConfig) []string {
	var notes []string
	def := DefaultGameConfig()

	fix := func(name string, field *float64, ok bool, replacement float64) {
		if ok {
			return
		}
		notes = append(notes, fmt.Sprintf("%s: %g out of range, using %g", name, *field, replacement))
		*field = replacement
	}

	w := &cfg.World
	fix("world.width", &w.Width, w.Width > 0, def.World.Width)
	fix("world.height", &w.Height, w.Height > 0, def.World.Height)
	fix("world.pixels_per_meter", &w.PixelsPerMeter, w.PixelsPerMeter > 0, def.World.PixelsPerMeter)
	fix("world.gravity", &w.Gravity, w.Gravity > 0, def.World.Gravity)
	fix("world.time_step", &w.TimeStep, w.TimeStep > 0, def.World.TimeStep)
	fix("world.max_frame_time", &w.MaxFrameTime, w.MaxFrameTime >= w.TimeStep, w.TimeStep)
	if w.VelocityIterations <= 0 {
		notes = append(notes, fmt.Sprintf("world.velocity_iterations: %d out of range, using %d",
			w.VelocityIterations, def.World.VelocityIterations))
		w.VelocityIterations = def.World.VelocityIterations
	}
	if w.PositionIterations <= 0 {
		notes = append(notes, fmt.Sprintf("world.position_iterations: %d out of range, using %d",
			w.PositionIterations, def.World.PositionIterations))
		w.PositionIterations = def.World.PositionIterations
	}

	p := &cfg.Player
	fix("player.start_x", &p.StartX, p.StartX >= 0 && p.StartX <= 1, def.Player.StartX)
	fix("player.start_y", &p.StartY, p.StartY >= 0 && p.StartY <= 1, def.Player.StartY)
	fix("player.radius", &p.Radius, p.Radius > 0 && p.Radius*2 < w.Height, clampF(def.Player.Radius, 1, w.Height/4))
	fix("player.jump_height", &p.JumpHeight, p.JumpHeight > 0, def.Player.JumpHeight)

	o := &cfg.Obstacles
	fix("obstacles.pipe_width", &o.PipeWidth, o.PipeWidth > 0, def.Obstacles.PipeWidth)
	fix("obstacles.gap_fraction", &o.GapFraction, o.GapFraction > 0 && o.GapFraction < 1,
		clampF(o.GapFraction, 0.05, 0.95))
	fix("obstacles.margin", &o.Margin, o.Margin >= 0 && o.Margin <= 0.5, clampF(o.Margin, 0, 0.5))
	fix("obstacles.max_delta", &o.MaxDelta, o.MaxDelta > 0, def.Obstacles.MaxDelta)
	fix("obstacles.sensor_width", &o.SensorWidth, o.SensorWidth > 0 && o.SensorWidth <= o.PipeWidth,
		clampF(def.Obstacles.SensorWidth, 1, o.PipeWidth))
	fix("obstacles.despawn_margin", &o.DespawnMargin, o.DespawnMargin >= 0, def.Obstacles.DespawnMargin)

	d := &cfg.Difficulty
	fix("difficulty.head_start", &d.HeadStart, d.HeadStart >= 0, 0)
	fix("difficulty.base_speed", &d.BaseSpeed, d.BaseSpeed > 0, def.Difficulty.BaseSpeed)
	fix("difficulty.speed_ramp", &d.SpeedRamp, d.SpeedRamp >= 0, 0)
	fix("difficulty.max_speed", &d.MaxSpeed, d.MaxSpeed >= d.BaseSpeed, d.BaseSpeed)
	fix("difficulty.min_spawn_interval", &d.MinSpawnInterval, d.MinSpawnInterval >= 1, 1)
	fix("difficulty.base_spawn_interval", &d.BaseSpawnInterval, d.BaseSpawnInterval >= d.MinSpawnInterval,
		d.MinSpawnInterval)
	fix("difficulty.spawn_interval_decay", &d.SpawnIntervalDecay, d.SpawnIntervalDecay >= 0, 0)

	u := &cfg.UI
	fix("ui.pause_button_size", &u.PauseButtonSize, u.PauseButtonSize > 0, def.UI.PauseButtonSize)
	fix("ui.pause_button_margin", &u.PauseButtonMargin, u.PauseButtonMargin >= 0, def.UI.PauseButtonMargin)

	return notes
}
