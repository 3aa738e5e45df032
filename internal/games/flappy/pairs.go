package flappy

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookedbird/internal/config"
	"github.com/vovakirdan/cookedbird/internal/physics"
)

// Pair is one gate: an upper and a lower blocking body plus a scoring sensor
// in the gap. The three bodies always move and die together.
type Pair struct {
	Top    physics.Handle
	Bottom physics.Handle
	Sensor physics.Handle
	Scored bool // Set once, when the player enters the sensor

	GapCenter   float64 // Pixels from the bottom of the world
	UpperY      float64 // Bottom edge of the upper body
	UpperHeight float64
	LowerHeight float64

	// Pause snapshots, nil unless paused
	topVel    *physics.Vec2
	bottomVel *physics.Vec2
	sensorVel *physics.Vec2
}

// handles returns pointers to the pair's body handles so they can be cleared in place.
func (p *Pair) handles() []*physics.Handle {
	return []*physics.Handle{&p.Top, &p.Bottom, &p.Sensor}
}

// Obstacles owns the live obstacle pairs in spawn order.
type Obstacles struct {
	world  *physics.World
	cfg    config.ObstacleConfig
	worldW float64
	worldH float64
	ppm    float64
	pairs  []*Pair
	logger *log.Logger
}

// NewObstacles creates an empty pair collection on the given world.
func NewObstacles(world *physics.World, wc config.WorldConfig, cfg config.ObstacleConfig, logger *log.Logger) *Obstacles {
	return &Obstacles{
		world:  world,
		cfg:    cfg,
		worldW: wc.Width,
		worldH: wc.Height,
		ppm:    wc.PixelsPerMeter,
		pairs:  make([]*Pair, 0, 8),
		logger: logger,
	}
}

// Pairs returns the live pairs, oldest first.
func (o *Obstacles) Pairs() []*Pair {
	return o.pairs
}

// Len returns the number of live pairs.
func (o *Obstacles) Len() int {
	return len(o.pairs)
}

// Spawn creates a pair just past the right edge of the world, scrolling left at speed px/s.
func (o *Obstacles) Spawn(gapCenter, gapHeight, speed float64) (*Pair, error) {
	return o.spawnAt(o.worldW+o.cfg.PipeWidth, gapCenter, gapHeight, speed)
}

// spawnAt creates a pair whose left edge is at x.
func (o *Obstacles) spawnAt(x, gapCenter, gapHeight, speed float64) (*Pair, error) {
	w := o.cfg.PipeWidth
	upperY := gapCenter + gapHeight/2
	p := &Pair{
		GapCenter:   gapCenter,
		UpperY:      upperY,
		UpperHeight: math.Max(o.worldH-upperY, 0),
		LowerHeight: math.Max(gapCenter-gapHeight/2, 0),
	}
	vel := physics.Vec2{X: -speed / o.ppm}

	var err error
	if p.Top, err = o.box(x, upperY, w, p.UpperHeight, physics.TagObstacle, vel); err != nil {
		return nil, err
	}
	if p.Bottom, err = o.box(x, 0, w, p.LowerHeight, physics.TagObstacle, vel); err != nil {
		o.destroy(p)
		return nil, err
	}
	sw := o.cfg.SensorWidth
	if p.Sensor, err = o.box(x+w/2-sw/2, gapCenter-gapHeight/2, sw, gapHeight, physics.TagScoreGap, vel); err != nil {
		o.destroy(p)
		return nil, err
	}

	o.pairs = append(o.pairs, p)
	return p, nil
}

// box creates a kinematic sensor box from a pixel rectangle given by its bottom-left corner.
// Zero-height rectangles still get a 1px body so every pair has three live bodies.
func (o *Obstacles) box(x, y, w, h float64, tag physics.Tag, vel physics.Vec2) (physics.Handle, error) {
	h = math.Max(h, 1)
	return o.world.CreateBody(physics.BodySpec{
		Kind:       physics.KindKinematic,
		Position:   physics.Vec2{X: (x + w/2) / o.ppm, Y: (y + h/2) / o.ppm},
		Velocity:   vel,
		HalfWidth:  w / 2 / o.ppm,
		HalfHeight: h / 2 / o.ppm,
		Sensor:     true,
		Tag:        tag,
	})
}

// FindBySensor returns the pair owning the given sensor body, or nil.
func (o *Obstacles) FindBySensor(h physics.Handle) *Pair {
	if h.IsZero() {
		return nil
	}
	for _, p := range o.pairs {
		if p.Sensor == h {
			return p
		}
	}
	return nil
}

// CenterX returns the pair's horizontal center in pixels.
func (o *Obstacles) CenterX(p *Pair) (float64, bool) {
	for _, h := range []physics.Handle{p.Bottom, p.Top, p.Sensor} {
		if pos, err := o.world.Position(h); err == nil {
			return pos.X * o.ppm, true
		}
	}
	return 0, false
}

// Halt zeroes the velocity of every obstacle body.
func (o *Obstacles) Halt() {
	for _, p := range o.pairs {
		for _, h := range p.handles() {
			o.setVelocity(*h, physics.Vec2{})
		}
	}
}

// Snapshot stores every obstacle body's velocity on its pair.
func (o *Obstacles) Snapshot() {
	for _, p := range o.pairs {
		p.topVel = o.velocity(p.Top)
		p.bottomVel = o.velocity(p.Bottom)
		p.sensorVel = o.velocity(p.Sensor)
	}
}

// Restore reapplies and clears the snapshots taken by Snapshot.
func (o *Obstacles) Restore() {
	for _, p := range o.pairs {
		if p.topVel != nil {
			o.setVelocity(p.Top, *p.topVel)
		}
		if p.bottomVel != nil {
			o.setVelocity(p.Bottom, *p.bottomVel)
		}
		if p.sensorVel != nil {
			o.setVelocity(p.Sensor, *p.sensorVel)
		}
		p.topVel, p.bottomVel, p.sensorVel = nil, nil, nil
	}
}

// Cleanup destroys every pair that has scrolled past the left edge of the
// world by more than the despawn margin. Remaining pairs keep their order.
// Returns the number of pairs removed.
func (o *Obstacles) Cleanup() int {
	removed := 0
	kept := o.pairs[:0]
	for _, p := range o.pairs {
		cx, ok := o.CenterX(p)
		if !ok || cx+o.cfg.PipeWidth < -o.cfg.DespawnMargin {
			o.destroy(p)
			removed++
			continue
		}
		kept = append(kept, p)
	}
	// Drop references held past the new length
	for i := len(kept); i < len(o.pairs); i++ {
		o.pairs[i] = nil
	}
	o.pairs = kept
	return removed
}

// DestroyAll releases every pair.
func (o *Obstacles) DestroyAll() {
	for i, p := range o.pairs {
		o.destroy(p)
		o.pairs[i] = nil
	}
	o.pairs = o.pairs[:0]
}

// destroy releases the pair's bodies and clears its handles.
func (o *Obstacles) destroy(p *Pair) {
	for _, h := range p.handles() {
		if h.IsZero() {
			continue
		}
		if err := o.world.DestroyBody(*h); err != nil {
			o.logger.Debug("skipping obstacle body", "body", *h, "error", err)
		}
		*h = physics.Handle{}
	}
}

func (o *Obstacles) velocity(h physics.Handle) *physics.Vec2 {
	v, err := o.world.Velocity(h)
	if err != nil {
		o.logger.Debug("skipping obstacle body", "body", h, "error", err)
		return nil
	}
	return &v
}

func (o *Obstacles) setVelocity(h physics.Handle, v physics.Vec2) {
	if err := o.world.SetVelocity(h, v); err != nil {
		o.logger.Debug("skipping obstacle body", "body", h, "error", err)
	}
}
