// Package physics wraps a Box2D world behind a small, handle-based API.
// Bodies live in a generation-checked arena so that a handle to a destroyed
// body is detected instead of dereferenced. Contacts reported by Box2D during
// a step are queued and handed to the caller after the step completes.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
)

var (
	// ErrStaleHandle is returned when a handle refers to a destroyed body.
	ErrStaleHandle = errors.New("physics: stale body handle")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("physics: world closed")
)

// Config contains the simulation constants of a world.
type Config struct {
	Gravity            float64 // Downward acceleration in m/s²
	TimeStep           float64 // Fixed sub-step length in seconds
	MaxFrameTime       float64 // Largest frame delta accepted by Step
	VelocityIterations int
	PositionIterations int
}

// DefaultConfig returns the constants used by the game.
func DefaultConfig() Config {
	return Config{
		Gravity:            9.8,
		TimeStep:           1.0 / 60.0,
		MaxFrameTime:       0.25,
		VelocityIterations: 8,
		PositionIterations: 3,
	}
}

// World owns every body of one simulation.
type World struct {
	cfg         Config
	world       *box2d.B2World
	slots       []slot
	free        []uint32
	live        int
	accumulator float64
	contacts    contactQueue
	closed      bool
}

// New creates a world with the given configuration.
func New(cfg Config) *World {
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = DefaultConfig().TimeStep
	}
	if cfg.MaxFrameTime < cfg.TimeStep {
		cfg.MaxFrameTime = cfg.TimeStep
	}
	if cfg.VelocityIterations <= 0 {
		cfg.VelocityIterations = DefaultConfig().VelocityIterations
	}
	if cfg.PositionIterations <= 0 {
		cfg.PositionIterations = DefaultConfig().PositionIterations
	}

	bw := box2d.MakeB2World(box2d.MakeB2Vec2(0, -cfg.Gravity))
	w := &World{
		cfg:   cfg,
		world: &bw,
	}
	w.world.SetContactListener(&w.contacts)
	return w
}

// Config returns the world's simulation constants.
func (w *World) Config() Config {
	return w.cfg
}

// Step advances the simulation by dt seconds using fixed sub-steps.
// dt is clamped to MaxFrameTime; time that does not fill a whole sub-step
// carries over to the next call. Returns the number of sub-steps taken.
func (w *World) Step(dt float64) int {
	if w.closed {
		return 0
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	w.accumulator += math.Min(dt, w.cfg.MaxFrameTime)

	steps := 0
	for w.accumulator >= w.cfg.TimeStep {
		w.world.Step(w.cfg.TimeStep, w.cfg.VelocityIterations, w.cfg.PositionIterations)
		w.accumulator -= w.cfg.TimeStep
		steps++
	}
	return steps
}

// Accumulator returns the time carried over to the next Step.
func (w *World) Accumulator() float64 {
	return w.accumulator
}

// ResetAccumulator drops any carried-over time.
func (w *World) ResetAccumulator() {
	w.accumulator = 0
}

// DrainContacts returns the contacts that began since the last drain
// and empties the queue.
func (w *World) DrainContacts() []ContactEvent {
	return w.contacts.drain()
}

// CreateBody adds a body described by spec and returns its handle.
func (w *World) CreateBody(spec BodySpec) (Handle, error) {
	if w.closed {
		return Handle{}, ErrClosed
	}
	if err := spec.validate(); err != nil {
		return Handle{}, err
	}

	bd := box2d.MakeB2BodyDef()
	switch spec.Kind {
	case KindDynamic:
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	case KindKinematic:
		bd.Type = box2d.B2BodyType.B2_kinematicBody
	default:
		bd.Type = box2d.B2BodyType.B2_staticBody
	}
	bd.Position = toB2(spec.Position)
	bd.LinearVelocity = toB2(spec.Velocity)
	bd.FixedRotation = spec.FixedRotation
	bd.AllowSleep = !spec.NeverSleep
	bd.Awake = true

	body := w.world.CreateBody(&bd)

	fd := box2d.MakeB2FixtureDef()
	fd.Density = spec.Density
	fd.Friction = 0
	fd.Restitution = 0
	fd.IsSensor = spec.Sensor
	fd.UserData = spec.Tag

	if spec.Radius > 0 {
		shape := box2d.MakeB2CircleShape()
		shape.M_radius = spec.Radius
		fd.Shape = &shape
	} else {
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(spec.HalfWidth, spec.HalfHeight)
		fd.Shape = &shape
	}
	body.CreateFixtureFromDef(&fd)

	h := w.insert(body)
	body.SetUserData(h)
	return h, nil
}

// DestroyBody removes the body from the simulation. The handle, and every
// copy of it, is stale afterwards.
func (w *World) DestroyBody(h Handle) error {
	body, err := w.lookup(h)
	if err != nil {
		return err
	}
	w.world.DestroyBody(body)
	w.release(h)
	return nil
}

// Alive reports whether h refers to a live body.
func (w *World) Alive(h Handle) bool {
	_, err := w.lookup(h)
	return err == nil
}

// Position returns the body's center in meters.
func (w *World) Position(h Handle) (Vec2, error) {
	body, err := w.lookup(h)
	if err != nil {
		return Vec2{}, err
	}
	return fromB2(body.GetPosition()), nil
}

// SetPosition teleports the body, keeping its velocity.
func (w *World) SetPosition(h Handle, p Vec2) error {
	body, err := w.lookup(h)
	if err != nil {
		return err
	}
	body.SetTransform(toB2(p), 0)
	return nil
}

// Velocity returns the body's linear velocity in m/s.
func (w *World) Velocity(h Handle) (Vec2, error) {
	body, err := w.lookup(h)
	if err != nil {
		return Vec2{}, err
	}
	return fromB2(body.GetLinearVelocity()), nil
}

// SetVelocity overwrites the body's linear velocity.
func (w *World) SetVelocity(h Handle, v Vec2) error {
	body, err := w.lookup(h)
	if err != nil {
		return err
	}
	body.SetLinearVelocity(toB2(v))
	return nil
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return w.live
}

// Close destroys every remaining body and releases the world.
// Calling Close more than once is a no-op.
func (w *World) Close() {
	if w.closed {
		return
	}
	for i := range w.slots {
		s := &w.slots[i]
		if s.body != nil {
			w.world.DestroyBody(s.body)
			s.body = nil
			s.gen++
		}
	}
	w.live = 0
	w.free = nil
	w.contacts.drain()
	w.world = nil
	w.closed = true
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool {
	return w.closed
}

func (w *World) lookup(h Handle) (*box2d.B2Body, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if h.index == 0 || int(h.index) > len(w.slots) {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	s := w.slots[h.index-1]
	if s.body == nil || s.gen != h.gen {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	return s.body, nil
}

func toB2(v Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromB2(v box2d.B2Vec2) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
