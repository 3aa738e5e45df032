package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// Vec2 is a 2D vector in physics units (meters, m/s).
type Vec2 struct {
	X, Y float64
}

// Tag is the semantic label carried by a body's fixture and reported in contacts.
type Tag string

// Tags used by the game.
const (
	TagPlayer   Tag = "player"
	TagObstacle Tag = "obstacle"
	TagScoreGap Tag = "score-gap"
)

// Kind selects how the simulation moves a body.
type Kind int

const (
	KindStatic    Kind = iota
	KindDynamic        // Moved by forces and gravity
	KindKinematic      // Moved only by its velocity
)

// BodySpec describes a body with a single fixture. A positive Radius makes
// the fixture a circle, otherwise it is a box of HalfWidth x HalfHeight.
type BodySpec struct {
	Kind          Kind
	Position      Vec2
	Velocity      Vec2
	FixedRotation bool
	NeverSleep    bool
	Radius        float64
	HalfWidth     float64
	HalfHeight    float64
	Density       float64
	Sensor        bool
	Tag           Tag
}

func (s BodySpec) validate() error {
	if s.Radius > 0 {
		return nil
	}
	if s.HalfWidth <= 0 || s.HalfHeight <= 0 {
		return fmt.Errorf("physics: body %q needs a radius or positive half extents (got %gx%g)",
			s.Tag, s.HalfWidth, s.HalfHeight)
	}
	return nil
}

// Handle refers to a body in a World. The zero Handle never refers to a body.
type Handle struct {
	index uint32 // slot index + 1
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.index == 0
}

// String returns a debug representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.index, h.gen)
}

type slot struct {
	body *box2d.B2Body
	gen  uint32
}

// insert stores body in a free slot, reusing destroyed slots first.
func (w *World) insert(body *box2d.B2Body) Handle {
	w.live++
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		w.slots[idx].body = body
		return Handle{index: idx + 1, gen: w.slots[idx].gen}
	}
	w.slots = append(w.slots, slot{body: body})
	return Handle{index: uint32(len(w.slots)), gen: 0}
}

// release frees h's slot and bumps its generation so old handles go stale.
func (w *World) release(h Handle) {
	idx := h.index - 1
	w.slots[idx].body = nil
	w.slots[idx].gen++
	w.free = append(w.free, idx)
	w.live--
}
