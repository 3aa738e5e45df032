package physics

import (
	"errors"
	"math"
	"testing"
)

func circleSpec(tag Tag) BodySpec {
	return BodySpec{
		Kind:          KindDynamic,
		FixedRotation: true,
		NeverSleep:    true,
		Radius:        0.5,
		Density:       1,
		Tag:           tag,
	}
}

func TestStepFixedSubsteps(t *testing.T) {
	w := New(Config{Gravity: 9.8, TimeStep: 0.125, MaxFrameTime: 0.5})
	defer w.Close()

	tests := []struct {
		name     string
		dt       float64
		steps    int
		leftover float64
	}{
		{"less than one step", 0.1, 0, 0.1},
		{"carry fills a step", 0.05, 1, 0.025},
		{"clamped lag spike", 10, 4, 0.025},
		{"negative delta ignored", -1, 0, 0.025},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := w.Step(tc.dt)
			if got != tc.steps {
				t.Errorf("Step(%g) = %d sub-steps, expected %d", tc.dt, got, tc.steps)
			}
			if math.Abs(w.Accumulator()-tc.leftover) > 1e-9 {
				t.Errorf("Accumulator = %g, expected %g", w.Accumulator(), tc.leftover)
			}
		})
	}
}

func TestGravityPullsDynamicBody(t *testing.T) {
	w := New(DefaultConfig())
	defer w.Close()

	h, err := w.CreateBody(circleSpec(TagPlayer))
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}

	w.Step(0.5)

	v, err := w.Velocity(h)
	if err != nil {
		t.Fatalf("Velocity() failed: %v", err)
	}
	if v.Y >= 0 {
		t.Errorf("Body should be falling, vy = %f", v.Y)
	}
	if v.X != 0 {
		t.Errorf("Gravity should not add horizontal velocity, vx = %f", v.X)
	}
}

func TestKinematicBodyIgnoresGravity(t *testing.T) {
	w := New(DefaultConfig())
	defer w.Close()

	h, err := w.CreateBody(BodySpec{
		Kind:       KindKinematic,
		Velocity:   Vec2{X: -2},
		HalfWidth:  0.5,
		HalfHeight: 1,
		Sensor:     true,
		Tag:        TagObstacle,
	})
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}

	w.Step(0.25)

	v, _ := w.Velocity(h)
	if v.X != -2 || v.Y != 0 {
		t.Errorf("Kinematic velocity changed: %+v", v)
	}
	p, _ := w.Position(h)
	if p.X >= 0 {
		t.Errorf("Kinematic body should have moved left, x = %f", p.X)
	}
	if p.Y != 0 {
		t.Errorf("Kinematic body should not fall, y = %f", p.Y)
	}
}

func TestStaleHandleDetected(t *testing.T) {
	w := New(DefaultConfig())
	defer w.Close()

	h, err := w.CreateBody(circleSpec(TagPlayer))
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}
	if !w.Alive(h) {
		t.Fatal("New body should be alive")
	}

	if err := w.DestroyBody(h); err != nil {
		t.Fatalf("DestroyBody() failed: %v", err)
	}
	if w.Alive(h) {
		t.Error("Destroyed body should not be alive")
	}
	if _, err := w.Position(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Position() on destroyed body: expected ErrStaleHandle, got %v", err)
	}
	if err := w.DestroyBody(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Double destroy: expected ErrStaleHandle, got %v", err)
	}

	// The slot is reused but the old handle must stay stale
	h2, err := w.CreateBody(circleSpec(TagPlayer))
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}
	if h2 == h {
		t.Error("Reused slot should get a new generation")
	}
	if w.Alive(h) {
		t.Error("Old handle should not resolve to the new body")
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount = %d, expected 1", w.BodyCount())
	}

	var zero Handle
	if w.Alive(zero) {
		t.Error("Zero handle should never be alive")
	}
}

func TestBeginContactQueued(t *testing.T) {
	w := New(DefaultConfig())
	defer w.Close()

	player, err := w.CreateBody(circleSpec(TagPlayer))
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}
	gap, err := w.CreateBody(BodySpec{
		Kind:       KindKinematic,
		HalfWidth:  1,
		HalfHeight: 1,
		Sensor:     true,
		Tag:        TagScoreGap,
	})
	if err != nil {
		t.Fatalf("CreateBody() failed: %v", err)
	}

	w.Step(1.0 / 60.0)

	events := w.DrainContacts()
	if len(events) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(events))
	}
	ev := events[0]
	if !ev.Involves(TagPlayer, TagScoreGap) {
		t.Errorf("Unexpected contact tags: %q / %q", ev.A, ev.B)
	}
	if h, ok := ev.BodyTagged(TagScoreGap); !ok || h != gap {
		t.Errorf("Sensor handle = %v, expected %v", h, gap)
	}
	if h, ok := ev.BodyTagged(TagPlayer); !ok || h != player {
		t.Errorf("Player handle = %v, expected %v", h, player)
	}

	if len(w.DrainContacts()) != 0 {
		t.Error("DrainContacts should empty the queue")
	}
}

func TestCreateBodyRejectsEmptyShape(t *testing.T) {
	w := New(DefaultConfig())
	defer w.Close()

	if _, err := w.CreateBody(BodySpec{Kind: KindKinematic, Tag: TagObstacle}); err == nil {
		t.Error("Expected error for body without radius or extents")
	}
}

func TestCloseIdempotent(t *testing.T) {
	w := New(DefaultConfig())
	h, _ := w.CreateBody(circleSpec(TagPlayer))

	w.Close()
	w.Close()

	if !w.Closed() {
		t.Error("World should report closed")
	}
	if _, err := w.CreateBody(circleSpec(TagPlayer)); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateBody after Close: expected ErrClosed, got %v", err)
	}
	if _, err := w.Velocity(h); !errors.Is(err, ErrClosed) {
		t.Errorf("Velocity after Close: expected ErrClosed, got %v", err)
	}
	if w.Step(1) != 0 {
		t.Error("Step after Close should not run")
	}
}
