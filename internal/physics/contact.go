package physics

import "github.com/ByteArena/box2d"

// ContactEvent is reported when two fixtures start touching.
type ContactEvent struct {
	A, B         Tag
	BodyA, BodyB Handle
}

// Involves reports whether the event has one participant tagged a and the other b.
func (e ContactEvent) Involves(a, b Tag) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}

// BodyTagged returns the handle of the participant tagged t.
func (e ContactEvent) BodyTagged(t Tag) (Handle, bool) {
	switch t {
	case e.A:
		return e.BodyA, true
	case e.B:
		return e.BodyB, true
	}
	return Handle{}, false
}

// contactQueue implements box2d.B2ContactListenerInterface. Box2D calls it
// from inside Step, where bodies must not be created or destroyed, so it only
// records events.
type contactQueue struct {
	events []ContactEvent
}

var _ box2d.B2ContactListenerInterface = (*contactQueue)(nil)

func (q *contactQueue) BeginContact(contact box2d.B2ContactInterface) {
	fa, fb := contact.GetFixtureA(), contact.GetFixtureB()
	if fa == nil || fb == nil {
		return
	}
	q.events = append(q.events, ContactEvent{
		A:     fixtureTag(fa),
		B:     fixtureTag(fb),
		BodyA: fixtureHandle(fa),
		BodyB: fixtureHandle(fb),
	})
}

func (q *contactQueue) EndContact(contact box2d.B2ContactInterface) {}

func (q *contactQueue) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (q *contactQueue) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}

func (q *contactQueue) drain() []ContactEvent {
	out := q.events
	q.events = nil
	return out
}

func fixtureTag(f *box2d.B2Fixture) Tag {
	if t, ok := f.GetUserData().(Tag); ok {
		return t
	}
	return ""
}

func fixtureHandle(f *box2d.B2Fixture) Handle {
	body := f.GetBody()
	if body == nil {
		return Handle{}
	}
	if h, ok := body.GetUserData().(Handle); ok {
		return h
	}
	return Handle{}
}
