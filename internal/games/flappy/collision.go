package flappy

import "github.com/vovakirdan/cookedbird/internal/physics"

// Outcome is what a contact means for the game.
type Outcome int

const (
	OutcomeIgnore Outcome = iota
	OutcomeDeath
	OutcomeScore
)

// Classify maps the tags of two touching fixtures to an outcome.
// Order does not matter.
func Classify(a, b physics.Tag) Outcome {
	ev := physics.ContactEvent{A: a, B: b}
	switch {
	case ev.Involves(physics.TagPlayer, physics.TagObstacle):
		return OutcomeDeath
	case ev.Involves(physics.TagPlayer, physics.TagScoreGap):
		return OutcomeScore
	default:
		return OutcomeIgnore
	}
}

// handleContact applies one begin-contact event. A pass still counts after
// death, so a score that trails a death in the same step is not lost.
func (g *Game) handleContact(ev physics.ContactEvent) {
	switch Classify(ev.A, ev.B) {
	case OutcomeDeath:
		if g.state == StatePlaying {
			g.die()
		}
	case OutcomeScore:
		if g.state == StatePaused {
			return
		}
		sensor, ok := ev.BodyTagged(physics.TagScoreGap)
		if !ok {
			return
		}
		if p := g.obstacles.FindBySensor(sensor); p != nil && !p.Scored {
			p.Scored = true
			g.scorePass()
		}
	}
}
