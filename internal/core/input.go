package core

// Action is a semantic input, abstracted from the key or button that produced it.
type Action int

const (
	ActionNone  Action = iota
	ActionFlap         // Space, W, Up
	ActionPause        // P, Escape
	ActionTap          // Mouse click, carries a position
	ActionHelp         // ?
	ActionQuit         // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionFlap:
		return "Flap"
	case ActionPause:
		return "Pause"
	case ActionTap:
		return "Tap"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// Input is one action. Col and Row are set for ActionTap.
type Input struct {
	Action Action
	Col    int
	Row    int
}

// InputQueue collects inputs between two frames.
// The queue keeps arrival order; the frame consumes it with Drain.
type InputQueue struct {
	items []Input
	limit int
}

// NewInputQueue creates a queue that keeps at most limit inputs per frame.
// Inputs beyond the limit are dropped. A limit <= 0 means 16.
func NewInputQueue(limit int) *InputQueue {
	if limit <= 0 {
		limit = 16
	}
	return &InputQueue{limit: limit}
}

// Push appends an input. It reports false if the input was dropped.
func (q *InputQueue) Push(in Input) bool {
	if in.Action == ActionNone || len(q.items) >= q.limit {
		return false
	}
	q.items = append(q.items, in)
	return true
}

// Len returns the number of queued inputs.
func (q *InputQueue) Len() int {
	return len(q.items)
}

// Drain returns the queued inputs and empties the queue.
func (q *InputQueue) Drain() []Input {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = make([]Input, 0, len(out))
	return out
}
