package session

import "sync/atomic"

// State is the lifecycle phase of a session. Transitions only move forward:
// running, stopping, draining, finalizing, done.
type State int32

const (
	StateRunning State = iota
	StateStopping
	StateDraining
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateDraining:
		return "draining"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// stateVar holds the current state and only ever advances it.
type stateVar struct {
	v atomic.Int32
}

func (sv *stateVar) get() State {
	return State(sv.v.Load())
}

// advance moves to next and reports whether this call made the transition.
// A call with a state at or behind the current one changes nothing.
func (sv *stateVar) advance(next State) bool {
	for {
		cur := sv.v.Load()
		if int32(next) <= cur {
			return false
		}
		if sv.v.CompareAndSwap(cur, int32(next)) {
			return true
		}
	}
}
