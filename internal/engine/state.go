package engine

// State is the coordinator lifecycle state. A coordinator moves from Idle to
// Running exactly once, then to one terminal state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFatalError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFatalError:
		return "fatal_error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is an end state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFatalError
}
