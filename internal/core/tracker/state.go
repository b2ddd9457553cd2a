package tracker

// State is the session lifecycle state
type State int

const (
	Idle State = iota
	Active
	Paused
	Summary
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Summary:
		return "summary"
	default:
		return "unknown"
	}
}

// ParseState maps a stored state name back to a State
func ParseState(name string) (State, bool) {
	for _, s := range []State{Idle, Active, Paused, Summary} {
		if s.String() == name {
			return s, true
		}
	}
	return Idle, false
}
