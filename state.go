package nsapi

// State is the gate's position in its two-state machine.
type State int

const (
	// Idle means no cool-down is in effect.
	Idle State = iota
	// Cooling means a server-declared deadline has not passed yet.
	Cooling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Cooling:
		return "Cooling"
	default:
		return "Unknown"
	}
}
