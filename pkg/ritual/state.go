package ritual

// State identifies where a consultation stands in its lifecycle.
type State string

const (
	StateIdle          State = "IDLE"          // Awaiting a consultation
	StateInvoked       State = "INVOKED"       // Question received, ritual begun
	StateContemplating State = "CONTEMPLATING" // Oracle is deliberating
	StateRevealing     State = "REVEALING"     // Prophecy is being delivered
	StateComplete      State = "COMPLETE"      // Consultation finished
)

// States lists the five canonical ritual states in lifecycle order.
var States = []State{
	StateIdle,
	StateInvoked,
	StateContemplating,
	StateRevealing,
	StateComplete,
}

// String returns the wire value of the state.
func (s State) String() string {
	return string(s)
}

// Valid reports whether s is one of the five canonical states.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateInvoked, StateContemplating, StateRevealing, StateComplete:
		return true
	}
	return false
}

// Accepting reports whether a new consultation may legally begin from s.
func (s State) Accepting() bool {
	return s == StateIdle || s == StateComplete
}
