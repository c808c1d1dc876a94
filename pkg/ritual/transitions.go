package ritual

// validTransitions is the single source of truth for legal edges.
// Every state has at least one successor, so the ritual can never dead-end.
// COMPLETE is the only state with two successors: back to IDLE, or straight
// to INVOKED so a follow-up consultation needs no explicit reset.
var validTransitions = map[State][]State{
	StateIdle:          {StateInvoked},
	StateInvoked:       {StateContemplating},
	StateContemplating: {StateRevealing},
	StateRevealing:     {StateComplete},
	StateComplete:      {StateIdle, StateInvoked},
}

// AllowedNext returns the states directly reachable from s.
// The returned slice is a copy; mutating it does not affect the table.
func AllowedNext(s State) []State {
	next := validTransitions[s]
	out := make([]State, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the edge from -> to exists in the table.
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
