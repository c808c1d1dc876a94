package ritual

import "fmt"

// InvalidTransitionError reports an attempted edge absent from the
// transition table. The machine is left untouched when it is returned.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid ritual transition: %s -> %s", e.From, e.To)
}
