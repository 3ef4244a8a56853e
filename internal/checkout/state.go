package checkout

import "fmt"

type State string

const (
	StateEmpty     State = "EMPTY"
	StateBuilding  State = "BUILDING"
	StateAwaiting  State = "AWAITING_CONFIRMATION"
	StatePaid      State = "PAID"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
)

var transitions = map[State][]State{
	StateEmpty:     {StateBuilding, StateFailed},
	StateBuilding:  {StateBuilding, StateEmpty, StateAwaiting, StatePaid, StateFailed},
	StateAwaiting:  {StatePaid, StateFailed, StateCancelled},
	StatePaid:      {StateEmpty},
	StateFailed:    {StateEmpty, StateBuilding},
	StateCancelled: {StateEmpty, StateBuilding},
}

// TransitionError reports a move the register state machine does not allow.
type TransitionError struct {
	From, To State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("checkout: cannot go from %s to %s", e.From, e.To)
}

func Transition(from, to State) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// Terminal reports whether s is an outcome that must settle before the
// register takes new input.
func (s State) Terminal() bool {
	return s == StatePaid || s == StateFailed || s == StateCancelled
}

// Settle returns the resting state that follows a terminal outcome.
func Settle(s State, cartEmpty bool) State {
	if !s.Terminal() {
		return s
	}
	if s == StatePaid || cartEmpty {
		return StateEmpty
	}
	return StateBuilding
}
