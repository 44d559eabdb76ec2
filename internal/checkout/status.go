package checkout

type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusValidating Status = "VALIDATING"
	StatusCommitting Status = "COMMITTING"
	StatusCompleted  Status = "COMPLETED"
	StatusAborted    Status = "ABORTED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAborted
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// legalTransitions encodes the checkout cycle: a fresh attempt starts
// validating from idle or from either terminal state, validation either
// moves to committing or aborts, committing either completes or aborts.
var legalTransitions = map[Status][]Status{
	StatusIdle:       {StatusValidating},
	StatusValidating: {StatusCommitting, StatusAborted},
	StatusCommitting: {StatusCompleted, StatusAborted},
	StatusCompleted:  {StatusValidating},
	StatusAborted:    {StatusValidating},
}

func canTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
