package model

// Outcome is the terminal state of a statement run.
type Outcome int

const (
	// Completed means every statement was submitted.
	Completed Outcome = iota
	// Aborted means the service rejected a statement with a protocol-level error.
	Aborted
	// Stopped means a non-protocol failure ended the run early.
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type RunResult struct {
	ID        string
	Outcome   Outcome
	Submitted int // statements handed to the driver, including the failing one
	Total     int
	Err       error
}

// Failure returns the error that must be propagated to the caller.
// Only protocol-level failures propagate; a Stopped run ends quietly.
func (r RunResult) Failure() error {
	if r.Outcome == Aborted {
		return r.Err
	}
	return nil
}
