package tools

// State is the position of one invocation in its lifecycle.
type State string

const (
	StateReceived  State = "received"
	StateValidated State = "validated"
	StateExecuting State = "executing"
	StateRendered  State = "rendered"
	StateRejected  State = "rejected"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateRendered || s == StateRejected || s == StateFailed
}

// Outcome is the result of one invocation. It is created per call and never
// shared. Text is always set; Err keeps the machine-readable cause on
// Rejected and Failed.
type Outcome struct {
	Tool         string
	InvocationID string
	State        State
	Kind         Kind
	Text         string
	Err          error
}

// OK reports whether the invocation rendered a success.
func (o Outcome) OK() bool {
	return o.State == StateRendered
}
