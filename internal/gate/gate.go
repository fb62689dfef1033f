// Package gate maps a numeric confidence score onto an explicit
// threshold-gated approval state machine: low scores reject, mid scores
// ask a human, high scores proceed automatically.
package gate

import "fmt"

// State is the approval state of one compilation.
type State string

const (
	StatePending            State = "pending"
	StateAutoApproved       State = "auto_approved"
	StateNeedsClarification State = "needs_clarification"
	StateRejected           State = "rejected"
)

// Gate holds the two band thresholds. Scores below Low reject, scores at
// or above High auto-approve, anything between needs clarification.
type Gate struct {
	Low  float64
	High float64
}

// Default returns the standard confidence bands.
func Default() Gate {
	return Gate{Low: 0.4, High: 0.75}
}

// Evaluate maps a score onto a state. Scores are clamped to [0, 1].
func (g Gate) Evaluate(score float64) State {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	switch {
	case score < g.Low:
		return StateRejected
	case score < g.High:
		return StateNeedsClarification
	default:
		return StateAutoApproved
	}
}

// Review is the stateful form of the gate: Pending until a score is
// submitted, then either terminal or waiting on an explicit human verdict.
type Review struct {
	gate  Gate
	state State
}

// NewReview returns a pending review using the given gate thresholds.
func NewReview(g Gate) *Review {
	return &Review{gate: g, state: StatePending}
}

// State returns the current review state.
func (r *Review) State() State { return r.state }

// Submit scores a pending review and transitions it accordingly.
func (r *Review) Submit(score float64) (State, error) {
	if r.state != StatePending {
		return r.state, fmt.Errorf("cannot submit a score in state %q", r.state)
	}
	r.state = r.gate.Evaluate(score)
	return r.state, nil
}

// Confirm resolves a clarification request in favour of proceeding.
func (r *Review) Confirm() error {
	if r.state != StateNeedsClarification {
		return fmt.Errorf("cannot confirm in state %q", r.state)
	}
	r.state = StateAutoApproved
	return nil
}

// Reject halts a pending or clarification-waiting review.
func (r *Review) Reject() error {
	if r.state != StatePending && r.state != StateNeedsClarification {
		return fmt.Errorf("cannot reject in state %q", r.state)
	}
	r.state = StateRejected
	return nil
}
