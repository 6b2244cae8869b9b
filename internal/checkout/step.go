package checkout

import "slices"

// Step is a stage of the checkout flow.
type Step int

const (
	StepDetails Step = iota + 1
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// transitions lists the steps reachable from each step. Confirmation is
// terminal.
var transitions = map[Step][]Step{
	StepDetails: {StepPayment},
	StepPayment: {StepDetails, StepConfirmation},
}

func (s Step) CanTransition(to Step) bool {
	return slices.Contains(transitions[s], to)
}
