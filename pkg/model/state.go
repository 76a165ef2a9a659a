package model

// Phase is the lifecycle state of the catalog controller.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseReady   Phase = "READY"
	PhaseErrored Phase = "ERRORED"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// IsSettled returns true once a fetch cycle has completed, successfully or not.
func (p Phase) IsSettled() bool {
	switch p {
	case PhaseReady, PhaseErrored:
		return true
	}
	return false
}

// ValidPhaseTransitions defines the allowed controller phase transitions.
// Loading is re-entrant: a newer fetch may supersede one still in flight.
var ValidPhaseTransitions = map[Phase][]Phase{
	PhaseIdle:    {PhaseLoading},
	PhaseLoading: {PhaseLoading, PhaseReady, PhaseErrored},
	PhaseReady:   {PhaseLoading},
	PhaseErrored: {PhaseLoading},
}

// CanTransitionTo returns true if moving from the current phase to next is valid.
func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range ValidPhaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns an *InvalidTransitionError if next is not
// reachable from p.
func (p Phase) ValidateTransition(next Phase) error {
	if p.CanTransitionTo(next) {
		return nil
	}
	return &InvalidTransitionError{From: p, To: next}
}
