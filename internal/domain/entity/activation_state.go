// Package entity contains the core business objects of the project.
package entity

// ActivationState is the two-valued lifecycle flag gating login eligibility.
// The only permitted transition is unverified -> active.
type ActivationState string

const (
	// ActivationStateUnverified is the state of a freshly registered account.
	ActivationStateUnverified ActivationState = "unverified"
	// ActivationStateActive is the state after the verification token has been consumed.
	ActivationStateActive ActivationState = "active"
)

// String returns the string representation of the ActivationState.
func (s ActivationState) String() string {
	return string(s)
}

// IsValid checks if the ActivationState is a known value.
func (s ActivationState) IsValid() bool {
	switch s {
	case ActivationStateUnverified, ActivationStateActive:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ActivationState) CanTransitionTo(next ActivationState) bool {
	return s == ActivationStateUnverified && next == ActivationStateActive
}
