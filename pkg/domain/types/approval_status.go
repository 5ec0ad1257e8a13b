package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// ApprovalStatus represents the approval workflow state of a WBS item
type ApprovalStatus string

const (
	ApprovalStatusDraft     ApprovalStatus = "draft"
	ApprovalStatusSubmitted ApprovalStatus = "submitted"
	ApprovalStatusApproved  ApprovalStatus = "approved"
	ApprovalStatusRejected  ApprovalStatus = "rejected"
)

// ErrInvalidTransition is returned when a requested approval status change
// is not in the transition table.
var ErrInvalidTransition = goerr.New("approval status transition not allowed")

// approvalTransitions is the exhaustive transition table. Approved is
// terminal: once an estimate is approved its status never changes again.
var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalStatusDraft:     {ApprovalStatusSubmitted},
	ApprovalStatusSubmitted: {ApprovalStatusApproved, ApprovalStatusRejected},
	ApprovalStatusRejected:  {ApprovalStatusDraft},
	ApprovalStatusApproved:  {},
}

// AllApprovalStatuses returns all valid approval statuses
func AllApprovalStatuses() []ApprovalStatus {
	return []ApprovalStatus{
		ApprovalStatusDraft,
		ApprovalStatusSubmitted,
		ApprovalStatusApproved,
		ApprovalStatusRejected,
	}
}

// IsValid checks if the approval status is valid
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusDraft,
		ApprovalStatusSubmitted,
		ApprovalStatusApproved,
		ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as draft for rows imported
// before the approval workflow existed.
func (s ApprovalStatus) Normalize() ApprovalStatus {
	if s == "" {
		return ApprovalStatusDraft
	}
	return s
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to next.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[s.Normalize()] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates a requested status change against the transition
// table. It is a pure function: the side-effecting persistence and audit
// steps live in the approval use case.
func (s ApprovalStatus) TransitionTo(next ApprovalStatus) (ApprovalStatus, error) {
	current := s.Normalize()
	if !current.CanTransitionTo(next) {
		return "", goerr.Wrap(ErrInvalidTransition, "cannot change approval status",
			goerr.V("from", current.String()),
			goerr.V("to", next.String()),
		)
	}
	return next, nil
}

// Editable reports whether assignments and risks owned by a WBS item in this
// status may be created, updated, or deleted. Inputs to an estimate are
// frozen from submit until an explicit reject-and-reset cycle.
func (s ApprovalStatus) Editable() bool {
	switch s.Normalize() {
	case ApprovalStatusDraft, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the approval status
func (s ApprovalStatus) String() string {
	return string(s)
}

// ParseApprovalStatus parses a string into an ApprovalStatus
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	status := ApprovalStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid approval status: %s", s)
	}
	return status, nil
}
