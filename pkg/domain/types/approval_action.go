package types

import "fmt"

// ApprovalAction represents an operation on the approval workflow
type ApprovalAction string

const (
	ApprovalActionSubmit  ApprovalAction = "SUBMIT"
	ApprovalActionApprove ApprovalAction = "APPROVE"
	ApprovalActionReject  ApprovalAction = "REJECT"
	ApprovalActionReset   ApprovalAction = "RESET"
)

// AllApprovalActions returns all valid approval actions
func AllApprovalActions() []ApprovalAction {
	return []ApprovalAction{
		ApprovalActionSubmit,
		ApprovalActionApprove,
		ApprovalActionReject,
		ApprovalActionReset,
	}
}

// IsValid checks if the approval action is valid
func (a ApprovalAction) IsValid() bool {
	switch a {
	case ApprovalActionSubmit,
		ApprovalActionApprove,
		ApprovalActionReject,
		ApprovalActionReset:
		return true
	default:
		return false
	}
}

// Target returns the approval status this action requests.
func (a ApprovalAction) Target() ApprovalStatus {
	switch a {
	case ApprovalActionSubmit:
		return ApprovalStatusSubmitted
	case ApprovalActionApprove:
		return ApprovalStatusApproved
	case ApprovalActionReject:
		return ApprovalStatusRejected
	case ApprovalActionReset:
		return ApprovalStatusDraft
	default:
		return ""
	}
}

// String returns the string representation of the approval action
func (a ApprovalAction) String() string {
	return string(a)
}

// ParseApprovalAction parses a string into an ApprovalAction
func ParseApprovalAction(s string) (ApprovalAction, error) {
	action := ApprovalAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid approval action: %s", s)
	}
	return action, nil
}
