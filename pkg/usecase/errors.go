package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrWBSNotFound        = errors.New("wbs item not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrRiskNotFound       = errors.New("risk not found")

	// Validation errors
	ErrNoAssignments   = errors.New("wbs item has no assignments")
	ErrResourceUnknown = errors.New("resource code not found")

	// Conflict errors
	ErrEditBlocked = errors.New("wbs item is not editable")
)

// Context keys for error values
const (
	WBSIDKey        = "wbs_id"
	ProjectIDKey    = "project_id"
	AssignmentIDKey = "assignment_id"
	RiskIDKey       = "risk_id"
	StatusKey       = "approval_status"
)
