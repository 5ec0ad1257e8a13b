package model

import (
	"time"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// WBSItem is a work breakdown structure entry. It owns assignments and
// risks and carries the approval state that governs whether they may be
// edited.
type WBSItem struct {
	ID             int64
	ProjectID      int64
	Code           string
	Title          string
	ApprovalStatus types.ApprovalStatus
	Approver       string
	ApproverDate   *time.Time
	// EstimateRevision increases by exactly 1 on each approval and never
	// decreases.
	EstimateRevision int
	Requirements     string
	Assumptions      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApprovalPatch is the writable approval surface of a WBS item. It is
// applied atomically by WBSRepository.UpdateApproval, conditional on the
// status observed by the caller.
type ApprovalPatch struct {
	Status           types.ApprovalStatus
	Approver         string
	ApproverDate     *time.Time
	EstimateRevision int
}
