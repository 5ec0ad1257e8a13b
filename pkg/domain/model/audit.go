package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// AuditEvent records one successful approval workflow transition.
type AuditEvent struct {
	ID               string
	Actor            string
	Action           types.ApprovalAction
	WBSID            int64
	WBSCode          string
	WBSTitle         string
	NewStatus        types.ApprovalStatus
	EstimateRevision int
	// Comment is carried only here, never on the WBS row.
	Comment    string
	OccurredAt time.Time
}

// NewAuditEvent builds an audit event for a transition that has already
// been applied to the given WBS item.
func NewAuditEvent(actor string, action types.ApprovalAction, wbs *WBSItem, comment string) *AuditEvent {
	return &AuditEvent{
		ID:               uuid.NewString(),
		Actor:            actor,
		Action:           action,
		WBSID:            wbs.ID,
		WBSCode:          wbs.Code,
		WBSTitle:         wbs.Title,
		NewStatus:        wbs.ApprovalStatus,
		EstimateRevision: wbs.EstimateRevision,
		Comment:          comment,
		OccurredAt:       time.Now().UTC(),
	}
}
