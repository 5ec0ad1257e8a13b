package interfaces

import (
	"context"

	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type AuditRepository interface {
	// Emit records one approval workflow transition
	Emit(ctx context.Context, event *model.AuditEvent) error

	// ListByWBS retrieves the audit trail of a WBS item, newest first
	ListByWBS(ctx context.Context, wbsID int64) ([]*model.AuditEvent, error)
}
