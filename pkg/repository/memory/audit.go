package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type auditRepository struct {
	mu     sync.RWMutex
	events []*model.AuditEvent
}

func newAuditRepository() *auditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Emit(ctx context.Context, event *model.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

func (r *auditRepository) ListByWBS(ctx context.Context, wbsID int64) ([]*model.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*model.AuditEvent, 0)
	for _, event := range r.events {
		if event.WBSID == wbsID {
			copied := *event
			events = append(events, &copied)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})
	return events, nil
}
