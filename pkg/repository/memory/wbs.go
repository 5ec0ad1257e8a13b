package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

type wbsRepository struct {
	mu     sync.RWMutex
	items  map[int64]*model.WBSItem
	nextID int64
}

func newWBSRepository() *wbsRepository {
	return &wbsRepository{
		items:  make(map[int64]*model.WBSItem),
		nextID: 1,
	}
}

func (r *wbsRepository) Create(ctx context.Context, wbs *model.WBSItem) (*model.WBSItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &model.WBSItem{
		ID:               r.nextID,
		ProjectID:        wbs.ProjectID,
		Code:             wbs.Code,
		Title:            wbs.Title,
		ApprovalStatus:   wbs.ApprovalStatus.Normalize(),
		Approver:         wbs.Approver,
		ApproverDate:     copyTime(wbs.ApproverDate),
		EstimateRevision: wbs.EstimateRevision,
		Requirements:     wbs.Requirements,
		Assumptions:      wbs.Assumptions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.nextID++

	r.items[created.ID] = created
	return copyWBS(created), nil
}

func (r *wbsRepository) Get(ctx context.Context, id int64) (*model.WBSItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wbs, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "wbs item not found", goerr.V("id", id))
	}

	return copyWBS(wbs), nil
}

func (r *wbsRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.WBSItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.WBSItem, 0)
	for _, wbs := range r.items {
		if wbs.ProjectID == projectID {
			items = append(items, copyWBS(wbs))
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// UpdateApproval is the compare-and-set half of the approval state machine:
// the whole check-then-write runs under the write lock.
func (r *wbsRepository) UpdateApproval(ctx context.Context, id int64, from types.ApprovalStatus, patch model.ApprovalPatch) (*model.WBSItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "wbs item not found", goerr.V("id", id))
	}

	if existing.ApprovalStatus.Normalize() != from.Normalize() {
		return nil, goerr.Wrap(interfaces.ErrStatusConflict, "wbs item moved to another status",
			goerr.V("id", id),
			goerr.V("expected", from.Normalize().String()),
			goerr.V("actual", existing.ApprovalStatus.Normalize().String()),
		)
	}

	existing.ApprovalStatus = patch.Status
	existing.Approver = patch.Approver
	existing.ApproverDate = copyTime(patch.ApproverDate)
	existing.EstimateRevision = patch.EstimateRevision
	existing.UpdatedAt = time.Now().UTC()

	return copyWBS(existing), nil
}

func copyWBS(w *model.WBSItem) *model.WBSItem {
	copied := *w
	copied.ApproverDate = copyTime(w.ApproverDate)
	return &copied
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
