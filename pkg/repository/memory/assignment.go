package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type assignmentRepository struct {
	mu          sync.RWMutex
	assignments map[int64]*model.Assignment
	nextID      int64
}

func newAssignmentRepository() *assignmentRepository {
	return &assignmentRepository{
		assignments: make(map[int64]*model.Assignment),
		nextID:      1,
	}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyAssignment(assignment)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.assignments[created.ID] = created
	return copyAssignment(created), nil
}

func (r *assignmentRepository) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignment, exists := r.assignments[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	return copyAssignment(assignment), nil
}

func (r *assignmentRepository) ListByWBS(ctx context.Context, wbsID int64) ([]*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assignments := make([]*model.Assignment, 0)
	for _, a := range r.assignments {
		if a.WBSID == wbsID {
			assignments = append(assignments, copyAssignment(a))
		}
	}

	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (r *assignmentRepository) CountByWBS(ctx context.Context, wbsID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, a := range r.assignments {
		if a.WBSID == wbsID {
			count++
		}
	}
	return count, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assignments[assignment.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", assignment.ID))
	}

	updated := copyAssignment(assignment)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assignments[updated.ID] = updated
	return copyAssignment(updated), nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assignments[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	delete(r.assignments, id)
	return nil
}

func copyAssignment(a *model.Assignment) *model.Assignment {
	copied := *a
	return &copied
}
