package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// AssignmentUseCase manages resource assignments. Every mutation passes the
// edit guard on the owning WBS item first, and the resource code must
// resolve in the resource table.
type AssignmentUseCase struct {
	repo interfaces.Repository
}

func NewAssignmentUseCase(repo interfaces.Repository) *AssignmentUseCase {
	return &AssignmentUseCase{repo: repo}
}

func (uc *AssignmentUseCase) Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	if _, err := requireEditable(ctx, uc.repo, assignment.WBSID); err != nil {
		return nil, err
	}

	if err := uc.validateResourceCode(ctx, assignment.ResourceCode); err != nil {
		return nil, err
	}

	created, err := uc.repo.Assignment().Create(ctx, assignment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assignment", goerr.V(WBSIDKey, assignment.WBSID))
	}

	return created, nil
}

func (uc *AssignmentUseCase) Update(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	existing, err := uc.get(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	if _, err := requireEditable(ctx, uc.repo, existing.WBSID); err != nil {
		return nil, err
	}

	if assignment.ResourceCode != existing.ResourceCode {
		if err := uc.validateResourceCode(ctx, assignment.ResourceCode); err != nil {
			return nil, err
		}
	}

	// An assignment never moves between WBS items.
	assignment.WBSID = existing.WBSID

	updated, err := uc.repo.Assignment().Update(ctx, assignment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assignment", goerr.V(AssignmentIDKey, assignment.ID))
	}

	return updated, nil
}

func (uc *AssignmentUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := requireEditable(ctx, uc.repo, existing.WBSID); err != nil {
		return err
	}

	if err := uc.repo.Assignment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assignment", goerr.V(AssignmentIDKey, id))
	}

	return nil
}

func (uc *AssignmentUseCase) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	return uc.get(ctx, id)
}

func (uc *AssignmentUseCase) ListByWBS(ctx context.Context, wbsID int64) ([]*model.Assignment, error) {
	assignments, err := uc.repo.Assignment().ListByWBS(ctx, wbsID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments", goerr.V(WBSIDKey, wbsID))
	}
	return assignments, nil
}

func (uc *AssignmentUseCase) get(ctx context.Context, id int64) (*model.Assignment, error) {
	assignment, err := uc.repo.Assignment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAssignmentNotFound, "no such assignment", goerr.V(AssignmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V(AssignmentIDKey, id))
	}
	return assignment, nil
}

func (uc *AssignmentUseCase) validateResourceCode(ctx context.Context, code string) error {
	if code == "" {
		return goerr.Wrap(ErrResourceUnknown, "resource code is required")
	}

	if _, err := uc.repo.Lookup().Description(ctx, types.DimensionResource, code); err != nil {
		if errors.Is(err, interfaces.ErrLookupMiss) {
			return goerr.Wrap(ErrResourceUnknown, "unknown resource code", goerr.V("resource_code", code))
		}
		return goerr.Wrap(err, "failed to validate resource code", goerr.V("resource_code", code))
	}

	return nil
}
