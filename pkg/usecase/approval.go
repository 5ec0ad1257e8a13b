package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
	"github.com/estima-lab/pertcost/pkg/utils/logging"
)

// ApprovalUseCase drives the WBS approval workflow. The transition table
// itself is a pure function on types.ApprovalStatus; this use case adds the
// side effects: the conditional write to the WBS row and the audit event.
type ApprovalUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewApprovalUseCase(repo interfaces.Repository, now func() time.Time) *ApprovalUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ApprovalUseCase{repo: repo, now: now}
}

// Submit moves a WBS item from draft to submitted. A WBS item with no
// assignments has nothing to review and cannot be submitted.
func (uc *ApprovalUseCase) Submit(ctx context.Context, wbsID int64, actor string) (*model.WBSItem, error) {
	return uc.transition(ctx, wbsID, actor, types.ApprovalActionSubmit, "")
}

// Approve moves a WBS item from submitted to approved, records the
// approver and timestamp, and bumps the estimate revision by one. Approved
// is terminal.
func (uc *ApprovalUseCase) Approve(ctx context.Context, wbsID int64, actor string) (*model.WBSItem, error) {
	return uc.transition(ctx, wbsID, actor, types.ApprovalActionApprove, "")
}

// Reject moves a WBS item from submitted to rejected. The comment is
// carried only in the audit event.
func (uc *ApprovalUseCase) Reject(ctx context.Context, wbsID int64, actor, comment string) (*model.WBSItem, error) {
	return uc.transition(ctx, wbsID, actor, types.ApprovalActionReject, comment)
}

// Reset moves a rejected WBS item back to draft so its inputs can be
// edited again.
func (uc *ApprovalUseCase) Reset(ctx context.Context, wbsID int64, actor string) (*model.WBSItem, error) {
	return uc.transition(ctx, wbsID, actor, types.ApprovalActionReset, "")
}

// History returns the audit trail of a WBS item, newest first.
func (uc *ApprovalUseCase) History(ctx context.Context, wbsID int64) ([]*model.AuditEvent, error) {
	if _, err := getWBS(ctx, uc.repo, wbsID); err != nil {
		return nil, err
	}

	events, err := uc.repo.Audit().ListByWBS(ctx, wbsID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audit events", goerr.V(WBSIDKey, wbsID))
	}
	return events, nil
}

func (uc *ApprovalUseCase) transition(ctx context.Context, wbsID int64, actor string, action types.ApprovalAction, comment string) (*model.WBSItem, error) {
	wbs, err := getWBS(ctx, uc.repo, wbsID)
	if err != nil {
		return nil, err
	}

	observed := wbs.ApprovalStatus.Normalize()
	next, err := observed.TransitionTo(action.Target())
	if err != nil {
		return nil, err
	}

	if action == types.ApprovalActionSubmit {
		count, err := uc.repo.Assignment().CountByWBS(ctx, wbsID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count assignments", goerr.V(WBSIDKey, wbsID))
		}
		if count == 0 {
			return nil, goerr.Wrap(ErrNoAssignments, "cannot submit for approval", goerr.V(WBSIDKey, wbsID))
		}
	}

	patch := model.ApprovalPatch{
		Status:           next,
		Approver:         wbs.Approver,
		ApproverDate:     wbs.ApproverDate,
		EstimateRevision: wbs.EstimateRevision,
	}
	if action == types.ApprovalActionApprove {
		approvedAt := uc.now()
		patch.Approver = actor
		patch.ApproverDate = &approvedAt
		patch.EstimateRevision = wbs.EstimateRevision + 1
	}

	// Conditional on the status we just validated: a concurrent transition
	// in between fails the write instead of silently double-applying.
	updated, err := uc.repo.WBS().UpdateApproval(ctx, wbsID, observed, patch)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			return nil, goerr.Wrap(err, "approval state changed while processing",
				goerr.V(WBSIDKey, wbsID), goerr.V("action", action.String()))
		}
		return nil, goerr.Wrap(err, "failed to update approval state", goerr.V(WBSIDKey, wbsID))
	}

	event := model.NewAuditEvent(actor, action, updated, comment)
	if err := uc.repo.Audit().Emit(ctx, event); err != nil {
		return nil, goerr.Wrap(err, "failed to emit audit event", goerr.V(WBSIDKey, wbsID))
	}

	logging.From(ctx).Info("approval transition",
		"wbs_id", updated.ID,
		"action", action.String(),
		"from", observed.String(),
		"to", updated.ApprovalStatus.String(),
		"actor", actor,
		"estimate_revision", updated.EstimateRevision,
	)

	return updated, nil
}
