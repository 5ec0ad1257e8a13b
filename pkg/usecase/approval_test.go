package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/types"
	"github.com/estima-lab/pertcost/pkg/usecase"
)

func TestApproval_FullCycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	approvedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	uc := usecase.New(repo, usecase.WithClock(func() time.Time { return approvedAt }))

	wbs := createWBS(t, repo, types.ApprovalStatusDraft)
	addAssignment(t, repo, wbs.ID, "40", "50", "60")

	submitted, err := uc.Approval.Submit(ctx, wbs.ID, "alice")
	gt.NoError(t, err).Required()
	gt.V(t, submitted.ApprovalStatus).Equal(types.ApprovalStatusSubmitted)
	gt.N(t, submitted.EstimateRevision).Equal(0)

	approved, err := uc.Approval.Approve(ctx, wbs.ID, "bob")
	gt.NoError(t, err).Required()
	gt.V(t, approved.ApprovalStatus).Equal(types.ApprovalStatusApproved)
	gt.N(t, approved.EstimateRevision).Equal(1)
	gt.S(t, approved.Approver).Equal("bob")
	gt.V(t, approved.ApproverDate).NotNil()
	gt.B(t, approved.ApproverDate.Equal(approvedAt)).True()

	events, err := uc.Approval.History(ctx, wbs.ID)
	gt.NoError(t, err).Required()
	gt.A(t, events).Length(2)
	gt.V(t, events[0].Action).Equal(types.ApprovalActionApprove)
	gt.V(t, events[0].NewStatus).Equal(types.ApprovalStatusApproved)
	gt.N(t, events[0].EstimateRevision).Equal(1)
	gt.S(t, events[0].Actor).Equal("bob")
	gt.V(t, events[1].Action).Equal(types.ApprovalActionSubmit)
	gt.S(t, events[1].Actor).Equal("alice")
}

func TestApproval_RejectAndResubmit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	uc := usecase.New(repo)

	wbs := createWBS(t, repo, types.ApprovalStatusDraft)
	addAssignment(t, repo, wbs.ID, "10", "20", "30")

	_, err := uc.Approval.Submit(ctx, wbs.ID, "alice")
	gt.NoError(t, err).Required()

	rejected, err := uc.Approval.Reject(ctx, wbs.ID, "bob", "likely estimate looks optimistic")
	gt.NoError(t, err).Required()
	gt.V(t, rejected.ApprovalStatus).Equal(types.ApprovalStatusRejected)
	// Rejection never bumps the revision.
	gt.N(t, rejected.EstimateRevision).Equal(0)
	gt.S(t, rejected.Approver).Equal("")

	events, err := uc.Approval.History(ctx, wbs.ID)
	gt.NoError(t, err).Required()
	gt.A(t, events).Length(2)
	gt.S(t, events[0].Comment).Equal("likely estimate looks optimistic")

	reset, err := uc.Approval.Reset(ctx, wbs.ID, "alice")
	gt.NoError(t, err).Required()
	gt.V(t, reset.ApprovalStatus).Equal(types.ApprovalStatusDraft)

	_, err = uc.Approval.Submit(ctx, wbs.ID, "alice")
	gt.NoError(t, err).Required()

	approved, err := uc.Approval.Approve(ctx, wbs.ID, "bob")
	gt.NoError(t, err).Required()
	gt.N(t, approved.EstimateRevision).Equal(1)

	events, err = uc.Approval.History(ctx, wbs.ID)
	gt.NoError(t, err).Required()
	gt.A(t, events).Length(5)
}

func TestApproval_SubmitRequiresAssignments(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	uc := usecase.New(repo)

	wbs := createWBS(t, repo, types.ApprovalStatusDraft)

	_, err := uc.Approval.Submit(ctx, wbs.ID, "alice")
	gt.Error(t, err)
	gt.B(t, errors.Is(err, usecase.ErrNoAssignments)).True()

	// The failed submit leaves no trace.
	got, err := repo.WBS().Get(ctx, wbs.ID)
	gt.NoError(t, err).Required()
	gt.V(t, got.ApprovalStatus).Equal(types.ApprovalStatusDraft)

	events, err := repo.Audit().ListByWBS(ctx, wbs.ID)
	gt.NoError(t, err).Required()
	gt.A(t, events).Length(0)
}

func TestApproval_InvalidTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status types.ApprovalStatus
		act    func(uc *usecase.UseCases, wbsID int64) error
	}{
		{
			name:   "approve from draft",
			status: types.ApprovalStatusDraft,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Approve(ctx, wbsID, "bob")
				return err
			},
		},
		{
			name:   "reject from draft",
			status: types.ApprovalStatusDraft,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Reject(ctx, wbsID, "bob", "")
				return err
			},
		},
		{
			name:   "submit from submitted",
			status: types.ApprovalStatusSubmitted,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Submit(ctx, wbsID, "alice")
				return err
			},
		},
		{
			name:   "reset from submitted",
			status: types.ApprovalStatusSubmitted,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Reset(ctx, wbsID, "alice")
				return err
			},
		},
		{
			name:   "submit from approved",
			status: types.ApprovalStatusApproved,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Submit(ctx, wbsID, "alice")
				return err
			},
		},
		{
			name:   "reset from approved",
			status: types.ApprovalStatusApproved,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Reset(ctx, wbsID, "alice")
				return err
			},
		},
		{
			name:   "approve from rejected",
			status: types.ApprovalStatusRejected,
			act: func(uc *usecase.UseCases, wbsID int64) error {
				_, err := uc.Approval.Approve(ctx, wbsID, "bob")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			uc := usecase.New(repo)
			wbs := createWBS(t, repo, tt.status)
			addAssignment(t, repo, wbs.ID, "10", "20", "30")

			err := tt.act(uc, wbs.ID)
			gt.Error(t, err)
			gt.B(t, errors.Is(err, types.ErrInvalidTransition)).True()

			// Status is untouched after a refused transition.
			got, err := repo.WBS().Get(context.Background(), wbs.ID)
			gt.NoError(t, err).Required()
			gt.V(t, got.ApprovalStatus).Equal(tt.status)
		})
	}
}

func TestApproval_WBSNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	uc := usecase.New(repo)

	_, err := uc.Approval.Submit(ctx, 999, "alice")
	gt.Error(t, err)
	gt.B(t, errors.Is(err, usecase.ErrWBSNotFound)).True()

	_, err = uc.Approval.History(ctx, 999)
	gt.Error(t, err)
	gt.B(t, errors.Is(err, usecase.ErrWBSNotFound)).True()
}

func TestApproval_StatusConflictSurfaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	uc := usecase.New(repo)

	wbs := createWBS(t, repo, types.ApprovalStatusDraft)
	addAssignment(t, repo, wbs.ID, "10", "20", "30")

	// Another actor wins the race between validation and write.
	_, err := repo.WBS().UpdateApproval(ctx, wbs.ID, types.ApprovalStatusDraft, modelApprovalPatch(types.ApprovalStatusSubmitted))
	gt.NoError(t, err).Required()

	_, err = repo.WBS().UpdateApproval(ctx, wbs.ID, types.ApprovalStatusDraft, modelApprovalPatch(types.ApprovalStatusSubmitted))
	gt.Error(t, err)
	gt.B(t, errors.Is(err, interfaces.ErrStatusConflict)).True()

	// The use case path still works from the actual current status.
	approved, err := uc.Approval.Approve(ctx, wbs.ID, "bob")
	gt.NoError(t, err).Required()
	gt.V(t, approved.ApprovalStatus).Equal(types.ApprovalStatusApproved)
}
