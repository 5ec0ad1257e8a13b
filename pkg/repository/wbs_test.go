package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

func runWBSRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential IDs and defaults to draft", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		project, err := repo.Project().Create(ctx, &model.Project{Name: "P"})
		gt.NoError(t, err).Required()

		wbs1, err := repo.WBS().Create(ctx, &model.WBSItem{
			ProjectID: project.ID,
			Code:      "1.1",
			Title:     "Structure",
		})
		gt.NoError(t, err).Required()
		gt.V(t, wbs1.ID).NotEqual(int64(0))
		gt.V(t, wbs1.ApprovalStatus).Equal(types.ApprovalStatusDraft)
		gt.N(t, wbs1.EstimateRevision).Equal(0)
		gt.B(t, wbs1.CreatedAt.IsZero()).False()

		wbs2, err := repo.WBS().Create(ctx, &model.WBSItem{
			ProjectID: project.ID,
			Code:      "1.2",
			Title:     "Avionics",
		})
		gt.NoError(t, err).Required()
		gt.V(t, wbs2.ID).NotEqual(wbs1.ID)
	})

	t.Run("Get retrieves existing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created := createTestWBS(t, repo)

		retrieved, err := repo.WBS().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.N(t, retrieved.ID).Equal(created.ID)
		gt.S(t, retrieved.Code).Equal(created.Code)
		gt.S(t, retrieved.Title).Equal(created.Title)
	})

	t.Run("Get returns ErrNotFound for missing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WBS().Get(ctx, time.Now().UnixNano())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByProject returns only that project's items in ID order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p1, err := repo.Project().Create(ctx, &model.Project{Name: "P1"})
		gt.NoError(t, err).Required()
		p2, err := repo.Project().Create(ctx, &model.Project{Name: "P2"})
		gt.NoError(t, err).Required()

		w1, err := repo.WBS().Create(ctx, &model.WBSItem{ProjectID: p1.ID, Code: "1.1", Title: "A"})
		gt.NoError(t, err).Required()
		w2, err := repo.WBS().Create(ctx, &model.WBSItem{ProjectID: p1.ID, Code: "1.2", Title: "B"})
		gt.NoError(t, err).Required()
		_, err = repo.WBS().Create(ctx, &model.WBSItem{ProjectID: p2.ID, Code: "2.1", Title: "C"})
		gt.NoError(t, err).Required()

		items, err := repo.WBS().ListByProject(ctx, p1.ID)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(2)
		gt.N(t, items[0].ID).Equal(w1.ID)
		gt.N(t, items[1].ID).Equal(w2.ID)
	})

	t.Run("UpdateApproval applies the patch when status matches", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created := createTestWBS(t, repo)

		approvedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
		updated, err := repo.WBS().UpdateApproval(ctx, created.ID, types.ApprovalStatusDraft, model.ApprovalPatch{
			Status:           types.ApprovalStatusSubmitted,
			Approver:         "bob",
			ApproverDate:     &approvedAt,
			EstimateRevision: 3,
		})
		gt.NoError(t, err).Required()
		gt.V(t, updated.ApprovalStatus).Equal(types.ApprovalStatusSubmitted)
		gt.S(t, updated.Approver).Equal("bob")
		gt.V(t, updated.ApproverDate).NotNil()
		gt.N(t, updated.EstimateRevision).Equal(3)

		retrieved, err := repo.WBS().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.V(t, retrieved.ApprovalStatus).Equal(types.ApprovalStatusSubmitted)
		gt.N(t, retrieved.EstimateRevision).Equal(3)
	})

	t.Run("UpdateApproval fails with ErrStatusConflict when status moved", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created := createTestWBS(t, repo)

		_, err := repo.WBS().UpdateApproval(ctx, created.ID, types.ApprovalStatusDraft, model.ApprovalPatch{
			Status: types.ApprovalStatusSubmitted,
		})
		gt.NoError(t, err).Required()

		// Second writer still believes the item is in draft.
		_, err = repo.WBS().UpdateApproval(ctx, created.ID, types.ApprovalStatusDraft, model.ApprovalPatch{
			Status: types.ApprovalStatusSubmitted,
		})
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrStatusConflict)).True()

		retrieved, err := repo.WBS().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.V(t, retrieved.ApprovalStatus).Equal(types.ApprovalStatusSubmitted)
	})

	t.Run("UpdateApproval returns ErrNotFound for missing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.WBS().UpdateApproval(ctx, time.Now().UnixNano(), types.ApprovalStatusDraft, model.ApprovalPatch{
			Status: types.ApprovalStatusSubmitted,
		})
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestWBSRepository_Memory(t *testing.T) {
	runWBSRepositoryTest(t, newMemoryRepo)
}

func TestWBSRepository_Firestore(t *testing.T) {
	runWBSRepositoryTest(t, newFirestoreRepo)
}
