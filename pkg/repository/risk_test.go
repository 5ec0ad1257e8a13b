package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

func runRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create preserves fields and defaults DateIdentified", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wbs := createTestWBS(t, repo)

		created, err := repo.Risk().Create(ctx, &model.Risk{
			WBSID:           wbs.ID,
			CategoryCode:    "TECH",
			RiskCost:        dec("10000.50"),
			ProbabilityCode: "PROB-M",
			SeverityCode:    "SEV-C",
			MitigationPlan:  "qualify a second supplier",
		})
		gt.NoError(t, err).Required()
		gt.V(t, created.ID).NotEqual(int64(0))
		gt.B(t, created.RiskCost.Equal(dec("10000.50"))).True()
		gt.B(t, created.DateIdentified.IsZero()).False()

		retrieved, err := repo.Risk().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.S(t, retrieved.CategoryCode).Equal("TECH")
		gt.S(t, retrieved.MitigationPlan).Equal("qualify a second supplier")
		gt.B(t, retrieved.RiskCost.Equal(dec("10000.50"))).True()
	})

	t.Run("Create keeps an explicit DateIdentified", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wbs := createTestWBS(t, repo)

		identified := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		created, err := repo.Risk().Create(ctx, &model.Risk{
			WBSID:          wbs.ID,
			RiskCost:       dec("500"),
			DateIdentified: identified,
		})
		gt.NoError(t, err).Required()
		gt.B(t, created.DateIdentified.Equal(identified)).True()
	})

	t.Run("Get returns ErrNotFound for missing risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().Get(ctx, time.Now().UnixNano())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByWBS scopes to one item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wbs1 := createTestWBS(t, repo)
		wbs2 := createTestWBS(t, repo)

		for range 2 {
			_, err := repo.Risk().Create(ctx, &model.Risk{WBSID: wbs1.ID, RiskCost: dec("100")})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Risk().Create(ctx, &model.Risk{WBSID: wbs2.ID, RiskCost: dec("100")})
		gt.NoError(t, err).Required()

		risks, err := repo.Risk().ListByWBS(ctx, wbs1.ID)
		gt.NoError(t, err).Required()
		gt.A(t, risks).Length(2)

		count, err := repo.Risk().CountByWBS(ctx, wbs1.ID)
		gt.NoError(t, err).Required()
		gt.N(t, count).Equal(2)
	})

	t.Run("Update and Delete round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wbs := createTestWBS(t, repo)

		created, err := repo.Risk().Create(ctx, &model.Risk{
			WBSID:           wbs.ID,
			RiskCost:        dec("1000"),
			ProbabilityCode: "PROB-L",
			SeverityCode:    "SEV-M",
		})
		gt.NoError(t, err).Required()

		created.ProbabilityCode = "PROB-M"
		created.RiskCost = dec("2000")
		updated, err := repo.Risk().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.S(t, updated.ProbabilityCode).Equal("PROB-M")
		gt.B(t, updated.RiskCost.Equal(dec("2000"))).True()

		gt.NoError(t, repo.Risk().Delete(ctx, created.ID))

		_, err = repo.Risk().Get(ctx, created.ID)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestRiskRepository_Memory(t *testing.T) {
	runRiskRepositoryTest(t, newMemoryRepo)
}

func TestRiskRepository_Firestore(t *testing.T) {
	runRiskRepositoryTest(t, newFirestoreRepo)
}
