package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
	"github.com/estima-lab/pertcost/pkg/repository/firestore"
	"github.com/estima-lab/pertcost/pkg/repository/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() *config.Catalog {
	return &config.Catalog{
		Probability: []config.WeightLevel{
			{Code: "PROB-L", Description: "Low", Weight: dec("0.1")},
			{Code: "PROB-M", Description: "Medium", Weight: dec("0.5")},
		},
		Severity: []config.WeightLevel{
			{Code: "SEV-M", Description: "Moderate", Weight: dec("0.5")},
			{Code: "SEV-C", Description: "Critical", Weight: dec("1.5")},
		},
		CostTypes: []config.LookupEntry{
			{Code: "LABOR", Description: "Labor"},
		},
		Resources: []config.LookupEntry{
			{Code: "ENG", Description: "Engineering"},
		},
	}
}

func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	repo := memory.New()
	repo.SeedCatalog(testCatalog())
	return repo
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.SeedCatalog(ctx, testCatalog())).Required()
	return repo
}

func createTestWBS(t *testing.T, repo interfaces.Repository) *model.WBSItem {
	t.Helper()
	ctx := context.Background()

	project, err := repo.Project().Create(ctx, &model.Project{Name: "Test Project"})
	gt.NoError(t, err).Required()

	wbs, err := repo.WBS().Create(ctx, &model.WBSItem{
		ProjectID: project.ID,
		Code:      "1.0",
		Title:     "Test Item",
	})
	gt.NoError(t, err).Required()
	return wbs
}
