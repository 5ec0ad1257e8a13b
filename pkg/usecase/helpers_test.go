package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
	"github.com/estima-lab/pertcost/pkg/domain/types"
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
			{Code: "PROB-H", Description: "High", Weight: dec("0.9")},
		},
		Severity: []config.WeightLevel{
			{Code: "SEV-M", Description: "Moderate", Weight: dec("0.5")},
			{Code: "SEV-C", Description: "Critical", Weight: dec("1.5")},
		},
		CostTypes: []config.LookupEntry{
			{Code: "LABOR", Description: "Labor"},
			{Code: "MATERIAL", Description: "Material"},
		},
		Regions: []config.LookupEntry{
			{Code: "EU", Description: "Europe"},
			{Code: "NA", Description: "North America"},
		},
		Resources: []config.LookupEntry{
			{Code: "ENG", Description: "Engineering"},
			{Code: "MFG", Description: "Manufacturing"},
		},
	}
}

func modelApprovalPatch(status types.ApprovalStatus) model.ApprovalPatch {
	return model.ApprovalPatch{Status: status}
}

func newTestRepo(t *testing.T) *memory.Memory {
	t.Helper()
	repo := memory.New()
	repo.SeedCatalog(testCatalog())
	return repo
}

func createWBS(t *testing.T, repo *memory.Memory, status types.ApprovalStatus) *model.WBSItem {
	t.Helper()
	ctx := context.Background()

	project, err := repo.Project().Create(ctx, &model.Project{Name: "Orbital Launcher"})
	gt.NoError(t, err).Required()

	wbs, err := repo.WBS().Create(ctx, &model.WBSItem{
		ProjectID:      project.ID,
		Code:           "1.2.3",
		Title:          "Avionics Integration",
		ApprovalStatus: status,
	})
	gt.NoError(t, err).Required()
	return wbs
}

func addAssignment(t *testing.T, repo *memory.Memory, wbsID int64, best, likely, worst string) *model.Assignment {
	t.Helper()

	created, err := repo.Assignment().Create(context.Background(), &model.Assignment{
		WBSID:          wbsID,
		ResourceCode:   "ENG",
		CostTypeCode:   "LABOR",
		BestEstimate:   dec(best),
		LikelyEstimate: dec(likely),
		WorstEstimate:  dec(worst),
	})
	gt.NoError(t, err).Required()
	return created
}

func addRisk(t *testing.T, repo *memory.Memory, wbsID int64, cost, probCode, sevCode string) *model.Risk {
	t.Helper()

	created, err := repo.Risk().Create(context.Background(), &model.Risk{
		WBSID:           wbsID,
		CategoryCode:    "TECH",
		RiskCost:        dec(cost),
		ProbabilityCode: probCode,
		SeverityCode:    sevCode,
	})
	gt.NoError(t, err).Required()
	return created
}
