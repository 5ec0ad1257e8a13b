package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
	"github.com/estima-lab/pertcost/pkg/estimate"
)

// wbsLoadLimit caps concurrent per-WBS fetches during a project roll-up.
const wbsLoadLimit = 8

// EstimationUseCase computes cost summaries. It holds no state and caches
// nothing: every call recomputes from the currently persisted assignment
// and risk sets, so a read immediately after a write is always consistent.
type EstimationUseCase struct {
	repo interfaces.Repository
}

func NewEstimationUseCase(repo interfaces.Repository) *EstimationUseCase {
	return &EstimationUseCase{repo: repo}
}

// GetWBSCostSummary computes the aggregated cost picture of one WBS item:
// PERT total, combined standard deviation, 80% confidence interval, risk
// exposure, and the risk-adjusted estimate.
func (uc *EstimationUseCase) GetWBSCostSummary(ctx context.Context, wbsID int64) (*model.WBSCostSummary, error) {
	wbs, err := getWBS(ctx, uc.repo, wbsID)
	if err != nil {
		return nil, err
	}

	assignments, err := uc.repo.Assignment().ListByWBS(ctx, wbsID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments", goerr.V(WBSIDKey, wbsID))
	}

	risks, err := uc.repo.Risk().ListByWBS(ctx, wbsID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(WBSIDKey, wbsID))
	}

	return uc.summarize(ctx, wbs, assignments, risks)
}

// GetProjectEstimate computes the full project roll-up: totals across all
// WBS items, a breakdown per classification dimension, and per-WBS
// summaries.
func (uc *EstimationUseCase) GetProjectEstimate(ctx context.Context, projectID int64) (*model.ProjectEstimate, error) {
	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrProjectNotFound, "no such project", goerr.V(ProjectIDKey, projectID))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}

	wbsItems, err := uc.repo.WBS().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list wbs items", goerr.V(ProjectIDKey, projectID))
	}

	assignmentsByWBS := make([][]*model.Assignment, len(wbsItems))
	risksByWBS := make([][]*model.Risk, len(wbsItems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wbsLoadLimit)
	for i, wbs := range wbsItems {
		g.Go(func() error {
			assignments, err := uc.repo.Assignment().ListByWBS(gctx, wbs.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to list assignments", goerr.V(WBSIDKey, wbs.ID))
			}
			risks, err := uc.repo.Risk().ListByWBS(gctx, wbs.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to list risks", goerr.V(WBSIDKey, wbs.ID))
			}
			assignmentsByWBS[i] = assignments
			risksByWBS[i] = risks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var allAssignments []*model.Assignment
	var allRisks []*model.Risk
	for i := range wbsItems {
		allAssignments = append(allAssignments, assignmentsByWBS[i]...)
		allRisks = append(allRisks, risksByWBS[i]...)
	}

	rollup := estimate.Aggregate(allAssignments)
	combinedStdDev := rollup.CombinedStdDev()
	ciLow, ciHigh := estimate.Interval(rollup.TotalPert, combinedStdDev)

	totalExposure, err := estimate.TotalExposure(ctx, allRisks, uc.repo.Lookup())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute risk exposure", goerr.V(ProjectIDKey, projectID))
	}

	result := &model.ProjectEstimate{
		ProjectID:            project.ID,
		ProjectName:          project.Name,
		WBSItemCount:         len(wbsItems),
		AssignmentCount:      len(allAssignments),
		RiskCount:            len(allRisks),
		TotalPert:            rollup.TotalPert,
		TotalStdDev:          combinedStdDev,
		CI80Low:              ciLow,
		CI80High:             ciHigh,
		TotalRiskExposure:    totalExposure,
		RiskAdjustedEstimate: rollup.TotalPert.Add(totalExposure),
	}

	breakdowns := map[types.Dimension]*[]model.BreakdownItem{
		types.DimensionCostType:            &result.ByCostType,
		types.DimensionRegion:              &result.ByRegion,
		types.DimensionResource:            &result.ByResource,
		types.DimensionSupplier:            &result.BySupplier,
		types.DimensionBusinessArea:        &result.ByBusinessArea,
		types.DimensionEstimatingTechnique: &result.ByEstimatingTechnique,
	}
	for dimension, target := range breakdowns {
		items, err := estimate.GroupBy(ctx, allAssignments, dimension, uc.repo.Lookup())
		if err != nil {
			return nil, err
		}
		*target = items
	}

	result.WBSSummaries = make([]model.WBSCostSummary, 0, len(wbsItems))
	for i, wbs := range wbsItems {
		summary, err := uc.summarize(ctx, wbs, assignmentsByWBS[i], risksByWBS[i])
		if err != nil {
			return nil, err
		}
		result.WBSSummaries = append(result.WBSSummaries, *summary)
	}

	return result, nil
}

func (uc *EstimationUseCase) summarize(ctx context.Context, wbs *model.WBSItem, assignments []*model.Assignment, risks []*model.Risk) (*model.WBSCostSummary, error) {
	rollup := estimate.Aggregate(assignments)
	combinedStdDev := rollup.CombinedStdDev()
	ciLow, ciHigh := estimate.Interval(rollup.TotalPert, combinedStdDev)

	totalExposure, err := estimate.TotalExposure(ctx, risks, uc.repo.Lookup())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute risk exposure", goerr.V(WBSIDKey, wbs.ID))
	}

	return &model.WBSCostSummary{
		WBSID:                wbs.ID,
		WBSCode:              wbs.Code,
		WBSTitle:             wbs.Title,
		AssignmentCount:      rollup.Count,
		TotalPert:            rollup.TotalPert,
		TotalStdDev:          combinedStdDev,
		CI80Low:              ciLow,
		CI80High:             ciHigh,
		RiskCount:            len(risks),
		TotalRiskExposure:    totalExposure,
		RiskAdjustedEstimate: rollup.TotalPert.Add(totalExposure),
		ApprovalStatus:       wbs.ApprovalStatus.Normalize(),
	}, nil
}
