package estimate_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
	"github.com/estima-lab/pertcost/pkg/estimate"
)

func TestGroupBy(t *testing.T) {
	ctx := context.Background()
	lookup := testLookup()

	t.Run("buckets sum per code and sort largest first", func(t *testing.T) {
		assignments := []*model.Assignment{
			{CostTypeCode: "LABOR", BestEstimate: dec("100"), LikelyEstimate: dec("100"), WorstEstimate: dec("100")},
			{CostTypeCode: "LABOR", BestEstimate: dec("150"), LikelyEstimate: dec("150"), WorstEstimate: dec("150")},
			{CostTypeCode: "MATERIAL", BestEstimate: dec("200"), LikelyEstimate: dec("200"), WorstEstimate: dec("200")},
		}

		items, err := estimate.GroupBy(ctx, assignments, types.DimensionCostType, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(2)

		gt.S(t, items[0].Code).Equal("LABOR")
		gt.S(t, items[0].Description).Equal("Labor")
		gt.S(t, items[0].TotalPert.StringFixed(2)).Equal("250.00")
		gt.N(t, items[0].AssignmentCount).Equal(2)

		gt.S(t, items[1].Code).Equal("MATERIAL")
		gt.S(t, items[1].TotalPert.StringFixed(2)).Equal("200.00")
		gt.N(t, items[1].AssignmentCount).Equal(1)
	})

	t.Run("missing optional code falls into unassigned bucket", func(t *testing.T) {
		assignments := []*model.Assignment{
			{CostTypeCode: "", BestEstimate: dec("300"), LikelyEstimate: dec("300"), WorstEstimate: dec("300")},
			{CostTypeCode: "LABOR", BestEstimate: dec("100"), LikelyEstimate: dec("100"), WorstEstimate: dec("100")},
		}

		items, err := estimate.GroupBy(ctx, assignments, types.DimensionCostType, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(2)

		gt.S(t, items[0].Code).Equal(estimate.UnassignedCode)
		gt.S(t, items[0].Description).Equal(estimate.UnassignedDescription)
		gt.S(t, items[0].TotalPert.StringFixed(2)).Equal("300.00")
	})

	t.Run("unresolved code keeps the raw code as description", func(t *testing.T) {
		assignments := []*model.Assignment{
			{CostTypeCode: "TOOLING", BestEstimate: dec("10"), LikelyEstimate: dec("10"), WorstEstimate: dec("10")},
		}

		items, err := estimate.GroupBy(ctx, assignments, types.DimensionCostType, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(1)
		gt.S(t, items[0].Code).Equal("TOOLING")
		gt.S(t, items[0].Description).Equal("TOOLING")
	})

	t.Run("equal totals break ties on code", func(t *testing.T) {
		assignments := []*model.Assignment{
			{CostTypeCode: "MATERIAL", BestEstimate: dec("100"), LikelyEstimate: dec("100"), WorstEstimate: dec("100")},
			{CostTypeCode: "LABOR", BestEstimate: dec("100"), LikelyEstimate: dec("100"), WorstEstimate: dec("100")},
		}

		items, err := estimate.GroupBy(ctx, assignments, types.DimensionCostType, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(2)
		gt.S(t, items[0].Code).Equal("LABOR")
		gt.S(t, items[1].Code).Equal("MATERIAL")
	})

	t.Run("resource dimension groups by mandatory code", func(t *testing.T) {
		assignments := []*model.Assignment{
			{ResourceCode: "ENG", BestEstimate: dec("100"), LikelyEstimate: dec("100"), WorstEstimate: dec("100")},
			{ResourceCode: "MFG", BestEstimate: dec("50"), LikelyEstimate: dec("50"), WorstEstimate: dec("50")},
		}

		items, err := estimate.GroupBy(ctx, assignments, types.DimensionResource, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(2)
		gt.S(t, items[0].Code).Equal("ENG")
		gt.S(t, items[0].Description).Equal("Engineering")
	})

	t.Run("invalid dimension is rejected", func(t *testing.T) {
		_, err := estimate.GroupBy(ctx, nil, types.Dimension("bogus"), lookup)
		gt.Error(t, err)
	})

	t.Run("empty input yields empty breakdown", func(t *testing.T) {
		items, err := estimate.GroupBy(ctx, nil, types.DimensionCostType, lookup)
		gt.NoError(t, err).Required()
		gt.A(t, items).Length(0)
	})
}
