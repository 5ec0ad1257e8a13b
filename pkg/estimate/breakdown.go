package estimate

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// Bucket used for assignments that carry no code on an optional dimension.
const (
	UnassignedCode        = "UNASSIGNED"
	UnassignedDescription = "Unassigned"
)

// GroupBy buckets assignments by their classification code on the given
// dimension, summing PERT estimates per bucket. Grouping happens in memory
// so the PERT arithmetic stays in this package instead of leaking into
// storage queries. Results are sorted by total PERT, largest first; ties
// break on code for deterministic output.
func GroupBy(ctx context.Context, assignments []*model.Assignment, dimension types.Dimension, lookup interfaces.LookupRepository) ([]model.BreakdownItem, error) {
	if !dimension.IsValid() {
		return nil, goerr.New("invalid breakdown dimension", goerr.V("dimension", dimension.String()))
	}

	type bucket struct {
		total decimal.Decimal
		count int
	}
	groups := make(map[string]*bucket)

	for _, a := range assignments {
		code := a.CodeFor(dimension)
		if code == "" && !dimension.Required() {
			code = UnassignedCode
		}

		b, ok := groups[code]
		if !ok {
			b = &bucket{total: decimal.Zero}
			groups[code] = b
		}
		b.total = b.total.Add(a.PertEstimate())
		b.count++
	}

	items := make([]model.BreakdownItem, 0, len(groups))
	for code, b := range groups {
		description, err := resolveDescription(ctx, dimension, code, lookup)
		if err != nil {
			return nil, err
		}
		items = append(items, model.BreakdownItem{
			Code:            code,
			Description:     description,
			TotalPert:       b.total,
			AssignmentCount: b.count,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].TotalPert.Equal(items[j].TotalPert) {
			return items[i].TotalPert.GreaterThan(items[j].TotalPert)
		}
		return items[i].Code < items[j].Code
	})

	return items, nil
}

// resolveDescription resolves a bucket code to its display description. An
// unresolved code keeps the raw code as its own description rather than
// failing the whole breakdown.
func resolveDescription(ctx context.Context, dimension types.Dimension, code string, lookup interfaces.LookupRepository) (string, error) {
	if code == UnassignedCode && !dimension.Required() {
		return UnassignedDescription, nil
	}

	description, err := lookup.Description(ctx, dimension, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrLookupMiss) {
			return code, nil
		}
		return "", goerr.Wrap(err, "failed to resolve breakdown description",
			goerr.V("dimension", dimension.String()), goerr.V("code", code))
	}
	return description, nil
}
