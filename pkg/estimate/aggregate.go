// Package estimate holds the pure estimation engines: PERT aggregation,
// confidence intervals, risk exposure, and breakdown grouping. Nothing in
// this package caches or mutates state; every call recomputes from the
// records it is given.
package estimate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/model"
)

// Rollup is the combined three-point estimate over a set of assignments.
type Rollup struct {
	Count     int
	TotalPert decimal.Decimal
	// TotalVariance is the sum of squared standard deviations. Variances,
	// not standard deviations, are additive across independent estimates.
	TotalVariance decimal.Decimal
}

// Aggregate sums per-assignment PERT estimates and combines their
// uncertainties in quadrature.
func Aggregate(assignments []*model.Assignment) Rollup {
	r := Rollup{
		Count:         len(assignments),
		TotalPert:     decimal.Zero,
		TotalVariance: decimal.Zero,
	}

	for _, a := range assignments {
		r.TotalPert = r.TotalPert.Add(a.PertEstimate())
		sd := a.StdDeviation()
		r.TotalVariance = r.TotalVariance.Add(sd.Mul(sd))
	}

	return r
}

// CombinedStdDev returns sqrt(total variance).
func (r Rollup) CombinedStdDev() decimal.Decimal {
	v := r.TotalVariance.InexactFloat64()
	if v <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Sqrt(v))
}
