package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

var (
	four = decimal.NewFromInt(4)
	six  = decimal.NewFromInt(6)
)

// Assignment allocates a resource to a WBS item with a three-point cost
// estimate. The PERT estimate and standard deviation are derived values,
// never persisted.
type Assignment struct {
	ID           int64
	WBSID        int64
	ResourceCode string

	// Optional classification codes. Empty means unassigned.
	SupplierCode            string
	CostTypeCode            string
	RegionCode              string
	BusinessAreaCode        string
	EstimatingTechniqueCode string

	BestEstimate   decimal.Decimal
	LikelyEstimate decimal.Decimal
	WorstEstimate  decimal.Decimal

	// Tracking percentages, each 0-100.
	DutyPct          decimal.Decimal
	ImportContentPct decimal.Decimal
	AIIPct           decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PertEstimate returns (best + 4*likely + worst) / 6.
func (a *Assignment) PertEstimate() decimal.Decimal {
	return a.BestEstimate.Add(a.LikelyEstimate.Mul(four)).Add(a.WorstEstimate).Div(six)
}

// StdDeviation returns (worst - best) / 6. Estimate ordering is not
// validated, so inconsistent inputs (worst < best) yield a negative value;
// callers square it before combining, which absorbs the sign.
func (a *Assignment) StdDeviation() decimal.Decimal {
	return a.WorstEstimate.Sub(a.BestEstimate).Div(six)
}

// CodeFor returns the classification code of this assignment on the given
// dimension, or empty when unset.
func (a *Assignment) CodeFor(d types.Dimension) string {
	switch d {
	case types.DimensionCostType:
		return a.CostTypeCode
	case types.DimensionRegion:
		return a.RegionCode
	case types.DimensionResource:
		return a.ResourceCode
	case types.DimensionSupplier:
		return a.SupplierCode
	case types.DimensionBusinessArea:
		return a.BusinessAreaCode
	case types.DimensionEstimatingTechnique:
		return a.EstimatingTechniqueCode
	default:
		return ""
	}
}
