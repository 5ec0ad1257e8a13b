package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Risk is a cost risk attached to a WBS item. Its exposure is a derived
// value computed from the probability and severity weight lookups.
type Risk struct {
	ID              int64
	WBSID           int64
	CategoryCode    string
	RiskCost        decimal.Decimal
	ProbabilityCode string
	SeverityCode    string
	MitigationPlan  string
	DateIdentified  time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Exposure returns risk cost x probability weight x severity weight.
// Resolving the weights from their codes is the caller's job; see
// estimate.Exposure for the zero-on-miss behavior.
func (r *Risk) Exposure(probWeight, sevWeight decimal.Decimal) decimal.Decimal {
	return r.RiskCost.Mul(probWeight).Mul(sevWeight)
}
