package estimate

import "github.com/shopspring/decimal"

// Z80 is the z-score for an 80% confidence interval under approximate
// normality of the aggregate estimate.
var Z80 = decimal.NewFromFloat(1.28)

// Interval returns the 80% confidence interval around pertTotal. The lower
// bound is not clamped at zero: a wide spread on a small estimate is a
// signal worth surfacing, not hiding.
func Interval(pertTotal, combinedStdDev decimal.Decimal) (low, high decimal.Decimal) {
	margin := combinedStdDev.Mul(Z80)
	return pertTotal.Sub(margin), pertTotal.Add(margin)
}
