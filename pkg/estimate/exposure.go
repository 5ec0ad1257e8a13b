package estimate

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

// Exposure computes the expected cost impact of a single risk:
// cost x probability weight x severity weight. A missing or unresolvable
// probability or severity code yields zero, not an error: an unclassified
// risk simply does not contribute to the roll-up.
func Exposure(ctx context.Context, risk *model.Risk, lookup interfaces.LookupRepository) (decimal.Decimal, error) {
	if risk.ProbabilityCode == "" || risk.SeverityCode == "" {
		return decimal.Zero, nil
	}

	probWeight, err := lookup.ProbabilityWeight(ctx, risk.ProbabilityCode)
	if err != nil {
		if errors.Is(err, interfaces.ErrLookupMiss) {
			return decimal.Zero, nil
		}
		return decimal.Zero, goerr.Wrap(err, "failed to resolve probability weight", goerr.V("code", risk.ProbabilityCode))
	}

	sevWeight, err := lookup.SeverityWeight(ctx, risk.SeverityCode)
	if err != nil {
		if errors.Is(err, interfaces.ErrLookupMiss) {
			return decimal.Zero, nil
		}
		return decimal.Zero, goerr.Wrap(err, "failed to resolve severity weight", goerr.V("code", risk.SeverityCode))
	}

	return risk.Exposure(probWeight, sevWeight), nil
}

// TotalExposure sums Exposure over a set of risks. Risk exposure combines
// additively with the PERT total; it is not folded into the estimate
// variance.
func TotalExposure(ctx context.Context, risks []*model.Risk, lookup interfaces.LookupRepository) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range risks {
		exposure, err := Exposure(ctx, r, lookup)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(exposure)
	}
	return total, nil
}
