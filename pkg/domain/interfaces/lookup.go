package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// LookupRepository resolves classification codes against the read-only
// reference tables. All methods report an unresolved code with
// ErrLookupMiss; callers decide whether a miss is fatal.
type LookupRepository interface {
	ProbabilityWeight(ctx context.Context, code string) (decimal.Decimal, error)
	SeverityWeight(ctx context.Context, code string) (decimal.Decimal, error)
	Description(ctx context.Context, dimension types.Dimension, code string) (string, error)
}
