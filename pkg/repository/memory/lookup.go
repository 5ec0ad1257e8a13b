package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// lookupRepository serves the read-only weight and description tables,
// loaded once from the estimation catalog.
type lookupRepository struct {
	mu           sync.RWMutex
	probability  map[string]decimal.Decimal
	severity     map[string]decimal.Decimal
	descriptions map[types.Dimension]map[string]string
}

func newLookupRepository() *lookupRepository {
	return &lookupRepository{
		probability:  make(map[string]decimal.Decimal),
		severity:     make(map[string]decimal.Decimal),
		descriptions: make(map[types.Dimension]map[string]string),
	}
}

func (r *lookupRepository) load(catalog *config.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.probability = make(map[string]decimal.Decimal, len(catalog.Probability))
	for _, level := range catalog.Probability {
		r.probability[level.Code] = level.Weight
	}

	r.severity = make(map[string]decimal.Decimal, len(catalog.Severity))
	for _, level := range catalog.Severity {
		r.severity[level.Code] = level.Weight
	}

	r.descriptions = make(map[types.Dimension]map[string]string)
	for _, dimension := range types.AllDimensions() {
		table := make(map[string]string)
		for _, entry := range catalog.Entries(dimension) {
			table[entry.Code] = entry.Description
		}
		r.descriptions[dimension] = table
	}
}

func (r *lookupRepository) ProbabilityWeight(ctx context.Context, code string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	weight, exists := r.probability[code]
	if !exists {
		return decimal.Zero, goerr.Wrap(interfaces.ErrLookupMiss, "unknown probability code", goerr.V("code", code))
	}
	return weight, nil
}

func (r *lookupRepository) SeverityWeight(ctx context.Context, code string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	weight, exists := r.severity[code]
	if !exists {
		return decimal.Zero, goerr.Wrap(interfaces.ErrLookupMiss, "unknown severity code", goerr.V("code", code))
	}
	return weight, nil
}

func (r *lookupRepository) Description(ctx context.Context, dimension types.Dimension, code string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	description, exists := r.descriptions[dimension][code]
	if !exists {
		return "", goerr.Wrap(interfaces.ErrLookupMiss, "unknown classification code",
			goerr.V("dimension", dimension.String()), goerr.V("code", code))
	}
	return description, nil
}
