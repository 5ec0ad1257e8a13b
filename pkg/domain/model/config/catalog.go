package config

import (
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// WeightLevel is one row of a code -> weight lookup table (probability or
// severity). Weights are typically between 0 and 1 but are not clamped.
type WeightLevel struct {
	Code        string
	Description string
	Weight      decimal.Decimal
}

// LookupEntry is one row of a code -> description lookup table.
type LookupEntry struct {
	Code        string
	Description string
}

// Catalog holds the read-only classification and weight tables consumed by
// the estimation engines. The tables themselves are owned and maintained
// outside this core.
type Catalog struct {
	Probability []WeightLevel
	Severity    []WeightLevel

	CostTypes            []LookupEntry
	Regions              []LookupEntry
	Resources            []LookupEntry
	Suppliers            []LookupEntry
	BusinessAreas        []LookupEntry
	EstimatingTechniques []LookupEntry
}

// Entries returns the description table for a breakdown dimension.
func (c *Catalog) Entries(d types.Dimension) []LookupEntry {
	switch d {
	case types.DimensionCostType:
		return c.CostTypes
	case types.DimensionRegion:
		return c.Regions
	case types.DimensionResource:
		return c.Resources
	case types.DimensionSupplier:
		return c.Suppliers
	case types.DimensionBusinessArea:
		return c.BusinessAreas
	case types.DimensionEstimatingTechnique:
		return c.EstimatingTechniques
	default:
		return nil
	}
}
