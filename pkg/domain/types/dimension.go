package types

import "fmt"

// Dimension is a classification axis for cost breakdown reporting. The set
// is closed on purpose: breakdown dispatch switches over these constants
// instead of any runtime registry.
type Dimension string

const (
	DimensionCostType            Dimension = "cost_type"
	DimensionRegion              Dimension = "region"
	DimensionResource            Dimension = "resource"
	DimensionSupplier            Dimension = "supplier"
	DimensionBusinessArea        Dimension = "business_area"
	DimensionEstimatingTechnique Dimension = "estimating_technique"
)

// AllDimensions returns all supported breakdown dimensions
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionCostType,
		DimensionRegion,
		DimensionResource,
		DimensionSupplier,
		DimensionBusinessArea,
		DimensionEstimatingTechnique,
	}
}

// IsValid checks if the dimension is valid
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionCostType,
		DimensionRegion,
		DimensionResource,
		DimensionSupplier,
		DimensionBusinessArea,
		DimensionEstimatingTechnique:
		return true
	default:
		return false
	}
}

// Required reports whether every assignment must carry a code for this
// dimension. Resource is mandatory on assignments; the other dimensions
// bucket missing codes under the unassigned group.
func (d Dimension) Required() bool {
	return d == DimensionResource
}

// String returns the string representation of the dimension
func (d Dimension) String() string {
	return string(d)
}

// ParseDimension parses a string into a Dimension
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid breakdown dimension: %s", s)
	}
	return d, nil
}
