package enums

import "fmt"

// DimensionUnit is the length unit a dimension or constraint is expressed in.
type DimensionUnit string

const (
	DimensionUnitMillimeter DimensionUnit = "mm"
	DimensionUnitCentimeter DimensionUnit = "cm"
	DimensionUnitMeter      DimensionUnit = "m"
)

var validDimensionUnits = []DimensionUnit{
	DimensionUnitMillimeter,
	DimensionUnitCentimeter,
	DimensionUnitMeter,
}

// String implements fmt.Stringer.
func (u DimensionUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known DimensionUnit.
func (u DimensionUnit) IsValid() bool {
	for _, candidate := range validDimensionUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// Millimeters converts a length in this unit to millimeters. Unknown units
// are treated as millimeters.
func (u DimensionUnit) Millimeters(value float64) float64 {
	switch u {
	case DimensionUnitCentimeter:
		return value * 10
	case DimensionUnitMeter:
		return value * 1000
	default:
		return value
	}
}

// Meters converts a length in this unit to meters.
func (u DimensionUnit) Meters(value float64) float64 {
	return u.Millimeters(value) / 1000
}

// ParseDimensionUnit converts raw input into a DimensionUnit.
func ParseDimensionUnit(value string) (DimensionUnit, error) {
	for _, candidate := range validDimensionUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dimension unit %q", value)
}
