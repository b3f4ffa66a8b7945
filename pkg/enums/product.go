package enums

import "fmt"

// ProductType distinguishes how a product is configured and priced.
type ProductType string

const (
	ProductTypeStandard     ProductType = "STANDARD"
	ProductTypeConfigurable ProductType = "CONFIGURABLE"
	ProductTypeCustom       ProductType = "CUSTOM"
)

var validProductTypes = []ProductType{
	ProductTypeStandard,
	ProductTypeConfigurable,
	ProductTypeCustom,
}

// String implements fmt.Stringer.
func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ProductType.
func (t ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// PricingType selects the pricing strategy for a product.
type PricingType string

const (
	PricingTypeFixed   PricingType = "fixed"
	PricingTypePerUnit PricingType = "per_unit"
	PricingTypeFormula PricingType = "formula"
)

var validPricingTypes = []PricingType{
	PricingTypeFixed,
	PricingTypePerUnit,
	PricingTypeFormula,
}

// String implements fmt.Stringer.
func (t PricingType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PricingType.
func (t PricingType) IsValid() bool {
	for _, candidate := range validPricingTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePricingType converts raw input into a PricingType.
func ParsePricingType(value string) (PricingType, error) {
	for _, candidate := range validPricingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing type %q", value)
}
