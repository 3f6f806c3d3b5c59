package enums

import "fmt"

// BreakdownCategory classifies a cost breakdown line.
type BreakdownCategory string

const (
	BreakdownCategoryDuty BreakdownCategory = "duty"
	BreakdownCategoryTax  BreakdownCategory = "tax"
	BreakdownCategoryFee  BreakdownCategory = "fee"
)

var validBreakdownCategories = []BreakdownCategory{
	BreakdownCategoryDuty,
	BreakdownCategoryTax,
	BreakdownCategoryFee,
}

// String implements fmt.Stringer.
func (b BreakdownCategory) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BreakdownCategory.
func (b BreakdownCategory) IsValid() bool {
	for _, candidate := range validBreakdownCategories {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBreakdownCategory converts raw input into a BreakdownCategory.
func ParseBreakdownCategory(value string) (BreakdownCategory, error) {
	for _, candidate := range validBreakdownCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid breakdown category %q", value)
}
