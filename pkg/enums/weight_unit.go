package enums

import "fmt"

// WeightUnit enumerates the shipment weight units the calculator accepts.
type WeightUnit string

const (
	WeightUnitKg    WeightUnit = "kg"
	WeightUnitLb    WeightUnit = "lb"
	WeightUnitGram  WeightUnit = "g"
	WeightUnitTonne WeightUnit = "t"
)

var validWeightUnits = []WeightUnit{
	WeightUnitKg,
	WeightUnitLb,
	WeightUnitGram,
	WeightUnitTonne,
}

// String implements fmt.Stringer.
func (w WeightUnit) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WeightUnit.
func (w WeightUnit) IsValid() bool {
	for _, candidate := range validWeightUnits {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWeightUnit converts raw input into a WeightUnit.
func ParseWeightUnit(value string) (WeightUnit, error) {
	for _, candidate := range validWeightUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight unit %q", value)
}

// Kilograms converts an amount in this unit to kilograms. Unknown units
// pass through unchanged.
func (w WeightUnit) Kilograms(amount float64) float64 {
	switch w {
	case WeightUnitLb:
		return amount * 0.45359237
	case WeightUnitGram:
		return amount / 1000
	case WeightUnitTonne:
		return amount * 1000
	default:
		return amount
	}
}
