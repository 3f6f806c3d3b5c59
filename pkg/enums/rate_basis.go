package enums

import "fmt"

// RateBasis identifies which duty rate path a calculation used.
type RateBasis string

const (
	RateBasisMFN  RateBasis = "MFN"
	RateBasisPref RateBasis = "PREF"
)

var validRateBases = []RateBasis{
	RateBasisMFN,
	RateBasisPref,
}

// String implements fmt.Stringer.
func (b RateBasis) String() string {
	return string(b)
}

// IsValid reports whether the value is a known RateBasis.
func (b RateBasis) IsValid() bool {
	for _, candidate := range validRateBases {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseRateBasis converts raw input into a RateBasis.
func ParseRateBasis(value string) (RateBasis, error) {
	for _, candidate := range validRateBases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rate basis %q", value)
}
