package enums

import "fmt"

// WarningLevel grades calculation warnings for display.
type WarningLevel string

const (
	WarningLevelInfo    WarningLevel = "info"
	WarningLevelWarning WarningLevel = "warning"
	WarningLevelError   WarningLevel = "error"
)

var validWarningLevels = []WarningLevel{
	WarningLevelInfo,
	WarningLevelWarning,
	WarningLevelError,
}

// String implements fmt.Stringer.
func (w WarningLevel) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WarningLevel.
func (w WarningLevel) IsValid() bool {
	for _, candidate := range validWarningLevels {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWarningLevel converts raw input into a WarningLevel.
func ParseWarningLevel(value string) (WarningLevel, error) {
	for _, candidate := range validWarningLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid warning level %q", value)
}
