package enums

import "fmt"

// AgreementStatus tracks whether a trade agreement currently applies.
type AgreementStatus string

const (
	AgreementStatusActive    AgreementStatus = "active"
	AgreementStatusSuspended AgreementStatus = "suspended"
	AgreementStatusExpired   AgreementStatus = "expired"
)

var validAgreementStatuses = []AgreementStatus{
	AgreementStatusActive,
	AgreementStatusSuspended,
	AgreementStatusExpired,
}

// String implements fmt.Stringer.
func (a AgreementStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AgreementStatus.
func (a AgreementStatus) IsValid() bool {
	for _, candidate := range validAgreementStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAgreementStatus converts raw input into an AgreementStatus.
func ParseAgreementStatus(value string) (AgreementStatus, error) {
	for _, candidate := range validAgreementStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid agreement status %q", value)
}
