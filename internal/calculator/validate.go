package calculator

import (
	"regexp"
	"strings"
)

// FieldErrors maps a draft field name to its validation message. Submission
// is blocked while the map is non-empty.
type FieldErrors map[string]string

// hsCodeGroups matches 2-5 dot-separated digit groups. Total digit count is
// checked separately since the regexp cannot count across groups.
var hsCodeGroups = regexp.MustCompile(`^\d+(\.\d+){1,4}$`)

// Validate runs the full draft validation pass. It is pure: it never
// mutates the draft and never fails, it only reports.
func Validate(draft ProductInfo) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.Description) == "" {
		errs["description"] = "description is required"
	}

	hsCode := strings.TrimSpace(draft.HsCode)
	switch {
	case hsCode == "":
		errs["hsCode"] = "HS code is required"
	case !validHsCode(hsCode):
		errs["hsCode"] = "HS code must be 2-5 digit groups separated by dots, 4-10 digits total"
	}

	if draft.Quantity <= 0 {
		errs["quantity"] = "quantity must be greater than zero"
	}
	if draft.UnitValue <= 0 {
		errs["unitValue"] = "unit value must be greater than zero"
	}

	origin := strings.TrimSpace(draft.OriginCountry)
	destination := strings.TrimSpace(draft.DestinationCountry)
	if origin == "" {
		errs["originCountry"] = "origin country is required"
	}
	switch {
	case destination == "":
		errs["destinationCountry"] = "destination country is required"
	case origin != "" && origin == destination:
		errs["destinationCountry"] = "destination country must differ from origin"
	}

	return errs
}

func validHsCode(code string) bool {
	if !hsCodeGroups.MatchString(code) {
		return false
	}
	digits := len(strings.ReplaceAll(code, ".", ""))
	return digits >= 4 && digits <= 10
}

// ClearFieldError returns a copy of errs without the named field. The input
// map is never mutated so callers can treat error maps as values.
func ClearFieldError(errs FieldErrors, field string) FieldErrors {
	if len(errs) == 0 {
		return FieldErrors{}
	}
	next := make(FieldErrors, len(errs))
	for name, message := range errs {
		if name == field {
			continue
		}
		next[name] = message
	}
	return next
}
