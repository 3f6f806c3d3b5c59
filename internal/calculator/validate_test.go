package calculator

import (
	"reflect"
	"testing"
)

func validDraft() ProductInfo {
	return ProductInfo{
		Description:        "Electric passenger vehicle",
		HsCode:             "8703.80.10",
		Quantity:           1,
		UnitValue:          45000,
		OriginCountry:      "MEX",
		DestinationCountry: "USA",
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	errs := Validate(validDraft())
	if len(errs) != 0 {
		t.Fatalf("expected clean draft, got %v", errs)
	}
}

func TestValidateRejectsMalformedHsCode(t *testing.T) {
	cases := map[string]string{
		"letters":       "abc",
		"singleGroup":   "8703",
		"tooFewDigits":  "1.2",
		"tooManyDigits": "12345.67890.12",
		"trailingDot":   "8703.",
	}
	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			draft := validDraft()
			draft.HsCode = code
			errs := Validate(draft)
			if _, ok := errs["hsCode"]; !ok {
				t.Fatalf("expected hsCode error for %q, got %v", code, errs)
			}
		})
	}
}

func TestValidateAcceptsDottedHsCodes(t *testing.T) {
	for _, code := range []string{"8703.80.10", "09.01", "8471.30.01.00"} {
		draft := validDraft()
		draft.HsCode = code
		if errs := Validate(draft); len(errs) != 0 {
			t.Fatalf("expected %q to validate, got %v", code, errs)
		}
	}
}

func TestValidateRejectsNonPositiveAmounts(t *testing.T) {
	draft := validDraft()
	draft.Quantity = 0
	draft.UnitValue = -5

	errs := Validate(draft)
	if _, ok := errs["quantity"]; !ok {
		t.Fatalf("expected quantity error, got %v", errs)
	}
	if _, ok := errs["unitValue"]; !ok {
		t.Fatalf("expected unitValue error, got %v", errs)
	}
}

func TestValidateRejectsSameOriginAndDestination(t *testing.T) {
	draft := validDraft()
	draft.OriginCountry = "USA"
	draft.DestinationCountry = "USA"

	errs := Validate(draft)
	if len(errs) == 0 {
		t.Fatal("expected non-empty error map")
	}
	if _, ok := errs["destinationCountry"]; !ok {
		t.Fatalf("expected error keyed to destinationCountry, got %v", errs)
	}
}

func TestValidateIsPure(t *testing.T) {
	draft := validDraft()
	draft.Description = ""
	before := draft

	_ = Validate(draft)
	if !reflect.DeepEqual(draft, before) {
		t.Fatal("validate mutated the draft")
	}
}

func TestClearFieldErrorDoesNotMutate(t *testing.T) {
	errs := FieldErrors{"hsCode": "bad", "quantity": "bad"}
	next := ClearFieldError(errs, "hsCode")

	if len(errs) != 2 {
		t.Fatalf("input map mutated: %v", errs)
	}
	if len(next) != 1 {
		t.Fatalf("expected one remaining error, got %v", next)
	}
	if _, ok := next["quantity"]; !ok {
		t.Fatalf("expected quantity error to survive, got %v", next)
	}
}
