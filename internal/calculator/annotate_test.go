package calculator

import (
	"testing"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

func TestAnnotateHeavyAndHighValueCoFire(t *testing.T) {
	annotator := NewAnnotator(testCalcConfig())
	draft := validDraft()
	draft.Weight = 1500
	draft.WeightUnit = enums.WeightUnitKg

	warnings, _ := annotator.Annotate(draft, Results{BaseValue: 150000})
	if len(warnings) != 2 {
		t.Fatalf("expected both warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].Level != enums.WarningLevelWarning {
		t.Fatalf("expected heavy-goods warning first, got %s", warnings[0].Level)
	}
	if warnings[1].Level != enums.WarningLevelInfo {
		t.Fatalf("expected high-value info second, got %s", warnings[1].Level)
	}
}

func TestAnnotateConvertsWeightUnits(t *testing.T) {
	annotator := NewAnnotator(testCalcConfig())
	draft := validDraft()
	draft.Weight = 1500
	draft.WeightUnit = enums.WeightUnitLb // ~680 kg, below threshold

	warnings, _ := annotator.Annotate(draft, Results{BaseValue: 45000})
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for 1500 lb, got %v", warnings)
	}

	draft.WeightUnit = enums.WeightUnitTonne
	warnings, _ = annotator.Annotate(draft, Results{BaseValue: 45000})
	if len(warnings) != 1 {
		t.Fatalf("expected heavy warning for 1500 t, got %v", warnings)
	}
}

func TestAnnotateQuietBelowThresholds(t *testing.T) {
	annotator := NewAnnotator(testCalcConfig())
	warnings, compliance := annotator.Annotate(validDraft(), Results{BaseValue: 45000})

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(compliance.RequiredDocuments) == 0 {
		t.Fatal("expected base documents for every shipment")
	}
}

func TestComplianceFromHsChapter(t *testing.T) {
	annotator := NewAnnotator(testCalcConfig())
	draft := validDraft() // HS 8703.*, vehicles chapter

	_, compliance := annotator.Annotate(draft, Results{})
	found := false
	for _, cert := range compliance.Certificates {
		if cert == "Vehicle safety compliance certificate" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected vehicle certificate for chapter 87, got %v", compliance.Certificates)
	}
}

func TestComplianceMergesCategoryWithoutDuplicates(t *testing.T) {
	annotator := NewAnnotator(testCalcConfig())
	draft := validDraft()
	draft.Category = "vehicles" // same certificate as chapter 87

	_, compliance := annotator.Annotate(draft, Results{})
	count := 0
	for _, cert := range compliance.Certificates {
		if cert == "Vehicle safety compliance certificate" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected certificate deduplicated, found %d entries", count)
	}
}
