package calculator

import (
	"fmt"
	"strings"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// Annotator evaluates risk thresholds and looks up static compliance
// requirements. Every threshold fires independently; warnings append and
// never replace each other.
type Annotator struct {
	cfg config.CalculatorConfig
}

// NewAnnotator builds an annotator with the provided thresholds.
func NewAnnotator(cfg config.CalculatorConfig) *Annotator {
	return &Annotator{cfg: cfg}
}

// Annotate returns the warnings and compliance set for a draft and its
// computed results.
func (a *Annotator) Annotate(draft ProductInfo, results Results) ([]Warning, Compliance) {
	var warnings []Warning

	if kg := draft.WeightKilograms(); kg > a.cfg.HeavyWeightKg {
		warnings = append(warnings, Warning{
			Level:          enums.WarningLevelWarning,
			Message:        fmt.Sprintf("Heavy goods: shipment weight %.0f kg exceeds %.0f kg", kg, a.cfg.HeavyWeightKg),
			Recommendation: "Arrange specialized freight handling and verify carrier weight limits",
		})
	}
	if results.BaseValue > a.cfg.HighValueThreshold {
		warnings = append(warnings, Warning{
			Level:          enums.WarningLevelInfo,
			Message:        fmt.Sprintf("High-value shipment: declared value %.2f exceeds %.2f", results.BaseValue, a.cfg.HighValueThreshold),
			Recommendation: "Prepare supplementary valuation documentation and consider cargo insurance",
		})
	}

	return warnings, complianceFor(draft)
}

// baseDocuments apply to every import regardless of category.
var baseDocuments = []string{
	"Commercial invoice",
	"Packing list",
	"Bill of lading",
	"Customs declaration",
}

// chapterCompliance keys extra requirements by the two-digit HS chapter.
// Extending a jurisdiction means adding rows here, not touching the
// pipeline.
var chapterCompliance = map[string]Compliance{
	"02": {Certificates: []string{"Health certificate", "Veterinary certificate"}, Restrictions: []string{"Subject to sanitary inspection at port of entry"}},
	"09": {Certificates: []string{"Phytosanitary certificate"}},
	"22": {Certificates: []string{"Alcohol import licence"}, Restrictions: []string{"Excise registration required"}},
	"30": {Certificates: []string{"Pharmaceutical import authorization"}, Restrictions: []string{"Controlled substances require prior approval"}},
	"36": {Prohibitions: []string{"Explosive materials prohibited without special permit"}},
	"61": {RequiredDocuments: []string{"Textile declaration"}},
	"62": {RequiredDocuments: []string{"Textile declaration"}},
	"85": {Certificates: []string{"Electromagnetic compatibility certificate"}},
	"87": {Certificates: []string{"Vehicle safety compliance certificate", "Emissions compliance certificate"}},
}

// categoryCompliance keys extra requirements by the free-text category the
// draft carries, for drafts whose HS chapter alone is not specific enough.
var categoryCompliance = map[string]Compliance{
	"food":        {Certificates: []string{"Health certificate"}, Restrictions: []string{"Subject to food safety inspection"}},
	"pharma":      {Certificates: []string{"Pharmaceutical import authorization"}},
	"electronics": {Certificates: []string{"Electromagnetic compatibility certificate"}},
	"vehicles":    {Certificates: []string{"Vehicle safety compliance certificate"}},
}

func complianceFor(draft ProductInfo) Compliance {
	out := Compliance{
		RequiredDocuments: append([]string(nil), baseDocuments...),
		Certificates:      []string{},
		Restrictions:      []string{},
		Prohibitions:      []string{},
	}

	chapter := hsChapter(draft.HsCode)
	if extra, ok := chapterCompliance[chapter]; ok {
		mergeCompliance(&out, extra)
	}
	if extra, ok := categoryCompliance[strings.ToLower(strings.TrimSpace(draft.Category))]; ok {
		mergeCompliance(&out, extra)
	}
	return out
}

func hsChapter(hsCode string) string {
	digits := strings.ReplaceAll(hsCode, ".", "")
	if len(digits) < 2 {
		return ""
	}
	return digits[:2]
}

func mergeCompliance(dst *Compliance, extra Compliance) {
	dst.RequiredDocuments = appendMissing(dst.RequiredDocuments, extra.RequiredDocuments)
	dst.Certificates = appendMissing(dst.Certificates, extra.Certificates)
	dst.Restrictions = appendMissing(dst.Restrictions, extra.Restrictions)
	dst.Prohibitions = appendMissing(dst.Prohibitions, extra.Prohibitions)
}

func appendMissing(dst, src []string) []string {
	for _, candidate := range src {
		found := false
		for _, existing := range dst {
			if existing == candidate {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, candidate)
		}
	}
	return dst
}
