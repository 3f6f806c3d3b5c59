package calculator

import (
	"fmt"

	"github.com/tariffsheriff/tariffsheriff-backend/internal/rates"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// Pipeline runs the deterministic cost computation. All monetary values
// stay full-precision floats; display rounding happens at the presentation
// and export layers only.
type Pipeline struct {
	cfg config.CalculatorConfig
}

// NewPipeline builds a pipeline with the provided constants.
func NewPipeline(cfg config.CalculatorConfig) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Compute derives the full cost results for a validated draft and a
// resolved rate. VAT compounds on the duty-inclusive value; that ordering
// is load-bearing and must not change.
func (p *Pipeline) Compute(draft ProductInfo, resolved *rates.ResolvedRate) Results {
	baseValue := draft.UnitValue * float64(draft.Quantity)
	// Incoterms adjustments would land here; today dutiable == base.
	dutiableValue := baseValue

	tariffAmount := dutiableValue * resolved.Rate
	vatAmount := (dutiableValue + tariffAmount) * p.cfg.VATRate
	processingFee := dutiableValue * p.cfg.ProcessingFeeRate
	if processingFee > p.cfg.ProcessingFeeCap {
		processingFee = p.cfg.ProcessingFeeCap
	}
	inspectionFee := p.cfg.InspectionFee

	totalCost := dutiableValue + tariffAmount + vatAmount + processingFee + inspectionFee

	var effectiveRate float64
	if dutiableValue > 0 {
		effectiveRate = (totalCost - dutiableValue) / dutiableValue
	}

	dutyBasis := "MFN applied rate per national tariff schedule"
	dutyDescription := fmt.Sprintf("Import duty at MFN rate for HS %s", draft.HsCode)
	if resolved.Basis == enums.RateBasisPref {
		dutyBasis = fmt.Sprintf("Preferential rate under %s", resolved.TradeAgreement)
		dutyDescription = fmt.Sprintf("Import duty at preferential rate for HS %s", draft.HsCode)
	}

	breakdown := []BreakdownItem{
		{
			Type:        "Import Duty",
			Category:    enums.BreakdownCategoryDuty,
			Rate:        resolved.Rate,
			Amount:      tariffAmount,
			Description: dutyDescription,
			LegalBasis:  dutyBasis,
		},
		{
			Type:        "VAT",
			Category:    enums.BreakdownCategoryTax,
			Rate:        p.cfg.VATRate,
			Amount:      vatAmount,
			Description: "Value-added tax on the duty-inclusive value",
			LegalBasis:  "Standard VAT on imports",
		},
		{
			Type:        "Processing Fee",
			Category:    enums.BreakdownCategoryFee,
			Rate:        p.cfg.ProcessingFeeRate,
			Amount:      processingFee,
			Description: "Customs processing fee",
			LegalBasis:  "Merchandise processing schedule",
		},
		{
			Type:        "Inspection Fee",
			Category:    enums.BreakdownCategoryFee,
			Rate:        0,
			Amount:      inspectionFee,
			Description: "Customs inspection fee",
			LegalBasis:  "Fixed inspection charge",
		},
	}

	rule := AppliedRule{
		RuleID:         resolved.RuleID,
		Description:    fmt.Sprintf("Ad valorem duty for HS %s into %s", draft.HsCode, draft.DestinationCountry),
		Source:         "tariff schedule",
		ValidFrom:      resolved.ValidFrom,
		ValidTo:        resolved.ValidTo,
		Confidence:     resolved.Confidence,
		TradeAgreement: resolved.TradeAgreement,
	}
	if resolved.TradeAgreement != "" {
		rule.Source = resolved.TradeAgreement
	}

	return Results{
		BaseValue:     baseValue,
		DutiableValue: dutiableValue,
		TariffRate:    resolved.Rate,
		TariffAmount:  tariffAmount,
		Taxes:         Taxes{VAT: vatAmount},
		Fees:          Fees{Processing: processingFee, Inspection: inspectionFee},
		TotalCost:     totalCost,
		EffectiveRate: effectiveRate,
		Breakdown:     breakdown,
		AppliedRules:  []AppliedRule{rule},
	}
}

// TotalFor re-costs the same draft at a different duty rate. The route
// comparator uses it for candidate origins: fees stay constant while VAT is
// recomputed since it compounds on duty.
func (p *Pipeline) TotalFor(draft ProductInfo, rate float64) float64 {
	dutiableValue := draft.UnitValue * float64(draft.Quantity)
	tariffAmount := dutiableValue * rate
	vatAmount := (dutiableValue + tariffAmount) * p.cfg.VATRate
	processingFee := dutiableValue * p.cfg.ProcessingFeeRate
	if processingFee > p.cfg.ProcessingFeeCap {
		processingFee = p.cfg.ProcessingFeeCap
	}
	return dutiableValue + tariffAmount + vatAmount + processingFee + p.cfg.InspectionFee
}
