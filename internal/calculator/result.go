package calculator

import (
	"time"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// Taxes groups the tax components of a calculation. Only VAT is computed
// today; excise and other stay zero until a jurisdiction needs them.
type Taxes struct {
	VAT    float64 `json:"vat"`
	Excise float64 `json:"excise"`
	Other  float64 `json:"other"`
}

// Fees groups the fixed and value-derived fee components.
type Fees struct {
	Processing float64 `json:"processing"`
	Inspection float64 `json:"inspection"`
	Storage    float64 `json:"storage"`
	Other      float64 `json:"other"`
}

// BreakdownItem is one line of the cost breakdown. Slice order is the
// canonical presentation order and is preserved through serialization.
type BreakdownItem struct {
	Type        string                  `json:"type"`
	Category    enums.BreakdownCategory `json:"category"`
	Rate        float64                 `json:"rate"`
	Amount      float64                 `json:"amount"`
	Description string                  `json:"description"`
	LegalBasis  string                  `json:"legalBasis"`
}

// AppliedRule records the provenance of the duty rate used.
type AppliedRule struct {
	RuleID         string     `json:"ruleId"`
	Description    string     `json:"description"`
	Source         string     `json:"source"`
	ValidFrom      *time.Time `json:"validFrom,omitempty"`
	ValidTo        *time.Time `json:"validTo,omitempty"`
	Confidence     float64    `json:"confidence"`
	TradeAgreement string     `json:"tradeAgreement,omitempty"`
}

// Warning is a risk annotation. Warnings append; co-firing conditions each
// produce their own entry.
type Warning struct {
	Level          enums.WarningLevel `json:"type"`
	Message        string             `json:"message"`
	Recommendation string             `json:"recommendation,omitempty"`
}

// AlternativeRoute is the outcome of re-costing the shipment from a
// different origin country.
type AlternativeRoute struct {
	Country           string  `json:"country"`
	CountryName       string  `json:"countryName"`
	TariffRate        float64 `json:"tariffRate"`
	TotalCost         float64 `json:"totalCost"`
	Savings           float64 `json:"savings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	TradeAgreement    string  `json:"tradeAgreement,omitempty"`
	TransitTimeDays   int     `json:"transitTime,omitempty"`
}

// Compliance lists documentation and restriction requirements for the
// shipment, sourced from static category/HS tables.
type Compliance struct {
	RequiredDocuments []string `json:"requiredDocuments"`
	Certificates      []string `json:"certificates"`
	Restrictions      []string `json:"restrictions"`
	Prohibitions      []string `json:"prohibitions"`
}

// Results is the full computed outcome of one calculation pass.
type Results struct {
	BaseValue         float64            `json:"baseValue"`
	DutiableValue     float64            `json:"dutiableValue"`
	TariffRate        float64            `json:"tariffRate"`
	TariffAmount      float64            `json:"tariffAmount"`
	AdditionalDuties  float64            `json:"additionalDuties"`
	Taxes             Taxes              `json:"taxes"`
	Fees              Fees               `json:"fees"`
	TotalCost         float64            `json:"totalCost"`
	EffectiveRate     float64            `json:"effectiveRate"`
	Breakdown         []BreakdownItem    `json:"breakdown"`
	AppliedRules      []AppliedRule      `json:"appliedRules"`
	Warnings          []Warning          `json:"warnings"`
	AlternativeRoutes []AlternativeRoute `json:"alternativeRoutes"`
	Compliance        Compliance         `json:"compliance"`
}

// TariffCalculation is the immutable result of one computation pass. The
// product snapshot is detached from the live draft.
type TariffCalculation struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Product   ProductInfo `json:"productInfo"`
	Results   Results     `json:"results"`
}
