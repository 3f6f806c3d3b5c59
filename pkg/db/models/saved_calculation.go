package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// SavedCalculation is a persisted tariff calculation: the inputs the user
// submitted plus the computed outcome, addressable independently of the
// client session that produced it.
type SavedCalculation struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name"`
	Notes        string `gorm:"column:notes"`
	HsCode       string `gorm:"column:hs_code"`
	ImporterIso3 string `gorm:"column:importer_iso3;size:3;index"`
	OriginIso3   string `gorm:"column:origin_iso3;size:3"`

	// Inputs.
	MfnRate        decimal.Decimal `gorm:"column:mfn_rate;type:numeric(18,6)"`
	PrefRate       decimal.Decimal `gorm:"column:pref_rate;type:numeric(18,6)"`
	RvcThreshold   decimal.Decimal `gorm:"column:rvc_threshold;type:numeric(18,6)"`
	AgreementID    *uint           `gorm:"column:agreement_id"`
	Agreement      *Agreement      `gorm:"foreignKey:AgreementID"`
	Quantity       int             `gorm:"column:quantity"`
	TotalValue     decimal.Decimal `gorm:"column:total_value;type:numeric(18,2)"`
	MaterialCost   decimal.Decimal `gorm:"column:material_cost;type:numeric(18,2)"`
	LabourCost     decimal.Decimal `gorm:"column:labour_cost;type:numeric(18,2)"`
	OverheadCost   decimal.Decimal `gorm:"column:overhead_cost;type:numeric(18,2)"`
	Profit         decimal.Decimal `gorm:"column:profit;type:numeric(18,2)"`
	OtherCosts     decimal.Decimal `gorm:"column:other_costs;type:numeric(18,2)"`
	Fob            decimal.Decimal `gorm:"column:fob;type:numeric(18,2)"`
	NonOriginValue decimal.Decimal `gorm:"column:non_origin_value;type:numeric(18,2)"`

	// Computed results.
	RvcComputed decimal.Decimal `gorm:"column:rvc_computed;type:numeric(18,6)"`
	RateUsed    enums.RateBasis `gorm:"column:rate_used;size:8"`
	AppliedRate decimal.Decimal `gorm:"column:applied_rate;type:numeric(18,6)"`
	TotalTariff decimal.Decimal `gorm:"column:total_tariff;type:numeric(18,2)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
