package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// TariffRate is one ad valorem duty rate row keyed by importer, origin, HS
// code, and basis. Preferential rows reference the agreement granting them.
type TariffRate struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ImporterIso3  string          `gorm:"column:importer_iso3;size:3;not null;uniqueIndex:tariff_rates_lookup_key"`
	OriginIso3    string          `gorm:"column:origin_iso3;size:3;not null;uniqueIndex:tariff_rates_lookup_key"`
	HsCode        string          `gorm:"column:hs_code;not null;uniqueIndex:tariff_rates_lookup_key"`
	Basis         enums.RateBasis `gorm:"column:basis;size:8;not null;uniqueIndex:tariff_rates_lookup_key"`
	AdValoremRate decimal.Decimal `gorm:"column:ad_valorem_rate;type:numeric(18,6);not null"`
	AgreementID   *uint           `gorm:"column:agreement_id"`
	Agreement     *Agreement      `gorm:"foreignKey:AgreementID"`
	ValidFrom     *time.Time      `gorm:"column:valid_from"`
	ValidTo       *time.Time      `gorm:"column:valid_to"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
