package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// Agreement is a trade agreement between two countries. RvcThreshold is the
// regional value content percentage required to claim the preferential rate.
type Agreement struct {
	ID               uint                  `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string                `gorm:"column:name;not null"`
	ImporterIso3     string                `gorm:"column:importer_iso3;size:3;not null;index:agreements_pair_idx"`
	OriginIso3       string                `gorm:"column:origin_iso3;size:3;not null;index:agreements_pair_idx"`
	Status           enums.AgreementStatus `gorm:"column:status;not null;default:active"`
	RvcThreshold     decimal.Decimal       `gorm:"column:rvc_threshold;type:numeric(18,6)"`
	EnteredIntoForce *time.Time            `gorm:"column:entered_into_force"`
	ExpiresAt        *time.Time            `gorm:"column:expires_at"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
}
