package savedtariffs

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/pagination"
)

// Summary is the narrow projection the saved-tariff table renders.
type Summary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	ImporterIso3  string    `json:"importerIso3"`
	OriginIso3    string    `json:"originIso3"`
	TotalValue    float64   `json:"totalValue"`
	TotalTariff   float64   `json:"totalTariff"`
	AgreementName string    `json:"agreementName,omitempty"`
}

// DetailInput carries the inputs the calculation was made from.
type DetailInput struct {
	MfnRate        float64 `json:"mfnRate"`
	PrefRate       float64 `json:"prefRate"`
	RvcThreshold   float64 `json:"rvcThreshold"`
	AgreementID    *uint   `json:"agreementId,omitempty"`
	Quantity       int     `json:"quantity"`
	TotalValue     float64 `json:"totalValue"`
	MaterialCost   float64 `json:"materialCost"`
	LabourCost     float64 `json:"labourCost"`
	OverheadCost   float64 `json:"overheadCost"`
	Profit         float64 `json:"profit"`
	OtherCosts     float64 `json:"otherCosts"`
	Fob            float64 `json:"fob"`
	NonOriginValue float64 `json:"nonOriginValue"`
}

// DetailResult carries the computed outcome.
type DetailResult struct {
	RateUsed     enums.RateBasis `json:"rateUsed"`
	AppliedRate  float64         `json:"appliedRate"`
	TotalTariff  float64         `json:"totalTariff"`
	RvcThreshold float64         `json:"rvcThreshold"`
	RvcComputed  float64         `json:"rvcComputed"`
}

// Detail is the full saved record.
type Detail struct {
	ID            uint         `json:"id"`
	Name          string       `json:"name"`
	Notes         string       `json:"notes,omitempty"`
	HsCode        string       `json:"hsCode"`
	ImporterIso3  string       `json:"importerIso3"`
	OriginIso3    string       `json:"originIso3"`
	AgreementName string       `json:"agreementName,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	Input         DetailInput  `json:"input"`
	Result        DetailResult `json:"result"`
}

// CreateInput is a save request: identifying fields plus the cost inputs.
// The regional value content and rate selection are recomputed server-side
// so stored results never disagree with stored inputs.
type CreateInput struct {
	Name         string `json:"name"`
	Notes        string `json:"notes"`
	HsCode       string `json:"hsCode"`
	ImporterIso3 string `json:"importerIso3"`
	OriginIso3   string `json:"originIso3"`
	DetailInput
}

// Store is the persistence surface the service and list views consume.
type Store interface {
	List(ctx context.Context, params pagination.Params) (pagination.Page[Summary], error)
	Get(ctx context.Context, id uint) (*Detail, error)
	Delete(ctx context.Context, id uint) error
}

// Service maps between the persistence model and the API DTOs.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService builds the saved-tariff service.
func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns one page of summaries.
func (s *Service) List(ctx context.Context, params pagination.Params) (pagination.Page[Summary], error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[Summary]{}, err
	}

	summaries := make([]Summary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, toSummary(&rows[i]))
	}
	return pagination.NewPage(summaries, params, total), nil
}

// Get returns the full detail for one saved calculation.
func (s *Service) Get(ctx context.Context, id uint) (*Detail, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toDetail(row)
	return &detail, nil
}

// Create validates, computes the outcome, and persists a new record.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Detail, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	row := toModel(input)
	computeOutcome(row)

	saved, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Info(s.log.WithField(ctx, "saved_calculation_id", saved.ID), "saved calculation created")
	}

	detail := toDetail(saved)
	return &detail, nil
}

// Delete removes a saved calculation.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func validateCreate(input CreateInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.HsCode) == "" {
		fields["hsCode"] = "HS code is required"
	}
	if len(input.ImporterIso3) != 3 {
		fields["importerIso3"] = "importer must be an ISO3 code"
	}
	if len(input.OriginIso3) != 3 {
		fields["originIso3"] = "origin must be an ISO3 code"
	}
	if input.TotalValue <= 0 {
		fields["totalValue"] = "total value must be greater than zero"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "saved calculation failed validation").WithDetails(fields)
	}
	return nil
}

// computeOutcome derives RVC, picks the rate basis, and totals the tariff.
// RVC uses the build-down formula: (FOB - non-originating value) / FOB.
func computeOutcome(row *models.SavedCalculation) {
	hundred := decimal.NewFromInt(100)

	rvc := decimal.Zero
	if row.Fob.IsPositive() {
		rvc = row.Fob.Sub(row.NonOriginValue).Div(row.Fob).Mul(hundred)
	}
	row.RvcComputed = rvc

	basis := enums.RateBasisMFN
	applied := row.MfnRate
	qualifies := row.AgreementID != nil &&
		row.RvcThreshold.IsPositive() &&
		rvc.GreaterThanOrEqual(row.RvcThreshold)
	if qualifies && row.PrefRate.LessThan(row.MfnRate) {
		basis = enums.RateBasisPref
		applied = row.PrefRate
	}

	row.RateUsed = basis
	row.AppliedRate = applied
	row.TotalTariff = row.TotalValue.Mul(applied)
}

func toModel(input CreateInput) *models.SavedCalculation {
	return &models.SavedCalculation{
		Name:           strings.TrimSpace(input.Name),
		Notes:          strings.TrimSpace(input.Notes),
		HsCode:         strings.TrimSpace(input.HsCode),
		ImporterIso3:   strings.ToUpper(input.ImporterIso3),
		OriginIso3:     strings.ToUpper(input.OriginIso3),
		MfnRate:        decimal.NewFromFloat(input.MfnRate),
		PrefRate:       decimal.NewFromFloat(input.PrefRate),
		RvcThreshold:   decimal.NewFromFloat(input.RvcThreshold),
		AgreementID:    input.AgreementID,
		Quantity:       input.Quantity,
		TotalValue:     decimal.NewFromFloat(input.TotalValue),
		MaterialCost:   decimal.NewFromFloat(input.MaterialCost),
		LabourCost:     decimal.NewFromFloat(input.LabourCost),
		OverheadCost:   decimal.NewFromFloat(input.OverheadCost),
		Profit:         decimal.NewFromFloat(input.Profit),
		OtherCosts:     decimal.NewFromFloat(input.OtherCosts),
		Fob:            decimal.NewFromFloat(input.Fob),
		NonOriginValue: decimal.NewFromFloat(input.NonOriginValue),
	}
}

func toSummary(row *models.SavedCalculation) Summary {
	summary := Summary{
		ID:           row.ID,
		Name:         row.Name,
		CreatedAt:    row.CreatedAt,
		ImporterIso3: row.ImporterIso3,
		OriginIso3:   row.OriginIso3,
		TotalValue:   row.TotalValue.InexactFloat64(),
		TotalTariff:  row.TotalTariff.InexactFloat64(),
	}
	if row.Agreement != nil {
		summary.AgreementName = row.Agreement.Name
	}
	return summary
}

func toDetail(row *models.SavedCalculation) Detail {
	detail := Detail{
		ID:           row.ID,
		Name:         row.Name,
		Notes:        row.Notes,
		HsCode:       row.HsCode,
		ImporterIso3: row.ImporterIso3,
		OriginIso3:   row.OriginIso3,
		CreatedAt:    row.CreatedAt,
		Input: DetailInput{
			MfnRate:        row.MfnRate.InexactFloat64(),
			PrefRate:       row.PrefRate.InexactFloat64(),
			RvcThreshold:   row.RvcThreshold.InexactFloat64(),
			AgreementID:    row.AgreementID,
			Quantity:       row.Quantity,
			TotalValue:     row.TotalValue.InexactFloat64(),
			MaterialCost:   row.MaterialCost.InexactFloat64(),
			LabourCost:     row.LabourCost.InexactFloat64(),
			OverheadCost:   row.OverheadCost.InexactFloat64(),
			Profit:         row.Profit.InexactFloat64(),
			OtherCosts:     row.OtherCosts.InexactFloat64(),
			Fob:            row.Fob.InexactFloat64(),
			NonOriginValue: row.NonOriginValue.InexactFloat64(),
		},
		Result: DetailResult{
			RateUsed:     row.RateUsed,
			AppliedRate:  row.AppliedRate.InexactFloat64(),
			TotalTariff:  row.TotalTariff.InexactFloat64(),
			RvcThreshold: row.RvcThreshold.InexactFloat64(),
			RvcComputed:  row.RvcComputed.InexactFloat64(),
		},
	}
	if row.Agreement != nil {
		detail.AgreementName = row.Agreement.Name
	}
	return detail
}
