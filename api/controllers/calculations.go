package controllers

import (
	"context"
	"net/http"

	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/api/validators"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/calculator"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// CalculationService is the computation surface the controller consumes.
type CalculationService interface {
	Calculate(ctx context.Context, draft calculator.ProductInfo) (*calculator.TariffCalculation, error)
	History() *calculator.History
}

// Calculate runs one calculation pass over the submitted draft.
func Calculate(svc CalculationService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var draft calculator.ProductInfo
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		calc, err := svc.Calculate(ctx, draft)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, calc)
	}
}

// CalculationHistory returns the recent in-memory calculations, newest
// first.
func CalculationHistory(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.History().List())
	}
}
