package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// AgreementSource lists the trade agreement reference table.
type AgreementSource interface {
	ListAgreements(ctx context.Context, importerIso3, originIso3 string) ([]models.Agreement, error)
}

type agreementPayload struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	ImporterIso3     string     `json:"importerIso3"`
	OriginIso3       string     `json:"originIso3"`
	Status           string     `json:"status"`
	RvcThreshold     float64    `json:"rvcThreshold"`
	EnteredIntoForce *time.Time `json:"enteredIntoForce,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// ListAgreements serves the agreement reference data, optionally filtered
// to an importer/origin pair via query params.
func ListAgreements(source AgreementSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		importer, err := isoParam(r, "importer")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		origin, err := isoParam(r, "origin")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := source.ListAgreements(ctx, importer, origin)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agreements"))
			return
		}

		payload := make([]agreementPayload, 0, len(rows))
		for _, row := range rows {
			payload = append(payload, agreementPayload{
				ID:               row.ID,
				Name:             row.Name,
				ImporterIso3:     row.ImporterIso3,
				OriginIso3:       row.OriginIso3,
				Status:           row.Status.String(),
				RvcThreshold:     row.RvcThreshold.InexactFloat64(),
				EnteredIntoForce: row.EnteredIntoForce,
				ExpiresAt:        row.ExpiresAt,
			})
		}
		responses.WriteSuccess(w, payload)
	}
}

// isoParam reads an optional ISO3 query filter. Present values must be
// exactly three letters.
func isoParam(r *http.Request, name string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return "", nil
	}
	if len(raw) != 3 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" must be a 3-letter ISO code").
			WithDetails(map[string]any{name: raw})
	}
	return strings.ToUpper(raw), nil
}
