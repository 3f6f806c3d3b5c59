package controllers

import (
	"context"
	"net/http"

	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// CountrySource lists the country reference table.
type CountrySource interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
}

type countryPayload struct {
	Iso3   string `json:"iso3"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// ListCountries serves the origin/destination picker data.
func ListCountries(source CountrySource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := source.ListCountries(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list countries"))
			return
		}

		payload := make([]countryPayload, 0, len(rows))
		for _, row := range rows {
			payload = append(payload, countryPayload{Iso3: row.Iso3, Name: row.Name, Region: row.Region})
		}
		responses.WriteSuccess(w, payload)
	}
}
