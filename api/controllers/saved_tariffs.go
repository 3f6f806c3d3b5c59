package controllers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/api/validators"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/export"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/savedtariffs"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// SavedTariffService is the persistence surface the controllers consume.
type SavedTariffService interface {
	savedtariffs.Store
	Create(ctx context.Context, input savedtariffs.CreateInput) (*savedtariffs.Detail, error)
}

func ListSavedTariffs(svc SavedTariffService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func CreateSavedTariff(svc SavedTariffService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input savedtariffs.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

func GetSavedTariff(svc SavedTariffService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := savedTariffID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func DeleteSavedTariff(svc SavedTariffService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := savedTariffID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}

// ExportSavedTariffs streams the current page as the summary CSV.
func ExportSavedTariffs(svc SavedTariffService, exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var buf bytes.Buffer
		if err := exporter.Table(&buf, page.Content); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render summary export"))
			return
		}
		responses.WriteCSV(w, export.TableFilename(params.Page), buf.Bytes())
	}
}

// ExportSavedTariffDetails streams the current page as the expanded CSV.
// Per-row hydration failures degrade those rows; the export still ships.
func ExportSavedTariffDetails(svc SavedTariffService, exporter *export.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var buf bytes.Buffer
		if err := exporter.Details(ctx, &buf, page.Content); err != nil && logg != nil {
			logg.Warn(ctx, "detail export shipped degraded rows: "+err.Error())
		}
		responses.WriteCSV(w, export.DetailFilename(params.Page), buf.Bytes())
	}
}

func savedTariffID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer").
			WithDetails(map[string]any{"id": raw})
	}
	return uint(id), nil
}
