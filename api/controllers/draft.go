package controllers

import (
	"net/http"

	"github.com/tariffsheriff/tariffsheriff-backend/api/middleware"
	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/api/validators"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/calculator"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/draft"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// GetDraft restores the caller's autosaved draft merged over defaults.
// Autosave is best-effort, so this always answers 200.
func GetDraft(saver *draft.Autosaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		owner := middleware.DraftOwnerFromContext(ctx)
		restored := saver.Restore(ctx, owner, calculator.ProductInfo{})
		responses.WriteSuccess(w, restored)
	}
}

// PutDraft schedules an autosave write for the caller's draft. The write
// lands after the debounce window; rapid edits coalesce.
func PutDraft(saver *draft.Autosaver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body calculator.ProductInfo
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saver.Schedule(middleware.DraftOwnerFromContext(ctx), body)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
	}
}

// DeleteDraft drops the caller's autosaved draft.
func DeleteDraft(saver *draft.Autosaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		saver.Clear(ctx, middleware.DraftOwnerFromContext(ctx))
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
