package controllers

import (
	"net/http"

	"github.com/tariffsheriff/tariffsheriff-backend/api/responses"
	"github.com/tariffsheriff/tariffsheriff-backend/api/validators"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/hscodes"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

const maxSearchQueryLen = 80

// SearchHsCodes serves ranked HS code suggestions for a code fragment or
// free-text query.
func SearchHsCodes(search hscodes.Searcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := validators.SanitizeString(r.URL.Query().Get("query"), maxSearchQueryLen)
		results, err := search.Search(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}
