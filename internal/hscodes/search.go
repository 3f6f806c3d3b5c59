package hscodes

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
)

// defaultSearchLimit caps how many suggestions one query returns.
const defaultSearchLimit = 20

// Result is one ranked search hit.
type Result struct {
	HsCode   string `json:"hsCode"`
	HsLabel  string `json:"hsLabel"`
	Category string `json:"category,omitempty"`
}

// Repository searches the HS product reference table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search matches the query against codes (dot-insensitively) and
// descriptions. Exact code matches rank first, then code prefixes, then
// description hits.
func (r *Repository) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	bare := strings.ReplaceAll(query, ".", "")
	pattern := "%" + strings.ToLower(query) + "%"
	barePattern := bare + "%"

	var rows []models.HsProduct
	err := r.db.WithContext(ctx).
		Where("REPLACE(code, '.', '') = ?", bare).
		Or("REPLACE(code, '.', '') LIKE ?", barePattern).
		Or("LOWER(description) LIKE ?", pattern).
		Limit(defaultSearchLimit).
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search hs codes")
	}

	results := make([]Result, 0, len(rows))
	var exact []Result
	var prefix []Result
	var rest []Result
	for _, row := range rows {
		result := Result{HsCode: row.Code, HsLabel: row.Description, Category: row.Category}
		rowBare := strings.ReplaceAll(row.Code, ".", "")
		switch {
		case rowBare == bare:
			exact = append(exact, result)
		case strings.HasPrefix(rowBare, bare):
			prefix = append(prefix, result)
		default:
			rest = append(rest, result)
		}
	}
	results = append(results, exact...)
	results = append(results, prefix...)
	results = append(results, rest...)
	return results, nil
}

// Searcher is the query surface label lookups need.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// BestLabel resolves a human label for an HS code: prefer the
// dot-insensitive exact match, fall back to the first hit, else empty. A
// search failure also degrades to empty; callers use this for enrichment
// only.
func BestLabel(ctx context.Context, source Searcher, hsCode string) string {
	results, err := source.Search(ctx, hsCode)
	if err != nil || len(results) == 0 {
		return ""
	}

	bare := strings.ReplaceAll(hsCode, ".", "")
	for _, result := range results {
		if strings.ReplaceAll(result.HsCode, ".", "") == bare {
			return result.HsLabel
		}
	}
	return results[0].HsLabel
}
