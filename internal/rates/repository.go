package rates

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
)

// Repository reads tariff reference data: rates, agreements, and countries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByRoute returns every rate row for the importer/origin/HS triple with
// the granting agreement preloaded. Both the MFN and preferential rows come
// back when both exist.
func (r *Repository) FindByRoute(ctx context.Context, importerIso3, originIso3, hsCode string) ([]models.TariffRate, error) {
	var rows []models.TariffRate
	err := r.db.WithContext(ctx).
		Preload("Agreement").
		Where("importer_iso3 = ? AND origin_iso3 = ? AND hs_code = ?", importerIso3, originIso3, hsCode).
		Order("basis ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListOrigins returns the distinct origin countries that have any rate on
// file for the importer/HS pair. These are the candidates the route
// comparator evaluates.
func (r *Repository) ListOrigins(ctx context.Context, importerIso3, hsCode string) ([]string, error) {
	var origins []string
	err := r.db.WithContext(ctx).
		Model(&models.TariffRate{}).
		Distinct("origin_iso3").
		Where("importer_iso3 = ? AND hs_code = ?", importerIso3, hsCode).
		Order("origin_iso3 ASC").
		Pluck("origin_iso3", &origins).
		Error
	return origins, err
}

// ListAgreements returns trade agreements ordered by name. Importer and
// origin filters are optional; passing both narrows to one route pair.
func (r *Repository) ListAgreements(ctx context.Context, importerIso3, originIso3 string) ([]models.Agreement, error) {
	query := r.db.WithContext(ctx).Model(&models.Agreement{})
	if importerIso3 != "" {
		query = query.Where("importer_iso3 = ?", importerIso3)
	}
	if originIso3 != "" {
		query = query.Where("origin_iso3 = ?", originIso3)
	}

	var rows []models.Agreement
	err := query.Order("name ASC").Find(&rows).Error
	return rows, err
}

// ListCountries returns the country reference table ordered by name.
func (r *Repository) ListCountries(ctx context.Context) ([]models.Country, error) {
	var rows []models.Country
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CountryName resolves an ISO3 code to its display name. Unknown codes
// return the code itself so callers always have something to render.
func (r *Repository) CountryName(ctx context.Context, iso3 string) (string, error) {
	var row models.Country
	err := r.db.WithContext(ctx).First(&row, "iso3 = ?", iso3).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return iso3, nil
	}
	if err != nil {
		return "", err
	}
	return row.Name, nil
}
