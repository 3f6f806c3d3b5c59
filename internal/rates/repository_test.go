package rates

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

func setupRatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Country{}, &models.Agreement{}, &models.TariffRate{}))
	return db
}

func seedRoute(t *testing.T, db *gorm.DB) {
	t.Helper()

	agreement := models.Agreement{
		Name:         "USMCA",
		ImporterIso3: "USA",
		OriginIso3:   "MEX",
		Status:       enums.AgreementStatusActive,
		RvcThreshold: decimal.NewFromFloat(40),
	}
	require.NoError(t, db.Create(&agreement).Error)

	rows := []models.TariffRate{
		{ImporterIso3: "USA", OriginIso3: "MEX", HsCode: "8703.80.10", Basis: enums.RateBasisMFN, AdValoremRate: decimal.NewFromFloat(0.25)},
		{ImporterIso3: "USA", OriginIso3: "MEX", HsCode: "8703.80.10", Basis: enums.RateBasisPref, AdValoremRate: decimal.NewFromFloat(0.08), AgreementID: &agreement.ID},
		{ImporterIso3: "USA", OriginIso3: "CHN", HsCode: "8703.80.10", Basis: enums.RateBasisMFN, AdValoremRate: decimal.NewFromFloat(0.275)},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestFindByRoutePreloadsAgreement(t *testing.T) {
	db := setupRatesTestDB(t)
	seedRoute(t, db)
	repo := NewRepository(db)

	rows, err := repo.FindByRoute(context.Background(), "USA", "MEX", "8703.80.10")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var pref *models.TariffRate
	for i := range rows {
		if rows[i].Basis == enums.RateBasisPref {
			pref = &rows[i]
		}
	}
	require.NotNil(t, pref)
	require.NotNil(t, pref.Agreement)
	assert.Equal(t, "USMCA", pref.Agreement.Name)
}

func TestListOriginsIsDistinctAndSorted(t *testing.T) {
	db := setupRatesTestDB(t)
	seedRoute(t, db)
	repo := NewRepository(db)

	origins, err := repo.ListOrigins(context.Background(), "USA", "8703.80.10")
	require.NoError(t, err)
	assert.Equal(t, []string{"CHN", "MEX"}, origins)
}

func TestListAgreementsFiltersByPair(t *testing.T) {
	db := setupRatesTestDB(t)
	seedRoute(t, db)
	require.NoError(t, db.Create(&models.Agreement{
		Name:         "KORUS",
		ImporterIso3: "USA",
		OriginIso3:   "KOR",
		Status:       enums.AgreementStatusActive,
		RvcThreshold: decimal.NewFromFloat(35),
	}).Error)
	repo := NewRepository(db)

	all, err := repo.ListAgreements(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "KORUS", all[0].Name)
	assert.Equal(t, "USMCA", all[1].Name)

	pair, err := repo.ListAgreements(context.Background(), "USA", "MEX")
	require.NoError(t, err)
	require.Len(t, pair, 1)
	assert.Equal(t, "USMCA", pair[0].Name)

	none, err := repo.ListAgreements(context.Background(), "USA", "DEU")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountryNameFallsBackToCode(t *testing.T) {
	db := setupRatesTestDB(t)
	require.NoError(t, db.Create(&models.Country{Iso3: "MEX", Name: "Mexico", Region: "North America"}).Error)
	repo := NewRepository(db)

	name, err := repo.CountryName(context.Background(), "MEX")
	require.NoError(t, err)
	assert.Equal(t, "Mexico", name)

	name, err = repo.CountryName(context.Background(), "ZZZ")
	require.NoError(t, err)
	assert.Equal(t, "ZZZ", name)
}
