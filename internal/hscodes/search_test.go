package hscodes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
)

func setupHsCodesDB(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.HsProduct{}))

	rows := []models.HsProduct{
		{Code: "8703.80.10", Description: "Motor cars, electric, new", Category: "vehicles"},
		{Code: "8703.23.00", Description: "Motor cars, spark-ignition", Category: "vehicles"},
		{Code: "0901.21.00", Description: "Coffee, roasted", Category: "food"},
	}
	require.NoError(t, db.Create(&rows).Error)
	return NewRepository(db)
}

func TestSearchMatchesCodeIgnoringDots(t *testing.T) {
	repo := setupHsCodesDB(t)

	results, err := repo.Search(context.Background(), "87038010")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "8703.80.10", results[0].HsCode)
}

func TestSearchRanksExactBeforePrefix(t *testing.T) {
	repo := setupHsCodesDB(t)

	results, err := repo.Search(context.Background(), "8703.23.00")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "8703.23.00", results[0].HsCode)
}

func TestSearchMatchesDescription(t *testing.T) {
	repo := setupHsCodesDB(t)

	results, err := repo.Search(context.Background(), "coffee")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0901.21.00", results[0].HsCode)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	repo := setupHsCodesDB(t)

	results, err := repo.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

type stubSearcher struct {
	results []Result
	err     error
}

func (s stubSearcher) Search(context.Context, string) ([]Result, error) {
	return s.results, s.err
}

func TestBestLabelPrefersDotInsensitiveExactMatch(t *testing.T) {
	source := stubSearcher{results: []Result{
		{HsCode: "8703.23.00", HsLabel: "wrong"},
		{HsCode: "8703.80.10", HsLabel: "Motor cars, electric, new"},
	}}

	label := BestLabel(context.Background(), source, "87038010")
	assert.Equal(t, "Motor cars, electric, new", label)
}

func TestBestLabelFallsBackToFirstResult(t *testing.T) {
	source := stubSearcher{results: []Result{
		{HsCode: "8703.23.00", HsLabel: "first hit"},
	}}

	label := BestLabel(context.Background(), source, "9999.99")
	assert.Equal(t, "first hit", label)
}

func TestBestLabelDegradesToEmpty(t *testing.T) {
	assert.Empty(t, BestLabel(context.Background(), stubSearcher{}, "8703.80.10"))
	assert.Empty(t, BestLabel(context.Background(), stubSearcher{err: errors.New("down")}, "8703.80.10"))
}
