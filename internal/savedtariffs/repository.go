package savedtariffs

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/pagination"
)

// Repository persists saved calculations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of saved calculations, newest first, plus the total
// row count for pagination.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.SavedCalculation, int64, error) {
	normalized := params.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SavedCalculation{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count saved calculations")
	}

	var rows []models.SavedCalculation
	err := r.db.WithContext(ctx).
		Preload("Agreement").
		Order("created_at DESC, id DESC").
		Offset(normalized.Offset()).
		Limit(normalized.Size).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saved calculations")
	}
	return rows, total, nil
}

// FindByID loads one saved calculation with its agreement.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.SavedCalculation, error) {
	var row models.SavedCalculation
	err := r.db.WithContext(ctx).Preload("Agreement").First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("saved calculation %d not found", id))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("load saved calculation %d", id))
	}
	return &row, nil
}

// Create inserts a new saved calculation row.
func (r *Repository) Create(ctx context.Context, row *models.SavedCalculation) (*models.SavedCalculation, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert saved calculation")
	}
	return row, nil
}

// Delete removes a saved calculation. Deleting an absent id is reported as
// not found so the caller can reconcile its view.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SavedCalculation{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, fmt.Sprintf("delete saved calculation %d", id))
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("saved calculation %d not found", id))
	}
	return nil
}
