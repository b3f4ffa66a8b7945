package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printforge/configurator-backend/pkg/db/models"
	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
)

// Repository loads catalog records for the configurator read path.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository over the shared connection.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &Repository{db: db}, nil
}

// GetProductDetail loads the full denormalized product read: every join row
// preloaded in its declared position order.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Materials.Material").
		Preload("PrintMethods", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("PrintMethods.PrintMethod").
		Preload("Finishing", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Finishing.Finishing").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return &product, nil
}

// GetUpdatedAt returns the product's last-modified stamp without loading the
// joins. The snapshot cache key embeds it.
func (r *Repository) GetUpdatedAt(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var row struct {
		UpdatedAt time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("updated_at").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product stamp")
	}
	return row.UpdatedAt, nil
}
