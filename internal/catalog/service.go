package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/printforge/configurator-backend/internal/configurator"
	"github.com/printforge/configurator-backend/pkg/db/models"
	"github.com/printforge/configurator-backend/pkg/logger"
	"github.com/printforge/configurator-backend/pkg/redis"
)

// snapshotCache is the slice of the redis client the service needs.
type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(productID string, updatedAtUnix int64) string
}

// productLoader is the slice of the repository the service needs.
type productLoader interface {
	GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetUpdatedAt(ctx context.Context, id uuid.UUID) (time.Time, error)
}

// Service produces raw product snapshots for the configurator, caching them
// in redis. The cache key embeds updated_at, so a catalog write changes the
// key and the previous entry simply ages out.
type Service struct {
	repo  productLoader
	cache snapshotCache
	logg  *logger.Logger
	ttl   time.Duration
}

// NewService builds the catalog snapshot service. The cache is optional;
// without it every snapshot hits the database.
func NewService(repo productLoader, cache snapshotCache, logg *logger.Logger, ttl time.Duration) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{repo: repo, cache: cache, logg: logg, ttl: ttl}, nil
}

// Snapshot returns the denormalized raw read for one product.
func (s *Service) Snapshot(ctx context.Context, productID uuid.UUID) (*configurator.RawProduct, error) {
	if s.cache == nil {
		return s.loadSnapshot(ctx, productID)
	}

	updatedAt, err := s.repo.GetUpdatedAt(ctx, productID)
	if err != nil {
		return nil, err
	}
	key := s.cache.SnapshotKey(productID.String(), updatedAt.Unix())

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var raw configurator.RawProduct
		if err := json.Unmarshal([]byte(cached), &raw); err == nil {
			return &raw, nil
		}
		s.logg.Warn(s.logg.WithProductID(ctx, productID.String()), "discarding undecodable snapshot cache entry")
	} else if err != redis.Nil {
		s.logg.Warn(s.logg.WithProductID(ctx, productID.String()), "snapshot cache read failed")
	}

	raw, err := s.loadSnapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(raw); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logg.Warn(s.logg.WithProductID(ctx, productID.String()), "snapshot cache write failed")
		}
	}
	return raw, nil
}

func (s *Service) loadSnapshot(ctx context.Context, productID uuid.UUID) (*configurator.RawProduct, error) {
	product, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapProduct(product), nil
}

// mapProduct flattens the catalog record into the engine's raw shape. The
// engine addresses materials, print methods and finishing by slug.
func mapProduct(product *models.Product) *configurator.RawProduct {
	raw := &configurator.RawProduct{
		ID:            product.ID,
		Slug:          product.Slug,
		Name:          product.Name,
		Type:          product.Type.String(),
		Active:        product.IsActive,
		BasePrice:     product.BasePrice,
		PricingDoc:    product.Pricing.Raw(),
		OptionsDoc:    product.Options.Raw(),
		ProductionDoc: product.Production.Raw(),
		DimensionsDoc: product.Dimensions.Raw(),
		SEODoc:        product.SEO.Raw(),
		UpdatedAt:     product.UpdatedAt,
	}
	if product.Description != nil {
		raw.Description = *product.Description
	}
	if product.LongDescription != nil {
		raw.LongDescription = *product.LongDescription
	}

	raw.Materials = make([]configurator.RawMaterialRow, 0, len(product.Materials))
	for _, row := range product.Materials {
		mapped := configurator.RawMaterialRow{
			PriceModifier: row.PriceModifier,
			MinWidth:      row.MinWidth,
			MaxWidth:      row.MaxWidth,
			MinHeight:     row.MinHeight,
			MaxHeight:     row.MaxHeight,
			Unit:          row.Unit.String(),
		}
		if row.Material != nil {
			mapped.Material = &configurator.RawMaterial{
				Slug:        row.Material.Slug,
				Name:        row.Material.Name,
				CostPerUnit: row.Material.CostPerUnit,
			}
		}
		raw.Materials = append(raw.Materials, mapped)
	}

	raw.PrintMethods = make([]configurator.RawPrintMethodRow, 0, len(product.PrintMethods))
	for _, row := range product.PrintMethods {
		mapped := configurator.RawPrintMethodRow{
			PriceModifier: row.PriceModifier,
			MaterialSlugs: row.MaterialSlugs,
		}
		if row.PrintMethod != nil {
			mapped.PrintMethod = &configurator.RawPrintMethod{
				Slug:         row.PrintMethod.Slug,
				Name:         row.PrintMethod.Name,
				CostPerM2:    row.PrintMethod.CostPerM2,
				CostPerSheet: row.PrintMethod.CostPerSheet,
			}
		}
		raw.PrintMethods = append(raw.PrintMethods, mapped)
	}

	raw.Finishing = make([]configurator.RawFinishingRow, 0, len(product.Finishing))
	for _, row := range product.Finishing {
		mapped := configurator.RawFinishingRow{
			PriceModifier:    row.PriceModifier,
			MaterialSlugs:    row.MaterialSlugs,
			PrintMethodSlugs: row.PrintMethodSlugs,
		}
		if row.Finishing != nil {
			mapped.Finishing = &configurator.RawFinishing{
				Slug:        row.Finishing.Slug,
				Name:        row.Finishing.Name,
				CostFix:     row.Finishing.CostFix,
				CostPerUnit: row.Finishing.CostPerUnit,
				CostPerM2:   row.Finishing.CostPerM2,
			}
		}
		raw.Finishing = append(raw.Finishing, mapped)
	}

	raw.Images = make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		raw.Images = append(raw.Images, image.URL)
	}

	return raw
}
