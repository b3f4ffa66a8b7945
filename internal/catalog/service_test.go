package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/db/models"
	"github.com/printforge/configurator-backend/pkg/logger"
	"github.com/printforge/configurator-backend/pkg/redis"
)

type stubRepo struct {
	product     *models.Product
	detailCalls int
	stampCalls  int
}

func (s *stubRepo) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.detailCalls++
	if s.product == nil {
		return nil, fmt.Errorf("no product")
	}
	return s.product, nil
}

func (s *stubRepo) GetUpdatedAt(ctx context.Context, id uuid.UUID) (time.Time, error) {
	s.stampCalls++
	if s.product == nil {
		return time.Time{}, fmt.Errorf("no product")
	}
	return s.product.UpdatedAt, nil
}

type stubCache struct {
	entries map[string]string
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}}
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if value, ok := s.entries[key]; ok {
		return value, nil
	}
	return "", redis.Nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.sets++
	switch v := value.(type) {
	case []byte:
		s.entries[key] = string(v)
	case string:
		s.entries[key] = v
	}
	return nil
}

func (s *stubCache) SnapshotKey(productID string, updatedAtUnix int64) string {
	return fmt.Sprintf("cfg:catalog:product:%s:%d", productID, updatedAtUnix)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "catalog-test", Level: zerolog.Disabled})
}

func strPtr(v string) *string { return &v }

func productFixture() *models.Product {
	slug := "flyers"
	return &models.Product{
		ID:          uuid.New(),
		Slug:        slug,
		Name:        "Flyers",
		Description: strPtr("A5 flyers"),
		IsActive:    true,
		BasePrice:   decimal.NewFromInt(40),
		Materials: []models.ProductMaterial{
			{
				PriceModifier: decimal.NewFromInt(2),
				Material: &models.Material{
					Slug:        "mat-1",
					Name:        "Matte 300g",
					CostPerUnit: decimal.NewFromInt(3),
				},
			},
		},
		PrintMethods: []models.ProductPrintMethod{
			{
				MaterialSlugs: []string{"mat-1"},
				PrintMethod: &models.PrintMethod{
					Slug:         "offset",
					Name:         "Offset",
					CostPerSheet: decimal.NewFromInt(12),
				},
			},
		},
		Images: []models.ProductImage{
			{URL: "/images/flyers.jpg", Position: 0},
		},
		UpdatedAt: time.Unix(1700000000, 0),
	}
}

func TestSnapshotMapsProduct(t *testing.T) {
	repo := &stubRepo{product: productFixture()}
	svc, err := NewService(repo, nil, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	raw, err := svc.Snapshot(context.Background(), repo.product.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if raw.Slug != "flyers" || raw.Description != "A5 flyers" {
		t.Fatalf("unexpected mapping %+v", raw)
	}
	if len(raw.Materials) != 1 || raw.Materials[0].Material.Slug != "mat-1" {
		t.Fatalf("material not mapped: %+v", raw.Materials)
	}
	if len(raw.PrintMethods) != 1 || raw.PrintMethods[0].MaterialSlugs[0] != "mat-1" {
		t.Fatalf("print method not mapped: %+v", raw.PrintMethods)
	}
	if len(raw.Images) != 1 || raw.Images[0] != "/images/flyers.jpg" {
		t.Fatalf("images not mapped: %v", raw.Images)
	}
}

func TestSnapshotUsesCache(t *testing.T) {
	repo := &stubRepo{product: productFixture()}
	cache := newStubCache()
	svc, err := NewService(repo, cache, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Snapshot(context.Background(), repo.product.ID); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	if repo.detailCalls != 1 || cache.sets != 1 {
		t.Fatalf("expected one load and one cache write, got %d/%d", repo.detailCalls, cache.sets)
	}

	if _, err := svc.Snapshot(context.Background(), repo.product.ID); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if repo.detailCalls != 1 {
		t.Fatalf("expected cache hit, got %d detail loads", repo.detailCalls)
	}
}

func TestSnapshotKeyRotatesOnUpdate(t *testing.T) {
	repo := &stubRepo{product: productFixture()}
	cache := newStubCache()
	svc, err := NewService(repo, cache, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Snapshot(context.Background(), repo.product.ID); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	// A catalog write bumps updated_at; the next read must miss the cache.
	repo.product.UpdatedAt = repo.product.UpdatedAt.Add(time.Hour)
	repo.product.Name = "Flyers v2"

	raw, err := svc.Snapshot(context.Background(), repo.product.ID)
	if err != nil {
		t.Fatalf("snapshot after update: %v", err)
	}
	if repo.detailCalls != 2 {
		t.Fatalf("expected a fresh load after update, got %d", repo.detailCalls)
	}
	if raw.Name != "Flyers v2" {
		t.Fatalf("stale snapshot served: %+v", raw)
	}
}

func TestSnapshotDiscardsCorruptCacheEntry(t *testing.T) {
	repo := &stubRepo{product: productFixture()}
	cache := newStubCache()
	svc, err := NewService(repo, cache, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	key := cache.SnapshotKey(repo.product.ID.String(), repo.product.UpdatedAt.Unix())
	cache.entries[key] = "{not json"

	raw, err := svc.Snapshot(context.Background(), repo.product.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if raw.Slug != "flyers" {
		t.Fatalf("unexpected snapshot %+v", raw)
	}
	if repo.detailCalls != 1 {
		t.Fatalf("expected fallback to db load, got %d", repo.detailCalls)
	}
}

func TestSnapshotRoundTripsThroughJSON(t *testing.T) {
	repo := &stubRepo{product: productFixture()}
	svc, err := NewService(repo, nil, testLogger(), time.Minute)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	raw, err := svc.Snapshot(context.Background(), repo.product.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["slug"] != "flyers" {
		t.Fatalf("unexpected payload %v", decoded)
	}
}
