package configurator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/printforge/configurator-backend/pkg/logger"
	"github.com/printforge/configurator-backend/pkg/metrics"
)

// CatalogSource loads the raw denormalized product read.
type CatalogSource interface {
	Snapshot(ctx context.Context, productID uuid.UUID) (*RawProduct, error)
}

// Service exposes the configurator read surface.
type Service interface {
	Describe(ctx context.Context, productID uuid.UUID) (*ConfiguratorProduct, error)
	Quote(ctx context.Context, productID uuid.UUID, selections *Selections) (*QuoteResult, error)
}

// QuoteFilters groups the three compatibility filter outcomes.
type QuoteFilters struct {
	Materials    *MaterialFilterResult    `json:"materials"`
	PrintMethods *PrintMethodFilterResult `json:"print_methods"`
	Finishing    *FinishingFilterResult   `json:"finishing"`
}

// QuoteResult is the full evaluation of one selection state.
type QuoteResult struct {
	Product *ConfiguratorProduct `json:"product"`
	Filters QuoteFilters         `json:"filters"`
	Rules   *OptionRuleResult    `json:"rules"`
	Price   *PriceSummary        `json:"price"`
}

type service struct {
	catalog     CatalogSource
	metrics     *metrics.QuoteMetrics
	logg        *logger.Logger
	placeholder string
}

// NewService builds the configurator service backed by the provided stack.
func NewService(catalog CatalogSource, quoteMetrics *metrics.QuoteMetrics, logg *logger.Logger, placeholderImage string) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		catalog:     catalog,
		metrics:     quoteMetrics,
		logg:        logg,
		placeholder: placeholderImage,
	}, nil
}

// Describe returns the normalized product snapshot.
func (s *service) Describe(ctx context.Context, productID uuid.UUID) (*ConfiguratorProduct, error) {
	start := time.Now()
	product, err := s.load(ctx, productID)
	s.metrics.ObserveDuration("describe", time.Since(start))
	if err != nil {
		s.metrics.IncFailure("describe")
		return nil, err
	}
	s.metrics.IncSuccess("describe")
	return product, nil
}

// Quote evaluates the current selections end to end: normalize, filter the
// three compatibility axes, run option rules, price.
func (s *service) Quote(ctx context.Context, productID uuid.UUID, selections *Selections) (*QuoteResult, error) {
	start := time.Now()
	result, err := s.quote(ctx, productID, selections)
	s.metrics.ObserveDuration("quote", time.Since(start))
	if err != nil {
		s.metrics.IncFailure("quote")
		return nil, err
	}
	s.metrics.IncSuccess("quote")
	return result, nil
}

func (s *service) quote(ctx context.Context, productID uuid.UUID, selections *Selections) (*QuoteResult, error) {
	product, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}

	materials := FilterMaterials(product, selections)
	printMethods := FilterPrintMethods(product, selections)
	finishing := FilterFinishing(product, selections)

	rules, err := ApplyOptionRules(product, selections)
	if err != nil {
		return nil, err
	}

	price, err := CalculatePrice(product, selections, &PriceContext{
		Materials:    materials.Materials,
		PrintMethods: printMethods.PrintMethods,
		Finishing:    finishing.Finishing,
	})
	if err != nil {
		return nil, err
	}

	if len(materials.Issues)+len(printMethods.Issues)+len(finishing.Issues) > 0 {
		ctx = s.logg.WithProductID(ctx, productID.String())
		s.logg.Warn(ctx, fmt.Sprintf("quote evaluated with %d compatibility issues",
			len(materials.Issues)+len(printMethods.Issues)+len(finishing.Issues)))
	}

	return &QuoteResult{
		Product: product,
		Filters: QuoteFilters{
			Materials:    materials,
			PrintMethods: printMethods,
			Finishing:    finishing,
		},
		Rules: rules,
		Price: price,
	}, nil
}

func (s *service) load(ctx context.Context, productID uuid.UUID) (*ConfiguratorProduct, error) {
	raw, err := s.catalog.Snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, NormalizeOptions{PlaceholderImage: s.placeholder})
}
