package configurator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
)

// RawProduct is the denormalized catalog read the engine consumes. The
// sub-documents stay loosely typed on purpose: they are authored in the
// admin and may be malformed, double-encoded, or missing entirely.
type RawProduct struct {
	ID              uuid.UUID         `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	LongDescription string            `json:"long_description"`
	Type            string            `json:"type"`
	Active          bool              `json:"active"`
	BasePrice       decimal.Decimal   `json:"base_price"`
	PricingDoc      json.RawMessage   `json:"pricing_doc,omitempty"`
	OptionsDoc      json.RawMessage   `json:"options_doc,omitempty"`
	ProductionDoc   json.RawMessage   `json:"production_doc,omitempty"`
	DimensionsDoc   json.RawMessage   `json:"dimensions_doc,omitempty"`
	SEODoc          json.RawMessage   `json:"seo_doc,omitempty"`
	Materials       []RawMaterialRow  `json:"materials"`
	PrintMethods    []RawPrintMethodRow `json:"print_methods"`
	Finishing       []RawFinishingRow `json:"finishing"`
	Images          []string          `json:"images"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// RawMaterialRow is a product/material join row. Material is nil when the
// foreign key dangles; the normalizer drops such rows silently.
type RawMaterialRow struct {
	Material      *RawMaterial    `json:"material"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	MinWidth      *float64        `json:"min_width,omitempty"`
	MaxWidth      *float64        `json:"max_width,omitempty"`
	MinHeight     *float64        `json:"min_height,omitempty"`
	MaxHeight     *float64        `json:"max_height,omitempty"`
	Unit          string          `json:"unit"`
}

type RawMaterial struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}

type RawPrintMethodRow struct {
	PrintMethod   *RawPrintMethod `json:"print_method"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	MaterialSlugs []string        `json:"material_slugs"`
}

type RawPrintMethod struct {
	Slug         string           `json:"slug"`
	Name         string           `json:"name"`
	CostPerM2    *decimal.Decimal `json:"cost_per_m2,omitempty"`
	CostPerSheet decimal.Decimal  `json:"cost_per_sheet"`
}

type RawFinishingRow struct {
	Finishing        *RawFinishing   `json:"finishing"`
	PriceModifier    decimal.Decimal `json:"price_modifier"`
	MaterialSlugs    []string        `json:"material_slugs"`
	PrintMethodSlugs []string        `json:"print_method_slugs"`
}

type RawFinishing struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	CostFix     decimal.Decimal `json:"cost_fix"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	CostPerM2   decimal.Decimal `json:"cost_per_m2"`
}

// ConfiguratorProduct is the normalized, render-ready snapshot. It is built
// once per render and never mutated afterward; callers needing a variant
// must copy it.
type ConfiguratorProduct struct {
	ID              uuid.UUID          `json:"id"`
	Slug            string             `json:"slug"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	LongDescription string             `json:"long_description,omitempty"`
	Type            enums.ProductType  `json:"type"`
	Active          bool               `json:"active"`
	Options         []Option           `json:"options"`
	Materials       []MaterialRef      `json:"materials"`
	PrintMethods    []PrintMethodRef   `json:"print_methods"`
	Finishing       []FinishingRef     `json:"finishing"`
	Pricing         Pricing            `json:"pricing"`
	Production      *Production        `json:"production,omitempty"`
	Dimensions      *DimensionEnvelope `json:"dimensions,omitempty"`
	SEO             *SEOMeta           `json:"seo,omitempty"`
	Images          []string           `json:"images"`
	DefaultImage    string             `json:"default_image"`
	Defaults        Defaults           `json:"defaults"`
}

// Option is a configurable product attribute.
type Option struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     enums.OptionType `json:"type"`
	Required bool             `json:"required"`
	Values   []OptionValue    `json:"values"`
	Rules    []Rule           `json:"rules,omitempty"`
}

// OptionValue is one selectable value of an option.
type OptionValue struct {
	Label         string          `json:"label"`
	Value         string          `json:"value"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Disabled      bool            `json:"disabled"`
}

// Rule is a condition/action pair stored as plain strings on the catalog
// record.
type Rule struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

// MaterialRef is a product-scoped material with its cost decoration and
// optional dimension constraints.
type MaterialRef struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	CostPerUnit   decimal.Decimal      `json:"cost_per_unit"`
	PriceModifier decimal.Decimal      `json:"price_modifier"`
	Constraints   *MaterialConstraints `json:"constraints,omitempty"`
}

// MaterialConstraints bounds the printable dimension for a material.
type MaterialConstraints struct {
	MinWidth  *float64            `json:"min_width,omitempty"`
	MaxWidth  *float64            `json:"max_width,omitempty"`
	MinHeight *float64            `json:"min_height,omitempty"`
	MaxHeight *float64            `json:"max_height,omitempty"`
	Unit      enums.DimensionUnit `json:"unit"`
}

// PrintMethodRef is a product-scoped print method. An empty MaterialIDs
// allow-list means the method works on any material.
type PrintMethodRef struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	CostPerM2     *decimal.Decimal `json:"cost_per_m2,omitempty"`
	CostPerSheet  decimal.Decimal  `json:"cost_per_sheet"`
	PriceModifier decimal.Decimal  `json:"price_modifier"`
	MaterialIDs   []string         `json:"material_ids"`
}

// FinishingRef is a product-scoped finishing operation. Empty allow-lists
// mean compatible with everything.
type FinishingRef struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	CostFix                  decimal.Decimal `json:"cost_fix"`
	CostPerUnit              decimal.Decimal `json:"cost_per_unit"`
	CostPerM2                decimal.Decimal `json:"cost_per_m2"`
	PriceModifier            decimal.Decimal `json:"price_modifier"`
	CompatibleMaterialIDs    []string        `json:"compatible_material_ids"`
	CompatiblePrintMethodIDs []string        `json:"compatible_print_method_ids"`
}

// Pricing is the product's pricing strategy, discriminated by Type.
type Pricing struct {
	Type        enums.PricingType `json:"type"`
	BasePrice   decimal.Decimal   `json:"base_price"`
	PriceBreaks []PriceBreak      `json:"price_breaks,omitempty"`
	Formula     string            `json:"formula,omitempty"`
}

// PriceBreak is a quantity threshold with its per-unit price. Breaks are
// ordered by MinQuantity ascending and non-overlapping.
type PriceBreak struct {
	MinQuantity  int             `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// Production is optional lead-time metadata.
type Production struct {
	LeadTimeDays int    `json:"lead_time_days,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// DimensionEnvelope bounds and seeds the requestable product dimension.
type DimensionEnvelope struct {
	MinWidth      float64             `json:"min_width"`
	MaxWidth      float64             `json:"max_width"`
	MinHeight     float64             `json:"min_height"`
	MaxHeight     float64             `json:"max_height"`
	DefaultWidth  float64             `json:"default_width"`
	DefaultHeight float64             `json:"default_height"`
	Unit          enums.DimensionUnit `json:"unit"`
}

// SEOMeta is optional storefront metadata.
type SEOMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Defaults seeds a fresh configurator session.
type Defaults struct {
	MaterialID    string                     `json:"material_id"`
	PrintMethodID string                     `json:"print_method_id"`
	FinishingIDs  []string                   `json:"finishing_ids"`
	Options       map[string]OptionSelection `json:"options"`
	Quantity      int                        `json:"quantity"`
}

// Selections carries the customer's current choices. The engine never
// mutates it; the UI layer owns its lifetime and re-validates on every
// change.
type Selections struct {
	Quantity      int                        `json:"quantity"`
	MaterialID    string                     `json:"material_id"`
	PrintMethodID string                     `json:"print_method_id"`
	FinishingIDs  []string                   `json:"finishing_ids"`
	Options       map[string]OptionSelection `json:"options"`
	Dimension     *Dimension                 `json:"dimension,omitempty"`
}

// Dimension is a requested width/height in a declared unit.
type Dimension struct {
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Unit   enums.DimensionUnit `json:"unit"`
}

// OptionSelection holds the selected value(s) for one option. Checkbox
// options carry multiple entries; every other type carries at most one.
type OptionSelection []string

// Single returns the first selected value, or "".
func (s OptionSelection) Single() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Contains reports whether the selection includes the given value.
func (s OptionSelection) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts a scalar or an array of scalars, mirroring how the
// storefront serializes single- and multi-value options.
func (s *OptionSelection) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(OptionSelection, 0, len(list))
		for _, entry := range list {
			out = append(out, scalarToString(entry))
		}
		*s = out
		return nil
	}
	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	if scalar == nil {
		*s = nil
		return nil
	}
	*s = OptionSelection{scalarToString(scalar)}
	return nil
}

func scalarToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MaterialFilterResult lists the materials that remain legal plus one issue
// string per rejection.
type MaterialFilterResult struct {
	Materials []MaterialRef `json:"materials"`
	Issues    []string      `json:"issues"`
}

// PrintMethodFilterResult lists the print methods that remain legal.
type PrintMethodFilterResult struct {
	PrintMethods []PrintMethodRef `json:"print_methods"`
	Issues       []string         `json:"issues"`
}

// FinishingFilterResult lists the finishing operations that remain legal.
type FinishingFilterResult struct {
	Finishing []FinishingRef `json:"finishing"`
	Issues    []string       `json:"issues"`
}

// OptionRuleResult is the outcome of evaluating every option rule against
// the current selections.
type OptionRuleResult struct {
	VisibleOptions   []Option            `json:"visible_options"`
	HiddenOptionIDs  []string            `json:"hidden_option_ids"`
	DisabledValueMap map[string][]string `json:"disabled_value_map"`
	PriceAdjustment  decimal.Decimal     `json:"price_adjustment"`
	ValidationErrors []string            `json:"validation_errors"`
}

// PriceSummary is the itemized breakdown. Total is the only field the cart
// is contractually required to trust.
type PriceSummary struct {
	Base              decimal.Decimal `json:"base"`
	MaterialCost      decimal.Decimal `json:"material_cost"`
	PrintCost         decimal.Decimal `json:"print_cost"`
	OptionCost        decimal.Decimal `json:"option_cost"`
	FinishingCost     decimal.Decimal `json:"finishing_cost"`
	AppliedPriceBreak *PriceBreak     `json:"applied_price_break,omitempty"`
	Total             decimal.Decimal `json:"total"`
}

// PriceContext lets a caller price a hypothetical selection against an
// overridden candidate set without mutating the product snapshot.
type PriceContext struct {
	Materials    []MaterialRef
	PrintMethods []PrintMethodRef
	Finishing    []FinishingRef
}
