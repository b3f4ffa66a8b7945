package configurator

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
)

// NormalizeOptions tunes normalization knobs that come from config rather
// than the catalog record itself.
type NormalizeOptions struct {
	PlaceholderImage string
}

// pricingDoc and optionsDoc mirror the authored jsonb shapes. Numeric
// fields decode through decimal so authored floats never round-trip
// through float64 arithmetic.
type pricingDoc struct {
	Type        string            `json:"type"`
	BasePrice   *decimal.Decimal  `json:"base_price"`
	PriceBreaks []priceBreakDoc   `json:"price_breaks"`
	Formula     string            `json:"formula"`
}

type priceBreakDoc struct {
	MinQuantity  int             `json:"min_quantity"`
	MaxQuantity  *int            `json:"max_quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type optionDoc struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	Required bool             `json:"required"`
	Values   []optionValueDoc `json:"values"`
	Rules    []Rule           `json:"rules"`
}

type optionValueDoc struct {
	Label         string          `json:"label"`
	Value         string          `json:"value"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Disabled      bool            `json:"disabled"`
}

// Normalize turns a raw catalog read into a render-ready snapshot. Malformed
// sub-documents degrade to safe fallbacks instead of failing the render; the
// only hard error is an inactive (or absent) product.
func Normalize(raw *RawProduct, opts NormalizeOptions) (*ConfiguratorProduct, error) {
	if raw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !raw.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not active")
	}

	product := &ConfiguratorProduct{
		ID:              raw.ID,
		Slug:            raw.Slug,
		Name:            raw.Name,
		Description:     raw.Description,
		LongDescription: raw.LongDescription,
		Type:            normalizeProductType(raw.Type),
		Active:          true,
		Options:         normalizeOptions(raw.OptionsDoc),
		Materials:       normalizeMaterials(raw.Materials),
		PrintMethods:    normalizePrintMethods(raw.PrintMethods),
		Finishing:       normalizeFinishing(raw.Finishing),
		Pricing:         normalizePricing(raw.PricingDoc, raw.BasePrice),
		Images:          append([]string(nil), raw.Images...),
	}

	if doc := decodeDoc[Production](raw.ProductionDoc); doc != nil {
		product.Production = doc
	}
	if doc := decodeDoc[DimensionEnvelope](raw.DimensionsDoc); doc != nil {
		product.Dimensions = doc
	}
	if doc := decodeDoc[SEOMeta](raw.SEODoc); doc != nil {
		product.SEO = doc
	}

	product.DefaultImage = opts.PlaceholderImage
	if len(product.Images) > 0 {
		product.DefaultImage = product.Images[0]
	}
	product.Defaults = deriveDefaults(product)

	return product, nil
}

func normalizeProductType(value string) enums.ProductType {
	parsed, err := enums.ParseProductType(value)
	if err != nil {
		return enums.ProductTypeStandard
	}
	return parsed
}

// decodeDoc unwraps a jsonb sub-document into T. Documents that arrive
// double-encoded (a JSON string containing JSON) are unwrapped once before
// decoding. Any failure yields nil.
func decodeDoc[T any](doc json.RawMessage) *T {
	payload := unwrapDoc(doc)
	if len(payload) == 0 {
		return nil
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil
	}
	return &out
}

func unwrapDoc(doc json.RawMessage) []byte {
	trimmed := trimSpace(doc)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil
		}
		return trimSpace([]byte(inner))
	}
	return trimmed
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isJSONSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isJSONSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// normalizePricing decodes the pricing document, falling back to fixed
// pricing at the product's base price whenever the document is missing,
// malformed, or declares an unknown strategy.
func normalizePricing(doc json.RawMessage, basePrice decimal.Decimal) Pricing {
	fallback := Pricing{Type: enums.PricingTypeFixed, BasePrice: basePrice}

	decoded := decodeDoc[pricingDoc](doc)
	if decoded == nil {
		return fallback
	}
	pricingType, err := enums.ParsePricingType(decoded.Type)
	if err != nil {
		return fallback
	}

	pricing := Pricing{Type: pricingType, BasePrice: basePrice}
	if decoded.BasePrice != nil {
		pricing.BasePrice = *decoded.BasePrice
	}

	switch pricingType {
	case enums.PricingTypePerUnit:
		if len(decoded.PriceBreaks) == 0 {
			return fallback
		}
		breaks := make([]PriceBreak, 0, len(decoded.PriceBreaks))
		for _, b := range decoded.PriceBreaks {
			breaks = append(breaks, PriceBreak{
				MinQuantity:  b.MinQuantity,
				MaxQuantity:  b.MaxQuantity,
				PricePerUnit: b.PricePerUnit,
			})
		}
		sort.SliceStable(breaks, func(i, j int) bool {
			return breaks[i].MinQuantity < breaks[j].MinQuantity
		})
		pricing.PriceBreaks = breaks
	case enums.PricingTypeFormula:
		if decoded.Formula == "" {
			return fallback
		}
		pricing.Formula = decoded.Formula
	}

	return pricing
}

// normalizeOptions decodes the options document. A malformed document yields
// an empty option list; individual entries with an unknown type are dropped.
func normalizeOptions(doc json.RawMessage) []Option {
	decoded := decodeDoc[[]optionDoc](doc)
	if decoded == nil {
		return []Option{}
	}

	options := make([]Option, 0, len(*decoded))
	for _, entry := range *decoded {
		if entry.ID == "" {
			continue
		}
		optionType, err := enums.ParseOptionType(entry.Type)
		if err != nil {
			continue
		}
		option := Option{
			ID:       entry.ID,
			Name:     entry.Name,
			Type:     optionType,
			Required: entry.Required,
			Rules:    entry.Rules,
			Values:   make([]OptionValue, 0, len(entry.Values)),
		}
		for _, value := range entry.Values {
			option.Values = append(option.Values, OptionValue{
				Label:         value.Label,
				Value:         value.Value,
				PriceModifier: value.PriceModifier,
				Disabled:      value.Disabled,
			})
		}
		options = append(options, option)
	}
	return options
}

func normalizeMaterials(rows []RawMaterialRow) []MaterialRef {
	refs := make([]MaterialRef, 0, len(rows))
	for _, row := range rows {
		if row.Material == nil {
			continue
		}
		ref := MaterialRef{
			ID:            row.Material.Slug,
			Name:          row.Material.Name,
			CostPerUnit:   row.Material.CostPerUnit,
			PriceModifier: row.PriceModifier,
		}
		if hasConstraint(row) {
			ref.Constraints = &MaterialConstraints{
				MinWidth:  row.MinWidth,
				MaxWidth:  row.MaxWidth,
				MinHeight: row.MinHeight,
				MaxHeight: row.MaxHeight,
				Unit:      normalizeUnit(row.Unit),
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func hasConstraint(row RawMaterialRow) bool {
	return row.MinWidth != nil || row.MaxWidth != nil || row.MinHeight != nil || row.MaxHeight != nil
}

func normalizeUnit(value string) enums.DimensionUnit {
	parsed, err := enums.ParseDimensionUnit(value)
	if err != nil {
		return enums.DimensionUnitMillimeter
	}
	return parsed
}

func normalizePrintMethods(rows []RawPrintMethodRow) []PrintMethodRef {
	refs := make([]PrintMethodRef, 0, len(rows))
	for _, row := range rows {
		if row.PrintMethod == nil {
			continue
		}
		refs = append(refs, PrintMethodRef{
			ID:            row.PrintMethod.Slug,
			Name:          row.PrintMethod.Name,
			CostPerM2:     row.PrintMethod.CostPerM2,
			CostPerSheet:  row.PrintMethod.CostPerSheet,
			PriceModifier: row.PriceModifier,
			MaterialIDs:   append([]string(nil), row.MaterialSlugs...),
		})
	}
	return refs
}

func normalizeFinishing(rows []RawFinishingRow) []FinishingRef {
	refs := make([]FinishingRef, 0, len(rows))
	for _, row := range rows {
		if row.Finishing == nil {
			continue
		}
		refs = append(refs, FinishingRef{
			ID:                       row.Finishing.Slug,
			Name:                     row.Finishing.Name,
			CostFix:                  row.Finishing.CostFix,
			CostPerUnit:              row.Finishing.CostPerUnit,
			CostPerM2:                row.Finishing.CostPerM2,
			PriceModifier:            row.PriceModifier,
			CompatibleMaterialIDs:    append([]string(nil), row.MaterialSlugs...),
			CompatiblePrintMethodIDs: append([]string(nil), row.PrintMethodSlugs...),
		})
	}
	return refs
}

// deriveDefaults seeds a fresh session: first entry per axis, first value
// per single-select option, empty selection for checkbox options.
func deriveDefaults(product *ConfiguratorProduct) Defaults {
	defaults := Defaults{
		FinishingIDs: []string{},
		Options:      map[string]OptionSelection{},
		Quantity:     1,
	}
	if len(product.Materials) > 0 {
		defaults.MaterialID = product.Materials[0].ID
	}
	if len(product.PrintMethods) > 0 {
		defaults.PrintMethodID = product.PrintMethods[0].ID
	}
	if len(product.Finishing) > 0 {
		defaults.FinishingIDs = []string{product.Finishing[0].ID}
	}
	for _, option := range product.Options {
		if option.Type.IsMulti() {
			defaults.Options[option.ID] = OptionSelection{}
			continue
		}
		if len(option.Values) > 0 {
			defaults.Options[option.ID] = OptionSelection{option.Values[0].Value}
		}
	}
	return defaults
}
