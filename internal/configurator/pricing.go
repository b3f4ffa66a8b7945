package configurator

import (
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
)

// CalculatePrice produces the itemized price for the current selections.
// pctx may override the candidate sets to price a hypothetical selection;
// nil prices against the product's own sets. Non-positive quantities are
// clamped to 1 so the breakdown stays finite; the rule evaluator is the
// layer that reports them.
func CalculatePrice(product *ConfiguratorProduct, selections *Selections, pctx *PriceContext) (*PriceSummary, error) {
	if selections == nil {
		selections = &Selections{}
	}
	quantity := selections.Quantity
	if quantity < 1 {
		quantity = 1
	}
	qty := decimal.NewFromInt(int64(quantity))
	area := billableArea(product, selections)

	materials, printMethods, finishing := candidateSets(product, pctx)

	summary := &PriceSummary{}

	if material := findMaterial(materials, selections.MaterialID); material != nil {
		summary.MaterialCost = material.CostPerUnit.Mul(area).Add(material.PriceModifier)
	}

	if method := findPrintMethod(printMethods, selections.PrintMethodID); method != nil {
		if method.CostPerM2 != nil {
			summary.PrintCost = method.CostPerM2.Mul(area)
		} else {
			summary.PrintCost = method.CostPerSheet
		}
	}

	// Option cost is the full rule adjustment: rule price deltas plus the
	// modifiers of every selected value.
	rules, err := ApplyOptionRules(product, selections)
	if err != nil {
		return nil, err
	}
	summary.OptionCost = rules.PriceAdjustment

	for _, id := range selections.FinishingIDs {
		ref := findFinishing(finishing, id)
		if ref == nil {
			continue
		}
		cost := ref.CostFix.
			Add(ref.CostPerUnit.Mul(qty)).
			Add(ref.CostPerM2.Mul(area)).
			Add(ref.PriceModifier)
		summary.FinishingCost = summary.FinishingCost.Add(cost)
	}

	switch product.Pricing.Type {
	case enums.PricingTypePerUnit:
		if applied := selectPriceBreak(product.Pricing.PriceBreaks, quantity); applied != nil {
			summary.Base = applied.PricePerUnit.Mul(qty)
			summary.AppliedPriceBreak = applied
		} else {
			summary.Base = product.Pricing.BasePrice.Mul(qty)
		}
	case enums.PricingTypeFormula:
		value, err := evalFormula(product.Pricing.Formula, formulaVars{
			Base:         product.Pricing.BasePrice,
			Quantity:     qty,
			MaterialCost: summary.MaterialCost,
			PrintCost:    summary.PrintCost,
			OptionCost:   summary.OptionCost,
		})
		if err != nil {
			// A broken formula must not break the render.
			value = product.Pricing.BasePrice.Mul(qty)
		}
		summary.Base = value
	default:
		summary.Base = product.Pricing.BasePrice.Mul(qty)
	}

	summary.Base = summary.Base.Round(2)
	summary.MaterialCost = summary.MaterialCost.Round(2)
	summary.PrintCost = summary.PrintCost.Round(2)
	summary.OptionCost = summary.OptionCost.Round(2)
	summary.FinishingCost = summary.FinishingCost.Round(2)
	summary.Total = summary.Base.
		Add(summary.MaterialCost).
		Add(summary.PrintCost).
		Add(summary.OptionCost).
		Add(summary.FinishingCost)

	return summary, nil
}

// billableArea returns the priced surface in square meters. Products
// without a dimension envelope are priced per sheet, area 1.
func billableArea(product *ConfiguratorProduct, selections *Selections) decimal.Decimal {
	if selections.Dimension != nil {
		d := selections.Dimension
		return decimal.NewFromFloat(d.Unit.Meters(d.Width)).
			Mul(decimal.NewFromFloat(d.Unit.Meters(d.Height)))
	}
	if env := product.Dimensions; env != nil {
		return decimal.NewFromFloat(env.Unit.Meters(env.DefaultWidth)).
			Mul(decimal.NewFromFloat(env.Unit.Meters(env.DefaultHeight)))
	}
	return decimal.NewFromInt(1)
}

func candidateSets(product *ConfiguratorProduct, pctx *PriceContext) ([]MaterialRef, []PrintMethodRef, []FinishingRef) {
	if pctx == nil {
		return product.Materials, product.PrintMethods, product.Finishing
	}
	materials, printMethods, finishing := product.Materials, product.PrintMethods, product.Finishing
	if pctx.Materials != nil {
		materials = pctx.Materials
	}
	if pctx.PrintMethods != nil {
		printMethods = pctx.PrintMethods
	}
	if pctx.Finishing != nil {
		finishing = pctx.Finishing
	}
	return materials, printMethods, finishing
}

// selectPriceBreak picks the break with the highest MinQuantity not above
// the quantity whose MaxQuantity, when set, still covers it. Breaks are
// sorted by MinQuantity at normalization time.
func selectPriceBreak(breaks []PriceBreak, quantity int) *PriceBreak {
	var applied *PriceBreak
	for i := range breaks {
		b := breaks[i]
		if b.MinQuantity > quantity {
			break
		}
		if b.MaxQuantity != nil && *b.MaxQuantity < quantity {
			continue
		}
		applied = &breaks[i]
	}
	if applied == nil {
		return nil
	}
	clone := *applied
	return &clone
}

func findMaterial(list []MaterialRef, id string) *MaterialRef {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func findPrintMethod(list []PrintMethodRef, id string) *PrintMethodRef {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func findFinishing(list []FinishingRef, id string) *FinishingRef {
	if id == "" {
		return nil
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
