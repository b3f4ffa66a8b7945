package configurator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
)

func rulesProduct() *ConfiguratorProduct {
	return &ConfiguratorProduct{
		Type: enums.ProductTypeConfigurable,
		Options: []Option{
			{
				ID:   "paper-color",
				Name: "Paper color",
				Type: enums.OptionTypeDropdown,
				Values: []OptionValue{
					{Label: "White", Value: "alb"},
					{Label: "Black", Value: "negru", PriceModifier: decimal.NewFromInt(10)},
				},
				Rules: []Rule{
					{Condition: "option.paper-color = negru", Action: "price: 15"},
				},
			},
			{
				ID:       "foil-color",
				Name:     "Foil color",
				Type:     enums.OptionTypeDropdown,
				Required: true,
				Values: []OptionValue{
					{Label: "Gold", Value: "gold"},
					{Label: "Silver", Value: "silver"},
				},
				Rules: []Rule{
					{Condition: "finishing includes lamination", Action: "hide: foil-color"},
					{Condition: "option.paper-color = negru", Action: "disable: foil-color=silver"},
				},
			},
			{
				ID:   "quantity-note",
				Name: "Bulk note",
				Type: enums.OptionTypeText,
				Rules: []Rule{
					{Condition: "quantity >= 1000 && material = mat-1", Action: "error: bulk orders on matte need review"},
				},
			},
		},
	}
}

func TestApplyOptionRulesPriceAdjustment(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity: 10,
		Options:  map[string]OptionSelection{"paper-color": {"negru"}},
	}

	result, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	// negru carries a 10 modifier and triggers a price: 15 rule.
	if !result.PriceAdjustment.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected adjustment 25, got %s", result.PriceAdjustment)
	}
}

func TestApplyOptionRulesHide(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity:     10,
		FinishingIDs: []string{"lamination"},
	}

	result, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	if len(result.HiddenOptionIDs) != 1 || result.HiddenOptionIDs[0] != "foil-color" {
		t.Fatalf("expected foil-color hidden, got %v", result.HiddenOptionIDs)
	}
	for _, option := range result.VisibleOptions {
		if option.ID == "foil-color" {
			t.Fatal("hidden option still visible")
		}
	}
	// foil-color is required but hidden, so no validation entry.
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors %v", result.ValidationErrors)
	}
}

func TestApplyOptionRulesDisable(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity: 10,
		Options: map[string]OptionSelection{
			"paper-color": {"negru"},
			"foil-color":  {"gold"},
		},
	}

	result, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	disabled := result.DisabledValueMap["foil-color"]
	if len(disabled) != 1 || disabled[0] != "silver" {
		t.Fatalf("expected silver disabled, got %v", disabled)
	}
	for _, option := range result.VisibleOptions {
		if option.ID != "foil-color" {
			continue
		}
		for _, value := range option.Values {
			if value.Value == "silver" && !value.Disabled {
				t.Fatal("silver not marked disabled on the visible option")
			}
			if value.Value == "gold" && value.Disabled {
				t.Fatal("gold wrongly disabled")
			}
		}
	}
}

func TestApplyOptionRulesErrorAction(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity:   1000,
		MaterialID: "mat-1",
		Options:    map[string]OptionSelection{"foil-color": {"gold"}},
	}

	result, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	if len(result.ValidationErrors) != 1 || result.ValidationErrors[0] != "bulk orders on matte need review" {
		t.Fatalf("expected rule error, got %v", result.ValidationErrors)
	}
}

func TestApplyOptionRulesRequiredValidation(t *testing.T) {
	product := rulesProduct()
	result, err := ApplyOptionRules(product, &Selections{Quantity: 10})
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	if len(result.ValidationErrors) != 1 {
		t.Fatalf("expected required-option error, got %v", result.ValidationErrors)
	}
}

func TestApplyOptionRulesUnknownOption(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity: 10,
		Options:  map[string]OptionSelection{"mystery": {"x"}},
	}

	_, err := ApplyOptionRules(product, selections)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
}

func TestApplyOptionRulesNonPositiveQuantity(t *testing.T) {
	product := rulesProduct()
	result, err := ApplyOptionRules(product, &Selections{
		Quantity: 0,
		Options:  map[string]OptionSelection{"foil-color": {"gold"}},
	})
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	if len(result.ValidationErrors) != 1 {
		t.Fatalf("expected quantity error, got %v", result.ValidationErrors)
	}
}

func TestEvalConditionOperators(t *testing.T) {
	product := rulesProduct()
	tests := []struct {
		condition  string
		selections *Selections
		want       bool
	}{
		{"", &Selections{}, true},
		{"quantity >= 100", &Selections{Quantity: 100}, true},
		{"quantity >= 100", &Selections{Quantity: 99}, false},
		{"quantity < 100", &Selections{Quantity: 99}, true},
		{"quantity <= 99", &Selections{Quantity: 99}, true},
		{"quantity > 100", &Selections{Quantity: 100}, false},
		{"material = mat-1", &Selections{MaterialID: "mat-1"}, true},
		{`material = "mat-1"`, &Selections{MaterialID: "mat-1"}, true},
		{"material != mat-1", &Selections{MaterialID: "mat-2"}, true},
		{"material != mat-1", &Selections{}, true},
		{"finishing = lamination", &Selections{FinishingIDs: []string{"cutting", "lamination"}}, true},
		{"finishing != lamination", &Selections{FinishingIDs: []string{"cutting", "lamination"}}, false},
		{"finishing includes lamination", &Selections{FinishingIDs: []string{"cutting", "lamination"}}, true},
		{"finishing includes lamination", &Selections{FinishingIDs: []string{"cutting"}}, false},
		{"type = CONFIGURABLE", &Selections{}, true},
		{"quantity >= 10 && material = mat-1", &Selections{Quantity: 20, MaterialID: "mat-1"}, true},
		{"quantity >= 10 && material = mat-1", &Selections{Quantity: 5, MaterialID: "mat-1"}, false},
		{"quantity >= 10 || material = mat-1", &Selections{Quantity: 5, MaterialID: "mat-1"}, true},
		{"no operator here", &Selections{}, false},
		{"unknownSubject = x", &Selections{}, false},
	}

	for _, tc := range tests {
		if got := evalCondition(product, tc.selections, tc.condition); got != tc.want {
			t.Errorf("condition %q: expected %v, got %v", tc.condition, tc.want, got)
		}
	}
}

func TestApplyOptionRulesIdempotent(t *testing.T) {
	product := rulesProduct()
	selections := &Selections{
		Quantity: 10,
		Options: map[string]OptionSelection{
			"paper-color": {"negru"},
			"foil-color":  {"gold"},
		},
	}

	first, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	second, err := ApplyOptionRules(product, selections)
	if err != nil {
		t.Fatalf("apply rules: %v", err)
	}
	if !first.PriceAdjustment.Equal(second.PriceAdjustment) ||
		len(first.VisibleOptions) != len(second.VisibleOptions) {
		t.Fatal("rule evaluation is not idempotent")
	}
}
