package configurator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
)

// Operator scan order matters: multi-character operators must be probed
// before their single-character prefixes.
var conditionOperators = []string{"includes", ">=", "<=", "!=", ">", "<", "="}

const (
	actionHide    = "hide"
	actionDisable = "disable"
	actionPrice   = "price"
	actionError   = "error"
)

// ApplyOptionRules evaluates every option's rules against the current
// selections and folds in the selected values' price modifiers. Selections
// referencing an option id the product does not declare are rejected with a
// validation error; everything else degrades to validation entries in the
// result.
func ApplyOptionRules(product *ConfiguratorProduct, selections *Selections) (*OptionRuleResult, error) {
	if selections == nil {
		selections = &Selections{}
	}
	if err := checkKnownOptions(product, selections); err != nil {
		return nil, err
	}

	result := &OptionRuleResult{
		VisibleOptions:   []Option{},
		HiddenOptionIDs:  []string{},
		DisabledValueMap: map[string][]string{},
		PriceAdjustment:  decimal.Zero,
		ValidationErrors: []string{},
	}

	hidden := map[string]bool{}
	disabled := map[string]map[string]bool{}

	for _, option := range product.Options {
		for _, rule := range option.Rules {
			if !evalCondition(product, selections, rule.Condition) {
				continue
			}
			applyAction(product, rule.Action, hidden, disabled, result)
		}
	}

	// Selected-value modifiers accumulate across every option that has a
	// selection, before visibility is applied.
	for _, option := range product.Options {
		selection := selections.Options[option.ID]
		for _, value := range option.Values {
			if selection.Contains(value.Value) {
				result.PriceAdjustment = result.PriceAdjustment.Add(value.PriceModifier)
			}
		}
	}

	for _, option := range product.Options {
		if hidden[option.ID] {
			result.HiddenOptionIDs = append(result.HiddenOptionIDs, option.ID)
			continue
		}
		visible := option
		if disabledValues := disabled[option.ID]; len(disabledValues) > 0 {
			visible.Values = make([]OptionValue, len(option.Values))
			copy(visible.Values, option.Values)
			for i := range visible.Values {
				if disabledValues[visible.Values[i].Value] {
					visible.Values[i].Disabled = true
				}
			}
		}
		result.VisibleOptions = append(result.VisibleOptions, visible)

		if option.Required && len(selections.Options[option.ID]) == 0 {
			result.ValidationErrors = append(result.ValidationErrors,
				fmt.Sprintf("option %s is required", option.Name))
		}
	}

	for id, values := range disabled {
		list := make([]string, 0, len(values))
		for value := range values {
			list = append(list, value)
		}
		sort.Strings(list)
		result.DisabledValueMap[id] = list
	}

	if selections.Quantity < 1 {
		result.ValidationErrors = append(result.ValidationErrors, "quantity must be at least 1")
	}

	result.PriceAdjustment = result.PriceAdjustment.Round(2)
	return result, nil
}

func checkKnownOptions(product *ConfiguratorProduct, selections *Selections) error {
	for id := range selections.Options {
		known := false
		for _, option := range product.Options {
			if option.ID == id {
				known = true
				break
			}
		}
		if !known {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown option in selections").
				WithDetails(map[string]any{"option_id": id})
		}
	}
	return nil
}

// evalCondition evaluates the rule condition DSL: OR groups split on "||",
// AND fragments split on "&&", each fragment "<subject> <op> <value>". An
// empty condition is unconditionally true; a fragment with no recognized
// operator is false.
func evalCondition(product *ConfiguratorProduct, selections *Selections, condition string) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true
	}
	for _, group := range strings.Split(condition, "||") {
		if evalGroup(product, selections, group) {
			return true
		}
	}
	return false
}

func evalGroup(product *ConfiguratorProduct, selections *Selections, group string) bool {
	for _, fragment := range strings.Split(group, "&&") {
		if !evalFragment(product, selections, fragment) {
			return false
		}
	}
	return true
}

func evalFragment(product *ConfiguratorProduct, selections *Selections, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return false
	}

	for _, op := range conditionOperators {
		idx := strings.Index(fragment, op)
		if idx < 0 {
			continue
		}
		subject := strings.TrimSpace(fragment[:idx])
		expected := trimQuotes(strings.TrimSpace(fragment[idx+len(op):]))
		actual := resolveSubject(product, selections, subject)
		return compare(actual, op, expected)
	}
	return false
}

// resolveSubject maps a condition subject to the current selection values.
// Unknown subjects resolve to an empty list, which fails every comparison.
func resolveSubject(product *ConfiguratorProduct, selections *Selections, subject string) []string {
	switch {
	case strings.HasPrefix(subject, "option."):
		return selections.Options[strings.TrimPrefix(subject, "option.")]
	case subject == "material":
		return valueList(selections.MaterialID)
	case subject == "printMethod":
		return valueList(selections.PrintMethodID)
	case subject == "finishing":
		return selections.FinishingIDs
	case subject == "quantity":
		return []string{strconv.Itoa(selections.Quantity)}
	case subject == "type":
		return []string{product.Type.String()}
	}
	return nil
}

func valueList(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

// trimQuotes strips one pair of matching single or double quotes so rule
// authors can write either `material = "mat-1"` or `material = mat-1`.
func trimQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// compare treats "=" and "!=" as membership tests so they behave the same
// on scalar subjects and multi-select arrays.
func compare(actual []string, op, expected string) bool {
	switch op {
	case "includes", "=":
		return containsString(actual, expected)
	case "!=":
		return !containsString(actual, expected)
	}

	// Ordering operators compare numerically; non-numeric operands fail.
	if len(actual) != 1 {
		return false
	}
	left, err := decimal.NewFromString(actual[0])
	if err != nil {
		return false
	}
	right, err := decimal.NewFromString(expected)
	if err != nil {
		return false
	}
	switch op {
	case ">=":
		return left.GreaterThanOrEqual(right)
	case "<=":
		return left.LessThanOrEqual(right)
	case ">":
		return left.GreaterThan(right)
	case "<":
		return left.LessThan(right)
	}
	return false
}

// applyAction executes one rule action. Unknown verbs and malformed
// payloads are ignored so a bad rule never breaks the render.
func applyAction(product *ConfiguratorProduct, action string, hidden map[string]bool, disabled map[string]map[string]bool, result *OptionRuleResult) {
	verb, payload, found := strings.Cut(action, ":")
	if !found {
		return
	}
	verb = strings.TrimSpace(verb)
	payload = strings.TrimSpace(payload)

	switch verb {
	case actionHide:
		if payload != "" {
			hidden[payload] = true
		}
	case actionDisable:
		optionID, value, hasValue := strings.Cut(payload, "=")
		optionID = strings.TrimSpace(optionID)
		if optionID == "" {
			return
		}
		if disabled[optionID] == nil {
			disabled[optionID] = map[string]bool{}
		}
		if hasValue {
			disabled[optionID][strings.TrimSpace(value)] = true
			return
		}
		for _, option := range product.Options {
			if option.ID != optionID {
				continue
			}
			for _, v := range option.Values {
				disabled[optionID][v.Value] = true
			}
		}
	case actionPrice:
		delta, err := decimal.NewFromString(payload)
		if err != nil {
			return
		}
		result.PriceAdjustment = result.PriceAdjustment.Add(delta)
	case actionError:
		if payload != "" {
			result.ValidationErrors = append(result.ValidationErrors, payload)
		}
	}
}
