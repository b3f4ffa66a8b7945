package enums

import "fmt"

// OptionType describes how an option renders and how its selection resolves.
// Checkbox options resolve to a list of values; every other type resolves to
// a single value.
type OptionType string

const (
	OptionTypeDropdown OptionType = "dropdown"
	OptionTypeRadio    OptionType = "radio"
	OptionTypeCheckbox OptionType = "checkbox"
	OptionTypeSelect   OptionType = "select"
	OptionTypeText     OptionType = "text"
	OptionTypeNumber   OptionType = "number"
)

var validOptionTypes = []OptionType{
	OptionTypeDropdown,
	OptionTypeRadio,
	OptionTypeCheckbox,
	OptionTypeSelect,
	OptionTypeText,
	OptionTypeNumber,
}

// String implements fmt.Stringer.
func (t OptionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OptionType.
func (t OptionType) IsValid() bool {
	for _, candidate := range validOptionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsSelectable reports whether the option offers a predefined value list.
func (t OptionType) IsSelectable() bool {
	switch t {
	case OptionTypeDropdown, OptionTypeRadio, OptionTypeCheckbox, OptionTypeSelect:
		return true
	}
	return false
}

// IsMulti reports whether the selection resolves to a list of values.
func (t OptionType) IsMulti() bool {
	return t == OptionTypeCheckbox
}

// ParseOptionType converts raw input into an OptionType.
func ParseOptionType(value string) (OptionType, error) {
	for _, candidate := range validOptionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option type %q", value)
}
