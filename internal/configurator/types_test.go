package configurator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionSelectionUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  OptionSelection
	}{
		{"string scalar", `"negru"`, OptionSelection{"negru"}},
		{"string array", `["rounded", "varnish"]`, OptionSelection{"rounded", "varnish"}},
		{"number scalar", `250`, OptionSelection{"250"}},
		{"decimal scalar", `2.5`, OptionSelection{"2.5"}},
		{"bool scalar", `true`, OptionSelection{"true"}},
		{"mixed array", `["alb", 90, false]`, OptionSelection{"alb", "90", "false"}},
		{"null", `null`, nil},
		{"empty array", `[]`, OptionSelection{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got OptionSelection
			require.NoError(t, json.Unmarshal([]byte(tc.input), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOptionSelectionHelpers(t *testing.T) {
	selection := OptionSelection{"rounded", "varnish"}

	assert.Equal(t, "rounded", selection.Single())
	assert.Equal(t, "", OptionSelection(nil).Single())
	assert.True(t, selection.Contains("varnish"))
	assert.False(t, selection.Contains("gold"))
}

func TestSelectionsUnmarshal(t *testing.T) {
	payload := `{
		"quantity": 25,
		"material_id": "mat-1",
		"print_method_id": "offset",
		"finishing_ids": ["lamination"],
		"options": {"paper-color": "negru", "extras": ["rounded"]},
		"dimension": {"width": 200, "height": 100, "unit": "mm"}
	}`

	var selections Selections
	require.NoError(t, json.Unmarshal([]byte(payload), &selections))

	assert.Equal(t, 25, selections.Quantity)
	assert.Equal(t, "mat-1", selections.MaterialID)
	assert.Equal(t, OptionSelection{"negru"}, selections.Options["paper-color"])
	assert.Equal(t, OptionSelection{"rounded"}, selections.Options["extras"])
	require.NotNil(t, selections.Dimension)
	assert.Equal(t, 200.0, selections.Dimension.Width)
}
