package pricing_test

import (
	"testing"

	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	presets := pricing.Presets()
	require.NotEmpty(t, presets)

	names := make(map[string]bool, len(presets))
	for _, p := range presets {
		assert.NotEmpty(t, p.Label)
		names[p.Name] = true

		// Every shipped preset must calculate cleanly.
		_, err := pricing.Calculate(p.Inputs)
		assert.NoError(t, err, "preset %s", p.Name)
	}
	assert.True(t, names["lawn"])
	assert.True(t, names["sprinkler"])
	assert.True(t, names["install"])
}

func TestPresets_ReturnsCopy(t *testing.T) {
	first := pricing.Presets()
	first[0].Inputs.Hours = 9999

	second := pricing.Presets()
	assert.NotEqual(t, 9999.0, second[0].Inputs.Hours)
}

func TestPresetInputs(t *testing.T) {
	in, ok := pricing.PresetInputs("lawn")
	require.True(t, ok)
	assert.Equal(t, pricing.ProjectTypeMaintenance, in.ProjectType)
	assert.Equal(t, 4, in.Visits)

	_, ok = pricing.PresetInputs("moonscaping")
	assert.False(t, ok)
}

func TestInferProjectType(t *testing.T) {
	cases := []struct {
		title string
		want  pricing.ProjectType
	}{
		{"Install new drip irrigation", pricing.ProjectTypeInstallation},
		{"Sprinkler head repair", pricing.ProjectTypeRepair},
		{"Fix broken valve box", pricing.ProjectTypeRepair},
		{"Weekly lawn care", pricing.ProjectTypeMaintenance},
		{"", pricing.ProjectTypeMaintenance},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, pricing.InferProjectType(tc.title), tc.title)
	}
}
