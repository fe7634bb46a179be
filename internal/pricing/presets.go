package pricing

// Preset is a named job template used to pre-fill the estimate form. Applying
// a preset is pure input substitution; the zone is always chosen by the
// caller.
type Preset struct {
	Name   string     `json:"name"`
	Label  string     `json:"label"`
	Inputs CostInputs `json:"inputs"`
}

var presets = []Preset{
	{
		Name:  "lawn",
		Label: "Lawn care program",
		Inputs: CostInputs{
			Hours:       2,
			Sqft:        1500,
			Visits:      4,
			ProjectType: ProjectTypeMaintenance,
			Extras:      "Weekly mowing, edging and cleanup",
		},
	},
	{
		Name:  "sprinkler",
		Label: "Sprinkler system repair",
		Inputs: CostInputs{
			Hours:       3,
			Sqft:        0,
			Visits:      1,
			ProjectType: ProjectTypeRepair,
			Extras:      "Diagnose and repair irrigation zones",
		},
	},
	{
		Name:  "install",
		Label: "Landscape installation",
		Inputs: CostInputs{
			Hours:       16,
			Sqft:        800,
			Visits:      2,
			ProjectType: ProjectTypeInstallation,
			Extras:      "New planting beds with drip irrigation",
		},
	},
}

// Presets returns the fixed preset catalogue.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetInputs resolves a preset by name.
func PresetInputs(name string) (CostInputs, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p.Inputs, true
		}
	}
	return CostInputs{}, false
}
