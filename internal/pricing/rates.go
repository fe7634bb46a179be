// Package pricing implements the deterministic cost calculator used for
// customer quotes and invoice generation. All functions in this package are
// pure: identical inputs always produce identical outputs, which is required
// for reproducible pricing audits.
package pricing

import "github.com/shopspring/decimal"

// ProjectType categorizes the work being priced and selects the rate pair.
type ProjectType string

const (
	ProjectTypeMaintenance  ProjectType = "maintenance"
	ProjectTypeInstallation ProjectType = "installation"
	ProjectTypeRepair       ProjectType = "repair"
)

// IsValid checks if the ProjectType is a valid enum value
func (pt ProjectType) IsValid() bool {
	switch pt {
	case ProjectTypeMaintenance, ProjectTypeInstallation, ProjectTypeRepair:
		return true
	}
	return false
}

// Zone is the billing classification that scales unit rates.
type Zone string

const (
	ZoneResidential Zone = "residential"
	ZoneCommercial  Zone = "commercial"
)

// IsValid checks if the Zone is a valid enum value
func (z Zone) IsValid() bool {
	switch z {
	case ZoneResidential, ZoneCommercial:
		return true
	}
	return false
}

// Rate holds the unit rates for a project type.
type Rate struct {
	BaseRatePerHour     decimal.Decimal
	MaterialCostPerSqft decimal.Decimal
}

// The rate table and multipliers below are the pricing policy. Changing them
// changes business pricing, not code behavior; keep them centralized here and
// never duplicate the figures elsewhere.
var rateTable = map[ProjectType]Rate{
	ProjectTypeMaintenance: {
		BaseRatePerHour:     decimal.NewFromInt(45),
		MaterialCostPerSqft: decimal.NewFromInt(2),
	},
	ProjectTypeInstallation: {
		BaseRatePerHour:     decimal.NewFromInt(60),
		MaterialCostPerSqft: decimal.NewFromInt(5),
	},
	ProjectTypeRepair: {
		BaseRatePerHour:     decimal.NewFromInt(75),
		MaterialCostPerSqft: decimal.NewFromInt(8),
	},
}

var zoneMultipliers = map[Zone]decimal.Decimal{
	ZoneResidential: decimal.NewFromInt(1),
	ZoneCommercial:  decimal.NewFromFloat(1.3),
}

var (
	// flatVisitFee is charged per site visit beyond the first included one.
	// It is not zone-multiplied.
	flatVisitFee = decimal.NewFromInt(50)

	// taxRate is the combined Phoenix, AZ sales tax rate. It is a fixed
	// constant of the pricing policy, not configurable per call.
	taxRate = decimal.NewFromFloat(0.086)

	// quoteRangeLow and quoteRangeHigh bracket the deterministic total to
	// produce the public-facing estimate range.
	quoteRangeLow  = decimal.NewFromFloat(0.90)
	quoteRangeHigh = decimal.NewFromFloat(1.15)
)

// RateFor returns the rate pair for a project type.
func RateFor(pt ProjectType) (Rate, bool) {
	r, ok := rateTable[pt]
	return r, ok
}

// ZoneMultiplier returns the rate multiplier for a zone.
func ZoneMultiplier(z Zone) (decimal.Decimal, bool) {
	m, ok := zoneMultipliers[z]
	return m, ok
}

// ProjectTypes returns all valid project types in a stable order.
func ProjectTypes() []ProjectType {
	return []ProjectType{ProjectTypeMaintenance, ProjectTypeInstallation, ProjectTypeRepair}
}
