package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Input bounds. Values outside these ranges fail validation.
const (
	MaxHours  = 200
	MaxSqft   = 100000
	MinVisits = 1
	MaxVisits = 50
)

// CostInputs describes a job to be priced.
type CostInputs struct {
	Hours       float64     `json:"hours"`
	Sqft        float64     `json:"sqft"`
	Visits      int         `json:"visits"`
	Zone        Zone        `json:"zone"`
	ProjectType ProjectType `json:"projectType"`
	Extras      string      `json:"extras,omitempty"`
}

// CostBreakdown decomposes a price into its components. All amounts are USD
// rounded to 2 decimals. Invariants: Subtotal = Labor + Materials + VisitFees,
// Tax = round(Subtotal * taxRate, 2), Total = Subtotal + Tax.
type CostBreakdown struct {
	Labor     float64 `json:"labor"`
	Materials float64 `json:"materials"`
	VisitFees float64 `json:"visitFees"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

// LineItem is a pre-tax invoice line derived from a breakdown component.
// Line IDs are stable slugs so output stays deterministic.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Estimate is the full calculator output for one set of inputs.
type Estimate struct {
	Breakdown CostBreakdown `json:"breakdown"`
	LineItems []LineItem    `json:"lineItems"`
}

// ValidationError carries every violated input bound. The calculator never
// short-circuits on the first violation so callers can render a full list.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid cost inputs: " + strings.Join(e.Violations, "; ")
}

// Validate checks all input bounds and returns every violation found.
func (in CostInputs) Validate() error {
	var violations []string

	if in.Hours < 0 || in.Hours > MaxHours {
		violations = append(violations, fmt.Sprintf("hours must be between 0 and %d", MaxHours))
	}
	if in.Sqft < 0 || in.Sqft > MaxSqft {
		violations = append(violations, fmt.Sprintf("sqft must be between 0 and %d", MaxSqft))
	}
	if in.Visits < MinVisits || in.Visits > MaxVisits {
		violations = append(violations, fmt.Sprintf("visits must be between %d and %d", MinVisits, MaxVisits))
	}
	if !in.Zone.IsValid() {
		violations = append(violations, "zone must be residential or commercial")
	}
	if !in.ProjectType.IsValid() {
		violations = append(violations, "projectType must be maintenance, installation or repair")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Calculate prices a job. It is pure and safe for concurrent use.
//
// Rounding is half-away-from-zero at 2 decimals, applied to labor, materials,
// tax and total independently; the subtotal is the exact sum of the already
// rounded components.
func Calculate(in CostInputs) (*Estimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rate := rateTable[in.ProjectType]
	mult := zoneMultipliers[in.Zone]

	hours := decimal.NewFromFloat(in.Hours)
	sqft := decimal.NewFromFloat(in.Sqft)

	labor := hours.Mul(rate.BaseRatePerHour).Mul(mult).Round(2)
	materials := sqft.Mul(rate.MaterialCostPerSqft).Mul(mult).Round(2)

	extraVisits := in.Visits - 1
	if extraVisits < 0 {
		extraVisits = 0
	}
	visitFees := flatVisitFee.Mul(decimal.NewFromInt(int64(extraVisits)))

	subtotal := labor.Add(materials).Add(visitFees)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Round(2)

	est := &Estimate{
		Breakdown: CostBreakdown{
			Labor:     labor.InexactFloat64(),
			Materials: materials.InexactFloat64(),
			VisitFees: visitFees.InexactFloat64(),
			Subtotal:  subtotal.InexactFloat64(),
			Tax:       tax.InexactFloat64(),
			Total:     total.InexactFloat64(),
		},
	}
	est.LineItems = buildLineItems(in, rate, mult, labor, materials, visitFees, subtotal, extraVisits)

	return est, nil
}

// buildLineItems derives pre-tax invoice lines from the non-zero breakdown
// components. The line totals always sum to the subtotal exactly.
func buildLineItems(in CostInputs, rate Rate, mult decimal.Decimal, labor, materials, visitFees, subtotal decimal.Decimal, extraVisits int) []LineItem {
	var items []LineItem

	if in.Hours > 0 {
		items = append(items, LineItem{
			ID:          "labor",
			Description: fmt.Sprintf("Labor (%s, %s)", in.ProjectType, in.Zone),
			Quantity:    in.Hours,
			UnitPrice:   rate.BaseRatePerHour.Mul(mult).Round(2).InexactFloat64(),
			Total:       labor.InexactFloat64(),
		})
	}
	if in.Sqft > 0 {
		items = append(items, LineItem{
			ID:          "materials",
			Description: fmt.Sprintf("Materials (%s, %s)", in.ProjectType, in.Zone),
			Quantity:    in.Sqft,
			UnitPrice:   rate.MaterialCostPerSqft.Mul(mult).Round(2).InexactFloat64(),
			Total:       materials.InexactFloat64(),
		})
	}
	if in.Visits > 1 {
		items = append(items, LineItem{
			ID:          "visit-fees",
			Description: "Additional site visits",
			Quantity:    float64(extraVisits),
			UnitPrice:   flatVisitFee.InexactFloat64(),
			Total:       visitFees.InexactFloat64(),
		})
	}

	// All components zero: emit a single base line so the invoice is never
	// empty and the conservation invariant still holds.
	if len(items) == 0 {
		items = append(items, LineItem{
			ID:          "base-job",
			Description: "Base job",
			Quantity:    1,
			UnitPrice:   subtotal.InexactFloat64(),
			Total:       subtotal.InexactFloat64(),
		})
	}

	return items
}

// QuoteRange computes the customer-facing estimate range in whole cents. The
// range brackets the deterministic total with fixed policy factors; the exact
// breakdown stays internal.
func QuoteRange(in CostInputs) (minCents, maxCents int64, err error) {
	est, err := Calculate(in)
	if err != nil {
		return 0, 0, err
	}

	total := decimal.NewFromFloat(est.Breakdown.Total)
	minCents = total.Mul(quoteRangeLow).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	maxCents = total.Mul(quoteRangeHigh).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	return minCents, maxCents, nil
}

// TaxCents applies the tax rate to an amount in whole cents, rounding half
// away from zero.
func TaxCents(subtotalCents int64) int64 {
	return decimal.NewFromInt(subtotalCents).Mul(taxRate).Round(0).IntPart()
}

// Cents converts a dollar amount to whole cents, rounding half away from
// zero. Breakdown and line item amounts survive the conversion exactly
// because they are already rounded to 2 decimals.
func Cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
