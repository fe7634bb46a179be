package pricing_test

import (
	"testing"

	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInputs() pricing.CostInputs {
	return pricing.CostInputs{
		Hours:       2,
		Sqft:        1500,
		Visits:      1,
		Zone:        pricing.ZoneResidential,
		ProjectType: pricing.ProjectTypeMaintenance,
	}
}

func TestCalculate_EndToEndExample(t *testing.T) {
	est, err := pricing.Calculate(validInputs())
	require.NoError(t, err)

	assert.Equal(t, 90.0, est.Breakdown.Labor)
	assert.Equal(t, 3000.0, est.Breakdown.Materials)
	assert.Equal(t, 0.0, est.Breakdown.VisitFees)
	assert.Equal(t, 3090.0, est.Breakdown.Subtotal)
	assert.Equal(t, 265.74, est.Breakdown.Tax)
	assert.Equal(t, 3355.74, est.Breakdown.Total)
}

func TestCalculate_Determinism(t *testing.T) {
	in := pricing.CostInputs{
		Hours:       13.7,
		Sqft:        4321.5,
		Visits:      7,
		Zone:        pricing.ZoneCommercial,
		ProjectType: pricing.ProjectTypeRepair,
	}

	first, err := pricing.Calculate(in)
	require.NoError(t, err)
	second, err := pricing.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.Equal(t, first.LineItems, second.LineItems)
}

func TestCalculate_SubtotalDecomposition(t *testing.T) {
	cases := []pricing.CostInputs{
		{Hours: 1.25, Sqft: 333, Visits: 2, Zone: pricing.ZoneResidential, ProjectType: pricing.ProjectTypeMaintenance},
		{Hours: 40, Sqft: 10000, Visits: 10, Zone: pricing.ZoneCommercial, ProjectType: pricing.ProjectTypeInstallation},
		{Hours: 0.1, Sqft: 0.5, Visits: 1, Zone: pricing.ZoneCommercial, ProjectType: pricing.ProjectTypeRepair},
	}

	for _, in := range cases {
		est, err := pricing.Calculate(in)
		require.NoError(t, err)
		b := est.Breakdown
		assert.InDelta(t, b.Labor+b.Materials+b.VisitFees, b.Subtotal, 1e-9)
	}
}

func TestCalculate_LineItemConservation(t *testing.T) {
	t.Run("all components present", func(t *testing.T) {
		est, err := pricing.Calculate(pricing.CostInputs{
			Hours:       8,
			Sqft:        2500,
			Visits:      3,
			Zone:        pricing.ZoneCommercial,
			ProjectType: pricing.ProjectTypeInstallation,
		})
		require.NoError(t, err)
		require.Len(t, est.LineItems, 3)

		var sum float64
		for _, li := range est.LineItems {
			sum += li.Total
		}
		assert.InDelta(t, est.Breakdown.Subtotal, sum, 1e-9)
	})

	t.Run("labor only", func(t *testing.T) {
		est, err := pricing.Calculate(pricing.CostInputs{
			Hours:       3,
			Sqft:        0,
			Visits:      1,
			Zone:        pricing.ZoneResidential,
			ProjectType: pricing.ProjectTypeRepair,
		})
		require.NoError(t, err)
		require.Len(t, est.LineItems, 1)
		assert.Equal(t, "labor", est.LineItems[0].ID)
		assert.Equal(t, est.Breakdown.Subtotal, est.LineItems[0].Total)
	})

	t.Run("fallback base job line when everything is zero", func(t *testing.T) {
		est, err := pricing.Calculate(pricing.CostInputs{
			Hours:       0,
			Sqft:        0,
			Visits:      1,
			Zone:        pricing.ZoneResidential,
			ProjectType: pricing.ProjectTypeMaintenance,
		})
		require.NoError(t, err)
		require.Len(t, est.LineItems, 1)
		assert.Equal(t, "base-job", est.LineItems[0].ID)
		assert.Equal(t, 0.0, est.LineItems[0].Total)
	})
}

func TestCalculate_ZoneMultiplier(t *testing.T) {
	residential := validInputs()
	residential.Sqft = 0

	commercial := residential
	commercial.Zone = pricing.ZoneCommercial

	resEst, err := pricing.Calculate(residential)
	require.NoError(t, err)
	comEst, err := pricing.Calculate(commercial)
	require.NoError(t, err)

	assert.Equal(t, 90.0, resEst.Breakdown.Labor)
	assert.Equal(t, 117.0, comEst.Breakdown.Labor)
}

func TestCalculate_VisitFees(t *testing.T) {
	t.Run("first visit included", func(t *testing.T) {
		in := validInputs()
		in.Visits = 1
		est, err := pricing.Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, 0.0, est.Breakdown.VisitFees)
	})

	t.Run("two extra visits", func(t *testing.T) {
		in := validInputs()
		in.Visits = 3
		est, err := pricing.Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, 100.0, est.Breakdown.VisitFees)
	})
}

func TestCalculate_BoundsRejection(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*pricing.CostInputs)
		want   string
	}{
		{"hours above max", func(in *pricing.CostInputs) { in.Hours = 201 }, "hours"},
		{"hours negative", func(in *pricing.CostInputs) { in.Hours = -1 }, "hours"},
		{"sqft above max", func(in *pricing.CostInputs) { in.Sqft = 100001 }, "sqft"},
		{"visits zero", func(in *pricing.CostInputs) { in.Visits = 0 }, "visits"},
		{"visits above max", func(in *pricing.CostInputs) { in.Visits = 51 }, "visits"},
		{"invalid zone", func(in *pricing.CostInputs) { in.Zone = "offshore" }, "zone"},
		{"invalid project type", func(in *pricing.CostInputs) { in.ProjectType = "demolition" }, "projectType"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInputs()
			tc.mutate(&in)

			est, err := pricing.Calculate(in)
			assert.Nil(t, est)
			require.Error(t, err)

			var verr *pricing.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Violations, 1)
			assert.Contains(t, verr.Violations[0], tc.want)
		})
	}

	t.Run("multiple violations are all reported", func(t *testing.T) {
		in := validInputs()
		in.Hours = -1
		in.Sqft = -1

		_, err := pricing.Calculate(in)
		var verr *pricing.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 2)
	})
}

func TestQuoteRange(t *testing.T) {
	minCents, maxCents, err := pricing.QuoteRange(validInputs())
	require.NoError(t, err)

	// total 3355.74 -> 90% = 3020.17, 115% = 3859.10
	assert.Equal(t, int64(302017), minCents)
	assert.Equal(t, int64(385910), maxCents)
	assert.Less(t, minCents, maxCents)
}

func TestQuoteRange_InvalidInputs(t *testing.T) {
	in := validInputs()
	in.Visits = 0

	_, _, err := pricing.QuoteRange(in)
	var verr *pricing.ValidationError
	require.ErrorAs(t, err, &verr)
}
