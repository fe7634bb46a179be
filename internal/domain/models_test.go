package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

func TestQuoteStatus_IsValid(t *testing.T) {
	valid := []domain.QuoteStatus{
		domain.QuoteStatusNew,
		domain.QuoteStatusReviewed,
		domain.QuoteStatusSent,
		domain.QuoteStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.QuoteStatus("archived").IsValid())
	assert.False(t, domain.QuoteStatus("").IsValid())
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	valid := []domain.InvoiceStatus{
		domain.InvoiceStatusDraft,
		domain.InvoiceStatusIssued,
		domain.InvoiceStatusPaid,
		domain.InvoiceStatusVoid,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, domain.InvoiceStatus("refunded").IsValid())
}

func TestQuoteRequest_EffectiveRange(t *testing.T) {
	quote := domain.QuoteRequest{MinCents: 100, MaxCents: 200}

	t.Run("falls back to computed range", func(t *testing.T) {
		assert.Equal(t, int64(100), quote.EffectiveMinCents())
		assert.Equal(t, int64(200), quote.EffectiveMaxCents())
	})

	t.Run("approved range wins", func(t *testing.T) {
		min := int64(90)
		max := int64(210)
		quote.ApprovedMinCents = &min
		quote.ApprovedMaxCents = &max

		assert.Equal(t, int64(90), quote.EffectiveMinCents())
		assert.Equal(t, int64(210), quote.EffectiveMaxCents())
	})
}

func TestProjectTypeList_RoundTrip(t *testing.T) {
	list := domain.ProjectTypeList{pricing.ProjectTypeMaintenance, pricing.ProjectTypeRepair}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "maintenance,repair", value)

	var scanned domain.ProjectTypeList
	require.NoError(t, scanned.Scan("maintenance,repair"))
	assert.Equal(t, list, scanned)
}

func TestProjectTypeList_ScanEmpty(t *testing.T) {
	var scanned domain.ProjectTypeList
	require.NoError(t, scanned.Scan(""))
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestProjectTypeList_Contains(t *testing.T) {
	list := domain.ProjectTypeList{pricing.ProjectTypeInstallation}

	assert.True(t, list.Contains(pricing.ProjectTypeInstallation))
	assert.False(t, list.Contains(pricing.ProjectTypeRepair))
}
