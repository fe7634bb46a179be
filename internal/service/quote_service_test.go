package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

func createQuoteService(db *gorm.DB) *service.QuoteService {
	logger := zap.NewNop()
	quoteRepo := repository.NewQuoteRequestRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	notifier := service.NewNotificationService(repository.NewNotificationRepository(db), logger)
	return service.NewQuoteService(quoteRepo, serviceRepo, notifier, logger)
}

func validSubmitRequest() *domain.SubmitQuoteRequest {
	return &domain.SubmitQuoteRequest{
		CustomerName:  "Ana Reyes",
		CustomerEmail: "ana@example.com",
		Title:         "Backyard lawn program",
		ProjectType:   "maintenance",
		Zone:          "residential",
		Hours:         2,
		Sqft:          1500,
		Visits:        1,
	}
}

func TestQuoteService_SubmitQuote(t *testing.T) {
	db := setupTestDB(t, "quote_service_submit")
	svc := createQuoteService(db)

	t.Run("stores quote with computed range and snapshot", func(t *testing.T) {
		receipt, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)
		require.NotNil(t, receipt)

		assert.Equal(t, domain.QuoteStatusNew, receipt.Status)
		assert.Equal(t, int64(302017), receipt.EffectiveMinCents)
		assert.Equal(t, int64(385910), receipt.EffectiveMaxCents)

		dto, err := svc.GetQuote(context.Background(), receipt.ID)
		require.NoError(t, err)
		require.NotNil(t, dto.Breakdown)
		assert.Equal(t, domain.BreakdownSnapshotVersion, dto.Breakdown.Version)
		assert.InDelta(t, 3090.0, dto.Breakdown.Breakdown.Subtotal, 0.001)
		assert.InDelta(t, 3355.74, dto.Breakdown.Breakdown.Total, 0.001)
		assert.NotEmpty(t, dto.Breakdown.LineItems)
	})

	t.Run("rejects invalid inputs without persisting", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&domain.QuoteRequest{}).Count(&before).Error)

		req := validSubmitRequest()
		req.Hours = -1
		req.Zone = "offshore"

		_, err := svc.SubmitQuote(context.Background(), req)
		require.Error(t, err)

		var verr *pricing.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 2)

		var after int64
		require.NoError(t, db.Model(&domain.QuoteRequest{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("rejects project type the service does not allow", func(t *testing.T) {
		catalogEntry := createTestService(t, db, "Lawn Care", "maintenance")

		req := validSubmitRequest()
		req.ProjectType = "installation"
		req.ServiceID = &catalogEntry.ID

		_, err := svc.SubmitQuote(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrProjectTypeNotAllowed)
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		req := validSubmitRequest()
		missing := uuid.New()
		req.ServiceID = &missing

		_, err := svc.SubmitQuote(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrServiceNotFound)
	})

	t.Run("creates a notification for the back office", func(t *testing.T) {
		_, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&domain.Notification{}).
			Where("type = ?", domain.NotificationTypeQuoteSubmitted).
			Count(&count).Error)
		assert.Greater(t, count, int64(0))
	})
}

func TestQuoteService_ReviewQuote(t *testing.T) {
	db := setupTestDB(t, "quote_service_review")
	svc := createQuoteService(db)

	submit := func(t *testing.T) uuid.UUID {
		receipt, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)
		return receipt.ID
	}

	t.Run("review without override keeps computed range", func(t *testing.T) {
		id := submit(t)

		dto, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ReviewedBy: "dispatch",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.QuoteStatusReviewed, dto.Status)
		assert.Equal(t, int64(302017), dto.EffectiveMinCents)
		assert.Equal(t, int64(385910), dto.EffectiveMaxCents)
		assert.Nil(t, dto.ApprovedMinCents)
		assert.NotEmpty(t, dto.ReviewedAt)
		assert.Equal(t, "dispatch", dto.ReviewedBy)
	})

	t.Run("approved range overrides the computed one", func(t *testing.T) {
		id := submit(t)
		minOverride := int64(280000)
		maxOverride := int64(400000)

		dto, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ApprovedMinCents: &minOverride,
			ApprovedMaxCents: &maxOverride,
			MessageToClient:  "Adjusted for seasonal pricing",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(280000), dto.EffectiveMinCents)
		assert.Equal(t, int64(400000), dto.EffectiveMaxCents)
		// Computed range stays on record untouched
		assert.Equal(t, int64(302017), dto.MinCents)
		assert.Equal(t, int64(385910), dto.MaxCents)
	})

	t.Run("re-review is allowed while not sent", func(t *testing.T) {
		id := submit(t)

		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{})
		require.NoError(t, err)

		minOverride := int64(310000)
		maxOverride := int64(350000)
		dto, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ApprovedMinCents: &minOverride,
			ApprovedMaxCents: &maxOverride,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(310000), dto.EffectiveMinCents)
	})

	t.Run("message-only re-review keeps existing override", func(t *testing.T) {
		id := submit(t)
		minOverride := int64(280000)
		maxOverride := int64(400000)

		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ApprovedMinCents: &minOverride,
			ApprovedMaxCents: &maxOverride,
			ReviewedBy:       "dispatch",
		})
		require.NoError(t, err)

		dto, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			MessageToClient: "Crew available from Monday",
		})
		require.NoError(t, err)

		require.NotNil(t, dto.ApprovedMinCents)
		assert.Equal(t, int64(280000), *dto.ApprovedMinCents)
		require.NotNil(t, dto.ApprovedMaxCents)
		assert.Equal(t, int64(400000), *dto.ApprovedMaxCents)
		assert.Equal(t, "Crew available from Monday", dto.MessageToClient)
		assert.Equal(t, "dispatch", dto.ReviewedBy)
	})

	t.Run("rejects half-set override", func(t *testing.T) {
		id := submit(t)
		minOverride := int64(100000)

		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ApprovedMinCents: &minOverride,
		})
		assert.ErrorIs(t, err, service.ErrInvalidApprovedRange)
	})

	t.Run("rejects inverted override", func(t *testing.T) {
		id := submit(t)
		minOverride := int64(500000)
		maxOverride := int64(400000)

		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{
			ApprovedMinCents: &minOverride,
			ApprovedMaxCents: &maxOverride,
		})
		assert.ErrorIs(t, err, service.ErrInvalidApprovedRange)
	})

	t.Run("unknown quote", func(t *testing.T) {
		_, err := svc.ReviewQuote(context.Background(), uuid.New(), &domain.ReviewQuoteRequest{})
		assert.ErrorIs(t, err, service.ErrQuoteNotFound)
	})
}

func TestQuoteService_SendQuote(t *testing.T) {
	db := setupTestDB(t, "quote_service_send")
	svc := createQuoteService(db)

	submit := func(t *testing.T) uuid.UUID {
		receipt, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)
		return receipt.ID
	}

	t.Run("sends a reviewed quote", func(t *testing.T) {
		id := submit(t)
		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{})
		require.NoError(t, err)

		dto, err := svc.SendQuote(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusSent, dto.Status)
		assert.NotEmpty(t, dto.SentAt)
	})

	t.Run("sends a new quote without review", func(t *testing.T) {
		id := submit(t)

		dto, err := svc.SendQuote(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusSent, dto.Status)
		assert.NotEmpty(t, dto.SentAt)
		assert.Empty(t, dto.ReviewedAt)
	})

	t.Run("second send conflicts", func(t *testing.T) {
		id := submit(t)
		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{})
		require.NoError(t, err)
		_, err = svc.SendQuote(context.Background(), id)
		require.NoError(t, err)

		_, err = svc.SendQuote(context.Background(), id)
		assert.ErrorIs(t, err, service.ErrQuoteAlreadySent)
	})

	t.Run("sent quote cannot be reviewed or cancelled", func(t *testing.T) {
		id := submit(t)
		_, err := svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{})
		require.NoError(t, err)
		_, err = svc.SendQuote(context.Background(), id)
		require.NoError(t, err)

		_, err = svc.ReviewQuote(context.Background(), id, &domain.ReviewQuoteRequest{})
		assert.ErrorIs(t, err, service.ErrQuoteAlreadySent)

		_, err = svc.CancelQuote(context.Background(), id)
		assert.ErrorIs(t, err, service.ErrQuoteAlreadySent)
	})
}

func TestQuoteService_CancelQuote(t *testing.T) {
	db := setupTestDB(t, "quote_service_cancel")
	svc := createQuoteService(db)

	t.Run("cancels a new quote", func(t *testing.T) {
		receipt, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)

		dto, err := svc.CancelQuote(context.Background(), receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteStatusCancelled, dto.Status)
	})

	t.Run("cancelled quote stays cancelled", func(t *testing.T) {
		receipt, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)
		_, err = svc.CancelQuote(context.Background(), receipt.ID)
		require.NoError(t, err)

		_, err = svc.CancelQuote(context.Background(), receipt.ID)
		assert.ErrorIs(t, err, service.ErrQuoteCancelled)

		_, err = svc.ReviewQuote(context.Background(), receipt.ID, &domain.ReviewQuoteRequest{})
		assert.ErrorIs(t, err, service.ErrQuoteCancelled)
	})
}

func TestQuoteService_CancelStaleQuotes(t *testing.T) {
	db := setupTestDB(t, "quote_service_stale")
	svc := createQuoteService(db)

	// Two stale new quotes, one fresh, one stale but already reviewed
	staleA, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	staleB, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	fresh, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	reviewed, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	_, err = svc.ReviewQuote(context.Background(), reviewed.ID, &domain.ReviewQuoteRequest{})
	require.NoError(t, err)

	old := time.Now().Add(-40 * 24 * time.Hour)
	for _, id := range []uuid.UUID{staleA.ID, staleB.ID, reviewed.ID} {
		require.NoError(t, db.Model(&domain.QuoteRequest{}).
			Where("id = ?", id).
			Update("created_at", old).Error)
	}

	cancelled, err := svc.CancelStaleQuotes(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)

	for id, want := range map[uuid.UUID]domain.QuoteStatus{
		staleA.ID:   domain.QuoteStatusCancelled,
		staleB.ID:   domain.QuoteStatusCancelled,
		fresh.ID:    domain.QuoteStatusNew,
		reviewed.ID: domain.QuoteStatusReviewed,
	} {
		dto, err := svc.GetQuote(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, dto.Status)
	}
}

func TestQuoteService_ListQuotes(t *testing.T) {
	db := setupTestDB(t, "quote_service_list")
	svc := createQuoteService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)
	}

	t.Run("lists all", func(t *testing.T) {
		result, err := svc.ListQuotes(context.Background(), "", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("filters by status", func(t *testing.T) {
		result, err := svc.ListQuotes(context.Background(), "sent", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Total)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.ListQuotes(context.Background(), "archived", 1, 10)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("paginates", func(t *testing.T) {
		result, err := svc.ListQuotes(context.Background(), "", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
		assert.Equal(t, 2, result.TotalPages)

		dtos, ok := result.Data.([]domain.QuoteRequestDTO)
		require.True(t, ok)
		assert.Len(t, dtos, 2)
	})
}
