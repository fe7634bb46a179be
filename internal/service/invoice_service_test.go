package service_test

import (
	"context"
	"fmt"
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

func createInvoiceService(db *gorm.DB) *service.InvoiceService {
	logger := zap.NewNop()
	invoiceRepo := repository.NewInvoiceRepository(db)
	quoteRepo := repository.NewQuoteRequestRepository(db)
	notifier := service.NewNotificationService(repository.NewNotificationRepository(db), logger)
	return service.NewInvoiceService(invoiceRepo, quoteRepo, notifier, logger)
}

func validInvoiceRequest() *domain.CreateInvoiceRequest {
	return &domain.CreateInvoiceRequest{
		CustomerName:  "Ana Reyes",
		CustomerEmail: "ana@example.com",
		LineItems: []domain.CreateInvoiceLineItemRequest{
			{Description: "Labor", Quantity: 2, UnitPriceCents: 4500},
			{Description: "Materials", Quantity: 1, UnitPriceCents: 300000},
		},
	}
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	db := setupTestDB(t, "invoice_service_create")
	svc := createInvoiceService(db)

	t.Run("derives totals and due date", func(t *testing.T) {
		dto, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
		require.NoError(t, err)

		// 2 * 4500 + 1 * 300000 = 309000; tax at 8.6% = 26574
		assert.Equal(t, int64(309000), dto.SubtotalCents)
		assert.Equal(t, int64(26574), dto.TaxCents)
		assert.Equal(t, int64(335574), dto.TotalCents)
		assert.Equal(t, domain.InvoiceStatusDraft, dto.Status)
		assert.Len(t, dto.LineItems, 2)

		issue, err := time.Parse("2006-01-02", dto.IssueDate)
		require.NoError(t, err)
		due, err := time.Parse("2006-01-02", dto.DueDate)
		require.NoError(t, err)
		assert.Equal(t, issue.AddDate(0, 0, 30), due)
	})

	t.Run("numbers invoices sequentially per year", func(t *testing.T) {
		first, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
		require.NoError(t, err)
		second, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
		require.NoError(t, err)

		prefix := fmt.Sprintf("INV-%d-", time.Now().Year())
		assert.Contains(t, first.InvoiceNumber, prefix)
		assert.Contains(t, second.InvoiceNumber, prefix)
		assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
	})

	t.Run("rejects unknown quote reference", func(t *testing.T) {
		req := validInvoiceRequest()
		missing := uuid.New()
		req.QuoteRequestID = &missing

		_, err := svc.CreateInvoice(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrQuoteNotFound)
	})

	t.Run("links an existing quote", func(t *testing.T) {
		quoteSvc := createQuoteService(db)
		receipt, err := quoteSvc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)

		req := validInvoiceRequest()
		req.QuoteRequestID = &receipt.ID

		dto, err := svc.CreateInvoice(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, dto.QuoteRequestID)
		assert.Equal(t, receipt.ID, *dto.QuoteRequestID)
	})
}

func TestInvoiceService_CreateInvoiceFromEstimate(t *testing.T) {
	db := setupTestDB(t, "invoice_service_from_estimate")
	svc := createInvoiceService(db)

	request := func() *domain.CreateInvoiceFromEstimateRequest {
		return &domain.CreateInvoiceFromEstimateRequest{
			CustomerName:  "Ana Reyes",
			CustomerEmail: "ana@example.com",
			ProjectType:   "maintenance",
			Zone:          "residential",
			Hours:         2,
			Sqft:          1500,
			Visits:        1,
		}
	}

	t.Run("invoice mirrors the calculator breakdown", func(t *testing.T) {
		dto, err := svc.CreateInvoiceFromEstimate(context.Background(), request())
		require.NoError(t, err)

		estimate, err := pricing.Calculate(request().Inputs())
		require.NoError(t, err)

		assert.Equal(t, pricing.Cents(estimate.Breakdown.Subtotal), dto.SubtotalCents)
		assert.Equal(t, pricing.Cents(estimate.Breakdown.Tax), dto.TaxCents)
		assert.Equal(t, pricing.Cents(estimate.Breakdown.Total), dto.TotalCents)
		assert.Equal(t, int64(309000), dto.SubtotalCents)
		assert.Equal(t, int64(26574), dto.TaxCents)
		assert.Equal(t, int64(335574), dto.TotalCents)
		assert.Equal(t, domain.InvoiceStatusDraft, dto.Status)

		require.Len(t, dto.LineItems, 2)
		labor := dto.LineItems[0]
		assert.Equal(t, float64(2), labor.Quantity)
		assert.Equal(t, int64(4500), labor.UnitPriceCents)
		assert.Equal(t, int64(9000), labor.TotalCents)
		materials := dto.LineItems[1]
		assert.Equal(t, float64(1500), materials.Quantity)
		assert.Equal(t, int64(200), materials.UnitPriceCents)
		assert.Equal(t, int64(300000), materials.TotalCents)
	})

	t.Run("links an existing quote", func(t *testing.T) {
		quoteSvc := createQuoteService(db)
		receipt, err := quoteSvc.SubmitQuote(context.Background(), validSubmitRequest())
		require.NoError(t, err)

		req := request()
		req.QuoteRequestID = &receipt.ID

		dto, err := svc.CreateInvoiceFromEstimate(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, dto.QuoteRequestID)
		assert.Equal(t, receipt.ID, *dto.QuoteRequestID)
	})

	t.Run("rejects unknown quote reference", func(t *testing.T) {
		req := request()
		missing := uuid.New()
		req.QuoteRequestID = &missing

		_, err := svc.CreateInvoiceFromEstimate(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrQuoteNotFound)
	})

	t.Run("invalid inputs create nothing", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&domain.Invoice{}).Count(&before).Error)

		req := request()
		req.Visits = 0
		_, err := svc.CreateInvoiceFromEstimate(context.Background(), req)

		var verr *pricing.ValidationError
		require.ErrorAs(t, err, &verr)

		var after int64
		require.NoError(t, db.Model(&domain.Invoice{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t, "invoice_service_status")
	svc := createInvoiceService(db)

	t.Run("issues an invoice and notifies", func(t *testing.T) {
		created, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
		require.NoError(t, err)

		dto, err := svc.UpdateStatus(context.Background(), created.ID, &domain.UpdateInvoiceStatusRequest{
			Status: domain.InvoiceStatusIssued,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusIssued, dto.Status)

		var count int64
		require.NoError(t, db.Model(&domain.Notification{}).
			Where("type = ?", domain.NotificationTypeInvoiceIssued).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		created, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), created.ID, &domain.UpdateInvoiceStatusRequest{
			Status: "shredded",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), &domain.UpdateInvoiceStatusRequest{
			Status: domain.InvoiceStatusPaid,
		})
		assert.ErrorIs(t, err, service.ErrInvoiceNotFound)
	})
}

func TestInvoiceService_GetAndList(t *testing.T) {
	db := setupTestDB(t, "invoice_service_list")
	svc := createInvoiceService(db)

	created, err := svc.CreateInvoice(context.Background(), validInvoiceRequest())
	require.NoError(t, err)

	t.Run("get returns line items in order", func(t *testing.T) {
		dto, err := svc.GetInvoice(context.Background(), created.ID)
		require.NoError(t, err)
		require.Len(t, dto.LineItems, 2)
		assert.Equal(t, "Labor", dto.LineItems[0].Description)
		assert.Equal(t, "Materials", dto.LineItems[1].Description)
	})

	t.Run("get unknown invoice", func(t *testing.T) {
		_, err := svc.GetInvoice(context.Background(), uuid.New())
		assert.ErrorIs(t, err, service.ErrInvoiceNotFound)
	})

	t.Run("list filters by status", func(t *testing.T) {
		result, err := svc.ListInvoices(context.Background(), "draft", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)

		result, err = svc.ListInvoices(context.Background(), "paid", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Total)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		_, err := svc.ListInvoices(context.Background(), "archived", 1, 10)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
