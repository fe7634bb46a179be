package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/mapper"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
)

// invoiceDueDays is how long after issue an invoice falls due
const invoiceDueDays = 30

// InvoiceService manages invoices raised against sent quotes
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	quoteRepo   *repository.QuoteRequestRepository
	notifier    *NotificationService
	logger      *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	quoteRepo *repository.QuoteRequestRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateInvoice creates a draft invoice from caller-supplied line items.
// Totals are derived from the lines; the tax rate matches the calculator's.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	if err := s.ensureQuoteExists(ctx, req.QuoteRequestID); err != nil {
		return nil, err
	}

	lineItems := make([]domain.InvoiceLineItem, len(req.LineItems))
	for i, li := range req.LineItems {
		lineItems[i] = domain.InvoiceLineItem{
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPriceCents: li.UnitPriceCents,
			TotalCents:     int64(math.Round(li.Quantity * float64(li.UnitPriceCents))),
			DisplayOrder:   i,
		}
	}

	return s.persistInvoice(ctx, req.QuoteRequestID, req.CustomerName, req.CustomerEmail, req.Notes, lineItems)
}

// CreateInvoiceFromEstimate runs the calculator on the given inputs and
// raises a draft invoice from its line items, so an estimate flows into
// billing without anyone retyping figures.
func (s *InvoiceService) CreateInvoiceFromEstimate(ctx context.Context, req *domain.CreateInvoiceFromEstimateRequest) (*domain.InvoiceDTO, error) {
	estimate, err := pricing.Calculate(req.Inputs())
	if err != nil {
		return nil, err
	}

	if err := s.ensureQuoteExists(ctx, req.QuoteRequestID); err != nil {
		return nil, err
	}

	lineItems := make([]domain.InvoiceLineItem, len(estimate.LineItems))
	for i, li := range estimate.LineItems {
		lineItems[i] = domain.InvoiceLineItem{
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPriceCents: pricing.Cents(li.UnitPrice),
			TotalCents:     pricing.Cents(li.Total),
			DisplayOrder:   i,
		}
	}

	return s.persistInvoice(ctx, req.QuoteRequestID, req.CustomerName, req.CustomerEmail, req.Notes, lineItems)
}

func (s *InvoiceService) ensureQuoteExists(ctx context.Context, quoteRequestID *uuid.UUID) error {
	if quoteRequestID == nil {
		return nil
	}
	if _, err := s.quoteRepo.GetByID(ctx, *quoteRequestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to get quote request: %w", err)
	}
	return nil
}

// persistInvoice allocates a number, totals the lines and writes the draft.
func (s *InvoiceService) persistInvoice(ctx context.Context, quoteRequestID *uuid.UUID, customerName, customerEmail, notes string, lineItems []domain.InvoiceLineItem) (*domain.InvoiceDTO, error) {
	now := time.Now()
	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	var subtotalCents int64
	for i := range lineItems {
		subtotalCents += lineItems[i].TotalCents
	}
	taxCents := pricing.TaxCents(subtotalCents)

	invoice := &domain.Invoice{
		InvoiceNumber:  number,
		QuoteRequestID: quoteRequestID,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		Status:         domain.InvoiceStatusDraft,
		IssueDate:      now,
		DueDate:        now.AddDate(0, 0, invoiceDueDays),
		SubtotalCents:  subtotalCents,
		TaxCents:       taxCents,
		TotalCents:     subtotalCents + taxCents,
		Notes:          notes,
		LineItems:      lineItems,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoiceID", invoice.ID.String()),
		zap.String("invoiceNumber", invoice.InvoiceNumber),
		zap.Int64("totalCents", invoice.TotalCents))

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// GetInvoice returns an invoice with its line items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// ListInvoices returns a page of invoices, optionally filtered by status
func (s *InvoiceService) ListInvoices(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResponse, error) {
	if status != "" && !domain.InvoiceStatus(status).IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	invoices, total, err := s.invoiceRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus moves an invoice to a new status
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceStatusRequest) (*domain.InvoiceDTO, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	rows, err := s.invoiceRepo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	if rows == 0 {
		return nil, ErrInvoiceNotFound
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}

	if req.Status == domain.InvoiceStatusIssued && s.notifier != nil {
		entityID := invoice.ID
		_, nerr := s.notifier.Create(ctx, &domain.CreateNotificationRequest{
			Type:       domain.NotificationTypeInvoiceIssued,
			Title:      "Invoice issued",
			Message:    fmt.Sprintf("Invoice %s issued to %s", invoice.InvoiceNumber, invoice.CustomerEmail),
			EntityID:   &entityID,
			EntityType: "invoice",
		})
		if nerr != nil {
			s.logger.Warn("failed to create notification", zap.Error(nerr))
		}
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}
