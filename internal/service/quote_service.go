package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/mapper"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
)

// QuoteService owns the quote request lifecycle: submit, review, send, cancel.
type QuoteService struct {
	quoteRepo    *repository.QuoteRequestRepository
	serviceRepo  *repository.ServiceRepository
	notifier     *NotificationService
	logger       *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRequestRepository,
	serviceRepo *repository.ServiceRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubmitQuote validates a public submission, prices it, and persists it in
// status new. Nothing is written when the calculator rejects the inputs.
func (s *QuoteService) SubmitQuote(ctx context.Context, req *domain.SubmitQuoteRequest) (*domain.QuoteReceiptDTO, error) {
	inputs := pricing.CostInputs{
		Hours:       req.Hours,
		Sqft:        req.Sqft,
		Visits:      req.Visits,
		Zone:        pricing.Zone(req.Zone),
		ProjectType: pricing.ProjectType(req.ProjectType),
	}

	estimate, err := pricing.Calculate(inputs)
	if err != nil {
		return nil, err
	}

	minCents, maxCents, err := pricing.QuoteRange(inputs)
	if err != nil {
		return nil, err
	}

	if req.ServiceID != nil {
		svc, err := s.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("failed to get service: %w", err)
		}
		if !svc.AllowedProjectTypes.Contains(inputs.ProjectType) {
			return nil, ErrProjectTypeNotAllowed
		}
	}

	quote := &domain.QuoteRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Title:         req.Title,
		Description:   req.Description,
		ProjectType:   inputs.ProjectType,
		Zone:          inputs.Zone,
		Hours:         req.Hours,
		Sqft:          req.Sqft,
		Visits:        req.Visits,
		ServiceID:     req.ServiceID,
		Status:        domain.QuoteStatusNew,
		Snapshot: domain.BreakdownSnapshot{
			Version:   domain.BreakdownSnapshotVersion,
			Inputs:    inputs,
			Breakdown: estimate.Breakdown,
			LineItems: estimate.LineItems,
		},
		MinCents: minCents,
		MaxCents: maxCents,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	s.logger.Info("quote request submitted",
		zap.String("quoteID", quote.ID.String()),
		zap.String("projectType", string(quote.ProjectType)),
		zap.Int64("minCents", minCents),
		zap.Int64("maxCents", maxCents))

	s.notify(ctx, domain.NotificationTypeQuoteSubmitted, "New quote request",
		fmt.Sprintf("Quote request '%s' from %s awaits review", quote.Title, quote.CustomerName), quote.ID)

	receipt := mapper.ToQuoteReceiptDTO(quote)
	return &receipt, nil
}

// GetQuote returns the full admin view of a quote request
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*domain.QuoteRequestDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}

	dto := mapper.ToQuoteRequestDTO(quote)
	return &dto, nil
}

// ListQuotes returns a page of quote requests, optionally filtered by status
func (s *QuoteService) ListQuotes(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResponse, error) {
	if status != "" && !domain.QuoteStatus(status).IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	quotes, total, err := s.quoteRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}

	dtos := make([]domain.QuoteRequestDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteRequestDTO(&quotes[i])
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

// ReviewQuote records a reviewer's pass over a quote: an optional approved
// range override and a message to the client. Allowed from new or reviewed.
// The stored computed range is never recomputed here.
func (s *QuoteService) ReviewQuote(ctx context.Context, id uuid.UUID, req *domain.ReviewQuoteRequest) (*domain.QuoteRequestDTO, error) {
	if (req.ApprovedMinCents == nil) != (req.ApprovedMaxCents == nil) {
		return nil, fmt.Errorf("%w: both bounds must be set together", ErrInvalidApprovedRange)
	}
	if req.ApprovedMinCents != nil && *req.ApprovedMinCents > *req.ApprovedMaxCents {
		return nil, fmt.Errorf("%w: min exceeds max", ErrInvalidApprovedRange)
	}

	// Review is a patch: fields the reviewer did not set are left untouched,
	// so a message-only pass cannot erase an earlier approved override.
	now := time.Now()
	fields := map[string]interface{}{
		"status":      domain.QuoteStatusReviewed,
		"reviewed_at": now,
	}
	if req.ApprovedMinCents != nil {
		fields["approved_min_cents"] = req.ApprovedMinCents
		fields["approved_max_cents"] = req.ApprovedMaxCents
	}
	if req.MessageToClient != "" {
		fields["message_to_client"] = req.MessageToClient
	}
	if req.ReviewedBy != "" {
		fields["reviewed_by"] = req.ReviewedBy
	}

	rows, err := s.quoteRepo.UpdateStatusGuarded(ctx, id,
		[]domain.QuoteStatus{domain.QuoteStatusNew, domain.QuoteStatusReviewed}, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to review quote request: %w", err)
	}
	if rows == 0 {
		return nil, s.transitionConflict(ctx, id)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload quote request: %w", err)
	}

	s.logger.Info("quote request reviewed",
		zap.String("quoteID", id.String()),
		zap.Bool("rangeOverridden", req.ApprovedMinCents != nil))

	s.notify(ctx, domain.NotificationTypeQuoteReviewed, "Quote reviewed",
		fmt.Sprintf("Quote request '%s' reviewed", quote.Title), quote.ID)

	dto := mapper.ToQuoteRequestDTO(quote)
	return &dto, nil
}

// SendQuote marks a quote as sent. Review is optional: a new quote can go
// straight out with its computed range. The guarded update means at most one
// concurrent caller wins; everyone else gets a conflict error.
func (s *QuoteService) SendQuote(ctx context.Context, id uuid.UUID) (*domain.QuoteRequestDTO, error) {
	now := time.Now()
	fields := map[string]interface{}{
		"status":  domain.QuoteStatusSent,
		"sent_at": now,
	}

	rows, err := s.quoteRepo.UpdateStatusGuarded(ctx, id,
		[]domain.QuoteStatus{domain.QuoteStatusNew, domain.QuoteStatusReviewed}, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to send quote request: %w", err)
	}
	if rows == 0 {
		return nil, s.transitionConflict(ctx, id)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload quote request: %w", err)
	}

	s.logger.Info("quote request sent",
		zap.String("quoteID", id.String()),
		zap.Int64("effectiveMinCents", quote.EffectiveMinCents()),
		zap.Int64("effectiveMaxCents", quote.EffectiveMaxCents()))

	s.notify(ctx, domain.NotificationTypeQuoteSent, "Quote sent",
		fmt.Sprintf("Quote request '%s' sent to %s", quote.Title, quote.CustomerEmail), quote.ID)

	dto := mapper.ToQuoteRequestDTO(quote)
	return &dto, nil
}

// CancelQuote withdraws a quote that has not gone out yet
func (s *QuoteService) CancelQuote(ctx context.Context, id uuid.UUID) (*domain.QuoteRequestDTO, error) {
	rows, err := s.quoteRepo.UpdateStatusGuarded(ctx, id,
		[]domain.QuoteStatus{domain.QuoteStatusNew, domain.QuoteStatusReviewed},
		map[string]interface{}{"status": domain.QuoteStatusCancelled})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel quote request: %w", err)
	}
	if rows == 0 {
		return nil, s.transitionConflict(ctx, id)
	}

	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload quote request: %w", err)
	}

	s.logger.Info("quote request cancelled", zap.String("quoteID", id.String()))

	s.notify(ctx, domain.NotificationTypeQuoteCancelled, "Quote cancelled",
		fmt.Sprintf("Quote request '%s' was cancelled", quote.Title), quote.ID)

	dto := mapper.ToQuoteRequestDTO(quote)
	return &dto, nil
}

// CancelStaleQuotes cancels quotes that sat in status new longer than
// maxAge. Returns the number of quotes cancelled.
func (s *QuoteService) CancelStaleQuotes(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)

	stale, err := s.quoteRepo.ListStaleNew(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale quotes: %w", err)
	}

	cancelled := 0
	for i := range stale {
		rows, err := s.quoteRepo.UpdateStatusGuarded(ctx, stale[i].ID,
			[]domain.QuoteStatus{domain.QuoteStatusNew},
			map[string]interface{}{"status": domain.QuoteStatusCancelled})
		if err != nil {
			s.logger.Warn("failed to cancel stale quote",
				zap.String("quoteID", stale[i].ID.String()),
				zap.Error(err))
			continue
		}
		if rows > 0 {
			cancelled++
		}
	}

	if cancelled > 0 {
		s.logger.Info("cancelled stale quote requests", zap.Int("count", cancelled))
	}
	return cancelled, nil
}

// transitionConflict turns a zero-row guarded update into the precise
// lifecycle error for the quote's actual state.
func (s *QuoteService) transitionConflict(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to get quote request: %w", err)
	}

	switch quote.Status {
	case domain.QuoteStatusSent:
		return ErrQuoteAlreadySent
	case domain.QuoteStatusCancelled:
		return ErrQuoteCancelled
	default:
		return ErrConflict
	}
}

func (s *QuoteService) notify(ctx context.Context, nType domain.NotificationType, title, message string, entityID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	id := entityID
	_, err := s.notifier.Create(ctx, &domain.CreateNotificationRequest{
		Type:       nType,
		Title:      title,
		Message:    message,
		EntityID:   &id,
		EntityType: "quote_request",
	})
	if err != nil {
		s.logger.Warn("failed to create notification", zap.Error(err))
	}
}
