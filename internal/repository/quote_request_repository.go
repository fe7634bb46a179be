package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
)

type QuoteRequestRepository struct {
	db *gorm.DB
}

func NewQuoteRequestRepository(db *gorm.DB) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: db}
}

func (r *QuoteRequestRepository) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	var quote domain.QuoteRequest
	err := r.db.WithContext(ctx).Preload("Service").First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRequestRepository) List(ctx context.Context, status string, page, pageSize int) ([]domain.QuoteRequest, int64, error) {
	var quotes []domain.QuoteRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.QuoteRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Service").Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&quotes).Error

	return quotes, total, err
}

func (r *QuoteRequestRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdateStatusGuarded performs a conditional status transition. The update
// only lands when the row's current status is one of fromStatuses, so two
// concurrent callers cannot both win the same transition. Returns the
// number of rows changed (0 or 1).
func (r *QuoteRequestRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, fromStatuses []domain.QuoteStatus, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// ListStaleNew returns quotes still in status new that were created before
// the cutoff.
func (r *QuoteRequestRepository) ListStaleNew(ctx context.Context, cutoff time.Time) ([]domain.QuoteRequest, error) {
	var quotes []domain.QuoteRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.QuoteStatusNew, cutoff).
		Order("created_at ASC").
		Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRequestRepository) CountByStatus(ctx context.Context, status domain.QuoteStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
