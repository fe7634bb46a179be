package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) List(ctx context.Context, status string, page, pageSize int) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("LineItems").Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&invoices).Error

	return invoices, total, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// NextInvoiceNumber produces the next sequential number for the given
// year, formatted like INV-2026-0042.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", now.Year())

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
