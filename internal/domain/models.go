package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so inserts work the same on
// postgres and sqlite.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// QuoteStatus represents where a quote request sits in its lifecycle
type QuoteStatus string

const (
	QuoteStatusNew       QuoteStatus = "new"
	QuoteStatusReviewed  QuoteStatus = "reviewed"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case QuoteStatusNew, QuoteStatusReviewed, QuoteStatusSent, QuoteStatusCancelled:
		return true
	}
	return false
}

// BreakdownSnapshot freezes the calculator output that produced a quote's
// stored range. Version identifies the snapshot layout so old rows stay
// readable after the calculator changes.
type BreakdownSnapshot struct {
	Version   int                   `json:"version"`
	Inputs    pricing.CostInputs    `json:"inputs"`
	Breakdown pricing.CostBreakdown `json:"breakdown"`
	LineItems []pricing.LineItem    `json:"lineItems"`
}

// BreakdownSnapshotVersion is the layout written by the current calculator.
const BreakdownSnapshotVersion = 1

// QuoteRequest represents a customer's ask for a priced job
type QuoteRequest struct {
	BaseModel
	CustomerName     string              `gorm:"type:varchar(200);not null"`
	CustomerEmail    string              `gorm:"type:varchar(255);not null;index"`
	CustomerPhone    string              `gorm:"type:varchar(50)"`
	Address          string              `gorm:"type:varchar(500)"`
	Title            string              `gorm:"type:varchar(200);not null"`
	Description      string              `gorm:"type:text"`
	ProjectType      pricing.ProjectType `gorm:"type:varchar(50);not null;index;column:project_type"`
	Zone             pricing.Zone        `gorm:"type:varchar(50);not null"`
	Hours            float64             `gorm:"type:decimal(10,2);not null"`
	Sqft             float64             `gorm:"type:decimal(12,2);not null"`
	Visits           int                 `gorm:"not null;default:1"`
	ServiceID        *uuid.UUID          `gorm:"type:uuid;index;column:service_id"`
	Service          *Service            `gorm:"foreignKey:ServiceID"`
	Status           QuoteStatus         `gorm:"type:varchar(50);not null;default:'new';index"`
	Snapshot         BreakdownSnapshot   `gorm:"serializer:json;type:text;column:snapshot"`
	MinCents         int64               `gorm:"not null;column:min_cents"`
	MaxCents         int64               `gorm:"not null;column:max_cents"`
	ApprovedMinCents *int64              `gorm:"column:approved_min_cents"`
	ApprovedMaxCents *int64              `gorm:"column:approved_max_cents"`
	MessageToClient  string              `gorm:"type:text;column:message_to_client"`
	ReviewedAt       *time.Time          `gorm:"column:reviewed_at"`
	ReviewedBy       string              `gorm:"type:varchar(200);column:reviewed_by"`
	SentAt           *time.Time          `gorm:"column:sent_at"`
}

// EffectiveMinCents returns the reviewer's approved lower bound when one
// exists, otherwise the computed one.
func (q *QuoteRequest) EffectiveMinCents() int64 {
	if q.ApprovedMinCents != nil {
		return *q.ApprovedMinCents
	}
	return q.MinCents
}

// EffectiveMaxCents returns the reviewer's approved upper bound when one
// exists, otherwise the computed one.
func (q *QuoteRequest) EffectiveMaxCents() int64 {
	if q.ApprovedMaxCents != nil {
		return *q.ApprovedMaxCents
	}
	return q.MaxCents
}

// ProjectTypeList is a comma separated list of project types. Stored as
// text so the same column works on postgres and sqlite.
type ProjectTypeList []pricing.ProjectType

// Value implements driver.Valuer
func (l ProjectTypeList) Value() (driver.Value, error) {
	parts := make([]string, len(l))
	for i, pt := range l {
		parts[i] = string(pt)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner
func (l *ProjectTypeList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported type %T for ProjectTypeList", src)
	}
	if raw == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(ProjectTypeList, 0, len(parts))
	for _, p := range parts {
		out = append(out, pricing.ProjectType(strings.TrimSpace(p)))
	}
	*l = out
	return nil
}

// Contains reports whether the list includes the given project type
func (l ProjectTypeList) Contains(pt pricing.ProjectType) bool {
	for _, candidate := range l {
		if candidate == pt {
			return true
		}
	}
	return false
}

// Service represents an offered line of work in the public catalog
type Service struct {
	BaseModel
	Name                string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description         string          `gorm:"type:text"`
	AllowedProjectTypes ProjectTypeList `gorm:"type:text;not null;column:allowed_project_types"`
	DisplayOrder        int             `gorm:"not null;default:0;column:display_order"`
	IsActive            bool            `gorm:"not null;default:true;column:is_active;index"`
}

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (is InvoiceStatus) IsValid() bool {
	switch is {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// Invoice represents a bill raised against a sent quote
type Invoice struct {
	BaseModel
	InvoiceNumber  string            `gorm:"type:varchar(50);not null;unique;column:invoice_number"`
	QuoteRequestID *uuid.UUID        `gorm:"type:uuid;index;column:quote_request_id"`
	QuoteRequest   *QuoteRequest     `gorm:"foreignKey:QuoteRequestID"`
	CustomerName   string            `gorm:"type:varchar(200);not null"`
	CustomerEmail  string            `gorm:"type:varchar(255);not null"`
	Status         InvoiceStatus     `gorm:"type:varchar(50);not null;default:'draft';index"`
	IssueDate      time.Time         `gorm:"type:date;not null;column:issue_date"`
	DueDate        time.Time         `gorm:"type:date;not null;column:due_date"`
	SubtotalCents  int64             `gorm:"not null;column:subtotal_cents"`
	TaxCents       int64             `gorm:"not null;column:tax_cents"`
	TotalCents     int64             `gorm:"not null;column:total_cents"`
	Notes          string            `gorm:"type:text"`
	LineItems      []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceLineItem represents a single billed line on an invoice
type InvoiceLineItem struct {
	BaseModel
	InvoiceID      uuid.UUID `gorm:"type:uuid;not null;index;column:invoice_id"`
	Description    string    `gorm:"type:varchar(500);not null"`
	Quantity       float64   `gorm:"type:decimal(10,2);not null"`
	UnitPriceCents int64     `gorm:"not null;column:unit_price_cents"`
	TotalCents     int64     `gorm:"not null;column:total_cents"`
	DisplayOrder   int       `gorm:"not null;default:0;column:display_order"`
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeQuoteSubmitted NotificationType = "quote_submitted"
	NotificationTypeQuoteReviewed  NotificationType = "quote_reviewed"
	NotificationTypeQuoteSent      NotificationType = "quote_sent"
	NotificationTypeQuoteCancelled NotificationType = "quote_cancelled"
	NotificationTypeInvoiceIssued  NotificationType = "invoice_issued"
)

// Notification represents an internal back-office notification
type Notification struct {
	BaseModel
	Type       NotificationType `gorm:"type:varchar(50);not null"`
	Title      string           `gorm:"type:varchar(200);not null"`
	Message    string           `gorm:"type:varchar(500);not null"`
	Read       bool             `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}
