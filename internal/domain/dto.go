package domain

import (
	"github.com/google/uuid"

	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

// DTOs for API responses

// QuoteRequestDTO is the admin view of a quote request
type QuoteRequestDTO struct {
	ID                uuid.UUID           `json:"id"`
	CustomerName      string              `json:"customerName"`
	CustomerEmail     string              `json:"customerEmail"`
	CustomerPhone     string              `json:"customerPhone,omitempty"`
	Address           string              `json:"address,omitempty"`
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	ProjectType       pricing.ProjectType `json:"projectType"`
	Zone              pricing.Zone        `json:"zone"`
	Hours             float64             `json:"hours"`
	Sqft              float64             `json:"sqft"`
	Visits            int                 `json:"visits"`
	ServiceID         *uuid.UUID          `json:"serviceId,omitempty"`
	ServiceName       string              `json:"serviceName,omitempty"`
	Status            QuoteStatus         `json:"status"`
	Breakdown         *BreakdownSnapshot  `json:"breakdown,omitempty"`
	MinCents          int64               `json:"minCents"`
	MaxCents          int64               `json:"maxCents"`
	ApprovedMinCents  *int64              `json:"approvedMinCents,omitempty"`
	ApprovedMaxCents  *int64              `json:"approvedMaxCents,omitempty"`
	EffectiveMinCents int64               `json:"effectiveMinCents"`
	EffectiveMaxCents int64               `json:"effectiveMaxCents"`
	MessageToClient   string              `json:"messageToClient,omitempty"`
	ReviewedAt        string              `json:"reviewedAt,omitempty"` // ISO 8601
	ReviewedBy        string              `json:"reviewedBy,omitempty"`
	SentAt            string              `json:"sentAt,omitempty"` // ISO 8601
	CreatedAt         string              `json:"createdAt"`        // ISO 8601
	UpdatedAt         string              `json:"updatedAt"`        // ISO 8601
}

// QuoteReceiptDTO is the public acknowledgement returned on submission.
// It deliberately omits the cost breakdown.
type QuoteReceiptDTO struct {
	ID                uuid.UUID   `json:"id"`
	Status            QuoteStatus `json:"status"`
	EffectiveMinCents int64       `json:"effectiveMinCents"`
	EffectiveMaxCents int64       `json:"effectiveMaxCents"`
	CreatedAt         string      `json:"createdAt"` // ISO 8601
}

// EstimateDTO carries a full calculator result
type EstimateDTO struct {
	Breakdown pricing.CostBreakdown `json:"breakdown"`
	LineItems []pricing.LineItem    `json:"lineItems"`
	MinCents  int64                 `json:"minCents"`
	MaxCents  int64                 `json:"maxCents"`
}

// EstimatePreviewDTO is the public price range without the breakdown
type EstimatePreviewDTO struct {
	MinCents int64 `json:"minCents"`
	MaxCents int64 `json:"maxCents"`
}

// PresetDTO describes a named estimate preset
type PresetDTO struct {
	Name   string             `json:"name"`
	Label  string             `json:"label"`
	Inputs pricing.CostInputs `json:"inputs"`
}

// ServiceDTO represents a catalog entry
type ServiceDTO struct {
	ID                  uuid.UUID             `json:"id"`
	Name                string                `json:"name"`
	Description         string                `json:"description,omitempty"`
	AllowedProjectTypes []pricing.ProjectType `json:"allowedProjectTypes"`
	DisplayOrder        int                   `json:"displayOrder"`
	IsActive            bool                  `json:"isActive"`
}

// InvoiceDTO represents an invoice with its line items
type InvoiceDTO struct {
	ID             uuid.UUID            `json:"id"`
	InvoiceNumber  string               `json:"invoiceNumber"`
	QuoteRequestID *uuid.UUID           `json:"quoteRequestId,omitempty"`
	CustomerName   string               `json:"customerName"`
	CustomerEmail  string               `json:"customerEmail"`
	Status         InvoiceStatus        `json:"status"`
	IssueDate      string               `json:"issueDate"` // ISO 8601 date
	DueDate        string               `json:"dueDate"`   // ISO 8601 date
	SubtotalCents  int64                `json:"subtotalCents"`
	TaxCents       int64                `json:"taxCents"`
	TotalCents     int64                `json:"totalCents"`
	Notes          string               `json:"notes,omitempty"`
	LineItems      []InvoiceLineItemDTO `json:"lineItems"`
	CreatedAt      string               `json:"createdAt"` // ISO 8601
	UpdatedAt      string               `json:"updatedAt"` // ISO 8601
}

// InvoiceLineItemDTO represents a single line on an invoice
type InvoiceLineItemDTO struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       float64   `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	TotalCents     int64     `json:"totalCents"`
}

// NotificationDTO represents a back-office notification
type NotificationDTO struct {
	ID         uuid.UUID        `json:"id"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Read       bool             `json:"read"`
	ReadAt     string           `json:"readAt,omitempty"` // ISO 8601
	EntityID   *uuid.UUID       `json:"entityId,omitempty"`
	EntityType string           `json:"entityType,omitempty"`
	CreatedAt  string           `json:"createdAt"` // ISO 8601
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// Request DTOs

// SubmitQuoteRequest contains the data for a public quote submission
type SubmitQuoteRequest struct {
	CustomerName  string     `json:"customerName" validate:"required,max=200"`
	CustomerEmail string     `json:"customerEmail" validate:"required,email"`
	CustomerPhone string     `json:"customerPhone,omitempty" validate:"max=50"`
	Address       string     `json:"address,omitempty" validate:"max=500"`
	Title         string     `json:"title" validate:"required,max=200"`
	Description   string     `json:"description,omitempty" validate:"max=5000"`
	ProjectType   string     `json:"projectType" validate:"required,max=50"`
	Zone          string     `json:"zone" validate:"required,max=50"`
	Hours         float64    `json:"hours"`
	Sqft          float64    `json:"sqft"`
	Visits        int        `json:"visits"`
	ServiceID     *uuid.UUID `json:"serviceId,omitempty"`
}

// ReviewQuoteRequest contains the reviewer's adjustments for a quote
type ReviewQuoteRequest struct {
	ApprovedMinCents *int64 `json:"approvedMinCents,omitempty" validate:"omitempty,gte=0"`
	ApprovedMaxCents *int64 `json:"approvedMaxCents,omitempty" validate:"omitempty,gte=0"`
	MessageToClient  string `json:"messageToClient,omitempty" validate:"max=5000"`
	ReviewedBy       string `json:"reviewedBy,omitempty" validate:"max=200"`
}

// EstimateRequest contains the inputs for a cost calculation
type EstimateRequest struct {
	ProjectType string  `json:"projectType" validate:"required,max=50"`
	Zone        string  `json:"zone" validate:"required,max=50"`
	Hours       float64 `json:"hours"`
	Sqft        float64 `json:"sqft"`
	Visits      int     `json:"visits"`
}

// Inputs converts the request into calculator inputs
func (r *EstimateRequest) Inputs() pricing.CostInputs {
	return pricing.CostInputs{
		Hours:       r.Hours,
		Sqft:        r.Sqft,
		Visits:      r.Visits,
		Zone:        pricing.Zone(r.Zone),
		ProjectType: pricing.ProjectType(r.ProjectType),
	}
}

// CreateInvoiceRequest contains the data needed to create an invoice
type CreateInvoiceRequest struct {
	QuoteRequestID *uuid.UUID                     `json:"quoteRequestId,omitempty"`
	CustomerName   string                         `json:"customerName" validate:"required,max=200"`
	CustomerEmail  string                         `json:"customerEmail" validate:"required,email"`
	Notes          string                         `json:"notes,omitempty" validate:"max=5000"`
	LineItems      []CreateInvoiceLineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
}

// CreateInvoiceFromEstimateRequest raises an invoice straight from calculator
// inputs. The line items come from the calculator, not the caller.
type CreateInvoiceFromEstimateRequest struct {
	QuoteRequestID *uuid.UUID `json:"quoteRequestId,omitempty"`
	CustomerName   string     `json:"customerName" validate:"required,max=200"`
	CustomerEmail  string     `json:"customerEmail" validate:"required,email"`
	Notes          string     `json:"notes,omitempty" validate:"max=5000"`
	ProjectType    string     `json:"projectType" validate:"required,max=50"`
	Zone           string     `json:"zone" validate:"required,max=50"`
	Hours          float64    `json:"hours"`
	Sqft           float64    `json:"sqft"`
	Visits         int        `json:"visits"`
}

// Inputs converts the request into calculator inputs
func (r *CreateInvoiceFromEstimateRequest) Inputs() pricing.CostInputs {
	return pricing.CostInputs{
		Hours:       r.Hours,
		Sqft:        r.Sqft,
		Visits:      r.Visits,
		Zone:        pricing.Zone(r.Zone),
		ProjectType: pricing.ProjectType(r.ProjectType),
	}
}

// CreateInvoiceLineItemRequest contains one billed line for a new invoice
type CreateInvoiceLineItemRequest struct {
	Description    string  `json:"description" validate:"required,max=500"`
	Quantity       float64 `json:"quantity" validate:"required,gt=0"`
	UnitPriceCents int64   `json:"unitPriceCents" validate:"gte=0"`
}

// UpdateInvoiceStatusRequest moves an invoice to a new status
type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required"`
}

// CreateServiceRequest contains the data needed to create a catalog entry
type CreateServiceRequest struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Description         string   `json:"description,omitempty" validate:"max=5000"`
	AllowedProjectTypes []string `json:"allowedProjectTypes" validate:"required,min=1"`
	DisplayOrder        int      `json:"displayOrder"`
}

// CreateNotificationRequest contains the data needed to create a notification
type CreateNotificationRequest struct {
	Type       NotificationType `json:"type" validate:"required"`
	Title      string           `json:"title" validate:"required,max=200"`
	Message    string           `json:"message" validate:"required,max=500"`
	EntityID   *uuid.UUID       `json:"entityId,omitempty"`
	EntityType string           `json:"entityType,omitempty" validate:"max=50"`
}
