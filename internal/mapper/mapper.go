package mapper

import (
	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

const timeLayout = "2006-01-02T15:04:05Z"
const dateLayout = "2006-01-02"

// ToQuoteRequestDTO converts QuoteRequest to the admin-facing DTO
func ToQuoteRequestDTO(quote *domain.QuoteRequest) domain.QuoteRequestDTO {
	snapshot := quote.Snapshot
	dto := domain.QuoteRequestDTO{
		ID:                quote.ID,
		CustomerName:      quote.CustomerName,
		CustomerEmail:     quote.CustomerEmail,
		CustomerPhone:     quote.CustomerPhone,
		Address:           quote.Address,
		Title:             quote.Title,
		Description:       quote.Description,
		ProjectType:       quote.ProjectType,
		Zone:              quote.Zone,
		Hours:             quote.Hours,
		Sqft:              quote.Sqft,
		Visits:            quote.Visits,
		ServiceID:         quote.ServiceID,
		Status:            quote.Status,
		Breakdown:         &snapshot,
		MinCents:          quote.MinCents,
		MaxCents:          quote.MaxCents,
		ApprovedMinCents:  quote.ApprovedMinCents,
		ApprovedMaxCents:  quote.ApprovedMaxCents,
		EffectiveMinCents: quote.EffectiveMinCents(),
		EffectiveMaxCents: quote.EffectiveMaxCents(),
		MessageToClient:   quote.MessageToClient,
		ReviewedBy:        quote.ReviewedBy,
		CreatedAt:         quote.CreatedAt.Format(timeLayout),
		UpdatedAt:         quote.UpdatedAt.Format(timeLayout),
	}

	if quote.Service != nil {
		dto.ServiceName = quote.Service.Name
	}
	if quote.ReviewedAt != nil {
		dto.ReviewedAt = quote.ReviewedAt.Format(timeLayout)
	}
	if quote.SentAt != nil {
		dto.SentAt = quote.SentAt.Format(timeLayout)
	}

	return dto
}

// ToQuoteReceiptDTO converts QuoteRequest to the public receipt
func ToQuoteReceiptDTO(quote *domain.QuoteRequest) domain.QuoteReceiptDTO {
	return domain.QuoteReceiptDTO{
		ID:                quote.ID,
		Status:            quote.Status,
		EffectiveMinCents: quote.EffectiveMinCents(),
		EffectiveMaxCents: quote.EffectiveMaxCents(),
		CreatedAt:         quote.CreatedAt.Format(timeLayout),
	}
}

// ToEstimateDTO converts a calculator result plus its derived range
func ToEstimateDTO(estimate *pricing.Estimate, minCents, maxCents int64) domain.EstimateDTO {
	return domain.EstimateDTO{
		Breakdown: estimate.Breakdown,
		LineItems: estimate.LineItems,
		MinCents:  minCents,
		MaxCents:  maxCents,
	}
}

// ToServiceDTO converts Service to ServiceDTO
func ToServiceDTO(service *domain.Service) domain.ServiceDTO {
	types := make([]pricing.ProjectType, len(service.AllowedProjectTypes))
	copy(types, service.AllowedProjectTypes)
	return domain.ServiceDTO{
		ID:                  service.ID,
		Name:                service.Name,
		Description:         service.Description,
		AllowedProjectTypes: types,
		DisplayOrder:        service.DisplayOrder,
		IsActive:            service.IsActive,
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	lineItems := make([]domain.InvoiceLineItemDTO, len(invoice.LineItems))
	for i, li := range invoice.LineItems {
		lineItems[i] = domain.InvoiceLineItemDTO{
			ID:             li.ID,
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPriceCents: li.UnitPriceCents,
			TotalCents:     li.TotalCents,
		}
	}

	return domain.InvoiceDTO{
		ID:             invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		QuoteRequestID: invoice.QuoteRequestID,
		CustomerName:   invoice.CustomerName,
		CustomerEmail:  invoice.CustomerEmail,
		Status:         invoice.Status,
		IssueDate:      invoice.IssueDate.Format(dateLayout),
		DueDate:        invoice.DueDate.Format(dateLayout),
		SubtotalCents:  invoice.SubtotalCents,
		TaxCents:       invoice.TaxCents,
		TotalCents:     invoice.TotalCents,
		Notes:          invoice.Notes,
		LineItems:      lineItems,
		CreatedAt:      invoice.CreatedAt.Format(timeLayout),
		UpdatedAt:      invoice.UpdatedAt.Format(timeLayout),
	}
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	dto := domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		EntityID:   notification.EntityID,
		EntityType: notification.EntityType,
		CreatedAt:  notification.CreatedAt.Format(timeLayout),
	}
	if notification.ReadAt != nil {
		dto.ReadAt = notification.ReadAt.Format(timeLayout)
	}
	return dto
}

// ToPresetDTO converts a pricing preset to PresetDTO
func ToPresetDTO(preset pricing.Preset) domain.PresetDTO {
	return domain.PresetDTO{
		Name:   preset.Name,
		Label:  preset.Label,
		Inputs: preset.Inputs,
	}
}
