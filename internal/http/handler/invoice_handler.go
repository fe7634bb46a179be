package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create invoice
// @Description Creates a draft invoice. Totals are derived from the line items; the due date is 30 days after issue.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(r.Context(), &req)
	if err != nil {
		h.handleInvoiceError(w, err, "failed to create invoice")
		return
	}

	w.Header().Set("Location", "/api/v1/invoices/"+invoice.ID.String())
	respondJSON(w, http.StatusCreated, invoice)
}

// CreateFromEstimate godoc
// @Summary Create invoice from estimate
// @Description Runs the calculator on the given inputs and raises a draft invoice from the resulting line items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceFromEstimateRequest true "Customer and calculator inputs"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /invoices/from-estimate [post]
func (h *InvoiceHandler) CreateFromEstimate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceFromEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoiceFromEstimate(r.Context(), &req)
	if err != nil {
		h.handleInvoiceError(w, err, "failed to create invoice from estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/invoices/"+invoice.ID.String())
	respondJSON(w, http.StatusCreated, invoice)
}

// List godoc
// @Summary List invoices
// @Description Returns a paginated list of invoices, optionally filtered by status
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(draft, issued, paid, void)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}

	status := r.URL.Query().Get("status")

	result, err := h.invoiceService.ListInvoices(r.Context(), status, page, pageSize)
	if err != nil {
		h.handleInvoiceError(w, err, "failed to list invoices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get invoice
// @Description Returns a specific invoice with its line items
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.ErrorResponse "Invalid ID"
// @Failure 404 {object} domain.ErrorResponse "Invoice not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(r.Context(), id)
	if err != nil {
		h.handleInvoiceError(w, err, "failed to get invoice")
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// UpdateStatus godoc
// @Summary Update invoice status
// @Description Moves an invoice to a new status (draft, issued, paid, void)
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body domain.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Invoice not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req domain.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.handleInvoiceError(w, err, "failed to update invoice status")
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// handleInvoiceError maps service errors to HTTP responses
func (h *InvoiceHandler) handleInvoiceError(w http.ResponseWriter, err error, logMsg string) {
	var verr *pricing.ValidationError
	switch {
	case errors.As(err, &verr):
		respondCostInputError(w, verr)
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondWithError(w, http.StatusNotFound, "Invoice not found")
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote request not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
