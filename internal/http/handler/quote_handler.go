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

// QuoteHandler handles HTTP requests for quote requests
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// Submit godoc
// @Summary Submit quote request
// @Description Submits a public quote request. Inputs are validated and priced before anything is stored; the response is a receipt with the estimate range only.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.SubmitQuoteRequest true "Quote request data"
// @Success 201 {object} domain.QuoteReceiptDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Service not found"
// @Failure 500 {object} domain.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	receipt, err := h.quoteService.SubmitQuote(r.Context(), &req)
	if err != nil {
		h.handleQuoteError(w, err, "failed to submit quote request")
		return
	}

	w.Header().Set("Location", "/api/v1/quotes/"+receipt.ID.String())
	respondJSON(w, http.StatusCreated, receipt)
}

// List godoc
// @Summary List quote requests
// @Description Returns a paginated list of quote requests, optionally filtered by status
// @Tags Quotes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(new, reviewed, sent, cancelled)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.quoteService.ListQuotes(r.Context(), status, page, pageSize)
	if err != nil {
		h.handleQuoteError(w, err, "failed to list quote requests")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get quote request
// @Description Returns a specific quote request with its stored breakdown
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote request ID"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.ErrorResponse "Invalid ID"
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err, "failed to get quote request")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Review godoc
// @Summary Review quote request
// @Description Records a reviewer's pass: optional approved range override and a message to the client. Allowed while the quote is new or reviewed.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote request ID"
// @Param request body domain.ReviewQuoteRequest true "Review data"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 409 {object} domain.ErrorResponse "Quote already sent or cancelled"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/review [post]
func (h *QuoteHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req domain.ReviewQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.ReviewQuote(r.Context(), id, &req)
	if err != nil {
		h.handleQuoteError(w, err, "failed to review quote request")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Send godoc
// @Summary Send quote request
// @Description Marks a new or reviewed quote as sent. At most one concurrent caller succeeds; the rest get a conflict.
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote request ID"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 409 {object} domain.ErrorResponse "Quote already sent or cancelled"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	quote, err := h.quoteService.SendQuote(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err, "failed to send quote request")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Cancel godoc
// @Summary Cancel quote request
// @Description Withdraws a quote that has not been sent yet
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote request ID"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Quote request not found"
// @Failure 409 {object} domain.ErrorResponse "Quote already sent"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /quotes/{id}/cancel [post]
func (h *QuoteHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	quote, err := h.quoteService.CancelQuote(r.Context(), id)
	if err != nil {
		h.handleQuoteError(w, err, "failed to cancel quote request")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote request ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleQuoteError maps service errors to HTTP responses
func (h *QuoteHandler) handleQuoteError(w http.ResponseWriter, err error, logMsg string) {
	var verr *pricing.ValidationError
	switch {
	case errors.As(err, &verr):
		respondCostInputError(w, verr)
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote request not found")
	case errors.Is(err, service.ErrServiceNotFound):
		respondWithError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrProjectTypeNotAllowed):
		respondWithError(w, http.StatusBadRequest, "Project type not allowed for the selected service")
	case errors.Is(err, service.ErrInvalidApprovedRange):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQuoteAlreadySent):
		respondWithError(w, http.StatusConflict, "Quote request has already been sent")
	case errors.Is(err, service.ErrQuoteCancelled):
		respondWithError(w, http.StatusConflict, "Quote request has been cancelled")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
