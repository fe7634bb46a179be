package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

// EstimateHandler handles HTTP requests for cost estimates
type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// Preview godoc
// @Summary Preview estimate range
// @Description Returns the public price range for a set of job inputs without the internal breakdown
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.EstimateRequest true "Job inputs"
// @Success 200 {object} domain.EstimatePreviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.ErrorResponse
// @Router /estimates/preview [post]
func (h *EstimateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	preview, err := h.estimateService.Preview(r.Context(), req)
	if err != nil {
		h.handleEstimateError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

// Calculate godoc
// @Summary Calculate full estimate
// @Description Runs the cost calculator and returns the full breakdown, line items and range
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.EstimateRequest true "Job inputs"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates [post]
func (h *EstimateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	estimate, err := h.estimateService.Calculate(r.Context(), req)
	if err != nil {
		h.handleEstimateError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// Presets godoc
// @Summary List estimate presets
// @Description Returns the named input presets for common jobs
// @Tags Estimates
// @Produce json
// @Success 200 {array} domain.PresetDTO
// @Router /estimates/presets [get]
func (h *EstimateHandler) Presets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.estimateService.Presets(r.Context()))
}

func (h *EstimateHandler) decode(w http.ResponseWriter, r *http.Request) (*domain.EstimateRequest, bool) {
	var req domain.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return nil, false
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return nil, false
	}

	return &req, true
}

func (h *EstimateHandler) handleEstimateError(w http.ResponseWriter, err error) {
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		respondCostInputError(w, verr)
		return
	}

	h.logger.Error("failed to calculate estimate", zap.Error(err))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
