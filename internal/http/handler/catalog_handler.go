package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/service"
)

// CatalogHandler handles HTTP requests for the service catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List godoc
// @Summary List services
// @Description Returns all active catalog services in display order
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.ServiceDTO
// @Failure 500 {object} domain.ErrorResponse
// @Router /services [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListServices(r.Context())
	if err != nil {
		h.handleCatalogError(w, err, "failed to list services")
		return
	}

	respondJSON(w, http.StatusOK, services)
}

// GetByID godoc
// @Summary Get service
// @Description Returns a specific catalog service
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse "Invalid ID"
// @Failure 404 {object} domain.ErrorResponse "Service not found"
// @Failure 500 {object} domain.ErrorResponse
// @Router /services/{id} [get]
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), id)
	if err != nil {
		h.handleCatalogError(w, err, "failed to get service")
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// AllowedProjectTypes godoc
// @Summary Get allowed project types
// @Description Returns the project types a service accepts on quote submissions
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {array} string
// @Failure 400 {object} domain.ErrorResponse "Invalid ID"
// @Failure 404 {object} domain.ErrorResponse "Service not found"
// @Failure 500 {object} domain.ErrorResponse
// @Router /services/{id}/project-types [get]
func (h *CatalogHandler) AllowedProjectTypes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service ID")
		return
	}

	types, err := h.catalogService.GetAllowedProjectTypes(r.Context(), id)
	if err != nil {
		h.handleCatalogError(w, err, "failed to get allowed project types")
		return
	}

	respondJSON(w, http.StatusOK, types)
}

// Create godoc
// @Summary Create service
// @Description Adds a new service to the catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceRequest true "Service data"
// @Success 201 {object} domain.ServiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /services [post]
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	svc, err := h.catalogService.CreateService(r.Context(), &req)
	if err != nil {
		h.handleCatalogError(w, err, "failed to create service")
		return
	}

	w.Header().Set("Location", "/api/v1/services/"+svc.ID.String())
	respondJSON(w, http.StatusCreated, svc)
}

// handleCatalogError maps service errors to HTTP responses
func (h *CatalogHandler) handleCatalogError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		respondWithError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
