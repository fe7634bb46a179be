package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/mapper"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
)

// CatalogService manages the public list of offered services
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

func NewCatalogService(serviceRepo *repository.ServiceRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, logger: logger}
}

// ListServices returns all active catalog entries in display order
func (s *CatalogService) ListServices(ctx context.Context) ([]domain.ServiceDTO, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	dtos := make([]domain.ServiceDTO, len(services))
	for i := range services {
		dtos[i] = mapper.ToServiceDTO(&services[i])
	}
	return dtos, nil
}

// GetService returns a single catalog entry
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.ServiceDTO, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}

// GetAllowedProjectTypes returns the project types a service accepts
func (s *CatalogService) GetAllowedProjectTypes(ctx context.Context, id uuid.UUID) ([]pricing.ProjectType, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	types := make([]pricing.ProjectType, len(service.AllowedProjectTypes))
	copy(types, service.AllowedProjectTypes)
	return types, nil
}

// CreateService adds a new catalog entry
func (s *CatalogService) CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceDTO, error) {
	allowed := make(domain.ProjectTypeList, 0, len(req.AllowedProjectTypes))
	for _, raw := range req.AllowedProjectTypes {
		pt := pricing.ProjectType(raw)
		if !pt.IsValid() {
			return nil, fmt.Errorf("%w: unknown project type %q", ErrInvalidInput, raw)
		}
		allowed = append(allowed, pt)
	}

	service := &domain.Service{
		Name:                req.Name,
		Description:         req.Description,
		AllowedProjectTypes: allowed,
		DisplayOrder:        req.DisplayOrder,
		IsActive:            true,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.logger.Info("catalog service created",
		zap.String("serviceID", service.ID.String()),
		zap.String("name", service.Name))

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}
