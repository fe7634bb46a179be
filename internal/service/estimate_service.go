package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/mapper"
	"github.com/desertbloom-landscaping/backoffice-api/internal/pricing"
)

// EstimateService exposes the cost calculator to the API layer
type EstimateService struct {
	logger *zap.Logger
}

func NewEstimateService(logger *zap.Logger) *EstimateService {
	return &EstimateService{logger: logger}
}

// Calculate runs the full calculator and returns the breakdown, line items
// and the derived quote range.
func (s *EstimateService) Calculate(ctx context.Context, req *domain.EstimateRequest) (*domain.EstimateDTO, error) {
	inputs := req.Inputs()

	estimate, err := pricing.Calculate(inputs)
	if err != nil {
		return nil, err
	}

	minCents, maxCents, err := pricing.QuoteRange(inputs)
	if err != nil {
		return nil, err
	}

	dto := mapper.ToEstimateDTO(estimate, minCents, maxCents)
	return &dto, nil
}

// Preview returns only the public price range for a set of inputs
func (s *EstimateService) Preview(ctx context.Context, req *domain.EstimateRequest) (*domain.EstimatePreviewDTO, error) {
	minCents, maxCents, err := pricing.QuoteRange(req.Inputs())
	if err != nil {
		return nil, err
	}

	return &domain.EstimatePreviewDTO{MinCents: minCents, MaxCents: maxCents}, nil
}

// Presets returns the named estimate presets
func (s *EstimateService) Presets(ctx context.Context) []domain.PresetDTO {
	presets := pricing.Presets()
	dtos := make([]domain.PresetDTO, len(presets))
	for i, p := range presets {
		dtos[i] = mapper.ToPresetDTO(p)
	}
	return dtos
}
