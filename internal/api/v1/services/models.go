package services

import (
	"context"

	"go.uber.org/zap"

	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/catalog"
)

// ModelServiceImpl exposes the model catalog
type ModelServiceImpl struct {
	catalog  *catalog.Catalog
	defaults RunDefaults
	logger   *zap.Logger
}

// NewModelService creates a model service
func NewModelService(c *catalog.Catalog, defaults RunDefaults, logger *zap.Logger) *ModelServiceImpl {
	return &ModelServiceImpl{catalog: c, defaults: defaults, logger: logger}
}

// ListModels returns the active catalog
func (s *ModelServiceImpl) ListModels(ctx context.Context) (*dto.ListModelsResponse, error) {
	return &dto.ListModelsResponse{
		Models:     s.catalog.Models(),
		Default:    firstNonEmpty(s.defaults.Model, catalog.DefaultModel),
		Discovered: s.catalog.Discovered(),
	}, nil
}

// DiscoverModels refreshes the catalog from the remote endpoint
func (s *ModelServiceImpl) DiscoverModels(ctx context.Context, req *dto.DiscoverModelsRequest) (*dto.DiscoverModelsResponse, error) {
	found, err := s.catalog.Discover(ctx,
		firstNonEmpty(req.APIKey, s.defaults.APIKey),
		firstNonEmpty(req.BaseURL, s.defaults.BaseURL),
	)
	if err != nil {
		s.logger.Warn("model discovery failed", zap.Error(err))
		return nil, err
	}

	list, _ := s.ListModels(ctx)
	return &dto.DiscoverModelsResponse{Found: len(found), Catalog: *list}, nil
}
