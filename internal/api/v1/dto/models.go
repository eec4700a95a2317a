package dto

import (
	"batch-whisper/internal/api/errors"
	"batch-whisper/internal/app/model"
)

// ListModelsResponse is the active model catalog
type ListModelsResponse struct {
	Models     []model.ModelDescriptor `json:"models"`
	Default    string                  `json:"default"`
	Discovered bool                    `json:"discovered"`
}

// DiscoverModelsRequest overrides the configured credentials for discovery
type DiscoverModelsRequest struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" binding:"omitempty,url"`
}

// DiscoverModelsResponse reports the outcome of a discovery call
type DiscoverModelsResponse struct {
	Found   int                `json:"found"`
	Catalog ListModelsResponse `json:"catalog"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ErrorResponse documents the error body for swagger
type ErrorResponse = errors.APIError
