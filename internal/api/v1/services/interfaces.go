package services

import (
	"context"

	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/converter/export"
	"batch-whisper/internal/app/model"
)

// FileService defines the interface for queue operations
type FileService interface {
	AdmitFiles(ctx context.Context, source model.Source, files []model.AudioFile) (*dto.AdmitFilesResponse, error)
	ListFiles(ctx context.Context) (*dto.ListFilesResponse, error)
	GetFile(ctx context.Context, id string) (*dto.FileEntryResponse, error)
	RemoveFile(ctx context.Context, id string) error
}

// BatchService defines the interface for batch run operations
type BatchService interface {
	StartBatch(ctx context.Context, req *dto.StartBatchRequest) (*dto.BatchStatusResponse, error)
	GetStatus(ctx context.Context) (*dto.BatchStatusResponse, error)
}

// ResultService defines the interface for transcript retrieval and export
type ResultService interface {
	ListResults(ctx context.Context) (*dto.ListResultsResponse, error)
	ExportResult(ctx context.Context, id string) (*export.Artifact, error)
	ExportAll(ctx context.Context, format export.Format) (*export.Artifact, error)
	StoreAll(ctx context.Context, format export.Format) (*dto.StoredExportResponse, error)
}

// ModelService defines the interface for model catalog operations
type ModelService interface {
	ListModels(ctx context.Context) (*dto.ListModelsResponse, error)
	DiscoverModels(ctx context.Context, req *dto.DiscoverModelsRequest) (*dto.DiscoverModelsResponse, error)
}

// RunDefaults are the configured credentials used when a request leaves them blank
type RunDefaults struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SessionGauge receives the session size after each change
type SessionGauge interface {
	SetSessionFiles(n int)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
