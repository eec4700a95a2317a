package services

import (
	"context"

	"go.uber.org/zap"

	"batch-whisper/internal/api/errors"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/converter/export"
	"batch-whisper/internal/app/session"
	"batch-whisper/internal/app/storage"
)

// ResultServiceImpl serves transcripts and exports
type ResultServiceImpl struct {
	session *session.Session
	sink    storage.ArtifactWriter
	logger  *zap.Logger
}

// NewResultService creates a result service. sink may be nil, in which case
// StoreAll is unavailable.
func NewResultService(s *session.Session, sink storage.ArtifactWriter, logger *zap.Logger) *ResultServiceImpl {
	return &ResultServiceImpl{session: s, sink: sink, logger: logger}
}

// ListResults returns the result store in completion order
func (s *ResultServiceImpl) ListResults(ctx context.Context) (*dto.ListResultsResponse, error) {
	results := s.session.Results()
	return &dto.ListResultsResponse{Results: results, Total: len(results)}, nil
}

// ExportResult renders one transcript as a text attachment
func (s *ResultServiceImpl) ExportResult(ctx context.Context, id string) (*export.Artifact, error) {
	result, ok := s.session.Result(id)
	if !ok {
		return nil, errors.NewNotFoundError("Result")
	}
	artifact := export.ExportOne(result.FileName, result.Transcription)
	return &artifact, nil
}

// ExportAll renders every transcript in the requested format
func (s *ResultServiceImpl) ExportAll(ctx context.Context, format export.Format) (*export.Artifact, error) {
	artifact, err := export.ExportAllAs(s.session.Results(), format)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// StoreAll writes the bulk export to the configured sink
func (s *ResultServiceImpl) StoreAll(ctx context.Context, format export.Format) (*dto.StoredExportResponse, error) {
	if s.sink == nil {
		return nil, errors.NewServiceUnavailableError("No export storage configured")
	}

	results := s.session.Results()
	artifact, err := export.ExportAllAs(results, format)
	if err != nil {
		return nil, err
	}

	loc, err := s.sink.Write(ctx, artifact)
	if err != nil {
		s.logger.Error("failed to store export", zap.String("name", artifact.Name), zap.Error(err))
		return nil, errors.WrapError(err, errors.KindServiceUnavailable, "Failed to store export")
	}

	s.logger.Info("export stored", zap.String("key", loc.Key), zap.Int("results", len(results)))
	return &dto.StoredExportResponse{Name: artifact.Name, Count: len(results), Location: loc}, nil
}
