package services

import (
	"context"

	"go.uber.org/zap"

	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/session"
)

// BatchServiceImpl starts background runs over the shared session
type BatchServiceImpl struct {
	runCtx    context.Context
	session   *session.Session
	processor *converter.BatchProcessor
	defaults  RunDefaults
	logger    *zap.Logger
}

// NewBatchService creates a batch service. Runs are bound to runCtx rather
// than to the request that started them.
func NewBatchService(runCtx context.Context, s *session.Session, p *converter.BatchProcessor, defaults RunDefaults, logger *zap.Logger) *BatchServiceImpl {
	return &BatchServiceImpl{
		runCtx:    runCtx,
		session:   s,
		processor: p,
		defaults:  defaults,
		logger:    logger,
	}
}

// StartBatch validates preconditions and starts a run in the background
func (s *BatchServiceImpl) StartBatch(ctx context.Context, req *dto.StartBatchRequest) (*dto.BatchStatusResponse, error) {
	opts := converter.RunOptions{
		Model:   firstNonEmpty(req.Model, s.defaults.Model),
		APIKey:  firstNonEmpty(req.APIKey, s.defaults.APIKey),
		BaseURL: firstNonEmpty(req.BaseURL, s.defaults.BaseURL),
	}

	pending := s.session.Counts().Pending
	if err := s.processor.Start(s.runCtx, s.session, opts); err != nil {
		return nil, err
	}

	s.logger.Info("batch started",
		zap.String("model", opts.Model),
		zap.String("base_url", opts.BaseURL),
		zap.Int("pending", pending),
	)
	return s.GetStatus(ctx)
}

// GetStatus reports whether a run is active and the last summary
func (s *BatchServiceImpl) GetStatus(ctx context.Context) (*dto.BatchStatusResponse, error) {
	resp := &dto.BatchStatusResponse{
		Running: s.processor.Running(),
		Counts:  s.session.Counts(),
	}
	if summary, ok := s.processor.LastSummary(); ok {
		resp.LastSummary = &summary
	}
	return resp, nil
}
