package services

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"batch-whisper/internal/api/errors"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/session"
)

// FileServiceImpl implements FileService on top of a session
type FileServiceImpl struct {
	session *session.Session
	gauge   SessionGauge
	logger  *zap.Logger
}

// NewFileService creates a file service. gauge may be nil.
func NewFileService(s *session.Session, gauge SessionGauge, logger *zap.Logger) *FileServiceImpl {
	return &FileServiceImpl{session: s, gauge: gauge, logger: logger}
}

// AdmitFiles enqueues uploaded files
func (s *FileServiceImpl) AdmitFiles(ctx context.Context, source model.Source, files []model.AudioFile) (*dto.AdmitFilesResponse, error) {
	if len(files) == 0 {
		return nil, errors.NewValidationError("No files uploaded", map[string]string{"files": "is required"})
	}

	result := s.session.Admit(source, files)
	s.observe()

	s.logger.Info("files admitted",
		zap.String("source", string(source)),
		zap.Int("admitted", len(result.Admitted)),
		zap.Int("dropped", result.Dropped),
	)

	return &dto.AdmitFilesResponse{
		Admitted: lo.Map(result.Admitted, func(e model.FileEntry, _ int) dto.FileEntryResponse {
			return dto.NewFileEntryResponse(e)
		}),
		Dropped: result.Dropped,
		Total:   s.session.Len(),
	}, nil
}

// ListFiles returns every entry with its status
func (s *FileServiceImpl) ListFiles(ctx context.Context) (*dto.ListFilesResponse, error) {
	entries := s.session.Entries()
	return &dto.ListFilesResponse{
		Files: lo.Map(entries, func(e model.FileEntry, _ int) dto.FileEntryResponse {
			return dto.NewFileEntryResponse(e)
		}),
		Counts: s.session.Counts(),
	}, nil
}

// GetFile returns one entry
func (s *FileServiceImpl) GetFile(ctx context.Context, id string) (*dto.FileEntryResponse, error) {
	entry, ok := s.session.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("File entry")
	}
	resp := dto.NewFileEntryResponse(entry)
	return &resp, nil
}

// RemoveFile deletes an entry and its result. Unknown ids are not an error.
func (s *FileServiceImpl) RemoveFile(ctx context.Context, id string) error {
	if s.session.Remove(id) {
		s.logger.Info("file removed", zap.String("id", id))
		s.observe()
	}
	return nil
}

func (s *FileServiceImpl) observe() {
	if s.gauge != nil {
		s.gauge.SetSessionFiles(s.session.Len())
	}
}
