package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/app/converter/export"
	"batch-whisper/internal/app/model"
)

// MockServices contains all mock services for testing
type MockServices struct {
	FileService   *MockFileService
	BatchService  *MockBatchService
	ResultService *MockResultService
	ModelService  *MockModelService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		FileService:   NewMockFileService(t),
		BatchService:  NewMockBatchService(t),
		ResultService: NewMockResultService(t),
		ModelService:  NewMockModelService(t),
	}
}

// AssertExpectations checks every mock
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.FileService.AssertExpectations(t)
	ms.BatchService.AssertExpectations(t)
	ms.ResultService.AssertExpectations(t)
	ms.ModelService.AssertExpectations(t)
}

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

func NewMockFileService(t *testing.T) *MockFileService {
	m := &MockFileService{}
	m.Test(t)
	return m
}

func (m *MockFileService) AdmitFiles(ctx context.Context, source model.Source, files []model.AudioFile) (*dto.AdmitFilesResponse, error) {
	args := m.Called(ctx, source, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdmitFilesResponse), args.Error(1)
}

func (m *MockFileService) ListFiles(ctx context.Context) (*dto.ListFilesResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListFilesResponse), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, id string) (*dto.FileEntryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FileEntryResponse), args.Error(1)
}

func (m *MockFileService) RemoveFile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBatchService is a mock implementation of BatchService
type MockBatchService struct {
	mock.Mock
}

func NewMockBatchService(t *testing.T) *MockBatchService {
	m := &MockBatchService{}
	m.Test(t)
	return m
}

func (m *MockBatchService) StartBatch(ctx context.Context, req *dto.StartBatchRequest) (*dto.BatchStatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchStatusResponse), args.Error(1)
}

func (m *MockBatchService) GetStatus(ctx context.Context) (*dto.BatchStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchStatusResponse), args.Error(1)
}

// MockResultService is a mock implementation of ResultService
type MockResultService struct {
	mock.Mock
}

func NewMockResultService(t *testing.T) *MockResultService {
	m := &MockResultService{}
	m.Test(t)
	return m
}

func (m *MockResultService) ListResults(ctx context.Context) (*dto.ListResultsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResultsResponse), args.Error(1)
}

func (m *MockResultService) ExportResult(ctx context.Context, id string) (*export.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Artifact), args.Error(1)
}

func (m *MockResultService) ExportAll(ctx context.Context, format export.Format) (*export.Artifact, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Artifact), args.Error(1)
}

func (m *MockResultService) StoreAll(ctx context.Context, format export.Format) (*dto.StoredExportResponse, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoredExportResponse), args.Error(1)
}

// MockModelService is a mock implementation of ModelService
type MockModelService struct {
	mock.Mock
}

func NewMockModelService(t *testing.T) *MockModelService {
	m := &MockModelService{}
	m.Test(t)
	return m
}

func (m *MockModelService) ListModels(ctx context.Context) (*dto.ListModelsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListModelsResponse), args.Error(1)
}

func (m *MockModelService) DiscoverModels(ctx context.Context, req *dto.DiscoverModelsRequest) (*dto.DiscoverModelsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DiscoverModelsResponse), args.Error(1)
}
