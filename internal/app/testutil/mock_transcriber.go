package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"batch-whisper/internal/app/api"
)

// MockTranscriber is a configurable api.Transcriber for tests. Behavior is
// keyed by file name; testify expectations take precedence when set.
type MockTranscriber struct {
	mock.Mock
	mu sync.RWMutex

	// Configuration options
	DefaultLatency  time.Duration
	DefaultError    error
	DefaultResponse string
	UseExpectations bool

	// State tracking
	CallCount   int
	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string

	// BeforeReturn runs after the call is recorded and before the result is
	// returned, without the mock's lock held.
	BeforeReturn func(req api.Request)
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	FileName  string
	Model     string
	APIKey    string
	BaseURL   string
	Timestamp time.Time
	Response  string
	Error     error
}

// NewMockTranscriber creates a new MockTranscriber with sensible defaults
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ErrorMap:    make(map[string]error),
		ResponseMap: make(map[string]string),
		CallHistory: make([]TranscriptionCall, 0),
	}
}

// Transcribe implements the api.Transcriber interface
func (m *MockTranscriber) Transcribe(ctx context.Context, req api.Request) (string, error) {
	m.mu.Lock()
	m.CallCount++
	latency := m.DefaultLatency
	response, err := m.resolve(req)
	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		FileName:  req.File.Name,
		Model:     req.Model,
		APIKey:    req.APIKey,
		BaseURL:   req.BaseURL,
		Timestamp: time.Now(),
		Response:  response,
		Error:     err,
	})
	hook := m.BeforeReturn
	useExpectations := m.UseExpectations
	m.mu.Unlock()

	if req.OnProgress != nil {
		req.OnProgress(req.File.Size/2, req.File.Size)
		req.OnProgress(req.File.Size, req.File.Size)
	}

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if hook != nil {
		hook(req)
	}

	if useExpectations {
		args := m.Called(req.File.Name)
		return args.String(0), args.Error(1)
	}
	return response, err
}

// must be called with the lock held
func (m *MockTranscriber) resolve(req api.Request) (string, error) {
	if err, exists := m.ErrorMap[req.File.Name]; exists {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if response, exists := m.ResponseMap[req.File.Name]; exists {
		return response, nil
	}
	if m.DefaultResponse != "" {
		return m.DefaultResponse, nil
	}
	return fmt.Sprintf("Mock transcription result for file: %s", req.File.Name), nil
}

// Configuration Methods

// WithDefaultLatency sets the default processing latency
func (m *MockTranscriber) WithDefaultLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = latency
	return m
}

// WithDefaultError sets the default error to return
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithDefaultResponse sets the default response text
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// WithBeforeReturn installs a hook that runs while a call is in flight.
func (m *MockTranscriber) WithBeforeReturn(hook func(req api.Request)) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BeforeReturn = hook
	return m
}

// SetErrorForFile sets a specific error for a given file name
func (m *MockTranscriber) SetErrorForFile(name string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[name] = err
	return m
}

// SetResponseForFile sets a specific response for a given file name
func (m *MockTranscriber) SetResponseForFile(name string, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[name] = response
	return m
}

// State Inspection Methods

// GetCallCount returns the total number of calls made
func (m *MockTranscriber) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCount
}

// GetCallHistory returns the complete call history
func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}

// CalledFiles returns the file names in call order
func (m *MockTranscriber) CalledFiles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.CallHistory))
	for i, call := range m.CallHistory {
		names[i] = call.FileName
	}
	return names
}

// ExpectTranscribeCall sets up an expectation for a specific file
func (m *MockTranscriber) ExpectTranscribeCall(name string, response string, err error) *MockTranscriber {
	m.mu.Lock()
	m.UseExpectations = true
	m.mu.Unlock()
	m.On("Transcribe", name).Return(response, err)
	return m
}

// Interface compliance check
var _ api.Transcriber = (*MockTranscriber)(nil)
