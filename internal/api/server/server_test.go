package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"batch-whisper/internal/api/v1/dto"
	v1routes "batch-whisper/internal/api/v1/routes"
	"batch-whisper/internal/api/v1/services"
	"batch-whisper/internal/app/catalog"
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/metrics"
	"batch-whisper/internal/app/session"
	"batch-whisper/internal/app/testutil"
)

type fixture struct {
	server    *Server
	processor *converter.BatchProcessor
	mock      *testutil.MockTranscriber
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	collector := metrics.New()
	s := session.New()
	mock := testutil.NewMockTranscriber().SetResponseForFile("b.wav", "second transcript")
	processor := converter.NewBatchProcessor(mock, logger, collector)
	defaults := services.RunDefaults{APIKey: "sk-test", BaseURL: "http://localhost:4000"}

	container := &v1routes.ServiceContainer{
		FileService:    services.NewFileService(s, collector, logger),
		BatchService:   services.NewBatchService(context.Background(), s, processor, defaults, logger),
		ResultService:  services.NewResultService(s, nil, logger),
		ModelService:   services.NewModelService(catalog.New(logger), defaults, logger),
		MaxUploadBytes: 1 << 20,
	}
	srv := NewServer(DefaultConfig("127.0.0.1", "0", "test"), container, collector.Handler(), logger)
	return &fixture{server: srv, processor: processor, mock: mock}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndRoot(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/files")
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/files", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := f.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestUploadRunExportFlow(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"a.mp3", "readme.md", "b.wav"} {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("audio bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("source", "dragdrop"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var admitted dto.AdmitFilesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admitted))
	assert.Len(t, admitted.Admitted, 2)
	assert.Equal(t, 1, admitted.Dropped)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/batch", strings.NewReader(`{"model":"whisper-1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = f.do(req)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	f.processor.Wait()

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/v1/batch", nil))
	var status dto.BatchStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.Counts.Completed)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"=== a.mp3 ===\nMock transcription result for file: a.mp3\n\n=== b.wav ===\nsecond transcript\n\n",
		rec.Body.String())

	rec = f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `a2t_files_processed_total{outcome="completed"} 2`)
	assert.Contains(t, rec.Body.String(), "a2t_session_files 2")
}

func TestStartAndShutdown(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.server.Start())
	resp, err := http.Get("http://" + f.server.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, f.server.Shutdown(context.Background()))
}
