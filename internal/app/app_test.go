package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/api/litellm"
	"batch-whisper/internal/app/api/openai/whisper"
	"batch-whisper/internal/app/catalog"
	"batch-whisper/internal/app/storage"
	"batch-whisper/internal/config"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{
		APIKey:      "sk-test",
		BaseURL:     config.DefaultBaseURL,
		Model:       catalog.DefaultModel,
		AuthScheme:  api.AuthBearer,
		Backend:     litellm.BackendName,
		Host:        "127.0.0.1",
		Port:        "0",
		Environment: "test",
		MaxUploadMB: 1,
		ExportSink:  config.SinkDir,
		ExportDir:   t.TempDir(),
	}
}

func TestInitializeApp(t *testing.T) {
	for _, backend := range []string{litellm.BackendName, whisper.BackendName} {
		t.Run(backend, func(t *testing.T) {
			settings := testSettings(t)
			settings.Backend = backend
			settings.StrictFormatCheck = true

			a, err := InitializeApp(settings, zap.NewNop(), nil)
			require.NoError(t, err)
			assert.NotNil(t, a.Processor)
			assert.True(t, a.Session.StrictFormatCheck())
			assert.Len(t, a.Catalog.Models(), len(catalog.Defaults()))
		})
	}
}

func TestInitializeApp_Errors(t *testing.T) {
	settings := testSettings(t)
	settings.Backend = "carrier-pigeon"
	_, err := InitializeApp(settings, zap.NewNop(), nil)
	assert.Error(t, err)

	settings = testSettings(t)
	settings.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = InitializeApp(settings, zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestInitializeApp_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  - identifier: whisper-large-v3\n    provider: Groq\n"), 0o644))

	settings := testSettings(t)
	settings.CatalogFile = path
	a, err := InitializeApp(settings, zap.NewNop(), nil)
	require.NoError(t, err)

	models := a.Catalog.Models()
	require.Len(t, models, 1)
	assert.Equal(t, "whisper-large-v3", models[0].Identifier)
}

func TestNewArtifactWriter_Dir(t *testing.T) {
	settings := testSettings(t)
	w, err := NewArtifactWriter(context.Background(), settings)
	require.NoError(t, err)
	assert.IsType(t, &storage.DirWriter{}, w)
}

func TestNewAPIServer(t *testing.T) {
	settings := testSettings(t)
	a, err := InitializeApp(settings, zap.NewNop(), nil)
	require.NoError(t, err)

	srv := NewAPIServer(context.Background(), a, nil)

	for _, path := range []string{"/health", "/metrics", "/api/v1/models", "/api/v1/files"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
