package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-whisper/internal/app/api"
)

var settingsEnv = []string{
	"A2T_API_KEY", "OPENAI_API_KEY", "A2T_BASE_URL", "A2T_MODEL", "A2T_AUTH_SCHEME",
	"A2T_API_KEY_HEADER", "A2T_STRICT_FORMAT_CHECK", "A2T_BACKEND", "A2T_CATALOG_FILE",
	"A2T_HOST", "A2T_PORT", "A2T_ENV", "A2T_MAX_UPLOAD_MB", "A2T_EXPORT_DIR", "A2T_EXPORT_SINK",
	"MINIO_ENDPOINT", "MINIO_USE_SSL", "MINIO_BUCKET",
}

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsEnv {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Empty(t, s.APIKey)
	assert.Equal(t, "http://localhost:4000", s.BaseURL)
	assert.Equal(t, "whisper-1", s.Model)
	assert.Equal(t, api.AuthBearer, s.AuthScheme)
	assert.Equal(t, "http", s.Backend)
	assert.False(t, s.StrictFormatCheck)
	assert.Equal(t, "0.0.0.0:8080", s.Addr())
	assert.Equal(t, int64(100<<20), s.MaxUploadBytes())
	assert.False(t, s.Development())
	assert.Equal(t, DefaultBucket, s.Minio.Bucket)
	assert.Equal(t, SinkDir, s.ExportSink)
}

func TestLoadOverrides(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("A2T_BASE_URL", "https://proxy.example.com")
	t.Setenv("A2T_AUTH_SCHEME", "api-key")
	t.Setenv("A2T_API_KEY_HEADER", "api-key")
	t.Setenv("A2T_STRICT_FORMAT_CHECK", "true")
	t.Setenv("A2T_ENV", "development")
	t.Setenv("A2T_PORT", "9090")
	t.Setenv("MINIO_USE_SSL", "1")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-fallback", s.APIKey)
	assert.Equal(t, "https://proxy.example.com", s.BaseURL)
	assert.Equal(t, api.Auth{Scheme: api.AuthAPIKey, Header: "api-key"}, s.Auth())
	assert.True(t, s.StrictFormatCheck)
	assert.True(t, s.Development())
	assert.True(t, s.Minio.UseSSL)
	assert.Equal(t, "0.0.0.0:9090", s.Addr())

	t.Setenv("A2T_API_KEY", "sk-primary")
	s, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-primary", s.APIKey)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name          string
		key, value    string
		errorContains string
	}{
		{name: "bad url", key: "A2T_BASE_URL", value: "localhost:4000", errorContains: "must start with http"},
		{name: "bad scheme", key: "A2T_AUTH_SCHEME", value: "basic", errorContains: "auth scheme"},
		{name: "bad bool", key: "A2T_STRICT_FORMAT_CHECK", value: "maybe", errorContains: "A2T_STRICT_FORMAT_CHECK"},
		{name: "bad port", key: "A2T_PORT", value: "99999", errorContains: "port invalid"},
		{name: "bad upload limit", key: "A2T_MAX_UPLOAD_MB", value: "0", errorContains: "upload limit"},
		{name: "upload limit too large", key: "A2T_MAX_UPLOAD_MB", value: "4096", errorContains: "out of range (must be between 1 and 2048)"},
		{name: "blank model", key: "A2T_MODEL", value: "  ", errorContains: "model is required"},
		{name: "bad export sink", key: "A2T_EXPORT_SINK", value: "s3", errorContains: "export sink"},
		{name: "non numeric upload limit", key: "A2T_MAX_UPLOAD_MB", value: "lots", errorContains: "integer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearSettingsEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path)

	t.Setenv("A2T_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("A2T_TEST_FROM_DOTENV"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A2T_TEST_FROM_DOTENV=loaded\n"), 0o644))

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "loaded", os.Getenv("A2T_TEST_FROM_DOTENV"))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("8080", "server"))
	assert.Error(t, ValidatePort("", "server"))
	assert.Error(t, ValidatePort("http", "server"))
	assert.Error(t, ValidatePort("0", "server"))
}

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}
