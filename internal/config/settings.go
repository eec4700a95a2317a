package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/api/litellm"
	"batch-whisper/internal/app/catalog"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/storage"
)

const (
	DefaultBaseURL     = "http://localhost:4000"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = "8080"
	DefaultMaxUploadMB = 100
	DefaultExportDir   = "./transcriptions"
	DefaultBucket      = "a2t-transcriptions"

	SinkDir   = "dir"
	SinkMinio = "minio"
)

// Settings is the runtime configuration assembled from the environment.
// Command-line flags override individual fields after Load.
type Settings struct {
	APIKey       string
	BaseURL      string
	Model        string
	AuthScheme   api.AuthScheme
	APIKeyHeader string
	Backend      string

	StrictFormatCheck bool
	CatalogFile       string

	Host        string
	Port        string
	Environment string
	MaxUploadMB int

	ExportSink string
	ExportDir  string
	Minio      storage.MinioConfig
}

// Load reads A2T_* variables (and the MINIO_* bucket settings) with defaults
// and validates the result. Call LoadEnv first to pick up .env files.
func Load() (*Settings, error) {
	s := &Settings{
		APIKey:       strings.TrimSpace(getEnvOrDefault("A2T_API_KEY", getEnvOrDefault("OPENAI_API_KEY", ""))),
		BaseURL:      getEnvOrDefault("A2T_BASE_URL", DefaultBaseURL),
		Model:        getEnvOrDefault("A2T_MODEL", catalog.DefaultModel),
		APIKeyHeader: getEnvOrDefault("A2T_API_KEY_HEADER", api.DefaultAPIKeyHeader),
		Backend:      getEnvOrDefault("A2T_BACKEND", litellm.BackendName),
		CatalogFile:  getEnvOrDefault("A2T_CATALOG_FILE", ""),
		Host:         getEnvOrDefault("A2T_HOST", DefaultHost),
		Port:         getEnvOrDefault("A2T_PORT", DefaultPort),
		Environment:  getEnvOrDefault("A2T_ENV", "production"),
		ExportSink:   strings.ToLower(getEnvOrDefault("A2T_EXPORT_SINK", SinkDir)),
		ExportDir:    getEnvOrDefault("A2T_EXPORT_DIR", DefaultExportDir),
		Minio: storage.MinioConfig{
			Endpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnvOrDefault("MINIO_BUCKET", DefaultBucket),
			Prefix:    getEnvOrDefault("MINIO_PREFIX", "exports"),
		},
	}

	var err error
	if s.AuthScheme, err = api.ParseAuthScheme(getEnvOrDefault("A2T_AUTH_SCHEME", string(api.AuthBearer))); err != nil {
		return nil, err
	}
	if s.StrictFormatCheck, err = parseBool("A2T_STRICT_FORMAT_CHECK", false); err != nil {
		return nil, err
	}
	if s.Minio.UseSSL, err = parseBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if s.MaxUploadMB, err = parseInt("A2T_MAX_UPLOAD_MB", DefaultMaxUploadMB); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the fields that have a fixed shape. The API key is not
// required here since it may be supplied per run.
func (s *Settings) Validate() error {
	if err := ValidateURL(s.BaseURL, "base"); err != nil {
		return err
	}
	if _, err := api.ParseAuthScheme(string(s.AuthScheme)); err != nil {
		return err
	}
	if s.AuthScheme == api.AuthAPIKey && strings.TrimSpace(s.APIKeyHeader) == "" {
		return fmt.Errorf("API key header name is required for the api-key auth scheme")
	}
	if err := ValidatePort(s.Port, "server"); err != nil {
		return err
	}
	if err := ValidateUploadLimit(s.MaxUploadMB); err != nil {
		return err
	}
	if s.ExportSink != SinkDir && s.ExportSink != SinkMinio {
		return fmt.Errorf("invalid export sink %q: must be %s or %s", s.ExportSink, SinkDir, SinkMinio)
	}
	if strings.TrimSpace(s.Model) == "" {
		return apperrors.RequiredField("model")
	}
	return nil
}

// Development reports whether A2T_ENV selects development mode.
func (s *Settings) Development() bool {
	return strings.EqualFold(s.Environment, "development") || strings.EqualFold(s.Environment, "dev")
}

// Auth returns the credential scheme for outbound calls.
func (s *Settings) Auth() api.Auth {
	return api.Auth{Scheme: s.AuthScheme, Header: s.APIKeyHeader}
}

// Addr is the listen address of the API server.
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// MaxUploadBytes is the request body limit for file uploads.
func (s *Settings) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

func parseBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getEnvOrDefault(key, ""))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: must be true or false", key, raw)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(getEnvOrDefault(key, ""))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: must be an integer", key, raw)
	}
	return v, nil
}
