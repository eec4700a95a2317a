package litellm

import (
	"batch-whisper/internal/app/api"
)

// BackendName is the registry key of the plain HTTP client.
const BackendName = "http"

func init() {
	api.RegisterBackend(BackendName, createBackend)
}

func createBackend(cfg api.BackendConfig) (api.Transcriber, error) {
	return NewClient(WithAuth(cfg.Auth), WithHTTPClient(cfg.HTTPClient)), nil
}
