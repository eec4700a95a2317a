package whisper

import (
	"batch-whisper/internal/app/api"
)

// BackendName is the registry key of the SDK backend.
const BackendName = "openai"

func init() {
	api.RegisterBackend(BackendName, createOpenAIBackend)
}

func createOpenAIBackend(cfg api.BackendConfig) (api.Transcriber, error) {
	return NewRemoteTranscriber(cfg.Auth, cfg.HTTPClient), nil
}
