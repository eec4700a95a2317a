//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/config"
)

// InitializeApp wires the transcription backend, session, catalog, metrics
// and batch processor.
func InitializeApp(settings *config.Settings, logger *zap.Logger, observers converter.Observers) (*App, error) {
	wire.Build(ProviderSet)
	return &App{}, nil
}
