package app

import (
	"context"
	"net/http"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"batch-whisper/internal/api/server"
	v1routes "batch-whisper/internal/api/v1/routes"
	"batch-whisper/internal/api/v1/services"
	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/catalog"
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/metrics"
	"batch-whisper/internal/app/session"
	"batch-whisper/internal/app/storage"
	"batch-whisper/internal/config"
)

// uploadTimeout bounds one transcription request including the upload.
const uploadTimeout = 10 * time.Minute

// App bundles the long-lived components shared by the CLI and the API server.
type App struct {
	Settings  *config.Settings
	Logger    *zap.Logger
	Session   *session.Session
	Catalog   *catalog.Catalog
	Processor *converter.BatchProcessor
	Metrics   *metrics.Collector
}

// ProviderSet builds an App from settings, a logger and extra batch observers.
var ProviderSet = wire.NewSet(
	provideHTTPClient,
	provideTranscriber,
	provideSession,
	provideCatalog,
	metrics.New,
	provideProcessor,
	wire.Struct(new(App), "*"),
)

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: uploadTimeout}
}

// provideTranscriber resolves the configured backend from the registry
func provideTranscriber(settings *config.Settings, hc *http.Client) (api.Transcriber, error) {
	return api.NewBackend(settings.Backend, api.BackendConfig{
		Auth:       settings.Auth(),
		HTTPClient: hc,
	})
}

func provideSession(settings *config.Settings) *session.Session {
	return session.New(session.WithStrictFormatCheck(settings.StrictFormatCheck))
}

// provideCatalog seeds the catalog from A2T_CATALOG_FILE when set
func provideCatalog(settings *config.Settings, hc *http.Client, logger *zap.Logger) (*catalog.Catalog, error) {
	opts := []catalog.Option{
		catalog.WithAuth(settings.Auth()),
		catalog.WithHTTPClient(hc),
	}
	if settings.CatalogFile != "" {
		models, err := catalog.LoadFile(settings.CatalogFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, catalog.WithModels(models))
	}
	return catalog.New(logger, opts...), nil
}

func provideProcessor(t api.Transcriber, logger *zap.Logger, collector *metrics.Collector, observers converter.Observers) *converter.BatchProcessor {
	all := append(converter.Observers{collector}, observers...)
	return converter.NewBatchProcessor(t, logger, all...)
}

// NewArtifactWriter returns the export sink selected by A2T_EXPORT_SINK.
func NewArtifactWriter(ctx context.Context, settings *config.Settings) (storage.ArtifactWriter, error) {
	if settings.ExportSink == config.SinkMinio {
		w, err := storage.NewMinioWriter(ctx, settings.Minio)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	w, err := storage.NewDirWriter(settings.ExportDir)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// NewAPIServer exposes a over HTTP. Batch runs started through the API are
// bound to runCtx. sink may be nil.
func NewAPIServer(runCtx context.Context, a *App, sink storage.ArtifactWriter) *server.Server {
	defaults := services.RunDefaults{
		APIKey:  a.Settings.APIKey,
		BaseURL: a.Settings.BaseURL,
		Model:   a.Settings.Model,
	}

	container := &v1routes.ServiceContainer{
		FileService:    services.NewFileService(a.Session, a.Metrics, a.Logger),
		BatchService:   services.NewBatchService(runCtx, a.Session, a.Processor, defaults, a.Logger),
		ResultService:  services.NewResultService(a.Session, sink, a.Logger),
		ModelService:   services.NewModelService(a.Catalog, defaults, a.Logger),
		MaxUploadBytes: a.Settings.MaxUploadBytes(),
	}

	cfg := server.DefaultConfig(a.Settings.Host, a.Settings.Port, a.Settings.Environment)
	return server.NewServer(cfg, container, a.Metrics.Handler(), a.Logger)
}
