package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batch-whisper/cmd/a2t/cmd/flags"
	"batch-whisper/internal/app"
	"batch-whisper/internal/app/logging"
)

const shutdownTimeout = 30 * time.Second

// Cmd represents the serve command
var Cmd = NewCommand()

// NewCommand builds a serve command with its own flag state
func NewCommand() *cobra.Command {
	var conn flags.Connection
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API

- Files are uploaded to /api/v1/files and processed with POST /api/v1/batch
- Swagger UI is served at /swagger/index.html and metrics at /metrics
- The session lives in memory and is lost on exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := conn.LoadSettings()
			if err != nil {
				return err
			}
			if host != "" {
				settings.Host = host
			}
			if port != "" {
				settings.Port = port
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewLogger(settings.Development())
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.InitializeApp(settings, logger, nil)
			if err != nil {
				return err
			}

			sink, err := app.NewArtifactWriter(ctx, settings)
			if err != nil {
				logger.Warn("export storage unavailable, stored exports disabled",
					zap.String("sink", settings.ExportSink), zap.Error(err))
			}

			srv := app.NewAPIServer(ctx, a, sink)
			if err := srv.Start(); err != nil {
				return err
			}

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			err = srv.Shutdown(shutdownCtx)
			a.Processor.Wait()
			return err
		},
	}

	conn.Register(cmd)
	cmd.Flags().StringVar(&host, "host", "", "listen host (default $A2T_HOST or 0.0.0.0)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $A2T_PORT or 8080)")
	return cmd
}
