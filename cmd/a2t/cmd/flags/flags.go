// Package flags holds the connection flags shared by a2t commands.
package flags

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/logging"
	"batch-whisper/internal/config"
)

// Connection carries flag overrides for the endpoint settings. Empty values
// keep what the environment provides.
type Connection struct {
	Model      string
	APIKey     string
	BaseURL    string
	AuthScheme string
	Backend    string
}

// Register adds the connection flags to cmd
func (c *Connection) Register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&c.Model, "model", "m", "", "model identifier (default $A2T_MODEL or whisper-1)")
	f.StringVarP(&c.APIKey, "api-key", "k", "", "API key (default $A2T_API_KEY)")
	f.StringVarP(&c.BaseURL, "base-url", "u", "", "endpoint base URL (default $A2T_BASE_URL or http://localhost:4000)")
	f.StringVar(&c.AuthScheme, "auth-scheme", "", "credential scheme: bearer or api-key")
	f.StringVar(&c.Backend, "backend", "", "transcription backend: http or openai")
}

// LoadSettings reads .env and A2T_* variables, then applies the flags
func (c *Connection) LoadSettings() (*config.Settings, error) {
	if _, err := config.LoadEnv(); err != nil {
		return nil, err
	}
	s, err := config.Load()
	if err != nil {
		return nil, err
	}

	if c.Model != "" {
		s.Model = c.Model
	}
	if c.APIKey != "" {
		s.APIKey = c.APIKey
	}
	if c.BaseURL != "" {
		s.BaseURL = c.BaseURL
	}
	if c.Backend != "" {
		s.Backend = c.Backend
	}
	if c.AuthScheme != "" {
		if s.AuthScheme, err = api.ParseAuthScheme(c.AuthScheme); err != nil {
			return nil, err
		}
	}
	return s, s.Validate()
}

// Logger builds the CLI logger honoring the root --verbose flag
func Logger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.NewCLILogger(verbose)
}
