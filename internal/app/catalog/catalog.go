// Package catalog holds the set of transcription models offered to the user:
// a static default list, optionally overridden from YAML, and replaced by the
// remote model listing when discovery finds transcription models.
package catalog

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"batch-whisper/internal/app/api"
	"batch-whisper/internal/app/api/openai/whisper"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
)

// DefaultModel is selected when nothing else is configured.
const DefaultModel = "whisper-1"

var defaults = []model.ModelDescriptor{
	{
		Identifier:  "whisper-1",
		DisplayName: "Whisper-1 (Standard)",
		Description: "OpenAI's standard production Whisper model - best for most use cases",
		Provider:    "OpenAI",
		Speed:       "Fast",
		Accuracy:    "High",
	},
	{
		Identifier:  "whisper-large-v3",
		DisplayName: "Whisper Large v3",
		Description: "Latest and most accurate Whisper model - best for challenging audio",
		Provider:    "OpenAI",
		Speed:       "Slower",
		Accuracy:    "Highest",
	},
	{
		Identifier:  "whisper-large-v2",
		DisplayName: "Whisper Large v2",
		Description: "Previous generation large model - good balance of speed and accuracy",
		Provider:    "OpenAI",
		Speed:       "Medium",
		Accuracy:    "Very High",
	},
	{
		Identifier:  "azure/whisper-1",
		DisplayName: "Azure Whisper",
		Description: "Azure OpenAI Whisper - good for enterprise use cases",
		Provider:    "Azure",
		Speed:       "Fast",
		Accuracy:    "High",
	},
}

// Defaults returns a copy of the built-in catalog.
func Defaults() []model.ModelDescriptor {
	out := make([]model.ModelDescriptor, len(defaults))
	copy(out, defaults)
	return out
}

type catalogFile struct {
	Models []model.ModelDescriptor `yaml:"models"`
}

// LoadFile reads a YAML catalog of the form
//
//	models:
//	  - identifier: whisper-1
//	    display_name: Whisper-1
func LoadFile(path string) ([]model.ModelDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read catalog %s", path)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse catalog %s", path)
	}
	models := lo.Filter(f.Models, func(m model.ModelDescriptor, _ int) bool {
		return strings.TrimSpace(m.Identifier) != ""
	})
	if len(models) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "catalog %s lists no models", path)
	}
	for i := range models {
		if models[i].DisplayName == "" {
			models[i].DisplayName = models[i].Identifier
		}
	}
	return models, nil
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	models     []model.ModelDescriptor
	discovered bool

	auth       api.Auth
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithModels replaces the static list, e.g. with the result of LoadFile.
func WithModels(models []model.ModelDescriptor) Option {
	return func(c *Catalog) {
		if len(models) > 0 {
			c.models = models
		}
	}
}

// WithAuth sets the credential scheme used for discovery.
func WithAuth(auth api.Auth) Option {
	return func(c *Catalog) {
		c.auth = auth
	}
}

// WithHTTPClient replaces the http.Client used for discovery.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Catalog) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a catalog seeded with the built-in models.
func New(logger *zap.Logger, opts ...Option) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		models:     Defaults(),
		auth:       api.BearerAuth(),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Models returns the active catalog.
func (c *Catalog) Models() []model.ModelDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}

// Discovered reports whether the active catalog came from the remote listing.
func (c *Catalog) Discovered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.discovered
}

// Lookup finds a model by identifier.
func (c *Catalog) Lookup(id string) (model.ModelDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.models, func(m model.ModelDescriptor) bool {
		return m.Identifier == id
	})
}

// Discover fetches GET {baseURL}/v1/models and keeps identifiers that look like
// transcription models. A non-empty result replaces the active catalog; an
// empty one leaves it untouched. Failures come back as
// *errors.ModelDiscoveryError and never change the catalog.
func (c *Catalog) Discover(ctx context.Context, apiKey, baseURL string) ([]model.ModelDescriptor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.NewModelDiscoveryError(apperrors.ErrMissingAPIKey)
	}

	client := whisper.NewClient(apiKey, strings.TrimRight(baseURL, "/")+"/v1", c.auth, c.httpClient)
	list, err := client.ListModels(ctx)
	if err != nil {
		c.logger.Warn("model discovery failed", zap.String("base_url", baseURL), zap.Error(err))
		return nil, apperrors.NewModelDiscoveryError(err)
	}

	found := FilterTranscriptionModels(list.Models)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(found) == 0 {
		c.logger.Info("model discovery found no transcription models, keeping catalog",
			zap.String("base_url", baseURL), zap.Int("listed", len(list.Models)))
		out := make([]model.ModelDescriptor, len(c.models))
		copy(out, c.models)
		return out, nil
	}

	c.models = found
	c.discovered = true
	c.logger.Info("model catalog replaced by discovery",
		zap.String("base_url", baseURL), zap.Int("models", len(found)))
	out := make([]model.ModelDescriptor, len(found))
	copy(out, found)
	return out, nil
}

// FilterTranscriptionModels keeps models whose identifier contains "whisper"
// or "transcribe", case-insensitively, preserving order.
func FilterTranscriptionModels(models []openai.Model) []model.ModelDescriptor {
	kept := lo.Filter(models, func(m openai.Model, _ int) bool {
		id := strings.ToLower(m.ID)
		return strings.Contains(id, "whisper") || strings.Contains(id, "transcribe")
	})
	return lo.Map(kept, func(m openai.Model, _ int) model.ModelDescriptor {
		provider := m.OwnedBy
		if provider == "" {
			provider = "Remote"
		}
		return model.ModelDescriptor{
			Identifier:  m.ID,
			DisplayName: m.ID,
			Description: "Discovered from the remote model listing",
			Provider:    provider,
		}
	})
}
