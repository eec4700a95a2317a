package api

import (
	"net/http"
	"sort"
	"sync"

	apperrors "batch-whisper/internal/app/errors"
)

// BackendConfig carries the settings shared by every transcription backend.
type BackendConfig struct {
	Auth       Auth
	HTTPClient *http.Client
}

// BackendCreator builds a Transcriber from configuration.
type BackendCreator func(cfg BackendConfig) (Transcriber, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]BackendCreator)
)

// RegisterBackend makes a backend available by name. Backends register
// themselves from init; registering the same name twice panics.
func RegisterBackend(name string, creator BackendCreator) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if creator == nil {
		panic("api: RegisterBackend creator is nil")
	}
	if _, dup := backends[name]; dup {
		panic("api: RegisterBackend called twice for backend " + name)
	}
	backends[name] = creator
}

// NewBackend creates the named backend.
func NewBackend(name string, cfg BackendConfig) (Transcriber, error) {
	backendsMu.RLock()
	creator, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownBackend, "backend %q", name)
	}
	return creator(cfg)
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
