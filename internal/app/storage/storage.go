// Package storage writes export artifacts to a destination: a local directory
// or an S3-compatible bucket.
package storage

import (
	"context"

	"batch-whisper/internal/app/converter/export"
)

// Location tells where an artifact ended up.
type Location struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ArtifactWriter stores export artifacts.
type ArtifactWriter interface {
	Write(ctx context.Context, artifact export.Artifact) (Location, error)
}
