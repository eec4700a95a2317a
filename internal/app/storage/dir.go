package storage

import (
	"context"
	"os"
	"path/filepath"

	"batch-whisper/internal/app/converter/export"
	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/util/files"
)

// DirWriter writes artifacts into a local directory, overwriting files with
// the same name.
type DirWriter struct {
	dir string
}

// NewDirWriter creates dir if needed.
func NewDirWriter(dir string) (*DirWriter, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "invalid output directory %s", dir)
	}
	if err := files.EnsureDir(abs); err != nil {
		return nil, err
	}
	return &DirWriter{dir: abs}, nil
}

// Dir is the absolute output directory.
func (w *DirWriter) Dir() string {
	return w.dir
}

func (w *DirWriter) Write(ctx context.Context, artifact export.Artifact) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	path := filepath.Join(w.dir, filepath.Base(artifact.Name))
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return Location{}, apperrors.Wrapf(err, "failed to write %s", path)
	}
	return Location{Key: artifact.Name, URL: "file://" + filepath.ToSlash(path)}, nil
}
