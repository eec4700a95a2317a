package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// AcceptedFormats is the extension allowlist for admitted audio files.
var AcceptedFormats = []string{".mp3", ".wav", ".mp4", ".m4a", ".flac", ".ogg", ".webm", ".aac"}

// IsAcceptedFormat reports whether name ends with an accepted extension,
// ignoring case. Only the name is checked, never the content.
func IsAcceptedFormat(name string) bool {
	lower := strings.ToLower(name)
	return lo.SomeBy(AcceptedFormats, func(ext string) bool {
		return strings.HasSuffix(lower, ext)
	})
}

// FilterAccepted keeps the items whose name passes IsAcceptedFormat and
// returns them along with the number dropped.
func FilterAccepted[T any](items []T, name func(T) string) ([]T, int) {
	kept := lo.Filter(items, func(item T, _ int) bool {
		return IsAcceptedFormat(name(item))
	})
	return kept, len(items) - len(kept)
}

// CollectAudioFiles walks root recursively and returns every regular file
// path in walk order. Hidden directories are skipped. Filtering is left to
// the caller so the folder path shares the admission filter.
func CollectAudioFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
