package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// AudioFile is a submitted audio payload. The core never interprets the bytes;
// it only needs a name, a size and a way to stream the content.
type AudioFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`

	open func() (io.ReadCloser, error)
}

// NewPathFile references a file on disk. The name is the base name of path.
func NewPathFile(path string) (AudioFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AudioFile{}, err
	}
	return AudioFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// NewBytesFile wraps an in-memory payload, e.g. an HTTP upload.
func NewBytesFile(name string, data []byte) AudioFile {
	return AudioFile{
		Name: name,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Open returns a fresh reader over the payload.
func (f AudioFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, os.ErrNotExist
	}
	return f.open()
}
