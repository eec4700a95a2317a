package api

import (
	"context"

	"batch-whisper/internal/app/model"
)

// ProgressFunc receives the number of payload bytes sent so far and the total
// payload size. total is 0 when the size is unknown.
type ProgressFunc func(sent, total int64)

// Request is a single transcription call.
type Request struct {
	File    model.AudioFile
	Model   string
	APIKey  string
	BaseURL string

	// OnProgress is optional.
	OnProgress ProgressFunc
}

// Transcriber converts one audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}

// TranscriberFunc adapts a function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context, req Request) (string, error)

// Transcribe calls f.
func (f TranscriberFunc) Transcribe(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
