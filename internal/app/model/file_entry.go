package model

import (
	"time"
)

// Status is the lifecycle state of a FileEntry.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// IsTerminal reports whether no queue transition can leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Source identifies the admission path a file came through.
type Source string

const (
	SourceDragDrop Source = "dragdrop"
	SourcePicker   Source = "picker"
	SourceFolder   Source = "folder"
)

// ParseSource maps a user supplied value to a Source, defaulting to the picker.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceDragDrop, SourceFolder:
		return Source(s)
	default:
		return SourcePicker
	}
}

// FileEntry is one submitted file and its processing state.
// Transcription is only meaningful when Status is completed, Error only when
// Status is error.
type FileEntry struct {
	ID            string    `json:"id"`
	File          AudioFile `json:"file"`
	Source        Source    `json:"source"`
	Status        Status    `json:"status"`
	Progress      int       `json:"progress"`
	Transcription string    `json:"transcription,omitempty"`
	Error         string    `json:"error,omitempty"`
	AddedAt       time.Time `json:"added_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResultEntry is a completed transcript, keyed by the originating FileEntry id.
type ResultEntry struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	Transcription string    `json:"transcription"`
	Timestamp     time.Time `json:"timestamp"`
}
