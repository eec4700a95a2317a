package dto

import (
	"time"

	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/session"
)

// FileEntryResponse represents a queued file in API responses
type FileEntryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	Transcription string    `json:"transcription,omitempty"`
	Error         string    `json:"error,omitempty"`
	AddedAt       time.Time `json:"added_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AdmitFilesResponse is returned after an upload
type AdmitFilesResponse struct {
	Admitted []FileEntryResponse `json:"admitted"`
	Dropped  int                 `json:"dropped"`
	Total    int                 `json:"total"`
}

// ListFilesResponse lists every entry in admission order
type ListFilesResponse struct {
	Files  []FileEntryResponse `json:"files"`
	Counts session.Counts      `json:"counts"`
}

// NewFileEntryResponse converts a session entry
func NewFileEntryResponse(e model.FileEntry) FileEntryResponse {
	return FileEntryResponse{
		ID:            e.ID,
		Name:          e.File.Name,
		Size:          e.File.Size,
		Source:        string(e.Source),
		Status:        string(e.Status),
		Progress:      e.Progress,
		Transcription: e.Transcription,
		Error:         e.Error,
		AddedAt:       e.AddedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
