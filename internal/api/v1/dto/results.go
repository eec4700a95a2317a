package dto

import (
	"batch-whisper/internal/app/model"
	"batch-whisper/internal/app/storage"
)

// ListResultsResponse lists transcripts in completion order
type ListResultsResponse struct {
	Results []model.ResultEntry `json:"results"`
	Total   int                 `json:"total"`
}

// ExportQuery selects the bulk export format. Store writes the artifact to the
// configured sink instead of returning it.
type ExportQuery struct {
	Format string `form:"format"`
	Store  bool   `form:"store"`
}

// StoredExportResponse is returned when an export was written to a sink
type StoredExportResponse struct {
	Name     string           `json:"name"`
	Count    int              `json:"count"`
	Location storage.Location `json:"location"`
}
