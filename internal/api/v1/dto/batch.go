package dto

import (
	"batch-whisper/internal/app/converter"
	"batch-whisper/internal/app/session"
)

// StartBatchRequest carries per-run overrides. Blank fields fall back to the
// server configuration.
type StartBatchRequest struct {
	Model   string `json:"model,omitempty" binding:"omitempty,max=200"`
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" binding:"omitempty,url"`
}

// BatchStatusResponse describes the processor and session state
type BatchStatusResponse struct {
	Running     bool               `json:"running"`
	Counts      session.Counts     `json:"counts"`
	LastSummary *converter.Summary `json:"last_summary,omitempty"`
}
