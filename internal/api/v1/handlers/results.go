package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"batch-whisper/internal/api/middleware"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/api/v1/services"
	"batch-whisper/internal/app/converter/export"
)

// ResultHandler handles transcript and export endpoints
type ResultHandler struct {
	service services.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(service services.ResultService) *ResultHandler {
	return &ResultHandler{service: service}
}

// List handles GET /api/v1/results
//
// @Summary List transcripts
// @Description Returns completed transcripts in completion order
// @Tags results
// @Produce json
// @Success 200 {object} dto.ListResultsResponse "Transcripts"
// @Router /results [get]
func (h *ResultHandler) List(c *gin.Context) {
	response, err := h.service.ListResults(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportOne handles GET /api/v1/results/:id/export
//
// @Summary Download one transcript
// @Tags results
// @Produce plain
// @Param id path string true "File entry ID"
// @Success 200 {file} file "Transcript text"
// @Failure 404 {object} errors.APIError "Result not found"
// @Router /results/{id}/export [get]
func (h *ResultHandler) ExportOne(c *gin.Context) {
	artifact, err := h.service.ExportResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeAttachment(c, artifact)
}

// ExportAll handles GET /api/v1/export
//
// @Summary Export all transcripts
// @Description Downloads every transcript as one file, or stores it in the configured sink when store=true
// @Tags results
// @Produce plain,json,octet-stream
// @Param format query string false "Export format" Enums(txt, csv, json, xlsx)
// @Param store query bool false "Write to the configured sink instead of downloading"
// @Success 200 {file} file "Export file"
// @Success 201 {object} dto.StoredExportResponse "Export stored"
// @Failure 400 {object} errors.APIError "Invalid format"
// @Failure 503 {object} errors.APIError "No storage configured"
// @Router /export [get]
func (h *ResultHandler) ExportAll(c *gin.Context) {
	var query dto.ExportQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	format, err := export.ParseFormat(query.Format)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	if query.Store {
		stored, err := h.service.StoreAll(c.Request.Context(), format)
		if err != nil {
			middleware.HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, stored)
		return
	}

	artifact, err := h.service.ExportAll(c.Request.Context(), format)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeAttachment(c, artifact)
}

func writeAttachment(c *gin.Context, artifact *export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
