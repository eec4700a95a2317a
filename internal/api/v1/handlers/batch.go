package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"batch-whisper/internal/api/middleware"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/api/v1/services"
)

// BatchHandler handles batch run endpoints
type BatchHandler struct {
	service services.BatchService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(service services.BatchService) *BatchHandler {
	return &BatchHandler{service: service}
}

// Start handles POST /api/v1/batch
//
// @Summary Start a batch run
// @Description Transcribes every pending entry in the background. Blank fields use the server configuration.
// @Tags batch
// @Accept json
// @Produce json
// @Param run body dto.StartBatchRequest false "Run overrides"
// @Success 202 {object} dto.BatchStatusResponse "Run started"
// @Failure 409 {object} errors.APIError "A run is already in progress"
// @Failure 422 {object} errors.APIError "No files or no API key"
// @Router /batch [post]
func (h *BatchHandler) Start(c *gin.Context) {
	var req dto.StartBatchRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.StartBatch(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// Status handles GET /api/v1/batch
//
// @Summary Get batch status
// @Tags batch
// @Produce json
// @Success 200 {object} dto.BatchStatusResponse "Processor state"
// @Router /batch [get]
func (h *BatchHandler) Status(c *gin.Context) {
	response, err := h.service.GetStatus(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
