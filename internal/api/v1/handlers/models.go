package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"batch-whisper/internal/api/middleware"
	"batch-whisper/internal/api/v1/dto"
	"batch-whisper/internal/api/v1/services"
)

// ModelHandler handles model catalog endpoints
type ModelHandler struct {
	service services.ModelService
}

// NewModelHandler creates a new model handler
func NewModelHandler(service services.ModelService) *ModelHandler {
	return &ModelHandler{service: service}
}

// List handles GET /api/v1/models
//
// @Summary List transcription models
// @Tags models
// @Produce json
// @Success 200 {object} dto.ListModelsResponse "Active catalog"
// @Router /models [get]
func (h *ModelHandler) List(c *gin.Context) {
	response, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Discover handles POST /api/v1/models/discover
//
// @Summary Discover remote models
// @Description Queries the endpoint's model listing and replaces the catalog when transcription models are found
// @Tags models
// @Accept json
// @Produce json
// @Param credentials body dto.DiscoverModelsRequest false "Credential overrides"
// @Success 200 {object} dto.DiscoverModelsResponse "Catalog after discovery"
// @Failure 502 {object} errors.APIError "Discovery failed"
// @Router /models/discover [post]
func (h *ModelHandler) Discover(c *gin.Context) {
	var req dto.DiscoverModelsRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.DiscoverModels(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
