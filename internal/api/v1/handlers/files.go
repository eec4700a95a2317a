package handlers

import (
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"batch-whisper/internal/api/errors"
	"batch-whisper/internal/api/middleware"
	"batch-whisper/internal/api/v1/services"
	"batch-whisper/internal/app/model"
)

// FileHandler handles the file queue endpoints
type FileHandler struct {
	service        services.FileService
	maxUploadBytes int64
}

// NewFileHandler creates a new file handler. maxUploadBytes caps the whole
// multipart body; zero disables the cap.
func NewFileHandler(service services.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/v1/files
//
// @Summary Upload audio files
// @Description Admits uploaded files into the queue. Drag-drop and folder uploads drop names outside the accepted formats.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Audio files (repeatable)"
// @Param source formData string false "Admission path" Enums(picker, dragdrop, folder)
// @Success 201 {object} dto.AdmitFilesResponse "Files admitted"
// @Failure 400 {object} errors.APIError "Malformed upload"
// @Failure 422 {object} errors.APIError "No files uploaded"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			middleware.HandleError(c, errors.NewBadRequestError("Upload exceeds the size limit"))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	headers := append(form.File["files"], form.File["files[]"]...)
	audio := make([]model.AudioFile, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError("Failed to read uploaded file "+fh.Filename))
			return
		}
		audio = append(audio, file)
	}

	source := model.ParseSource(c.PostForm("source"))
	response, err := h.service.AdmitFiles(c.Request.Context(), source, audio)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/v1/files
//
// @Summary List queued files
// @Description Returns every entry in admission order with its status and progress
// @Tags files
// @Produce json
// @Success 200 {object} dto.ListFilesResponse "Queue contents"
// @Router /files [get]
func (h *FileHandler) List(c *gin.Context) {
	response, err := h.service.ListFiles(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/files/:id
//
// @Summary Get a queued file
// @Tags files
// @Produce json
// @Param id path string true "File entry ID"
// @Success 200 {object} dto.FileEntryResponse "File entry"
// @Failure 404 {object} errors.APIError "File entry not found"
// @Router /files/{id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	response, err := h.service.GetFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/files/:id
//
// @Summary Remove a queued file
// @Description Removes the entry and any transcript it produced. Unknown ids succeed.
// @Tags files
// @Param id path string true "File entry ID"
// @Success 204 "File removed"
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.service.RemoveFile(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func readUpload(fh *multipart.FileHeader) (model.AudioFile, error) {
	f, err := fh.Open()
	if err != nil {
		return model.AudioFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.AudioFile{}, err
	}
	return model.NewBytesFile(fh.Filename, data), nil
}
