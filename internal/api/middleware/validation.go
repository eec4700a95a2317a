package middleware

import (
	stderrors "errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"batch-whisper/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body and runs tag and domain validation.
// An empty body, chunked or not, leaves req at its zero value.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(req); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.NewValidationError("Validation failed", fieldErrors(err, "request", "invalid JSON format"))
		}
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateQuery validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		apiErr := errors.NewBadRequestError("Invalid query parameters")
		apiErr.Details = fieldErrors(err, "query", "invalid query parameters")
		return apiErr
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func fieldErrors(err error, fallbackKey, fallbackMsg string) map[string]string {
	details := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		details[fallbackKey] = fallbackMsg
		return details
	}

	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			details[field] = "is required"
		case "url":
			details[field] = "must be a valid URL"
		case "min":
			details[field] = "is too short"
		case "max":
			details[field] = "is too long"
		case "oneof":
			details[field] = "must be one of: " + fieldError.Param()
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
