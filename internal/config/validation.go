package config

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "batch-whisper/internal/app/errors"
)

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}

// MaxUploadLimitMB caps A2T_MAX_UPLOAD_MB.
const MaxUploadLimitMB = 2048

// ValidateUploadLimit validates the upload size limit in megabytes
func ValidateUploadLimit(mb int) error {
	if mb < 1 || mb > MaxUploadLimitMB {
		return apperrors.OutOfRange("upload limit (MB)", 1, MaxUploadLimitMB)
	}
	return nil
}
