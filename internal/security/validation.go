package security

import (
	"path/filepath"
	"strings"

	apperr "riskly/risk-simulator/internal/errors"
	"riskly/risk-simulator/internal/model"
)

// Extension returns the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ValidateUpload checks the declared metadata of an upload. The file body is
// never opened.
func ValidateUpload(u model.Upload, limits UploadLimits) error {
	ext := Extension(u.Filename)
	if !limits.Allows(ext) {
		return apperr.NewUnsupportedFileTypeError(ext, limits.AllowedExtensions)
	}
	if limits.MaxBytes > 0 && u.Size > limits.MaxBytes {
		return apperr.NewUploadTooLargeError(u.Size, limits.MaxBytes)
	}
	return nil
}
