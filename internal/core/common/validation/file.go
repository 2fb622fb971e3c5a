package validation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	errors "github.com/gastora/expense-api/internal"
)

// MaxFileSize is the upload ceiling for receipt attachments.
const MaxFileSize = 10 << 20 // 10 MB

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".pdf":  {},
}

func ValidateMimeType(mimeType string) *errors.AppError {
	if _, ok := allowedMimeTypes[strings.ToLower(mimeType)]; !ok {
		return errors.NewValidationError(
			fmt.Sprintf("file type %s is not allowed", mimeType),
			errors.ErrCodeInvalidFile,
		)
	}
	return nil
}

func ValidateFileExtension(fileName string) *errors.AppError {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return errors.NewValidationError(
			fmt.Sprintf("file extension %s is not allowed", ext),
			errors.ErrCodeInvalidFile,
		)
	}
	return nil
}

func ValidateFileSize(size int64) *errors.AppError {
	if size > MaxFileSize {
		return errors.NewValidationError(
			fmt.Sprintf("file exceeds the %d MB limit", MaxFileSize/(1<<20)),
			errors.ErrCodeInvalidFile,
		)
	}
	return nil
}

// ValidateUploadedFile runs the full attachment acceptance check.
func ValidateUploadedFile(fileName, mimeType string, size int64) *errors.AppError {
	if err := ValidateMimeType(mimeType); err != nil {
		return err
	}
	if err := ValidateFileExtension(fileName); err != nil {
		return err
	}
	return ValidateFileSize(size)
}

// SafeFileName derives a collision-resistant storage name, keeping only
// the original extension.
func SafeFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
