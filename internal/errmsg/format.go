// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open state database"
	OpCacheOpen  Op = "open thumbnail cache"

	// Sources
	OpSourceLoad Op = "load image"

	// Thumbnails
	OpThumbnailRender Op = "render thumbnail"
	OpThumbnailSave   Op = "save thumbnail"
	OpPreview         Op = "show preview"

	// Preferences
	OpSizeSave Op = "save thumbnail size"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

// describe turns rendering errors into hints a user can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, thumbnail.ErrInvalidSize):
		return fmt.Sprintf("size must be between %d and %d pixels", thumbnail.MinSize, thumbnail.MaxSize)
	case errors.Is(err, thumbnail.ErrInvalidSource):
		return "image is empty"
	case errors.Is(err, thumbnail.ErrUnknownFilter):
		return fmt.Sprintf("%v (use %s, %s or %s)", err,
			thumbnail.FilterCatmullRom, thumbnail.FilterBicubic, thumbnail.FilterLanczos3)
	default:
		return err.Error()
	}
}
