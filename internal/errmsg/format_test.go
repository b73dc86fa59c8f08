//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpThumbnailRender,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSourceLoad,
			err:      errors.New("file not found"),
			expected: "Failed to load image: file not found",
		},
		{
			name:     "invalid size gets a range hint",
			op:       OpThumbnailRender,
			err:      fmt.Errorf("%w: 0", thumbnail.ErrInvalidSize),
			expected: "Failed to render thumbnail: size must be between 64 and 1024 pixels",
		},
		{
			name:     "invalid source",
			op:       OpThumbnailRender,
			err:      fmt.Errorf("wrapped: %w", thumbnail.ErrInvalidSource),
			expected: "Failed to render thumbnail: image is empty",
		},
		{
			name:     "unknown filter lists choices",
			op:       OpConfigLoad,
			err:      fmt.Errorf("%w: %q", thumbnail.ErrUnknownFilter, "nearest"),
			expected: `Failed to load configuration: unknown resampling filter: "nearest" (use catmullrom, bicubic or lanczos3)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpThumbnailSave,
			context:  "page1.png",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpThumbnailSave,
			context:  "page1.png",
			err:      errors.New("permission denied"),
			expected: "Failed to save thumbnail 'page1.png': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpThumbnailSave,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to save thumbnail: permission denied",
		},
		{
			name:     "source with path context",
			op:       OpSourceLoad,
			context:  "/scans/page2.tiff",
			err:      errors.New("unexpected EOF"),
			expected: "Failed to load image '/scans/page2.tiff': unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpConfigLoad, OpStateOpen, OpCacheOpen,
		OpSourceLoad,
		OpThumbnailRender, OpThumbnailSave, OpPreview,
		OpSizeSave,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
