// Package source loads thumbnail source images from disk.
package source

import (
	"bufio"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder for scanned pages
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

// Compile-time check that FileProvider implements thumbnail.Provider.
var _ thumbnail.Provider = FileProvider{}

// supportedExts lists the extensions the registered decoders handle.
var supportedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// IsSupported reports whether path has an extension FileProvider can decode.
func IsSupported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// FileProvider decodes images from files. A Ref is a file path, resolved
// against Dir when relative.
type FileProvider struct {
	Dir string
}

// Path returns the file path for ref.
func (p FileProvider) Path(ref thumbnail.Ref) string {
	path := string(ref)
	if p.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.Dir, path)
	}
	return path
}

// Image implements thumbnail.Provider.
func (p FileProvider) Image(ctx context.Context, ref thumbnail.Ref) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.Path(ref))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// ModTime returns the modification time of ref in Unix nanoseconds, or 0 if
// the file cannot be read.
func (p FileProvider) ModTime(ref thumbnail.Ref) int64 {
	info, err := os.Stat(p.Path(ref))
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}
