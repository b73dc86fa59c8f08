package thumbcache

import (
	"context"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

// Renderer renders a thumbnail for a reference.
type Renderer interface {
	RenderRef(ctx context.Context, ref thumbnail.Ref, size int) (*image.RGBA, error)
}

// ModTimeFunc reports a version stamp for ref, typically its modification
// time. Zero disables caching for that ref.
type ModTimeFunc func(ref thumbnail.Ref) int64

// CachedRenderer serves thumbnails from a Cache and renders only on a miss.
type CachedRenderer struct {
	next    Renderer
	cache   *Cache
	modTime ModTimeFunc
}

// NewRenderer wraps next with cache.
func NewRenderer(next Renderer, cache *Cache, modTime ModTimeFunc) *CachedRenderer {
	return &CachedRenderer{next: next, cache: cache, modTime: modTime}
}

// RenderRef implements Renderer. Cache write failures are ignored.
func (r *CachedRenderer) RenderRef(ctx context.Context, ref thumbnail.Ref, size int) (*image.RGBA, error) {
	var stamp int64
	if r.modTime != nil {
		stamp = r.modTime(ref)
	}

	if stamp != 0 {
		if cached := r.cache.GetImage(string(ref), size, stamp); cached != nil {
			return toRGBA(cached), nil
		}
	}

	img, err := r.next.RenderRef(ctx, ref, size)
	if err != nil {
		return nil, err
	}

	if stamp != 0 {
		_, _ = r.cache.PutImage(string(ref), size, stamp, img) //nolint:errcheck // best-effort
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	xdraw.Draw(rgba, b, img, b.Min, xdraw.Src)
	return rgba
}
