package thumbnail

import (
	"context"
	"fmt"
	"image"
)

// Ref is an opaque reference to an image held by a Provider.
type Ref string

// Provider decodes the image behind a reference.
type Provider interface {
	Image(ctx context.Context, ref Ref) (image.Image, error)
}

// SizeSource supplies the persisted default thumbnail size.
type SizeSource interface {
	ThumbnailSize() int
}

// FixedSize is a SizeSource returning a constant.
type FixedSize int

// ThumbnailSize implements SizeSource.
func (s FixedSize) ThumbnailSize() int { return int(s) }

// Service binds a Renderer to the collaborators that supply its inputs.
type Service struct {
	Renderer *Renderer
	Provider Provider
	Sizes    SizeSource
}

// NewService creates a Service. A nil renderer gets New(), a nil size
// source gets DefaultSize.
func NewService(r *Renderer, p Provider, sizes SizeSource) *Service {
	if r == nil {
		r = New()
	}
	if sizes == nil {
		sizes = FixedSize(DefaultSize)
	}
	return &Service{Renderer: r, Provider: p, Sizes: sizes}
}

// DefaultSize returns the stored size, bounded to [MinSize, MaxSize].
func (s *Service) DefaultSize() int {
	return ClampSize(s.Sizes.ThumbnailSize())
}

// Render renders src at the stored default size.
func (s *Service) Render(src image.Image) (*image.RGBA, error) {
	return s.Renderer.Render(src, s.DefaultSize())
}

// RenderRef fetches ref from the provider and renders it at size.
// Provider failures are returned wrapped and never retried.
func (s *Service) RenderRef(ctx context.Context, ref Ref, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if s.Provider == nil {
		return nil, fmt.Errorf("load %s: no image provider", ref)
	}
	src, err := s.Provider.Image(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	return s.Renderer.Render(src, size)
}

// RenderRefDefault renders ref at the stored default size.
func (s *Service) RenderRefDefault(ctx context.Context, ref Ref) (*image.RGBA, error) {
	return s.RenderRef(ctx, ref, s.DefaultSize())
}
