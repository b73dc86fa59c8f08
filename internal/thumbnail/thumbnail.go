// Package thumbnail renders fixed-size square previews of larger images and
// maps size-control positions onto the stored thumbnail size ladder.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"
)

var (
	ErrInvalidSize    = errors.New("invalid thumbnail size")
	ErrInvalidSource  = errors.New("invalid source image")
	ErrCanvasTooLarge = errors.New("thumbnail canvas too large")
	ErrUnknownFilter  = errors.New("unknown resampling filter")
)

const (
	// MaxCanvasSize is the largest canvas Render will allocate. It is far
	// above MaxSize; range checks for stored sizes belong to the caller.
	MaxCanvasSize = 16384

	// DefaultYield is the pause between two bands.
	DefaultYield = time.Millisecond
)

var (
	DefaultBorderColor     color.Color = color.Black
	DefaultBackgroundColor color.Color = color.White
)

// Renderer draws thumbnails. It holds no per-call state and is safe for
// concurrent use.
type Renderer struct {
	scaler     Scaler
	yield      func()
	border     color.RGBA
	background color.RGBA
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScaler sets the resampler. It is always used through Shared.
func WithScaler(s Scaler) Option {
	return func(r *Renderer) {
		if s != nil {
			r.scaler = Shared(s)
		}
	}
}

// WithYield sets the function called between two bands. nil disables yielding.
func WithYield(fn func()) Option {
	return func(r *Renderer) {
		r.yield = fn
	}
}

// WithYieldDuration pauses for d between two bands. d <= 0 disables yielding.
func WithYieldDuration(d time.Duration) Option {
	return func(r *Renderer) {
		if d <= 0 {
			r.yield = nil
			return
		}
		r.yield = func() { time.Sleep(d) }
	}
}

// WithBorderColor sets the colour of the outline drawn around the image.
func WithBorderColor(c color.Color) Option {
	return func(r *Renderer) {
		if c != nil {
			r.border = toRGBA(c)
		}
	}
}

// WithBackgroundColor sets the colour of the canvas outside the image.
// Translucent colours are made opaque.
func WithBackgroundColor(c color.Color) Option {
	return func(r *Renderer) {
		if c != nil {
			bg := toRGBA(c)
			bg.A = 0xff
			r.background = bg
		}
	}
}

// New creates a renderer using Catmull-Rom resampling, a 1ms pause between
// bands, a black border and a white background unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		scaler:     Shared(CatmullRom),
		border:     toRGBA(DefaultBorderColor),
		background: toRGBA(DefaultBackgroundColor),
	}
	WithYieldDuration(DefaultYield)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns a new size x size image holding src scaled to fit, centered,
// and outlined by a one pixel border. src is only read.
//
// The source is drawn in horizontal bands of bounded pixel count, pausing
// between bands so other renders sharing the drawing backend can progress.
func (r *Renderer) Render(src image.Image, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size > MaxCanvasSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrCanvasTooLarge, size, MaxCanvasSize)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidSource)
	}
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSource, w, h)
	}

	fit := Fit(w, h, size)
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.background), image.Point{}, xdraw.Src)

	for i, band := range PlanBands(w, h, fit) {
		if i > 0 && r.yield != nil {
			r.yield()
		}
		if band.Dst.Empty() {
			continue
		}
		r.scaler.Scale(canvas, band.Dst, src, band.Src.Add(sb.Min))
	}

	drawOutline(canvas, fit, r.border)
	return canvas, nil
}

// drawOutline strokes the outermost pixels of rect.
func drawOutline(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	right, bottom := rect.Max.X-1, rect.Max.Y-1
	for x := rect.Min.X; x <= right; x++ {
		img.SetRGBA(x, rect.Min.Y, c)
		img.SetRGBA(x, bottom, c)
	}
	for y := rect.Min.Y; y <= bottom; y++ {
		img.SetRGBA(rect.Min.X, y, c)
		img.SetRGBA(right, y, c)
	}
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA) //nolint:forcetypeassert // RGBAModel always yields color.RGBA
}
