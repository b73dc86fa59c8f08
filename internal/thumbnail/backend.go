package thumbnail

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// Scaler resamples the sr part of src into the dr part of dst.
type Scaler interface {
	Scale(dst xdraw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle)
}

// Filter names accepted by ParseFilter.
const (
	FilterCatmullRom = "catmullrom"
	FilterBicubic    = "bicubic"
	FilterLanczos3   = "lanczos3"
)

// ParseFilter returns the scaler registered under name. Only smooth
// interpolators are available; nearest-neighbour and bilinear are rejected.
func ParseFilter(name string) (Scaler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FilterCatmullRom:
		return CatmullRom, nil
	case FilterBicubic:
		return Bicubic, nil
	case FilterLanczos3:
		return Lanczos3, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
}

// Available scalers.
var (
	CatmullRom Scaler = kernelScaler{kernel: xdraw.CatmullRom}
	Bicubic    Scaler = resizeScaler{interp: resize.Bicubic}
	Lanczos3   Scaler = resizeScaler{interp: resize.Lanczos3}
)

type kernelScaler struct {
	kernel *xdraw.Kernel
}

func (s kernelScaler) Scale(dst xdraw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	s.kernel.Scale(dst, dr, src, sr, xdraw.Over, nil)
}

type resizeScaler struct {
	interp resize.InterpolationFunction
}

func (s resizeScaler) Scale(dst xdraw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	if dr.Empty() || sr.Empty() {
		return
	}
	//nolint:gosec // dimensions are bounded by the canvas size
	scaled := resize.Resize(uint(dr.Dx()), uint(dr.Dy()), crop(src, sr), s.interp)
	xdraw.Draw(dst, dr, scaled, scaled.Bounds().Min, xdraw.Over)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// crop returns the sr part of src, sharing pixels when src supports it.
func crop(src image.Image, sr image.Rectangle) image.Image {
	if s, ok := src.(subImager); ok {
		return s.SubImage(sr)
	}
	rgba := image.NewRGBA(sr)
	xdraw.Draw(rgba, sr, src, sr.Min, xdraw.Src)
	return rgba
}

// backendMu is the process-wide drawing lock every shared scaler contends on.
var backendMu sync.Mutex

type sharedScaler struct {
	Scaler
}

// Shared wraps s so that all calls, from any goroutine, are serialized
// behind one process-wide lock, the way common 2D drawing backends behave.
func Shared(s Scaler) Scaler {
	if _, ok := s.(sharedScaler); ok {
		return s
	}
	return sharedScaler{Scaler: s}
}

func (s sharedScaler) Scale(dst xdraw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	backendMu.Lock()
	defer backendMu.Unlock()
	s.Scaler.Scale(dst, dr, src, sr)
}
