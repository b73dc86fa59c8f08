package thumbnail

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		want Scaler
	}{
		{"", CatmullRom},
		{"catmullrom", CatmullRom},
		{" CatmullRom ", CatmullRom},
		{"bicubic", Bicubic},
		{"LANCZOS3", Lanczos3},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.name)
		require.NoError(t, err, "ParseFilter(%q)", tt.name)
		assert.Equal(t, tt.want, got, "ParseFilter(%q)", tt.name)
	}

	for _, name := range []string{"nearest", "bilinear", "box"} {
		_, err := ParseFilter(name)
		assert.ErrorIs(t, err, ErrUnknownFilter, "ParseFilter(%q)", name)
	}
}

// probeScaler records how many calls overlap.
type probeScaler struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	calls   atomic.Int32
}

func (p *probeScaler) Scale(xdraw.Image, image.Rectangle, image.Image, image.Rectangle) {
	n := p.active.Add(1)
	for {
		seen := p.maxSeen.Load()
		if n <= seen || p.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	p.calls.Add(1)
	time.Sleep(200 * time.Microsecond)
	p.active.Add(-1)
}

func TestShared_SerializesCalls(t *testing.T) {
	probe := &probeScaler{}
	a, b := Shared(probe), Shared(probe)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := a
			if i%2 == 1 {
				s = b
			}
			s.Scale(nil, image.Rectangle{}, nil, image.Rectangle{})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(16), probe.calls.Load())
	assert.Equal(t, int32(1), probe.maxSeen.Load())
}

func TestShared_DoesNotDoubleWrap(t *testing.T) {
	s := Shared(CatmullRom)
	assert.Equal(t, s, Shared(s))
}

func TestResizeScaler_DrawsOnlyInsideDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	src := solid(40, 40, red)
	dr := image.Rect(5, 5, 15, 10)

	Bicubic.Scale(dst, dr, src, image.Rect(0, 0, 40, 20))

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			in := image.Pt(x, y).In(dr)
			got := dst.RGBAAt(x, y)
			if in && got.A == 0 {
				t.Fatalf("pixel (%d,%d) inside destination not drawn", x, y)
			}
			if !in && got != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) outside destination drawn: %v", x, y, got)
			}
		}
	}
}

func TestCrop_NonSubImager(t *testing.T) {
	src := image.NewUniform(red)
	got := crop(src, image.Rect(2, 3, 6, 9))
	assert.Equal(t, image.Rect(2, 3, 6, 9), got.Bounds())
	r, _, _, a := got.At(4, 4).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}
