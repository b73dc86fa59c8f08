package gallery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

var errBroken = errors.New("broken page")

type fakeProvider struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	delay   time.Duration
}

func (p *fakeProvider) Image(_ context.Context, ref thumbnail.Ref) (image.Image, error) {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		seen := p.maxSeen.Load()
		if n <= seen || p.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(p.delay)

	if ref == "broken" {
		return nil, errBroken
	}
	var w, h int
	if _, err := fmt.Sscanf(string(ref), "%dx%d", &w, &h); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	return img, nil
}

func newService(p thumbnail.Provider) *thumbnail.Service {
	return thumbnail.NewService(thumbnail.New(thumbnail.WithYield(nil)), p, nil)
}

func TestBuild_PreservesOrder(t *testing.T) {
	refs := []thumbnail.Ref{"40x20", "10x30", "broken", "5x5", "300x100"}
	results := Build(context.Background(), newService(&fakeProvider{}), refs, 64, 3)

	require.Len(t, results, len(refs))
	for i, res := range results {
		assert.Equal(t, refs[i], res.Ref)
		if refs[i] == "broken" {
			assert.ErrorIs(t, res.Err, errBroken)
			assert.Nil(t, res.Image)
			continue
		}
		require.NoError(t, res.Err, "ref %s", res.Ref)
		assert.Equal(t, image.Rect(0, 0, 64, 64), res.Image.Bounds())
	}

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, thumbnail.Ref("broken"), failed[0].Ref)
}

func TestBuild_BoundsConcurrency(t *testing.T) {
	p := &fakeProvider{delay: 5 * time.Millisecond}
	refs := make([]thumbnail.Ref, 12)
	for i := range refs {
		refs[i] = "8x8"
	}

	results := Build(context.Background(), newService(p), refs, 64, 2)

	assert.Empty(t, Failed(results))
	assert.LessOrEqual(t, p.maxSeen.Load(), int32(2))
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	refs := []thumbnail.Ref{"8x8", "8x8", "8x8"}
	results := Build(ctx, newService(&fakeProvider{}), refs, 64, 2)

	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Nil(t, res.Image)
	}
}

func TestBuild_Empty(t *testing.T) {
	results := Build(context.Background(), newService(&fakeProvider{}), nil, 64, 0)
	assert.Empty(t, results)
}

func TestBuild_InvalidSize(t *testing.T) {
	results := Build(context.Background(), newService(&fakeProvider{}), []thumbnail.Ref{"8x8"}, 0, 1)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, thumbnail.ErrInvalidSize)
}
