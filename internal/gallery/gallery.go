// Package gallery renders thumbnails for many images at once.
package gallery

import (
	"context"
	"image"
	"sync"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

const (
	DefaultWorkers = 4
	maxWorkers     = 32
)

// Renderer is the part of thumbnail.Service the gallery needs.
type Renderer interface {
	RenderRef(ctx context.Context, ref thumbnail.Ref, size int) (*image.RGBA, error)
}

// Result holds the outcome for one reference.
type Result struct {
	Ref   thumbnail.Ref
	Image *image.RGBA
	Err   error
}

// Build renders refs at size using up to workers concurrent renders.
// Results are in the same order as refs. Each render is independent: one
// failure does not stop the others. Items not started before ctx is done
// carry ctx.Err().
func Build(ctx context.Context, r Renderer, refs []thumbnail.Ref, size, workers int) []Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, maxWorkers, max(len(refs), 1))

	results := make([]Result, len(refs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = render(ctx, r, refs[i], size)
			}
		}()
	}

	for i, ref := range refs {
		if ctx.Err() != nil {
			results[i] = Result{Ref: ref, Err: ctx.Err()}
			continue
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = Result{Ref: ref, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func render(ctx context.Context, r Renderer, ref thumbnail.Ref, size int) Result {
	if err := ctx.Err(); err != nil {
		return Result{Ref: ref, Err: err}
	}
	img, err := r.RenderRef(ctx, ref, size)
	return Result{Ref: ref, Image: img, Err: err}
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
