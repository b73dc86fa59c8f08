package thumbnail

import (
	"image"
	"math"
)

// bandPixelBudget bounds the number of source pixels a single backend call
// may read.
const bandPixelBudget = 3_000_000

// Band pairs a horizontal slice of the source with the slice of the fit
// rectangle it is drawn into.
type Band struct {
	Src image.Rectangle
	Dst image.Rectangle
}

// MaxBandHeight returns how many source rows one band may cover.
func MaxBandHeight(srcW int) int {
	if srcW <= 0 {
		return 1
	}
	return max(1, int(math.Round(bandPixelBudget/float64(srcW))))
}

// PlanBands splits a srcW x srcH source into bands and maps each one onto
// fit. Destination edges are computed from the shared source row, so
// consecutive bands meet exactly and together cover fit. A band may map to
// an empty destination when fit is much shorter than the source.
func PlanBands(srcW, srcH int, fit image.Rectangle) []Band {
	if srcW <= 0 || srcH <= 0 || fit.Empty() {
		return nil
	}

	step := MaxBandHeight(srcW)
	bands := make([]Band, 0, (srcH+step-1)/step)
	for y := 0; y < srcH; y += step {
		end := min(srcH, y+step)
		bands = append(bands, Band{
			Src: image.Rect(0, y, srcW, end),
			Dst: image.Rect(
				fit.Min.X, destRow(y, srcH, fit),
				fit.Max.X, destRow(end, srcH, fit),
			),
		})
	}
	return bands
}

// destRow maps source row y onto fit, rounding half up.
func destRow(y, srcH int, fit image.Rectangle) int {
	h := int64(fit.Dy())
	return fit.Min.Y + int((2*int64(y)*h+int64(srcH))/(2*int64(srcH)))
}
