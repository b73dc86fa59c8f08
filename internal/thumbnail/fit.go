package thumbnail

import (
	"image"
	"math"
)

// Fit returns the rectangle of a size x size canvas that a w x h source
// occupies once scaled to fit entirely inside it. The longer source side
// spans the canvas and the other axis is centered. Square sources fill the
// canvas height.
func Fit(w, h, size int) image.Rectangle {
	var left, top, width, height int
	if w > h {
		width = size
		height = scaleDim(h, size, w)
		top = (size - height) / 2
	} else {
		height = size
		width = scaleDim(w, size, h)
		left = (size - width) / 2
	}
	return image.Rect(left, top, left+width, top+height)
}

// scaleDim returns round(v*size/full), never less than one pixel.
func scaleDim(v, size, full int) int {
	n := int(math.Round(float64(v) * float64(size) / float64(full)))
	return max(n, 1)
}
