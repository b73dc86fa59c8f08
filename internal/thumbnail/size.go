package thumbnail

import "math"

// Thumbnail size bounds in pixels.
const (
	MinSize     = 64
	DefaultSize = 128
	MaxSize     = 1024
)

// Ladder breakpoints. The step and size columns describe the same points:
// 64-256 in steps of 32, 256-448 by 48, 448-832 by 64, then 96 per step.
const (
	stepB = 6
	stepC = 10
	stepD = 16

	sizeA = 64
	sizeB = 256
	sizeC = 448
	sizeD = 832

	slopeA = 32
	slopeB = 48
	slopeC = 64
	slopeD = 96
)

// StepToSize maps a continuous size-control position to a pixel size.
// Small steps near the bottom of the range, large ones near the top.
func StepToSize(step float64) float64 {
	switch {
	case step < stepB:
		return sizeA + step*slopeA
	case step < stepC:
		return sizeB + (step-stepB)*slopeB
	case step < stepD:
		return sizeC + (step-stepC)*slopeC
	default:
		return sizeD + (step-stepD)*slopeD
	}
}

// SizeToStep is the inverse of StepToSize.
func SizeToStep(size float64) float64 {
	switch {
	case size < sizeB:
		return (size - sizeA) / slopeA
	case size < sizeC:
		return (size-sizeB)/slopeB + stepB
	case size < sizeD:
		return (size-sizeC)/slopeC + stepC
	default:
		return (size-sizeD)/slopeD + stepD
	}
}

// ClampSize bounds size to [MinSize, MaxSize].
func ClampSize(size int) int {
	return min(max(size, MinSize), MaxSize)
}

// QuantizeStep returns the stored pixel size for a control position.
func QuantizeStep(step float64) int {
	return ClampSize(int(math.Round(StepToSize(step))))
}

// MinStep returns the control position of MinSize.
func MinStep() float64 {
	return SizeToStep(MinSize)
}

// MaxStep returns the control position of MaxSize.
func MaxStep() float64 {
	return SizeToStep(MaxSize)
}
