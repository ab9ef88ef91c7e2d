package effects

import (
	"math"

	"glitch-art-maker/internal/models"
)

const (
	maxSlices      = 20
	maxSliceShift  = 50
	minSliceHeight = 5
	// sliceHeightRange is added on top of minSliceHeight, giving 5-49px bands
	sliceHeightRange = 45
)

// SliceShift displaces random horizontal bands sideways with wraparound.
// Every band reads from the stage input, so overlapping bands never compound.
func SliceShift(img *models.RasterImage, strength float64, rng Source) *models.RasterImage {
	strength = models.ClampStrength(strength)
	if strength <= 0 || img.Empty() || rng == nil {
		return img
	}

	slices := int(math.Floor(strength / 100 * maxSlices))
	maxShift := math.Floor(strength / 100 * maxSliceShift)
	if slices == 0 {
		return img
	}

	src := snapshot(img)
	width := img.Width

	for n := 0; n < slices; n++ {
		sliceHeight := int(math.Floor(rng.Float64()*sliceHeightRange)) + minSliceHeight
		startY := int(math.Floor(rng.Float64() * float64(img.Height-sliceHeight)))
		shift := int(math.Floor((rng.Float64() - 0.5) * 2 * maxShift))

		if shift == 0 {
			continue
		}

		y0 := max(startY, 0)
		y1 := min(startY+sliceHeight, img.Height)

		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				sourceX := wrap(x-shift, width)
				dst := img.Offset(x, y)
				from := img.Offset(sourceX, y)
				copy(img.Pix[dst:dst+models.BytesPerPixel], src[from:from+models.BytesPerPixel])
			}
		}
	}

	return img
}

// wrap maps v into [0, n) for any integer v
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
