package effects

import (
	"math"

	"glitch-art-maker/internal/models"
)

const (
	maxSortSpan = 50
	sortPasses  = 3
)

// PseudoPixelSort smears bright runs of each row. Runs whose mean RGB exceeds
// 255 - 2*strength get a few bubble passes that push brighter pixels right.
// Alpha stays in place.
func PseudoPixelSort(img *models.RasterImage, strength float64) *models.RasterImage {
	strength = models.ClampStrength(strength)
	if strength <= 0 || img.Empty() {
		return img
	}

	threshold := 255 - strength/100*200
	maxSpan := int(math.Floor(strength / 100 * maxSortSpan))

	for y := 0; y < img.Height; y++ {
		spanStart := -1

		for x := 0; x < img.Width; x++ {
			brightness := float64(brightnessSum(img.Pix, img.Offset(x, y))) / 3

			if brightness > threshold {
				if spanStart == -1 {
					spanStart = x
				}
				continue
			}

			if spanStart != -1 {
				smearSpan(img, y, spanStart, x, maxSpan)
				spanStart = -1
			}
		}

		if spanStart != -1 {
			smearSpan(img, y, spanStart, img.Width, maxSpan)
		}
	}

	return img
}

// smearSpan runs the compare-swap passes over [start, start+min(end-start, maxSpan))
func smearSpan(img *models.RasterImage, y, start, end, maxSpan int) {
	spanLength := end - start
	if spanLength <= 1 {
		return
	}

	span := min(spanLength, maxSpan)
	pix := img.Pix

	for p := 0; p < sortPasses; p++ {
		for k := 0; k < span-1; k++ {
			i1 := img.Offset(start+k, y)
			i2 := i1 + models.BytesPerPixel

			if brightnessSum(pix, i1) > brightnessSum(pix, i2) {
				pix[i1], pix[i2] = pix[i2], pix[i1]
				pix[i1+1], pix[i2+1] = pix[i2+1], pix[i1+1]
				pix[i1+2], pix[i2+2] = pix[i2+2], pix[i1+2]
			}
		}
	}
}
