package effects

import (
	"math"

	"glitch-art-maker/internal/models"
)

// maxRGBOffset is the horizontal channel displacement at full strength
const maxRGBOffset = 20

// RGBSplit separates the colour channels: red is read from offset pixels to
// the left, blue from offset pixels to the right and green from offset/3 rows
// below. Reads falling outside the image leave that channel as it was.
func RGBSplit(img *models.RasterImage, strength float64) *models.RasterImage {
	strength = models.ClampStrength(strength)
	if strength <= 0 || img.Empty() {
		return img
	}

	offset := int(math.Floor(strength / 100 * maxRGBOffset))
	if offset == 0 {
		return img
	}
	vOffset := offset / 3

	src := snapshot(img)
	pix := img.Pix

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.Offset(x, y)

			if x-offset >= 0 {
				pix[i] = src[img.Offset(x-offset, y)]
			}
			if x+offset < img.Width {
				pix[i+2] = src[img.Offset(x+offset, y)+2]
			}
			if vOffset > 0 && y+vOffset < img.Height {
				pix[i+1] = src[img.Offset(x, y+vOffset)+1]
			}
		}
	}

	return img
}
