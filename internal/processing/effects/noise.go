package effects

import "glitch-art-maker/internal/models"

// Noise adds one uniform sample in [-strength/2, strength/2) to the RGB
// channels of each pixel, so full strength spans +/-50.
func Noise(img *models.RasterImage, strength float64, rng Source) *models.RasterImage {
	strength = models.ClampStrength(strength)
	if strength <= 0 || img.Empty() || rng == nil {
		return img
	}

	pix := img.Pix
	for i := 0; i < len(pix); i += models.BytesPerPixel {
		n := (rng.Float64() - 0.5) * strength

		pix[i] = clampByte(float64(pix[i]) + n)
		pix[i+1] = clampByte(float64(pix[i+1]) + n)
		pix[i+2] = clampByte(float64(pix[i+2]) + n)
	}

	return img
}
