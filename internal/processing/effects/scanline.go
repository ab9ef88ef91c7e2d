package effects

import "glitch-art-maker/internal/models"

const (
	// ScanlineSpacing darkens every third row, starting with row 0
	ScanlineSpacing = 3
	// scanlineDarkenPercent is the RGB reduction at full strength
	scanlineDarkenPercent = 70
)

// Scanline darkens every ScanlineSpacing-th row by 1 - 0.7*strength/100.
// Alpha is untouched.
func Scanline(img *models.RasterImage, strength float64) *models.RasterImage {
	strength = models.ClampStrength(strength)
	if strength <= 0 || img.Empty() {
		return img
	}

	// factor expressed in ten-thousandths keeps integer strengths exact
	factor := 10000 - scanlineDarkenPercent*strength
	rowBytes := img.Width * models.BytesPerPixel

	for y := 0; y < img.Height; y += ScanlineSpacing {
		row := img.Pix[y*rowBytes : (y+1)*rowBytes]
		for i := 0; i < len(row); i += models.BytesPerPixel {
			row[i] = clampByte(float64(row[i]) * factor / 10000)
			row[i+1] = clampByte(float64(row[i+1]) * factor / 10000)
			row[i+2] = clampByte(float64(row[i+2]) * factor / 10000)
		}
	}

	return img
}
