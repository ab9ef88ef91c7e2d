package opencv

import (
	"image/color"
	"testing"

	"glitch-art-maker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatResizerDownscalesUniformImage(t *testing.T) {
	src := models.NewFilledRaster(40, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := NewMatResizer().Resize(src, 10, 5)
	require.NoError(t, err)

	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 5, out.Height)
	assert.True(t, out.Equal(models.NewFilledRaster(10, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})))
	assert.Equal(t, 40, src.Width)
}

func TestMatResizerRejectsBadInput(t *testing.T) {
	resizer := NewMatResizer()

	_, err := resizer.Resize(models.NewRasterImage(0, 0), 4, 4)
	assert.Error(t, err)

	_, err = resizer.Resize(models.NewRasterImage(4, 4), 0, 4)
	assert.Error(t, err)
}

func TestMatResizerSameSizeClones(t *testing.T) {
	src := models.NewFilledRaster(3, 3, color.NRGBA{R: 1, A: 255})

	out, err := NewMatResizer().Resize(src, 3, 3)
	require.NoError(t, err)

	assert.True(t, out.Equal(src))
	out.Pix[0] = 99
	assert.Equal(t, uint8(1), src.Pix[0])
}
