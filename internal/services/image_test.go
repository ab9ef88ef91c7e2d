package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"glitch-art-maker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPNG(t *testing.T, width, height int, c color.NRGBA) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, models.NewFilledRaster(width, height, c).ToNRGBA()))
	return buf.Bytes()
}

func newTestImageService(maxDim int) (*ImageService, *models.ImageRepository) {
	repo := models.NewImageRepository()
	return NewImageService(repo, nil, maxDim, nil), repo
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"already fits", 800, 600, 800, 600},
		{"exact limit", 1200, 1200, 1200, 1200},
		{"landscape", 3000, 2000, 1200, 800},
		{"portrait", 1000, 3000, 400, 1200},
		{"rounds shorter side", 2401, 1200, 1200, 600},
		{"thin strip keeps a pixel", 5000, 1, 1200, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitWithin(tt.width, tt.height, 1200)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestDecodePNGWithoutResize(t *testing.T) {
	service, repo := newTestImageService(0)
	fill := color.NRGBA{R: 200, G: 100, B: 50, A: 255}

	data, err := service.Decode(context.Background(), bytes.NewReader(encodedPNG(t, 4, 3, fill)))
	require.NoError(t, err)

	assert.Equal(t, "png", data.Format)
	assert.False(t, data.Metadata.Resized)
	assert.True(t, data.Raster.Equal(models.NewFilledRaster(4, 3, fill)))
	assert.False(t, repo.HasOriginalImage())
}

func TestDecodeJPEG(t *testing.T) {
	service, _ := newTestImageService(0)

	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	data, err := service.Decode(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", data.Format)
	assert.Equal(t, 8, data.Raster.Width)
	assert.Equal(t, 8, data.Raster.Height)
}

func TestDecodeResizesLargeImages(t *testing.T) {
	service, _ := newTestImageService(10)
	fill := color.NRGBA{R: 40, G: 80, B: 120, A: 255}

	data, err := service.Decode(context.Background(), bytes.NewReader(encodedPNG(t, 40, 20, fill)))
	require.NoError(t, err)

	assert.True(t, data.Metadata.Resized)
	assert.Equal(t, 40, data.Metadata.SourceWidth)
	assert.Equal(t, 10, data.Raster.Width)
	assert.Equal(t, 5, data.Raster.Height)
	assert.Len(t, data.Raster.Pix, 10*5*models.BytesPerPixel)

	i := data.Raster.Offset(4, 2)
	assert.InDelta(t, 40, int(data.Raster.Pix[i]), 1)
	assert.InDelta(t, 120, int(data.Raster.Pix[i+2]), 1)
	assert.Equal(t, uint8(255), data.Raster.Pix[i+3])
}

func TestDecodeRejectsNonImageData(t *testing.T) {
	service, _ := newTestImageService(0)

	_, err := service.Decode(context.Background(), strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}

func TestDecodeHonoursCancelledContext(t *testing.T) {
	service, _ := newTestImageService(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Decode(ctx, bytes.NewReader(encodedPNG(t, 2, 2, color.NRGBA{A: 255})))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	service, _ := newTestImageService(0)
	raster := models.NewFilledRaster(3, 2, color.NRGBA{R: 9, G: 99, B: 199, A: 255})
	raster.Pix[0] = 250

	var buf bytes.Buffer
	require.NoError(t, service.EncodePNG(&buf, raster))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, models.FromImage(decoded).Equal(raster))
}

func TestEncodePNGEmpty(t *testing.T) {
	service, _ := newTestImageService(0)

	err := service.EncodePNG(&bytes.Buffer{}, models.NewRasterImage(0, 0))
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestSaveImagePrefersRendered(t *testing.T) {
	service, repo := newTestImageService(0)

	err := service.SaveImage(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoImage)

	original := models.NewFilledRaster(2, 2, color.NRGBA{R: 10, A: 255})
	repo.SetOriginalImage(&models.ImageData{Raster: original})

	var buf bytes.Buffer
	require.NoError(t, service.SaveImage(context.Background(), &buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, models.FromImage(decoded).Equal(original))

	rendered := models.NewFilledRaster(2, 2, color.NRGBA{G: 20, A: 255})
	repo.SetRenderedImage(rendered)

	buf.Reset()
	require.NoError(t, service.SaveImage(context.Background(), &buf))
	decoded, err = png.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, models.FromImage(decoded).Equal(rendered))
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "glitch-art-1700000000123.png", DownloadName(time.UnixMilli(1700000000123)))
}

func TestDrawResizerRejectsBadInput(t *testing.T) {
	resizer := NewDrawResizer()

	_, err := resizer.Resize(models.NewRasterImage(0, 0), 2, 2)
	assert.Error(t, err)

	_, err = resizer.Resize(models.NewRasterImage(2, 2), -1, 2)
	assert.Error(t, err)
	assert.Equal(t, "draw", resizer.Name())
}
