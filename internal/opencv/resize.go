// Package opencv downscales rasters through OpenCV.
package opencv

import (
	"fmt"
	"image"

	"glitch-art-maker/internal/models"

	"gocv.io/x/gocv"
)

// MatResizer resamples with cv::resize using area interpolation
type MatResizer struct {
	interpolation gocv.InterpolationFlags
}

func NewMatResizer() *MatResizer {
	return &MatResizer{interpolation: gocv.InterpolationArea}
}

func (r *MatResizer) Name() string {
	return "opencv"
}

// Resize returns a new raster of the requested size. The source is not modified.
func (r *MatResizer) Resize(src *models.RasterImage, width, height int) (*models.RasterImage, error) {
	if src.Empty() {
		return nil, fmt.Errorf("source raster is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target dimensions: %dx%d", width, height)
	}
	if width == src.Width && height == src.Height {
		return src.Clone(), nil
	}

	srcMat, err := gocv.NewMatFromBytes(src.Height, src.Width, gocv.MatTypeCV8UC4, src.Pix)
	if err != nil {
		return nil, fmt.Errorf("source Mat creation failed: %w", err)
	}
	defer srcMat.Close()

	dstMat := gocv.NewMat()
	defer dstMat.Close()

	gocv.Resize(srcMat, &dstMat, image.Point{X: width, Y: height}, 0, 0, r.interpolation)
	if dstMat.Empty() || dstMat.Cols() != width || dstMat.Rows() != height {
		return nil, fmt.Errorf("resize to %dx%d produced %dx%d", width, height, dstMat.Cols(), dstMat.Rows())
	}

	pix := dstMat.ToBytes()
	if len(pix) != width*height*models.BytesPerPixel {
		return nil, fmt.Errorf("unexpected buffer size %d for %dx%d", len(pix), width, height)
	}

	return &models.RasterImage{Width: width, Height: height, Pix: pix}, nil
}
