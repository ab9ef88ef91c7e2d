package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"time"

	"glitch-art-maker/internal/logger"
	"glitch-art-maker/internal/models"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension caps the longer side of an upload
const DefaultMaxDimension = 1200

var (
	// ErrUnsupportedImage is returned when the bytes are not a decodable image
	ErrUnsupportedImage = errors.New("unsupported image data")
	// ErrNoImage is returned when an operation needs a loaded image
	ErrNoImage = errors.New("no image loaded")
)

// Resizer produces a new raster of the requested size
type Resizer interface {
	Resize(src *models.RasterImage, width, height int) (*models.RasterImage, error)
	Name() string
}

// DrawResizer resamples with golang.org/x/image/draw
type DrawResizer struct {
	scaler draw.Interpolator
}

func NewDrawResizer() *DrawResizer {
	return &DrawResizer{scaler: draw.BiLinear}
}

func (r *DrawResizer) Name() string {
	return "draw"
}

func (r *DrawResizer) Resize(src *models.RasterImage, width, height int) (*models.RasterImage, error) {
	if src.Empty() {
		return nil, fmt.Errorf("source raster is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target dimensions: %dx%d", width, height)
	}
	if width == src.Width && height == src.Height {
		return src.Clone(), nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.scaler.Scale(dst, dst.Bounds(), src.ToNRGBA(), src.Bounds(), draw.Src, nil)

	return models.FromImage(dst), nil
}

// FitWithin returns the largest size with the same aspect ratio whose longer
// side does not exceed maxDim. Images that already fit are never enlarged.
func FitWithin(width, height, maxDim int) (int, int) {
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return width, height
	}

	if width >= height {
		scaled := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return maxDim, max(scaled, 1)
	}

	scaled := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return max(scaled, 1), maxDim
}

// ImageService decodes uploads into rasters and encodes results
type ImageService struct {
	repository   *models.ImageRepository
	resizer      Resizer
	maxDimension int
	logger       logger.Logger
}

// NewImageService creates a new image service. A nil resizer selects DrawResizer.
func NewImageService(repo *models.ImageRepository, resizer Resizer, maxDimension int, log logger.Logger) *ImageService {
	if resizer == nil {
		resizer = NewDrawResizer()
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &ImageService{
		repository:   repo,
		resizer:      resizer,
		maxDimension: maxDimension,
		logger:       log,
	}
}

// Decode reads the whole stream, decodes it and fits it within the maximum
// dimension. It does not touch the repository, so a failed upload leaves the
// previous original in place.
func (is *ImageService) Decode(ctx context.Context, reader io.Reader) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	raster := models.FromImage(img)
	if raster.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrUnsupportedImage)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	imageData := &models.ImageData{
		Raster:   raster,
		Format:   format,
		LoadTime: time.Now(),
		Metadata: models.ImageMetadata{
			FileSize:     int64(len(data)),
			SourceWidth:  raster.Width,
			SourceHeight: raster.Height,
		},
	}

	width, height := FitWithin(raster.Width, raster.Height, is.maxDimension)
	if width != raster.Width || height != raster.Height {
		start := time.Now()
		resized, err := is.resizer.Resize(raster, width, height)
		if err != nil {
			return nil, fmt.Errorf("failed to resize image: %w", err)
		}

		imageData.Raster = resized
		imageData.Metadata.Resized = true
		imageData.Metadata.ResizeDuration = time.Since(start)

		is.logger.Debug("ImageService", "image resized", map[string]interface{}{
			"resizer":  is.resizer.Name(),
			"from":     fmt.Sprintf("%dx%d", raster.Width, raster.Height),
			"to":       fmt.Sprintf("%dx%d", width, height),
			"duration": imageData.Metadata.ResizeDuration,
		})
	}

	return imageData, nil
}

// EncodePNG writes the raster as a lossless PNG
func (is *ImageService) EncodePNG(writer io.Writer, raster *models.RasterImage) error {
	if raster.Empty() {
		return ErrNoImage
	}

	if err := png.Encode(writer, raster.ToNRGBA()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SaveImage encodes the latest render, or the original when nothing has
// been rendered yet
func (is *ImageService) SaveImage(ctx context.Context, writer io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	raster := is.repository.GetRenderedImage()
	if raster == nil {
		original := is.repository.GetOriginalImage()
		if original == nil {
			return ErrNoImage
		}
		raster = original.Raster
	}

	return is.EncodePNG(writer, raster)
}

// DownloadName returns the suggested file name for an export made at t
func DownloadName(t time.Time) string {
	return fmt.Sprintf("glitch-art-%d.png", t.UnixMilli())
}

// ResizerName reports which backend is in use
func (is *ImageService) ResizerName() string {
	return is.resizer.Name()
}

// GetSupportedFormats returns the decodable upload formats
func (is *ImageService) GetSupportedFormats() []string {
	return []string{"png", "jpeg", "jpg", "webp"}
}
