package models

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
)

// BytesPerPixel is the stride of a single RGBA sample in a RasterImage
const BytesPerPixel = 4

// RasterImage is a width x height buffer of interleaved 8-bit RGBA samples,
// row-major, with straight (non-premultiplied) alpha.
type RasterImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRasterImage allocates a zeroed raster. Negative dimensions yield an empty raster.
func NewRasterImage(width, height int) *RasterImage {
	if width <= 0 || height <= 0 {
		return &RasterImage{Pix: []uint8{}}
	}

	return &RasterImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}
}

// NewFilledRaster allocates a raster with every pixel set to c
func NewFilledRaster(width, height int, c color.NRGBA) *RasterImage {
	img := NewRasterImage(width, height)
	for i := 0; i < len(img.Pix); i += BytesPerPixel {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// Clone returns a deep copy
func (r *RasterImage) Clone() *RasterImage {
	if r == nil {
		return nil
	}

	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)

	return &RasterImage{
		Width:  r.Width,
		Height: r.Height,
		Pix:    pix,
	}
}

// Empty reports whether the raster holds no pixels
func (r *RasterImage) Empty() bool {
	return r == nil || r.Width <= 0 || r.Height <= 0 || len(r.Pix) == 0
}

// Equal compares dimensions and samples byte for byte
func (r *RasterImage) Equal(other *RasterImage) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Width == other.Width && r.Height == other.Height && bytes.Equal(r.Pix, other.Pix)
}

// Offset returns the index of the red sample of pixel (x, y)
func (r *RasterImage) Offset(x, y int) int {
	return (y*r.Width + x) * BytesPerPixel
}

// Bounds returns the raster rectangle anchored at the origin
func (r *RasterImage) Bounds() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, r.Width, r.Height)
}

// ToNRGBA copies the raster into a standard library image.
// The samples are straight alpha, so NRGBA is the lossless target.
func (r *RasterImage) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	copy(img.Pix, r.Pix)
	return img
}

// FromImage converts any decoded image into a RasterImage
func FromImage(src image.Image) *RasterImage {
	if src == nil {
		return NewRasterImage(0, 0)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return NewRasterImage(0, 0)
	}

	switch typed := src.(type) {
	case *image.NRGBA:
		return fromStridedPix(typed.Pix, typed.Stride, width, height)
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		return fromStridedPix(dst.Pix, dst.Stride, width, height)
	}
}

// fromStridedPix copies rows out of a possibly padded sub-image buffer
func fromStridedPix(pix []uint8, stride, width, height int) *RasterImage {
	img := NewRasterImage(width, height)
	rowBytes := width * BytesPerPixel

	for y := 0; y < height; y++ {
		copy(img.Pix[y*rowBytes:(y+1)*rowBytes], pix[y*stride:y*stride+rowBytes])
	}

	return img
}
