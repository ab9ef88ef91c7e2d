package models

import (
	"sync"
	"time"
)

// ImageData is a loaded source image with its metadata
type ImageData struct {
	Raster   *RasterImage
	Format   string
	Name     string
	LoadTime time.Time
	Metadata ImageMetadata
}

// ImageMetadata contains additional information about the upload
type ImageMetadata struct {
	FileSize       int64
	SourceWidth    int
	SourceHeight   int
	Resized        bool
	ResizeDuration time.Duration
}

// ImageRepository holds the pristine original and the latest rendered output
type ImageRepository struct {
	mu       sync.RWMutex
	original *ImageData
	rendered *RasterImage
}

// NewImageRepository creates an empty repository
func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

// SetOriginalImage replaces the original wholesale and drops the stale render
func (r *ImageRepository) SetOriginalImage(img *ImageData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.original = img
	r.rendered = nil
}

// GetOriginalImage retrieves the original image
func (r *ImageRepository) GetOriginalImage() *ImageData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.original
}

// HasOriginalImage reports whether an upload is present
func (r *ImageRepository) HasOriginalImage() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.original != nil
}

// SetRenderedImage stores the output of a completed recompute
func (r *ImageRepository) SetRenderedImage(img *RasterImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = img
}

// GetRenderedImage returns the latest output, nil before the first render
func (r *ImageRepository) GetRenderedImage() *RasterImage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rendered
}

// ClearAll forgets both images
func (r *ImageRepository) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.original = nil
	r.rendered = nil
}
