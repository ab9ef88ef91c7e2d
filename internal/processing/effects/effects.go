// Package effects implements the pixel-level glitch transforms.
//
// Every transform works in place on the buffer it receives and returns it.
// A strength of zero (or less) leaves the buffer untouched, strengths above
// 100 behave like 100.
package effects

import (
	"context"
	"math"

	"glitch-art-maker/internal/models"
)

// clampByte rounds half to even and pins the value into [0,255]
func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// brightnessSum is the unscaled sum of the RGB samples at i
func brightnessSum(pix []uint8, i int) int {
	return int(pix[i]) + int(pix[i+1]) + int(pix[i+2])
}

// snapshot copies the stage input so reads are not affected by writes
func snapshot(img *models.RasterImage) []uint8 {
	src := make([]uint8, len(img.Pix))
	copy(src, img.Pix)
	return src
}

// Step adapts a transform to the processing chain contract
type Step struct {
	effect models.Effect
	apply  func(img *models.RasterImage, strength float64) *models.RasterImage
}

func (s *Step) Name() string {
	return string(s.effect)
}

func (s *Step) Effect() models.Effect {
	return s.effect
}

func (s *Step) ShouldExecute(settings models.EffectSettings) bool {
	return models.ClampStrength(settings.Strength(s.effect)) > 0
}

func (s *Step) Apply(ctx context.Context, input *models.RasterImage, settings models.EffectSettings) (*models.RasterImage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return s.apply(input, settings.Strength(s.effect)), nil
}

// NewScanlineStep wraps Scanline for the processing chain
func NewScanlineStep() *Step {
	return &Step{effect: models.EffectScanline, apply: Scanline}
}

// NewNoiseStep wraps Noise for the processing chain
func NewNoiseStep(rng Source) *Step {
	return &Step{
		effect: models.EffectNoise,
		apply: func(img *models.RasterImage, strength float64) *models.RasterImage {
			return Noise(img, strength, rng)
		},
	}
}

// NewSliceShiftStep wraps SliceShift for the processing chain
func NewSliceShiftStep(rng Source) *Step {
	return &Step{
		effect: models.EffectSliceShift,
		apply: func(img *models.RasterImage, strength float64) *models.RasterImage {
			return SliceShift(img, strength, rng)
		},
	}
}

// NewRGBSplitStep wraps RGBSplit for the processing chain
func NewRGBSplitStep() *Step {
	return &Step{effect: models.EffectRGBSplit, apply: RGBSplit}
}

// NewPixelSortStep wraps PseudoPixelSort for the processing chain
func NewPixelSortStep() *Step {
	return &Step{effect: models.EffectPixelSort, apply: PseudoPixelSort}
}
