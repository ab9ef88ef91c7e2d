package services

import (
	"context"
	"image/color"
	"testing"

	"glitch-art-maker/internal/models"
	"glitch-art-maker/internal/processing/effects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessingService(seed int64) (*ProcessingService, *models.ImageRepository, *models.ProcessingStateRepository) {
	imageRepo := models.NewImageRepository()
	stateRepo := models.NewProcessingStateRepository()
	return NewProcessingService(imageRepo, stateRepo, effects.NewSource(seed), nil, nil), imageRepo, stateRepo
}

func TestRenderLeavesOriginalUntouched(t *testing.T) {
	service, _, _ := newTestProcessingService(7)
	original := models.NewFilledRaster(6, 6, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	pristine := original.Clone()

	settings, _ := models.Preset(models.PresetNeonNightmare)
	result, err := service.Render(context.Background(), original, settings, nil)
	require.NoError(t, err)

	assert.True(t, original.Equal(pristine))
	assert.False(t, result.Equal(original))
}

func TestRenderZeroSettingsIsIdentity(t *testing.T) {
	service, _, _ := newTestProcessingService(1)
	original := models.NewFilledRaster(3, 3, color.NRGBA{R: 12, G: 34, B: 56, A: 255})

	result, err := service.Render(context.Background(), original, models.DefaultSettings(), nil)
	require.NoError(t, err)
	assert.True(t, result.Equal(original))
	assert.NotSame(t, original, result)
}

func TestRenderSeededRunsMatch(t *testing.T) {
	first, _, _ := newTestProcessingService(99)
	second, _, _ := newTestProcessingService(99)
	original := models.NewFilledRaster(16, 16, color.NRGBA{R: 120, G: 140, B: 160, A: 255})
	settings, _ := models.Preset(models.PresetBrokenSignal)

	a, err := first.Render(context.Background(), original, settings, nil)
	require.NoError(t, err)
	b, err := second.Render(context.Background(), original, settings, nil)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestRenderOriginalNeedsImage(t *testing.T) {
	service, imageRepo, _ := newTestProcessingService(1)

	_, err := service.RenderOriginal(context.Background(), models.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoImage)

	imageRepo.SetOriginalImage(&models.ImageData{Raster: models.NewFilledRaster(2, 2, color.NRGBA{A: 255})})
	result, err := service.RenderOriginal(context.Background(), models.EffectSettings{Scanline: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Width)
}

func TestRenderCancelled(t *testing.T) {
	service, _, _ := newTestProcessingService(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Render(ctx, models.NewFilledRaster(2, 2, color.NRGBA{A: 255}), models.EffectSettings{Noise: 50}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessingStatsAndStageTimings(t *testing.T) {
	service, _, stateRepo := newTestProcessingService(3)
	stateRepo.StartProcessing()

	_, err := service.Render(context.Background(), models.NewFilledRaster(4, 4, color.NRGBA{R: 255, A: 255}),
		models.EffectSettings{Scanline: 50, PixelSort: 50}, nil)
	require.NoError(t, err)

	stats := service.GetProcessingStats()
	assert.Equal(t, 1, stats.SuccessfulRuns)
	assert.Zero(t, stats.FailedRuns)

	stages := make([]string, 0, len(stats.Stages))
	for _, s := range stats.Stages {
		stages = append(stages, s.Stage)
	}
	assert.ElementsMatch(t, []string{"pipeline", string(models.EffectScanline), string(models.EffectPixelSort)}, stages)

	assert.Equal(t, string(models.EffectPixelSort), stateRepo.GetState().CurrentStage)
}

func TestRenderAfterShutdown(t *testing.T) {
	service, _, _ := newTestProcessingService(1)
	service.Shutdown()
	service.Shutdown()

	_, err := service.Render(context.Background(), models.NewFilledRaster(1, 1, color.NRGBA{A: 255}), models.DefaultSettings(), nil)
	assert.ErrorIs(t, err, ErrServiceClosed)
}

func TestStageNamesFollowPipelineOrder(t *testing.T) {
	service, _, _ := newTestProcessingService(1)

	expected := make([]string, 0, 5)
	for _, effect := range models.AllEffects() {
		expected = append(expected, string(effect))
	}
	assert.Equal(t, expected, service.GetStageNames())
}

func TestRenderReportsToCallerProgress(t *testing.T) {
	service, _, stateRepo := newTestProcessingService(3)
	stateRepo.StartProcessing()

	var stages []string
	_, err := service.Render(context.Background(), models.NewFilledRaster(4, 4, color.NRGBA{G: 255, A: 255}),
		models.EffectSettings{Noise: 40, RGBSplit: 60}, func(stage string, progress float64) {
			stages = append(stages, stage)
		})
	require.NoError(t, err)

	assert.Equal(t, []string{string(models.EffectNoise), string(models.EffectRGBSplit)}, stages)
	assert.Equal(t, "Pending", stateRepo.GetState().CurrentStage)
}
