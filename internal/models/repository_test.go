package models

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImageRepositoryNewOriginalDropsRender(t *testing.T) {
	repo := NewImageRepository()
	assert.False(t, repo.HasOriginalImage())

	first := &ImageData{Raster: NewFilledRaster(1, 1, color.NRGBA{A: 255})}
	repo.SetOriginalImage(first)
	repo.SetRenderedImage(NewRasterImage(1, 1))
	assert.NotNil(t, repo.GetRenderedImage())

	second := &ImageData{Raster: NewRasterImage(2, 2)}
	repo.SetOriginalImage(second)

	assert.Same(t, second, repo.GetOriginalImage())
	assert.Nil(t, repo.GetRenderedImage())

	repo.ClearAll()
	assert.False(t, repo.HasOriginalImage())
}

func TestProcessingStateTransitions(t *testing.T) {
	repo := NewProcessingStateRepository()
	assert.Equal(t, StatusIdle, repo.GetState().Status)
	assert.Equal(t, "idle", StatusIdle.String())

	repo.UpdateProgress("noise", 0.5)
	assert.Empty(t, repo.GetState().CurrentStage)

	repo.MarkReady()
	assert.Equal(t, StatusReady, repo.GetState().Status)

	repo.StartProcessing()
	started := repo.GetState().StartTime
	repo.StartProcessing()
	assert.Equal(t, started, repo.GetState().StartTime)
	assert.True(t, repo.IsProcessing())

	repo.UpdateProgress("noise", 0.2)
	state := repo.GetState()
	assert.Equal(t, "noise", state.CurrentStage)
	assert.Equal(t, 0.2, state.Progress)

	repo.CompleteProcessing(15 * time.Millisecond)
	state = repo.GetState()
	assert.Equal(t, StatusReady, state.Status)
	assert.Equal(t, 1, state.Renders)
	assert.Equal(t, 15*time.Millisecond, state.LastDuration)
	assert.False(t, state.IsProcessing())

	repo.StartProcessing()
	repo.CancelProcessing()
	assert.Equal(t, StatusReady, repo.GetState().Status)
	assert.Equal(t, 1, repo.GetState().Renders)
}
