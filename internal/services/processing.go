package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"glitch-art-maker/internal/debug/timing"
	"glitch-art-maker/internal/logger"
	"glitch-art-maker/internal/models"
	"glitch-art-maker/internal/processing/chain"
	"glitch-art-maker/internal/processing/effects"
)

// ErrServiceClosed is returned by Render after Shutdown
var ErrServiceClosed = errors.New("processing service shut down")

// ProcessingService runs the glitch chain over the stored original
type ProcessingService struct {
	chain      *chain.ProcessingChain
	imageRepo  *models.ImageRepository
	stateRepo  *models.ProcessingStateRepository
	tracker    *timing.Tracker
	logger     logger.Logger
	workerPool chan struct{}

	mu        sync.RWMutex
	closed    bool
	succeeded int
	failed    int
	total     time.Duration
	last      time.Time
}

// NewProcessingService creates a new processing service. Noise and slice
// placement draw from rng.
func NewProcessingService(
	imageRepo *models.ImageRepository,
	stateRepo *models.ProcessingStateRepository,
	rng effects.Source,
	tracker *timing.Tracker,
	log logger.Logger,
) *ProcessingService {
	if log == nil {
		log = logger.NewNop()
	}
	if tracker == nil {
		tracker = timing.NewTracker(log, timing.DefaultHistory)
	}

	workers := make(chan struct{}, runtime.NumCPU())
	for i := 0; i < runtime.NumCPU(); i++ {
		workers <- struct{}{}
	}

	ps := &ProcessingService{
		chain:      chain.NewGlitchChain(rng),
		imageRepo:  imageRepo,
		stateRepo:  stateRepo,
		tracker:    tracker,
		logger:     log,
		workerPool: workers,
	}

	ps.chain.SetStepObserver(ps.observeStep)

	return ps
}

// Render runs every enabled stage over a copy of original. The original is
// never written. Stage progress goes to progress, or to the state
// repository when progress is nil.
func (ps *ProcessingService) Render(ctx context.Context, original *models.RasterImage, settings models.EffectSettings, progress chain.ProgressFunc) (*models.RasterImage, error) {
	ps.mu.RLock()
	closed := ps.closed
	ps.mu.RUnlock()
	if closed {
		return nil, ErrServiceClosed
	}

	if original == nil {
		return nil, ErrNoImage
	}

	select {
	case <-ps.workerPool:
		defer func() { ps.workerPool <- struct{}{} }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if progress == nil {
		progress = ps.stateRepo.UpdateProgress
	}

	stop := ps.tracker.Start("pipeline")
	result, err := ps.chain.ExecuteWithProgress(ctx, original, settings.Clamped(), progress)
	elapsed := stop()

	ps.mu.Lock()
	if err != nil {
		ps.failed++
	} else {
		ps.succeeded++
		ps.total += elapsed
		ps.last = time.Now()
	}
	ps.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	ps.logger.Debug("ProcessingService", "render completed", map[string]interface{}{
		"width":    result.Width,
		"height":   result.Height,
		"duration": elapsed,
	})

	return result, nil
}

// RenderOriginal renders the stored original with settings
func (ps *ProcessingService) RenderOriginal(ctx context.Context, settings models.EffectSettings) (*models.RasterImage, error) {
	original := ps.imageRepo.GetOriginalImage()
	if original == nil {
		return nil, ErrNoImage
	}
	return ps.Render(ctx, original.Raster, settings, nil)
}

func (ps *ProcessingService) observeStep(stage string, elapsed time.Duration, err error) {
	if err != nil {
		ps.logger.Warning("ProcessingService", "stage aborted", map[string]interface{}{
			"stage": stage,
			"error": err.Error(),
		})
		return
	}
	ps.tracker.Record(stage, elapsed)
}

// GetStageNames returns the pipeline order
func (ps *ProcessingService) GetStageNames() []string {
	return ps.chain.GetStepNames()
}

// ProcessingStats contains processing performance statistics
type ProcessingStats struct {
	SuccessfulRuns    int
	FailedRuns        int
	AverageTime       time.Duration
	LastProcessedTime time.Time
	Stages            []timing.Summary
}

// GetProcessingStats returns processing performance statistics
func (ps *ProcessingService) GetProcessingStats() ProcessingStats {
	ps.mu.RLock()
	stats := ProcessingStats{
		SuccessfulRuns:    ps.succeeded,
		FailedRuns:        ps.failed,
		LastProcessedTime: ps.last,
	}
	if ps.succeeded > 0 {
		stats.AverageTime = ps.total / time.Duration(ps.succeeded)
	}
	ps.mu.RUnlock()

	stats.Stages = ps.tracker.Summaries()
	return stats
}

// Shutdown rejects further renders and logs the final statistics
func (ps *ProcessingService) Shutdown() {
	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return
	}
	ps.closed = true
	ps.mu.Unlock()

	stats := ps.GetProcessingStats()
	ps.logger.Info("ProcessingService", "shutdown", map[string]interface{}{
		"renders":      stats.SuccessfulRuns,
		"failed":       stats.FailedRuns,
		"average_time": stats.AverageTime,
	})
}
