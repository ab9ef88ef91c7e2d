package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"glitch-art-maker/internal/logger"
	"glitch-art-maker/internal/models"
	"glitch-art-maker/internal/services"
)

// DefaultDebounceDelay is the quiet period before a recompute starts
const DefaultDebounceDelay = 50 * time.Millisecond

// Sink receives every image that should be on screen
type Sink interface {
	Present(img *models.RasterImage)
}

// StatusObserver is implemented by sinks that show processing feedback
type StatusObserver interface {
	StatusChanged(state models.ProcessingState)
}

// ImageObserver is implemented by sinks that describe the loaded upload
type ImageObserver interface {
	ImageLoaded(data *models.ImageData)
}

// ErrorReporter is implemented by sinks that can surface failures
type ErrorReporter interface {
	ShowError(title string, err error)
}

// Options tune the controller. Zero values select the defaults.
type Options struct {
	Scheduler     Scheduler
	DebounceDelay time.Duration
	Logger        logger.Logger
	Clock         func() time.Time
}

// MainController turns settings edits into debounced recomputes of the
// loaded image. Only the most recent request ever reaches the sink.
type MainController struct {
	imageService      *services.ImageService
	processingService *services.ProcessingService

	imageRepo *models.ImageRepository
	settings  *models.EffectConfiguration
	stateRepo *models.ProcessingStateRepository

	scheduler Scheduler
	delay     time.Duration
	logger    logger.Logger
	clock     func() time.Time

	mu            sync.Mutex
	sink          Sink
	pending       Handle
	generation    uint64
	closed        bool
	lastImageLoad time.Time
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewMainController creates a new main controller
func NewMainController(
	imageService *services.ImageService,
	processingService *services.ProcessingService,
	imageRepo *models.ImageRepository,
	settings *models.EffectConfiguration,
	stateRepo *models.ProcessingStateRepository,
	opts Options,
) *MainController {
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = DefaultDebounceDelay
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &MainController{
		imageService:      imageService,
		processingService: processingService,
		imageRepo:         imageRepo,
		settings:          settings,
		stateRepo:         stateRepo,
		scheduler:         opts.Scheduler,
		delay:             opts.DebounceDelay,
		logger:            opts.Logger,
		clock:             opts.Clock,
		ctx:               ctx,
		cancel:            cancel,
	}
}

// SetSink associates the display with this controller
func (mc *MainController) SetSink(sink Sink) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.sink = sink
}

// LoadImage decodes an upload and makes it the new original. A decode
// failure is reported and returned; the previous image and settings stay.
func (mc *MainController) LoadImage(ctx context.Context, reader io.Reader, name string) error {
	imageData, err := mc.imageService.Decode(ctx, reader)
	if err != nil {
		mc.logger.Warning("MainController", "image load failed", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
		mc.reportError("Image load failed", err)
		return fmt.Errorf("load %s: %w", name, err)
	}
	imageData.Name = name

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return services.ErrServiceClosed
	}

	mc.cancelPendingLocked()
	mc.imageRepo.SetOriginalImage(imageData)
	mc.lastImageLoad = mc.clock()

	mc.logger.Info("MainController", "image loaded", map[string]interface{}{
		"name":    name,
		"format":  imageData.Format,
		"width":   imageData.Raster.Width,
		"height":  imageData.Raster.Height,
		"resized": imageData.Metadata.Resized,
	})

	if mc.sink != nil {
		mc.sink.Present(imageData.Raster)
	}
	if observer, ok := mc.sink.(ImageObserver); ok {
		observer.ImageLoaded(imageData)
	}
	mc.stateRepo.MarkReady()
	mc.notifyStatusLocked()

	mc.requestRenderLocked()
	return nil
}

// UpdateStrength changes one stage and schedules a recompute
func (mc *MainController) UpdateStrength(effect models.Effect, value float64) error {
	if err := mc.settings.UpdateStrength(effect, value); err != nil {
		return err
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestRenderLocked()
	return nil
}

// ApplyPreset overwrites every stage and schedules a recompute
func (mc *MainController) ApplyPreset(name string) error {
	if err := mc.settings.ApplyPreset(name); err != nil {
		return err
	}

	mc.logger.Debug("MainController", "preset applied", map[string]interface{}{
		"preset": name,
	})

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestRenderLocked()
	return nil
}

// Reset zeroes every stage and schedules a recompute
func (mc *MainController) Reset() {
	mc.settings.Reset()

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestRenderLocked()
}

// Settings returns the current settings snapshot
func (mc *MainController) Settings() models.EffectSettings {
	return mc.settings.Current()
}

// ActivePreset returns the preset the settings still match, if any
func (mc *MainController) ActivePreset() string {
	return mc.settings.ActivePreset()
}

// requestRenderLocked replaces any pending recompute with a new one using the
// settings as they are now. Must be called with mc.mu held.
func (mc *MainController) requestRenderLocked() {
	if mc.closed {
		return
	}

	original := mc.imageRepo.GetOriginalImage()
	if original == nil {
		return
	}

	mc.cancelPendingLocked()
	mc.generation++

	generation := mc.generation
	settings := mc.settings.Current()
	raster := original.Raster

	mc.stateRepo.StartProcessing()
	mc.notifyStatusLocked()

	mc.pending = mc.scheduler.Schedule(mc.delay, func() {
		mc.render(generation, raster, settings)
	})
}

// render runs the pipeline for one generation. Results of a superseded
// generation are dropped without touching the display.
func (mc *MainController) render(generation uint64, original *models.RasterImage, settings models.EffectSettings) {
	mc.mu.Lock()
	if mc.closed || generation != mc.generation {
		mc.mu.Unlock()
		return
	}
	mc.pending = nil
	ctx := mc.ctx
	mc.mu.Unlock()

	start := time.Now()
	result, err := mc.processingService.Render(ctx, original, settings, mc.progressFor(generation))
	elapsed := time.Since(start)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if generation != mc.generation {
		mc.logger.Debug("MainController", "discarding superseded render", map[string]interface{}{
			"generation": generation,
			"current":    mc.generation,
		})
		return
	}

	if err != nil {
		mc.stateRepo.CancelProcessing()
		mc.notifyStatusLocked()
		if errors.Is(err, context.Canceled) || errors.Is(err, services.ErrServiceClosed) {
			return
		}
		mc.logger.Error("MainController", err, map[string]interface{}{
			"generation": generation,
		})
		mc.reportErrorLocked("Processing failed", err)
		return
	}

	mc.imageRepo.SetRenderedImage(result)
	if mc.sink != nil {
		mc.sink.Present(result)
	}
	mc.stateRepo.CompleteProcessing(elapsed)
	mc.notifyStatusLocked()
}

// progressFor forwards stage progress to the status observer while
// generation is still the latest request
func (mc *MainController) progressFor(generation uint64) func(stage string, progress float64) {
	return func(stage string, progress float64) {
		mc.mu.Lock()
		defer mc.mu.Unlock()

		if mc.closed || generation != mc.generation {
			return
		}
		mc.stateRepo.UpdateProgress(stage, progress)
		mc.notifyStatusLocked()
	}
}

// SaveRendered writes the current output as PNG
func (mc *MainController) SaveRendered(ctx context.Context, writer io.Writer) error {
	if err := mc.imageService.SaveImage(ctx, writer); err != nil {
		mc.reportError("Image save failed", err)
		return err
	}

	mc.logger.Info("MainController", "image exported", nil)
	return nil
}

// DownloadName suggests a file name for an export made now
func (mc *MainController) DownloadName() string {
	return services.DownloadName(mc.clock())
}

// SupportedFormats lists the upload formats the decoder accepts
func (mc *MainController) SupportedFormats() []string {
	return mc.imageService.GetSupportedFormats()
}

// ApplicationState represents the current state of the application
type ApplicationState struct {
	HasOriginalImage   bool
	HasRenderedImage   bool
	Status             models.Status
	ProcessingStage    string
	ProcessingProgress float64
	LastRenderDuration time.Duration
	Settings           models.EffectSettings
	ActivePreset       string
	LastImageLoad      time.Time
}

// State returns a snapshot of the application state
func (mc *MainController) State() ApplicationState {
	mc.mu.Lock()
	lastImageLoad := mc.lastImageLoad
	mc.mu.Unlock()

	processingState := mc.stateRepo.GetState()

	return ApplicationState{
		HasOriginalImage:   mc.imageRepo.HasOriginalImage(),
		HasRenderedImage:   mc.imageRepo.GetRenderedImage() != nil,
		Status:             processingState.Status,
		ProcessingStage:    processingState.CurrentStage,
		ProcessingProgress: processingState.Progress,
		LastRenderDuration: processingState.LastDuration,
		Settings:           mc.settings.Current(),
		ActivePreset:       mc.settings.ActivePreset(),
		LastImageLoad:      lastImageLoad,
	}
}

func (mc *MainController) cancelPendingLocked() {
	if mc.pending != nil {
		mc.pending.Cancel()
		mc.pending = nil
	}
}

func (mc *MainController) notifyStatusLocked() {
	if observer, ok := mc.sink.(StatusObserver); ok {
		observer.StatusChanged(mc.stateRepo.GetState())
	}
}

func (mc *MainController) reportError(title string, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.reportErrorLocked(title, err)
}

func (mc *MainController) reportErrorLocked(title string, err error) {
	if reporter, ok := mc.sink.(ErrorReporter); ok {
		reporter.ShowError(title, err)
	}
}

// Shutdown cancels the pending recompute and refuses new ones
func (mc *MainController) Shutdown() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.closed {
		return
	}

	mc.closed = true
	mc.cancelPendingLocked()
	mc.generation++
	mc.cancel()
	mc.stateRepo.CancelProcessing()

	mc.logger.Info("MainController", "shutdown", map[string]interface{}{
		"generations": mc.generation,
	})
}
