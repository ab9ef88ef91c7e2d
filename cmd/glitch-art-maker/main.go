package main

import (
	"fmt"
	"log"
	"runtime"

	"glitch-art-maker/internal/config"
	"glitch-art-maker/internal/controllers"
	"glitch-art-maker/internal/debug/timing"
	"glitch-art-maker/internal/logger"
	"glitch-art-maker/internal/models"
	"glitch-art-maker/internal/opencv"
	"glitch-art-maker/internal/processing/effects"
	"glitch-art-maker/internal/services"
	"glitch-art-maker/internal/shutdown"
	"glitch-art-maker/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Glitch Art Maker"
	AppID      = "com.glitchart.glitch-art-maker"
	AppVersion = "1.0.0"
)

// Application owns the fyne app and every wired component
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  config.Config

	controller        *controllers.MainController
	view              *views.MainView
	processingService *services.ProcessingService
	shutdown          *shutdown.Manager
}

func main() {
	application, err := NewApplication(config.Load())
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()
}

// NewApplication wires models, services, controller and view
func NewApplication(cfg config.Config) (*Application, error) {
	appLogger := logger.NewConsoleLogger(cfg.LogLevel)
	for _, warning := range cfg.Warnings {
		appLogger.Warning("Config", warning, nil)
	}

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1100, 760))
	window.CenterOnScreen()

	resizer, err := newResizer(cfg.Resizer)
	if err != nil {
		return nil, err
	}

	imageRepo := models.NewImageRepository()
	stateRepo := models.NewProcessingStateRepository()
	settings := models.NewEffectConfiguration()
	tracker := timing.NewTracker(appLogger, timing.DefaultHistory)

	imageService := services.NewImageService(imageRepo, resizer, cfg.MaxDimension, appLogger)
	processingService := services.NewProcessingService(imageRepo, stateRepo, effects.NewSource(cfg.Seed), tracker, appLogger)

	mainController := controllers.NewMainController(
		imageService, processingService,
		imageRepo, settings, stateRepo,
		controllers.Options{
			DebounceDelay: cfg.DebounceDelay,
			Logger:        appLogger,
		},
	)

	mainView := views.NewMainView(window, mainController, appLogger)
	mainController.SetSink(mainView)
	mainView.SyncSettings()

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Register("processing service", processingService)
	shutdownManager.Register("controller", mainController)

	application := &Application{
		fyneApp:           fyneApp,
		window:            window,
		logger:            appLogger,
		config:            cfg,
		controller:        mainController,
		view:              mainView,
		processingService: processingService,
		shutdown:          shutdownManager,
	}
	application.setupWindowEvents()

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"version":       AppVersion,
		"go_version":    runtime.Version(),
		"resizer":       imageService.ResizerName(),
		"max_dimension": cfg.MaxDimension,
		"debounce":      cfg.DebounceDelay.String(),
		"stages":        processingService.GetStageNames(),
	})

	return application, nil
}

func newResizer(kind config.ResizerKind) (services.Resizer, error) {
	switch kind {
	case config.ResizerOpenCV:
		return opencv.NewMatResizer(), nil
	case config.ResizerDraw, "":
		return services.NewDrawResizer(), nil
	default:
		return nil, fmt.Errorf("unknown resizer %q", kind)
	}
}

// Run shows the window and blocks until the fyne app quits
func (app *Application) Run() {
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.window.ShowAndRun()
	app.shutdown.Shutdown()

	stats := app.processingService.GetProcessingStats()
	for _, stage := range stats.Stages {
		app.logger.Debug("Application", "stage timing", map[string]interface{}{
			"stage":   stage.Stage,
			"count":   stage.Count,
			"average": stage.Average.String(),
			"max":     stage.Max.String(),
		})
	}
	app.logger.Info("Application", "terminated", nil)
}

func (app *Application) setupWindowEvents() {
	app.window.SetOnClosed(func() {
		app.logger.Info("Application", "window closed", nil)
		app.shutdown.Shutdown()
	})
}
