package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"glitch-art-maker/internal/logger"
	"glitch-art-maker/internal/models"
	"glitch-art-maker/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const fileOperationTimeout = 30 * time.Second

// Controller is the subset of the recompute controller the view drives
type Controller interface {
	LoadImage(ctx context.Context, reader io.Reader, name string) error
	UpdateStrength(effect models.Effect, value float64) error
	ApplyPreset(name string) error
	Reset()
	Settings() models.EffectSettings
	SaveRendered(ctx context.Context, writer io.Writer) error
	DownloadName() string
	SupportedFormats() []string
}

// MainView is the display sink and control surface of the application
type MainView struct {
	window        fyne.Window
	controller    Controller
	logger        logger.Logger
	mainContainer *fyne.Container

	toolbar      *components.Toolbar
	imageDisplay *components.ImageDisplay
	effectPanel  *components.EffectPanel
	statusBar    *components.StatusBar
}

// NewMainView creates a new main view and sets it as the window content
func NewMainView(window fyne.Window, controller Controller, log logger.Logger) *MainView {
	view := &MainView{
		window:     window,
		controller: controller,
		logger:     log,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.imageDisplay = components.NewImageDisplay()
	mv.effectPanel = components.NewEffectPanel()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	sidebar := container.NewVScroll(mv.effectPanel.GetContainer())
	sidebar.SetMinSize(fyne.NewSize(320, 0))

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		sidebar,
		mv.imageDisplay.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetUploadHandler(mv.showUploadDialog)
	mv.toolbar.SetDownloadHandler(mv.showDownloadDialog)

	mv.effectPanel.SetStrengthHandler(func(effect models.Effect, value float64) {
		if err := mv.controller.UpdateStrength(effect, value); err != nil {
			mv.ShowError("Invalid setting", err)
		}
	})

	mv.effectPanel.SetPresetHandler(func(name string) {
		if err := mv.controller.ApplyPreset(name); err != nil {
			mv.ShowError("Preset failed", err)
			return
		}
		mv.effectPanel.SetSettings(mv.controller.Settings())
	})

	mv.effectPanel.SetResetHandler(func() {
		mv.controller.Reset()
		mv.effectPanel.SetSettings(mv.controller.Settings())
	})
}

func (mv *MainView) showUploadDialog() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		go mv.loadFromReader(reader)
	}, mv.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(uploadExtensions(mv.controller.SupportedFormats())))
	fileDialog.Show()
}

// uploadExtensions turns decoder format names into dialog filter extensions
func uploadExtensions(formats []string) []string {
	extensions := make([]string, 0, len(formats))
	for _, format := range formats {
		extensions = append(extensions, "."+strings.ToLower(format))
	}
	return extensions
}

// loadFromReader decodes off the UI goroutine; the controller presents the
// result through Present
func (mv *MainView) loadFromReader(reader fyne.URIReadCloser) {
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), fileOperationTimeout)
	defer cancel()

	name := reader.URI().Name()
	if err := mv.controller.LoadImage(ctx, reader, name); err != nil {
		mv.logger.Debug("MainView", "upload rejected", map[string]interface{}{
			"name": name,
		})
	}
}

func (mv *MainView) showDownloadDialog() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("File save error", err)
			return
		}
		if writer == nil {
			return
		}

		go mv.saveToWriter(writer)
	}, mv.window)

	fileDialog.SetFileName(mv.controller.DownloadName())
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fileDialog.Show()
}

func (mv *MainView) saveToWriter(writer fyne.URIWriteCloser) {
	ctx, cancel := context.WithTimeout(context.Background(), fileOperationTimeout)
	defer cancel()

	err := mv.controller.SaveRendered(ctx, writer)
	if closeErr := writer.Close(); err == nil && closeErr != nil {
		mv.ShowError("Image save failed", closeErr)
		return
	}
	if err == nil {
		mv.logger.Info("MainView", "image saved", map[string]interface{}{
			"uri": writer.URI().String(),
		})
	}
}

// Present shows img. The raster is copied before it leaves the caller's goroutine.
func (mv *MainView) Present(img *models.RasterImage) {
	if img == nil {
		return
	}

	frame := img.ToNRGBA()
	width, height := img.Width, img.Height

	fyne.Do(func() {
		mv.imageDisplay.SetImage(frame)
		mv.toolbar.SetDownloadEnabled(true)
		mv.window.SetTitle(fmt.Sprintf("Glitch Art Maker - %dx%d", width, height))
	})
}

// StatusChanged mirrors the processing state in the status bar
func (mv *MainView) StatusChanged(state models.ProcessingState) {
	fyne.Do(func() {
		mv.statusBar.SetState(state)
	})
}

// ImageLoaded describes the new upload in the status bar
func (mv *MainView) ImageLoaded(data *models.ImageData) {
	name := data.Name
	width, height := data.Raster.Width, data.Raster.Height
	resized := data.Metadata.Resized

	fyne.Do(func() {
		mv.statusBar.SetImageInfo(name, width, height, resized)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	mv.logger.Warning("MainView", title, map[string]interface{}{
		"error": err.Error(),
	})

	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
	})
}

// SyncSettings moves the sliders to the controller's current settings
func (mv *MainView) SyncSettings() {
	settings := mv.controller.Settings()
	fyne.Do(func() {
		mv.effectPanel.SetSettings(settings)
	})
}
