package components

import (
	"fmt"
	"time"

	"glitch-art-maker/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays processing status and image information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	timingLabel *widget.Label
	progress    *widget.ProgressBarInfinite
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(StatusText(models.ProcessingState{}))
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.timingLabel = widget.NewLabel("")
	sb.progress = widget.NewProgressBarInfinite()
	sb.progress.Stop()
	sb.progress.Hide()
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil,
		container.NewHBox(sb.statusLabel, widget.NewSeparator(), sb.imageInfo),
		sb.timingLabel,
		sb.progress,
	)
}

// SetState reflects the processing state. Must run on the UI goroutine.
func (sb *StatusBar) SetState(state models.ProcessingState) {
	sb.statusLabel.SetText(StatusText(state))

	if state.IsProcessing() {
		sb.progress.Show()
		sb.progress.Start()
		return
	}

	sb.progress.Stop()
	sb.progress.Hide()
	if state.Renders > 0 {
		sb.timingLabel.SetText(fmt.Sprintf("last render %s", state.LastDuration.Round(time.Millisecond)))
	}
}

// SetImageInfo updates the image information display
func (sb *StatusBar) SetImageInfo(name string, width, height int, resized bool) {
	info := fmt.Sprintf("%s: %dx%d", name, width, height)
	if resized {
		info += " (resized)"
	}
	sb.imageInfo.SetText(info)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// StatusText is the user-facing line for a processing state
func StatusText(state models.ProcessingState) string {
	switch state.Status {
	case models.StatusIdle:
		return "Upload an image"
	case models.StatusProcessing:
		if state.CurrentStage == "" || state.CurrentStage == "Pending" {
			return "Processing..."
		}
		return fmt.Sprintf("Processing: %s", models.Effect(state.CurrentStage).Label())
	default:
		return "Ready"
	}
}
