package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the upload and download actions
type Toolbar struct {
	container      *fyne.Container
	uploadButton   *widget.Button
	downloadButton *widget.Button

	uploadHandler   func()
	downloadHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.uploadButton = widget.NewButtonWithIcon("Upload Image", theme.FolderOpenIcon(), func() {
		if t.uploadHandler != nil {
			t.uploadHandler()
		}
	})
	t.uploadButton.Importance = widget.HighImportance

	t.downloadButton = widget.NewButtonWithIcon("Download PNG", theme.DownloadIcon(), func() {
		if t.downloadHandler != nil {
			t.downloadHandler()
		}
	})
	t.downloadButton.Disable()
}

func (t *Toolbar) buildLayout() {
	title := widget.NewRichTextFromMarkdown("## GLITCH ART MAKER")
	t.container = container.NewBorder(nil, nil, title,
		container.NewHBox(t.uploadButton, t.downloadButton))
}

// SetUploadHandler sets the upload handler
func (t *Toolbar) SetUploadHandler(handler func()) {
	t.uploadHandler = handler
}

// SetDownloadHandler sets the download handler
func (t *Toolbar) SetDownloadHandler(handler func()) {
	t.downloadHandler = handler
}

// SetDownloadEnabled toggles the download action. Must run on the UI goroutine.
func (t *Toolbar) SetDownloadEnabled(enabled bool) {
	if enabled {
		t.downloadButton.Enable()
	} else {
		t.downloadButton.Disable()
	}
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
