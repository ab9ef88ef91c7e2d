package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 640
	ImageAreaHeight = 480
)

// ImageDisplay shows the current preview, or a placeholder before an upload
type ImageDisplay struct {
	container   *fyne.Container
	preview     *canvas.Image
	placeholder image.Image
	hint        *widget.Label
}

// NewImageDisplay creates a new image display component
func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.placeholder = placeholderImage(ImageAreaWidth, ImageAreaHeight)

	id.preview = canvas.NewImageFromImage(id.placeholder)
	id.preview.FillMode = canvas.ImageFillContain
	id.preview.ScaleMode = canvas.ImageScalePixels
	id.preview.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	id.hint = widget.NewLabel("Upload an image to start glitching")
	id.hint.Alignment = fyne.TextAlignCenter
}

// placeholderImage is a dark frame with a one pixel border
func placeholderImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	background := color.NRGBA{R: 18, G: 18, B: 24, A: 255}
	border := color.NRGBA{R: 60, G: 60, B: 72, A: 255}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				img.SetNRGBA(x, y, border)
			} else {
				img.SetNRGBA(x, y, background)
			}
		}
	}
	return img
}

func (id *ImageDisplay) setupLayout() {
	background := canvas.NewRectangle(color.NRGBA{R: 10, G: 10, B: 14, A: 255})
	id.container = container.NewStack(background, id.preview, container.NewCenter(id.hint))
}

// SetImage replaces the preview. Must run on the UI goroutine.
func (id *ImageDisplay) SetImage(img image.Image) {
	if img != nil {
		id.preview.Image = img
		id.hint.Hide()
	} else {
		id.preview.Image = id.placeholder
		id.hint.Show()
	}
	id.preview.Refresh()
}

// GetContainer returns the main container
func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}
