package components

import (
	"fmt"

	"glitch-art-maker/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type effectControl struct {
	slider *widget.Slider
	value  *widget.Label
}

// EffectPanel holds one slider per pipeline stage plus the preset and reset
// buttons
type EffectPanel struct {
	container *fyne.Container
	controls  map[models.Effect]*effectControl
	presets   []*widget.Button
	reset     *widget.Button

	// syncing suppresses change callbacks while sliders are moved from code
	syncing bool

	strengthHandler func(models.Effect, float64)
	presetHandler   func(string)
	resetHandler    func()
}

// NewEffectPanel creates a new effect panel component
func NewEffectPanel() *EffectPanel {
	panel := &EffectPanel{
		controls: make(map[models.Effect]*effectControl),
	}
	panel.createComponents()
	panel.buildLayout()
	return panel
}

func (ep *EffectPanel) createComponents() {
	for _, effect := range models.AllEffects() {
		effect := effect

		slider := widget.NewSlider(models.MinStrength, models.MaxStrength)
		slider.Step = 1
		control := &effectControl{
			slider: slider,
			value:  widget.NewLabel(StrengthText(0)),
		}

		slider.OnChanged = func(value float64) {
			control.value.SetText(StrengthText(value))
			if ep.syncing || ep.strengthHandler == nil {
				return
			}
			ep.strengthHandler(effect, value)
		}

		ep.controls[effect] = control
	}

	for _, name := range models.PresetNames() {
		name := name
		ep.presets = append(ep.presets, widget.NewButton(name, func() {
			if ep.presetHandler != nil {
				ep.presetHandler(name)
			}
		}))
	}

	ep.reset = widget.NewButton("RESET", func() {
		if ep.resetHandler != nil {
			ep.resetHandler()
		}
	})
	ep.reset.Importance = widget.DangerImportance
}

func (ep *EffectPanel) buildLayout() {
	rows := container.NewVBox(widget.NewRichTextFromMarkdown("**EFFECTS**"))
	for _, effect := range models.AllEffects() {
		control := ep.controls[effect]
		rows.Add(container.NewBorder(nil, nil,
			widget.NewLabel(effect.Label()), control.value, control.slider))
	}

	presetRow := container.NewGridWithColumns(len(ep.presets))
	for _, button := range ep.presets {
		presetRow.Add(button)
	}

	rows.Add(widget.NewSeparator())
	rows.Add(widget.NewRichTextFromMarkdown("**PRESETS**"))
	rows.Add(presetRow)
	rows.Add(ep.reset)

	ep.container = rows
}

// SetSettings moves every slider to match settings without firing the
// strength handler. Must run on the UI goroutine.
func (ep *EffectPanel) SetSettings(settings models.EffectSettings) {
	ep.syncing = true
	defer func() { ep.syncing = false }()

	for effect, control := range ep.controls {
		value := settings.Strength(effect)
		control.slider.SetValue(value)
		control.value.SetText(StrengthText(value))
	}
}

// SetStrengthHandler sets the handler for slider moves
func (ep *EffectPanel) SetStrengthHandler(handler func(models.Effect, float64)) {
	ep.strengthHandler = handler
}

// SetPresetHandler sets the handler for preset buttons
func (ep *EffectPanel) SetPresetHandler(handler func(string)) {
	ep.presetHandler = handler
}

// SetResetHandler sets the handler for the reset button
func (ep *EffectPanel) SetResetHandler(handler func()) {
	ep.resetHandler = handler
}

// GetContainer returns the panel container
func (ep *EffectPanel) GetContainer() *fyne.Container {
	return ep.container
}

// StrengthText formats a slider value for its label
func StrengthText(value float64) string {
	return fmt.Sprintf("%3.0f%%", models.ClampStrength(value))
}
