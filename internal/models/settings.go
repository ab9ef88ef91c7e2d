package models

import (
	"fmt"
	"math"
	"sync"
)

// Effect identifies one stage of the glitch pipeline
type Effect string

const (
	EffectScanline   Effect = "scanline"
	EffectNoise      Effect = "noise"
	EffectSliceShift Effect = "sliceShift"
	EffectRGBSplit   Effect = "rgbSplit"
	EffectPixelSort  Effect = "pixelSort"
)

const (
	MinStrength = 0.0
	MaxStrength = 100.0
)

// AllEffects returns every stage in pipeline order
func AllEffects() []Effect {
	return []Effect{
		EffectScanline,
		EffectNoise,
		EffectSliceShift,
		EffectRGBSplit,
		EffectPixelSort,
	}
}

// Label returns the display name used by the control panel
func (e Effect) Label() string {
	switch e {
	case EffectScanline:
		return "Scanlines"
	case EffectNoise:
		return "Digital Noise"
	case EffectSliceShift:
		return "Slice Shift"
	case EffectRGBSplit:
		return "RGB Shift"
	case EffectPixelSort:
		return "Pixel Sort"
	default:
		return string(e)
	}
}

// EffectSettings holds the strength (0-100) of each pipeline stage.
// Zero means the stage is skipped.
type EffectSettings struct {
	Scanline   float64 `json:"scanline"`
	RGBSplit   float64 `json:"rgbSplit"`
	SliceShift float64 `json:"sliceShift"`
	Noise      float64 `json:"noise"`
	PixelSort  float64 `json:"pixelSort"`
}

// DefaultSettings returns the all-zero configuration
func DefaultSettings() EffectSettings {
	return EffectSettings{}
}

// Strength returns the value for a stage, zero for unknown stages
func (s EffectSettings) Strength(effect Effect) float64 {
	switch effect {
	case EffectScanline:
		return s.Scanline
	case EffectNoise:
		return s.Noise
	case EffectSliceShift:
		return s.SliceShift
	case EffectRGBSplit:
		return s.RGBSplit
	case EffectPixelSort:
		return s.PixelSort
	default:
		return 0
	}
}

// WithStrength returns a copy with one stage changed
func (s EffectSettings) WithStrength(effect Effect, value float64) (EffectSettings, error) {
	switch effect {
	case EffectScanline:
		s.Scanline = value
	case EffectNoise:
		s.Noise = value
	case EffectSliceShift:
		s.SliceShift = value
	case EffectRGBSplit:
		s.RGBSplit = value
	case EffectPixelSort:
		s.PixelSort = value
	default:
		return s, NewValidationError("effect", effect, "unknown effect")
	}
	return s, nil
}

// Clamped returns a copy with every strength forced into [0,100]
func (s EffectSettings) Clamped() EffectSettings {
	return EffectSettings{
		Scanline:   ClampStrength(s.Scanline),
		RGBSplit:   ClampStrength(s.RGBSplit),
		SliceShift: ClampStrength(s.SliceShift),
		Noise:      ClampStrength(s.Noise),
		PixelSort:  ClampStrength(s.PixelSort),
	}
}

// IsZero reports whether no stage would run
func (s EffectSettings) IsZero() bool {
	for _, effect := range AllEffects() {
		if s.Strength(effect) > 0 {
			return false
		}
	}
	return true
}

// ClampStrength maps NaN to 0 and pins the value into [0,100]
func ClampStrength(value float64) float64 {
	if math.IsNaN(value) || value < MinStrength {
		return MinStrength
	}
	if value > MaxStrength {
		return MaxStrength
	}
	return value
}

// Preset names
const (
	PresetCyberpunkMild = "CYBERPUNK MILD"
	PresetBrokenSignal  = "BROKEN SIGNAL"
	PresetNeonNightmare = "NEON NIGHTMARE"
)

var presets = map[string]EffectSettings{
	PresetCyberpunkMild: {
		Scanline:   30,
		RGBSplit:   15,
		SliceShift: 0,
		Noise:      10,
		PixelSort:  0,
	},
	PresetBrokenSignal: {
		Scanline:   50,
		RGBSplit:   0,
		SliceShift: 60,
		Noise:      30,
		PixelSort:  0,
	},
	PresetNeonNightmare: {
		Scanline:   10,
		RGBSplit:   80,
		SliceShift: 20,
		Noise:      50,
		PixelSort:  70,
	},
}

// PresetNames returns the presets in control panel order
func PresetNames() []string {
	return []string{PresetCyberpunkMild, PresetBrokenSignal, PresetNeonNightmare}
}

// Preset looks up a named preset. The returned value is a copy.
func Preset(name string) (EffectSettings, bool) {
	settings, ok := presets[name]
	return settings, ok
}

// EffectConfiguration owns the mutable settings of a session
type EffectConfiguration struct {
	mu       sync.RWMutex
	current  EffectSettings
	lastName string
}

// NewEffectConfiguration starts from the all-zero default
func NewEffectConfiguration() *EffectConfiguration {
	return &EffectConfiguration{
		current: DefaultSettings(),
	}
}

// Current returns a snapshot of the settings
func (ec *EffectConfiguration) Current() EffectSettings {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.current
}

// ActivePreset returns the name of the last applied preset, empty once
// any stage has been edited by hand or the settings were reset
func (ec *EffectConfiguration) ActivePreset() string {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return ec.lastName
}

// ApplyPreset overwrites every stage with the preset values
func (ec *EffectConfiguration) ApplyPreset(name string) error {
	preset, ok := Preset(name)
	if !ok {
		return NewValidationError("preset", name, "preset not found")
	}

	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.current = preset
	ec.lastName = name
	return nil
}

// Reset restores the all-zero default
func (ec *EffectConfiguration) Reset() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.current = DefaultSettings()
	ec.lastName = ""
}

// UpdateStrength sets a single stage, clamping the value into [0,100]
func (ec *EffectConfiguration) UpdateStrength(effect Effect, value float64) error {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	updated, err := ec.current.WithStrength(effect, ClampStrength(value))
	if err != nil {
		return err
	}

	ec.current = updated
	ec.lastName = ""
	return nil
}

// ValidationError represents rejected settings input
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

// NewValidationError creates a new validation error
func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

// Error returns the error message
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}
