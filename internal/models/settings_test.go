package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetValues(t *testing.T) {
	tests := []struct {
		name string
		want EffectSettings
	}{
		{PresetCyberpunkMild, EffectSettings{Scanline: 30, RGBSplit: 15, SliceShift: 0, Noise: 10, PixelSort: 0}},
		{PresetBrokenSignal, EffectSettings{Scanline: 50, RGBSplit: 0, SliceShift: 60, Noise: 30, PixelSort: 0}},
		{PresetNeonNightmare, EffectSettings{Scanline: 10, RGBSplit: 80, SliceShift: 20, Noise: 50, PixelSort: 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Preset(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{PresetCyberpunkMild, PresetBrokenSignal, PresetNeonNightmare}, PresetNames())
}

func TestPresetIsACopy(t *testing.T) {
	first, _ := Preset(PresetBrokenSignal)
	first.Scanline = 99

	second, _ := Preset(PresetBrokenSignal)
	assert.Equal(t, 50.0, second.Scanline)
}

func TestClampStrength(t *testing.T) {
	assert.Equal(t, 0.0, ClampStrength(-5))
	assert.Equal(t, 0.0, ClampStrength(math.NaN()))
	assert.Equal(t, 100.0, ClampStrength(250))
	assert.Equal(t, 42.5, ClampStrength(42.5))
}

func TestSettingsAccessors(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.IsZero())

	for i, effect := range AllEffects() {
		var err error
		s, err = s.WithStrength(effect, float64(i+1))
		require.NoError(t, err)
	}

	assert.Equal(t, EffectSettings{Scanline: 1, Noise: 2, SliceShift: 3, RGBSplit: 4, PixelSort: 5}, s)
	assert.False(t, s.IsZero())
	assert.Equal(t, 4.0, s.Strength(EffectRGBSplit))
	assert.Zero(t, s.Strength(Effect("blur")))

	_, err := s.WithStrength(Effect("blur"), 1)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "effect", validationErr.Parameter)
}

func TestSettingsClamped(t *testing.T) {
	s := EffectSettings{Scanline: -1, Noise: 500, PixelSort: math.NaN(), RGBSplit: 20}
	assert.Equal(t, EffectSettings{Noise: 100, RGBSplit: 20}, s.Clamped())
}

func TestEffectLabels(t *testing.T) {
	assert.Equal(t, "Scanlines", EffectScanline.Label())
	assert.Equal(t, "RGB Shift", EffectRGBSplit.Label())
	assert.Equal(t, "custom", Effect("custom").Label())
}

func TestEffectConfigurationApplyPreset(t *testing.T) {
	config := NewEffectConfiguration()
	require.NoError(t, config.UpdateStrength(EffectPixelSort, 90))

	require.NoError(t, config.ApplyPreset(PresetCyberpunkMild))

	preset, _ := Preset(PresetCyberpunkMild)
	assert.Equal(t, preset, config.Current())
	assert.Equal(t, PresetCyberpunkMild, config.ActivePreset())
}

func TestEffectConfigurationUnknownPreset(t *testing.T) {
	config := NewEffectConfiguration()
	require.NoError(t, config.UpdateStrength(EffectNoise, 25))
	before := config.Current()

	err := config.ApplyPreset("VAPORWAVE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset not found")
	assert.Equal(t, before, config.Current())
}

func TestEffectConfigurationUpdateStrength(t *testing.T) {
	config := NewEffectConfiguration()
	require.NoError(t, config.ApplyPreset(PresetNeonNightmare))

	require.NoError(t, config.UpdateStrength(EffectScanline, 140))
	assert.Equal(t, 100.0, config.Current().Scanline)
	assert.Empty(t, config.ActivePreset())

	require.NoError(t, config.UpdateStrength(EffectNoise, math.NaN()))
	assert.Equal(t, 0.0, config.Current().Noise)

	assert.Error(t, config.UpdateStrength(Effect("blur"), 10))
	assert.Equal(t, 80.0, config.Current().RGBSplit)
}

func TestEffectConfigurationReset(t *testing.T) {
	config := NewEffectConfiguration()
	require.NoError(t, config.ApplyPreset(PresetBrokenSignal))

	config.Reset()

	assert.True(t, config.Current().IsZero())
	assert.Empty(t, config.ActivePreset())
}
