package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Controller", "render complete", map[string]interface{}{"width": 4})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Controller", entry["component"])
	assert.Equal(t, "render complete", entry["message"])
	assert.EqualValues(t, 4, entry["width"])
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Pipeline", "stage timing", nil)
	log.Info("Pipeline", "started", nil)
	assert.Zero(t, buf.Len())

	log.Error("Pipeline", errors.New("boom"), nil)
	assert.Contains(t, buf.String(), "boom")
}

func TestNopDiscards(t *testing.T) {
	var log Logger = NewNop()

	assert.NotPanics(t, func() {
		log.Warning("Test", "ignored", map[string]interface{}{"k": "v"})
	})
}

func TestZerologAdapterErrorMessageAndDurations(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Error("MainController", errors.New("decode failed"), map[string]interface{}{
		"message": "render aborted",
		"elapsed": 15 * time.Millisecond,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "render aborted", entry["message"])
	assert.Equal(t, "decode failed", entry["error"])
	assert.EqualValues(t, 15, entry["elapsed"])
	assert.Equal(t, zerolog.InfoLevel, log.Level())
}
