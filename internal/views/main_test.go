package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadExtensions(t *testing.T) {
	assert.Equal(t, []string{".png", ".jpeg", ".webp"}, uploadExtensions([]string{"png", "JPEG", "webp"}))
	assert.Empty(t, uploadExtensions(nil))
}
