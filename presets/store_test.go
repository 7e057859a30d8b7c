package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "quick_preset", KindQuickPreset.String())
	assert.Equal(t, "custom_equalizer", KindCustomEqualizer.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestErrNotFoundMessage(t *testing.T) {
	assert.Equal(t, "presets: record not found", ErrNotFound.Error())
}
