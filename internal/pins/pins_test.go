package pins

import (
	"SubTrackApi/internal/assert"
	"testing"
)

func TestGenerate(t *testing.T) {
	pin := Generate(GamePinLength)
	assert.Equal(t, len(pin), GamePinLength)

	for _, r := range pin {
		found := false
		for _, allowed := range letterRunes {
			if r == allowed {
				found = true
				break
			}
		}
		assert.Equal(t, found, true)
	}
}

func TestPinMarshalJSON(t *testing.T) {
	got, err := Pin("abc123").MarshalJSON()
	assert.NilError(t, err)
	assert.Equal(t, string(got), `"abc123"`)
}
