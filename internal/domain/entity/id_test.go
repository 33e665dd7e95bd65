package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 24)
		assert.True(t, IsValidID(id), "сгенерированный ID должен проходить валидацию: %s", id)
		assert.False(t, seen[id], "ID не должны повторяться: %s", id)
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("64f1a2b3c4d5e6f708192a3b"))

	// Неверная длина
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("64f1a2b3c4d5e6f708192a3"))
	assert.False(t, IsValidID("64f1a2b3c4d5e6f708192a3bc"))

	// Недопустимые символы
	assert.False(t, IsValidID("64f1a2b3c4d5e6f708192a3G"))
	assert.False(t, IsValidID("creator@x.com-0000000000"))
}
