package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("generates_prefixed_id", func(t *testing.T) {
		id := NewID("spam")
		assert.True(t, strings.HasPrefix(id, "spam_"))
		assert.Len(t, strings.TrimPrefix(id, "spam_"), 26, "ULID part should be 26 characters")
	})

	t.Run("normalizes_prefix", func(t *testing.T) {
		id := NewID(" Spam ")
		assert.True(t, strings.HasPrefix(id, "spam_"))
	})

	t.Run("unique_ids", func(t *testing.T) {
		assert.NotEqual(t, NewID("spam"), NewID("spam"))
	})

	t.Run("panics_on_empty_prefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("  ") })
	})
}
