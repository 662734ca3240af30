package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstLine(t *testing.T) {
	t.Run("multiline_content", func(t *testing.T) {
		assert.Equal(t, "Satisfactory update 1.1", FirstLine("Satisfactory update 1.1\nPatch notes below"))
	})

	t.Run("single_line", func(t *testing.T) {
		assert.Equal(t, "just a title", FirstLine("just a title"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", FirstLine(""))
	})

	t.Run("leading_newline", func(t *testing.T) {
		assert.Equal(t, "", FirstLine("\nsecond line"))
	})
}

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "always holds") })
	assert.Panics(t, func() { AssertInvariant(false, "never holds") })
}
