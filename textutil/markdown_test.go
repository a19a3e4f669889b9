package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gochunk/textutil"
)

func TestExtractPlainText(t *testing.T) {
	t.Run("strips formatting", func(t *testing.T) {
		md := "# Heading\n\nSome **bold** and *italic* text."
		got := textutil.ExtractPlainText(md)
		assert.Contains(t, got, "Heading")
		assert.Contains(t, got, "bold")
		assert.Contains(t, got, "italic")
		assert.NotContains(t, got, "#")
		assert.NotContains(t, got, "*")
	})

	t.Run("keeps code content drops fences", func(t *testing.T) {
		md := "```go\nreturn 42\n```"
		got := textutil.ExtractPlainText(md)
		assert.Contains(t, got, "return 42")
		assert.NotContains(t, got, "```")
	})

	t.Run("drops link targets keeps link text", func(t *testing.T) {
		md := "see [the manual](https://example.com/manual) first"
		got := textutil.ExtractPlainText(md)
		assert.Contains(t, got, "the manual")
		assert.NotContains(t, got, "example.com")
	})

	t.Run("plain text unchanged", func(t *testing.T) {
		assert.Equal(t, "hello world", textutil.ExtractPlainText("hello world"))
	})
}
