package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gochunk/textutil"
)

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces and tabs", "a  \t b", "a b"},
		{"normalizes crlf", "a\r\nb\rc", "a\nb\nc"},
		{"caps blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"trims", "  a  ", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.CleanWhitespace(tt.in))
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	got := textutil.SplitParagraphs("first para\nstill first\n\nsecond para\n\n\nthird")
	assert.Equal(t, []string{"first para\nstill first", "second para", "third"}, got)

	assert.Empty(t, textutil.SplitParagraphs("   \n\n  \n"))
}

func TestJaccardSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, textutil.JaccardSimilarity("the quick fox", "the quick fox"), 1e-9)
	assert.InDelta(t, 0.0, textutil.JaccardSimilarity("alpha beta", "gamma delta"), 1e-9)
	assert.InDelta(t, 0.0, textutil.JaccardSimilarity("", "anything"), 1e-9)

	// {"a","b","c"} vs {"b","c","d"}: 2 shared of 4 total.
	assert.InDelta(t, 0.5, textutil.JaccardSimilarity("a b c", "b c d"), 1e-9)

	// Case and punctuation do not matter.
	assert.InDelta(t, 1.0, textutil.JaccardSimilarity("Hello, World!", "hello world"), 1e-9)
}

func TestTrailingOverlap(t *testing.T) {
	assert.Equal(t, 3, textutil.TrailingOverlap("abcdef", "defxyz"))
	assert.Equal(t, 0, textutil.TrailingOverlap("abc", "xyz"))
	assert.Equal(t, 3, textutil.TrailingOverlap("abc", "abc"))
	assert.Equal(t, 0, textutil.TrailingOverlap("", "abc"))
}

func TestNormalizeUnicode(t *testing.T) {
	// e + combining acute composes to é.
	decomposed := "é"
	assert.Equal(t, "é", textutil.NormalizeUnicode(decomposed))
}
