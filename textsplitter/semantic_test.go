package textsplitter_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
	"github.com/sevigo/gochunk/tokenizer"
)

func TestSemanticSplitEmpty(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(), textsplitter.WithMaxTokens(10))
	require.NoError(t, err)

	chunks, err := s.Split(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSemanticSplitSingleChunk(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(), textsplitter.WithMaxTokens(100))
	require.NoError(t, err)

	chunks, err := s.Split(context.Background(), " One sentence. Another one. ")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "One sentence. Another one.", chunks[0].Text)
}

func TestSemanticSentencePacking(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(), textsplitter.WithMaxTokens(20))
	require.NoError(t, err)

	// Sentence token counts (rune counts): 8, 11, 9, 12.
	text := "One two. Three four. Five six. Seven eight."
	chunks, err := s.Split(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "One two. Three four.", chunks[0].Text)
	assert.Equal(t, "Five six.", chunks[1].Text)
	assert.Equal(t, "Seven eight.", chunks[2].Text)

	assert.Equal(t, 2, chunks[0].Metadata.GetInt(schema.MetaSegmentCount))
	assert.Equal(t, 1, chunks[1].Metadata.GetInt(schema.MetaSegmentCount))

	for i, c := range chunks {
		assert.Equal(t, i, c.Index())
		assert.LessOrEqual(t, c.TokenCount, 20)
	}
}

func TestSemanticOverlapCarry(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(),
		textsplitter.WithMaxTokens(30),
		textsplitter.WithOverlapTokens(12))
	require.NoError(t, err)

	text := "One two. Three four. Five six. Seven eight."
	chunks, err := s.Split(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "One two. Three four. Five six.", chunks[0].Text)
	assert.True(t, strings.HasPrefix(chunks[1].Text, "Five six."),
		"second chunk must start with the carried overlap tail")
	assert.LessOrEqual(t, chunks[1].TokenCount, 30)
}

func TestSemanticOversizedSentence(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(), textsplitter.WithMaxTokens(10))
	require.NoError(t, err)

	oversized := "Supercalifragililong."
	text := "Hi. " + oversized
	chunks, err := s.Split(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	assert.Equal(t, "Hi.", chunks[0].Text)

	// The oversized sentence is character-split; its pieces concatenate
	// back to the original sentence.
	var sb strings.Builder
	for _, c := range chunks[1:] {
		sb.WriteString(c.Text)
	}
	assert.Equal(t, oversized, sb.String())

	for i, c := range chunks {
		assert.Equal(t, i, c.Index())
	}
}

func TestSemanticParagraphMode(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(),
		textsplitter.WithMaxTokens(30),
		textsplitter.WithParagraphMode())
	require.NoError(t, err)

	text := "First paragraph here.\n\nSecond paragraph here.\n\nThird one."
	chunks, err := s.Split(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "First paragraph here.", chunks[0].Text)
	assert.Equal(t, "Second paragraph here.", chunks[1].Text)
	assert.Equal(t, "Third one.", chunks[2].Text)
}

// failingSegmenter simulates oracle failure so propagation is testable.
type failingSegmenter struct{}

func (failingSegmenter) Segment(context.Context, string, string) ([]string, error) {
	return nil, assert.AnError
}

func TestSemanticSegmenterErrorPropagates(t *testing.T) {
	s, err := textsplitter.NewSemantic(tokenizer.NewCharacter(),
		textsplitter.WithMaxTokens(10),
		textsplitter.WithSegmenter(failingSegmenter{}))
	require.NoError(t, err)

	_, err = s.Split(context.Background(), strings.Repeat("word ", 20))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
