package documentloaders_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/documentloaders"
	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
	"github.com/sevigo/gochunk/tokenizer"
)

func writeTestFile(t *testing.T, lines int) (string, string) {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "entry %02d lorem ipsum\n", i)
	}
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path, sb.String()
}

func newCharLoader(t *testing.T, path string, maxTokens int) *documentloaders.FileLoader {
	t.Helper()
	counter := tokenizer.NewCharacter()
	splitter, err := textsplitter.NewCharacter(counter, textsplitter.WithMaxTokens(maxTokens))
	require.NoError(t, err)
	loader, err := documentloaders.NewFile(path, splitter, counter, maxTokens)
	require.NoError(t, err)
	return loader
}

func TestNewFileValidation(t *testing.T) {
	counter := tokenizer.NewCharacter()
	splitter, err := textsplitter.NewCharacter(counter, textsplitter.WithMaxTokens(10))
	require.NoError(t, err)

	_, err = documentloaders.NewFile("x.txt", nil, counter, 10)
	require.Error(t, err)

	_, err = documentloaders.NewFile("x.txt", splitter, nil, 10)
	assert.ErrorIs(t, err, textsplitter.ErrTokenizerNotConfigured)

	_, err = documentloaders.NewFile("x.txt", splitter, counter, 0)
	assert.ErrorIs(t, err, textsplitter.ErrInvalidChunkSize)
}

func TestFileLoaderMissingFile(t *testing.T) {
	loader := newCharLoader(t, filepath.Join(t.TempDir(), "absent.txt"), 20)

	for _, err := range loader.Stream(context.Background()) {
		assert.ErrorIs(t, err, documentloaders.ErrFileNotFound)
	}

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, documentloaders.ErrFileNotFound)
}

func TestFileLoaderStream(t *testing.T) {
	const maxTokens = 20
	path, content := writeTestFile(t, 20)
	loader := newCharLoader(t, path, maxTokens)

	var chunks []schema.Chunk
	for chunk, err := range loader.Stream(context.Background()) {
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
	require.NotEmpty(t, chunks)

	var sb strings.Builder
	for i, c := range chunks {
		assert.Equal(t, i, c.Index())
		assert.LessOrEqual(t, c.TokenCount, maxTokens)
		sb.WriteString(c.Text)
	}

	// Chunking loses only whitespace at buffer seams.
	strip := func(s string) string { return strings.Join(strings.Fields(s), "") }
	assert.Equal(t, strip(content), strip(sb.String()))
}

func TestFileLoaderLoad(t *testing.T) {
	path, _ := writeTestFile(t, 8)
	loader := newCharLoader(t, path, 20)

	docs, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	docID := docs[0].Metadata[schema.MetaDocumentID]
	require.NotEmpty(t, docID)
	for _, doc := range docs {
		assert.Equal(t, path, doc.Metadata[schema.MetaSourceFile])
		assert.Equal(t, docID, doc.Metadata[schema.MetaDocumentID])
		assert.NotZero(t, doc.Metadata["token_count"])
	}
}

func TestFileLoaderEarlyTermination(t *testing.T) {
	path, _ := writeTestFile(t, 50)
	loader := newCharLoader(t, path, 10)

	seen := 0
	for chunk, err := range loader.Stream(context.Background()) {
		require.NoError(t, err)
		require.NotEmpty(t, chunk.Text)
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestFileLoaderCancelledContext(t *testing.T) {
	path, _ := writeTestFile(t, 20)
	loader := newCharLoader(t, path, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var lastErr error
	for _, err := range loader.Stream(ctx) {
		lastErr = err
	}
	assert.ErrorIs(t, lastErr, context.Canceled)
}
