package documentloaders

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
)

// FileLoader reads one file and splits it into chunks. Load reads the
// whole file; Stream processes it lazily, keeping at most a couple of
// chunk budgets of text in memory at a time.
type FileLoader struct {
	path     string
	splitter textsplitter.Splitter
	counter  textsplitter.TokenCounter
	// bufferTokens is the token count at which the streaming buffer is
	// split and drained; roughly twice the chunk budget.
	bufferTokens int
	logger       *slog.Logger
}

// FileLoaderOption configures a FileLoader.
type FileLoaderOption func(*FileLoader)

// WithFileLogger sets the loader's logger.
func WithFileLogger(logger *slog.Logger) FileLoaderOption {
	return func(l *FileLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBufferTokens overrides the streaming buffer threshold.
func WithBufferTokens(n int) FileLoaderOption {
	return func(l *FileLoader) {
		if n > 0 {
			l.bufferTokens = n
		}
	}
}

// NewFile creates a loader for path. The splitter provides the chunking
// strategy; the counter is used to decide when the streaming buffer is
// full and should be the same counter the splitter was built with.
// maxTokens is the splitter's chunk budget.
func NewFile(path string, splitter textsplitter.Splitter, counter textsplitter.TokenCounter, maxTokens int, opts ...FileLoaderOption) (*FileLoader, error) {
	if splitter == nil {
		return nil, fmt.Errorf("splitter is required")
	}
	if counter == nil {
		return nil, textsplitter.ErrTokenizerNotConfigured
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive, got %d", textsplitter.ErrInvalidChunkSize, maxTokens)
	}

	loader := &FileLoader{
		path:         path,
		splitter:     splitter,
		counter:      counter,
		bufferTokens: 2 * maxTokens,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader, nil
}

// Load reads the entire file and returns one document per chunk.
func (l *FileLoader) Load(ctx context.Context) ([]schema.Document, error) {
	docID := uuid.NewString()
	var docs []schema.Document
	for chunk, err := range l.Stream(ctx) {
		if err != nil {
			return nil, err
		}
		metadata := chunk.Metadata.ToMap()
		metadata[schema.MetaSourceFile] = l.path
		metadata[schema.MetaDocumentID] = docID
		metadata["token_count"] = chunk.TokenCount
		docs = append(docs, schema.NewDocument(chunk.Text, metadata))
	}
	return docs, nil
}

// Stream lazily yields chunks of the file in order. Lines are buffered
// until the buffer's token count exceeds the threshold, the buffer is
// split, and all chunks but a trailing remainder are emitted; the
// remainder seeds the next buffer so context at the split point is
// preserved. The file handle is released on every exit path, including
// early consumer termination. Consumers stop the stream by breaking out
// of the iteration; there is no cancellation token beyond ctx.
func (l *FileLoader) Stream(ctx context.Context) iter.Seq2[schema.Chunk, error] {
	return func(yield func(schema.Chunk, error) bool) {
		file, err := os.Open(l.path)
		if err != nil {
			if os.IsNotExist(err) {
				err = fmt.Errorf("%w: %s", ErrFileNotFound, l.path)
			}
			yield(schema.Chunk{}, err)
			return
		}
		defer file.Close()

		emitted := 0
		emit := func(chunk schema.Chunk) bool {
			ok := yield(chunk.WithIndex(emitted), nil)
			emitted++
			return ok
		}

		var buf strings.Builder
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield(schema.Chunk{}, err)
				return
			}

			buf.WriteString(scanner.Text())
			buf.WriteByte('\n')

			tokens, err := l.counter.Count(ctx, buf.String())
			if err != nil {
				yield(schema.Chunk{}, fmt.Errorf("%w: %w", textsplitter.ErrTokenization, err))
				return
			}
			if tokens <= l.bufferTokens {
				continue
			}

			chunks, err := l.splitter.Split(ctx, buf.String())
			if err != nil {
				yield(schema.Chunk{}, err)
				return
			}

			// Keep the last chunk as the remainder so the next buffer
			// continues from unemitted content.
			buf.Reset()
			if len(chunks) == 0 {
				continue
			}
			for _, chunk := range chunks[:len(chunks)-1] {
				if !emit(chunk) {
					return
				}
			}
			buf.WriteString(chunks[len(chunks)-1].Text)
			buf.WriteByte('\n')
		}

		if err := scanner.Err(); err != nil {
			yield(schema.Chunk{}, fmt.Errorf("reading %s: %w", l.path, err))
			return
		}

		if strings.TrimSpace(buf.String()) == "" {
			return
		}
		chunks, err := l.splitter.Split(ctx, buf.String())
		if err != nil {
			yield(schema.Chunk{}, err)
			return
		}
		for _, chunk := range chunks {
			if !emit(chunk) {
				return
			}
		}
	}
}
