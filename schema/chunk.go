// Package schema defines the shared data types exchanged between the
// chunking engine, tokenizers, and document loaders.
package schema

import "fmt"

// Recognized metadata keys. Strategies only ever write these; consumers
// may add their own through Metadata.Clone.
const (
	MetaIndex           = "index"
	MetaStartOffset     = "start_offset"
	MetaEndOffset       = "end_offset"
	MetaSourceFile      = "source_file"
	MetaStructure       = "structure"
	MetaSegmentCount    = "segment_count"
	MetaOverlapTokens   = "overlap_tokens"
	MetaAdaptiveOverlap = "adaptive_overlap"
	MetaDocumentID      = "document_id"
)

// Chunk is one unit of splitter output: a span of text plus its token
// count and frozen metadata. Chunks are immutable; derived chunks are
// built with WithIndex or WithMetadata rather than modified in place.
type Chunk struct {
	Text       string
	TokenCount int
	Metadata   Metadata
}

// NewChunk builds a chunk from text, its token count, and optional
// metadata. A nil builder yields empty metadata.
func NewChunk(text string, tokenCount int, md *MetadataBuilder) Chunk {
	chunk := Chunk{Text: text, TokenCount: tokenCount}
	if md != nil {
		chunk.Metadata = md.Build()
	}
	return chunk
}

// Index returns the chunk's position in its output sequence, or -1 when
// the chunk has not been indexed yet.
func (c Chunk) Index() int {
	if _, ok := c.Metadata.Get(MetaIndex); !ok {
		return -1
	}
	return c.Metadata.GetInt(MetaIndex)
}

// WithIndex returns a copy of the chunk whose metadata records the given
// sequence position. The receiver is left untouched.
func (c Chunk) WithIndex(index int) Chunk {
	return Chunk{
		Text:       c.Text,
		TokenCount: c.TokenCount,
		Metadata:   c.Metadata.Clone().Set(MetaIndex, index).Build(),
	}
}

// WithMetadata returns a copy of the chunk with one extra metadata entry.
func (c Chunk) WithMetadata(key string, value any) Chunk {
	return Chunk{
		Text:       c.Text,
		TokenCount: c.TokenCount,
		Metadata:   c.Metadata.Clone().Set(key, value).Build(),
	}
}

// ToMap returns a serializable representation with keys "text",
// "token_count", and "metadata".
func (c Chunk) ToMap() map[string]any {
	return map[string]any{
		"text":        c.Text,
		"token_count": c.TokenCount,
		"metadata":    c.Metadata.ToMap(),
	}
}

// String returns a short debug representation.
func (c Chunk) String() string {
	return fmt.Sprintf("Chunk(%d)[%d tokens](%d bytes)", c.Index(), c.TokenCount, len(c.Text))
}

// Reindex returns a new slice in which chunk i carries index i. Input
// chunks are not mutated.
func Reindex(chunks []Chunk) []Chunk {
	out := make([]Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = c.WithIndex(i)
	}
	return out
}
