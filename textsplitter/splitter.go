// Package textsplitter partitions long text into token-bounded chunks.
//
// Five strategies are provided, all sharing the same configuration
// surface and the same boundary arithmetic:
//
//   - CharacterSplitter: pure size-based partitioning with binary-search
//     cut points.
//   - SemanticSplitter: sentence- or paragraph-aware greedy packing.
//   - StructureAwareSplitter: markdown/code-structure-aware packing.
//   - RecursiveSplitter: separator-hierarchy decomposition.
//   - AdaptiveOverlapSplitter: similarity-gated overlap on top of the
//     semantic baseline.
//
// Token counts come from an injected TokenCounter, so chunk sizes are
// measured in the same units the downstream model consumes. A single
// indivisible unit (one sentence, one separator-delimited part, one
// markdown section) whose own token count exceeds the configured maximum
// is emitted as an oversized chunk rather than truncated; callers detect
// this through the chunk's TokenCount.
package textsplitter

import (
	"context"

	"github.com/sevigo/gochunk/schema"
)

// Splitter turns one text into an ordered sequence of chunks.
// Implementations are stateless after construction and safe for
// concurrent use provided their TokenCounter is.
type Splitter interface {
	Split(ctx context.Context, text string) ([]schema.Chunk, error)
}

// TokenCounter is the token-counting oracle every strategy depends on.
// Implementations must be deterministic for a given text.
type TokenCounter interface {
	Count(ctx context.Context, text string) (int, error)
	Encode(ctx context.Context, text string) ([]int, error)
	Decode(ctx context.Context, ids []int) (string, error)
	Truncate(ctx context.Context, text string, maxTokens int) (string, error)
}

// SentenceSegmenter is the optional sentence-boundary oracle. When none
// is configured, strategies fall back to textutil.SplitSentences. The
// language hint may be empty.
type SentenceSegmenter interface {
	Segment(ctx context.Context, text, language string) ([]string, error)
}

// SplitDocuments runs every document's content through the splitter and
// returns one document per produced chunk, merging the chunk metadata
// over the source document's.
func SplitDocuments(ctx context.Context, s Splitter, docs []schema.Document) ([]schema.Document, error) {
	out := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		chunks, err := s.Split(ctx, doc.PageContent)
		if err != nil {
			return nil, err
		}
		for _, chunk := range chunks {
			metadata := make(map[string]any, len(doc.Metadata)+chunk.Metadata.Len())
			for k, v := range doc.Metadata {
				metadata[k] = v
			}
			for k, v := range chunk.Metadata.ToMap() {
				metadata[k] = v
			}
			metadata["token_count"] = chunk.TokenCount
			out = append(out, schema.NewDocument(chunk.Text, metadata))
		}
	}
	return out, nil
}
