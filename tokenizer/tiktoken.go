// Package tokenizer provides token-counting backends for the splitting
// strategies: a tiktoken-based counter for real subword vocabularies, a
// rune counter for tests and deterministic fallbacks, and an LRU caching
// decorator safe for concurrent use.
package tokenizer

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// defaultEncoding is used when no model or encoding is specified.
// cl100k_base covers GPT-4 and most recent models.
const defaultEncoding = "cl100k_base"

// TiktokenCounter counts tokens with a tiktoken BPE encoding. The
// underlying encoder is immutable after construction, so a single
// counter may be shared across goroutines.
type TiktokenCounter struct {
	encodingName string
	tke          *tiktoken.Tiktoken
}

// NewTiktoken creates a counter for the given model or encoding name.
// The argument is first tried as an encoding name, then as a model name;
// an empty argument selects the default encoding.
func NewTiktoken(modelOrEncoding string) (*TiktokenCounter, error) {
	if modelOrEncoding == "" {
		modelOrEncoding = defaultEncoding
	}

	tke, err := tiktoken.GetEncoding(modelOrEncoding)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(modelOrEncoding)
		if err != nil {
			return nil, fmt.Errorf("no encoding for %q: %w", modelOrEncoding, err)
		}
	}

	return &TiktokenCounter{
		encodingName: modelOrEncoding,
		tke:          tke,
	}, nil
}

// EncodingName returns the encoding or model name the counter was built with.
func (tc *TiktokenCounter) EncodingName() string {
	return tc.encodingName
}

// Count returns the number of tokens in text.
func (tc *TiktokenCounter) Count(_ context.Context, text string) (int, error) {
	return len(tc.tke.Encode(text, nil, nil)), nil
}

// Encode converts text to token IDs.
func (tc *TiktokenCounter) Encode(_ context.Context, text string) ([]int, error) {
	return tc.tke.Encode(text, nil, nil), nil
}

// Decode converts token IDs back to text.
func (tc *TiktokenCounter) Decode(_ context.Context, ids []int) (string, error) {
	return tc.tke.Decode(ids), nil
}

// Truncate returns the longest prefix of text whose token count does not
// exceed maxTokens, computed by encoding, cutting, and decoding.
func (tc *TiktokenCounter) Truncate(_ context.Context, text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return "", nil
	}
	ids := tc.tke.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text, nil
	}
	return tc.tke.Decode(ids[:maxTokens]), nil
}
