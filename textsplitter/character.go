package textsplitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// CharacterSplitter partitions text purely by size: each step takes the
// maximal prefix within the token budget, then steps the cursor back by
// the maximal suffix within the overlap budget. No natural boundaries
// are considered; this is the leaf strategy the others fall back to for
// indivisible oversized content.
type CharacterSplitter struct {
	base
}

var _ Splitter = (*CharacterSplitter)(nil)

func NewCharacter(counter TokenCounter, opts ...Option) (*CharacterSplitter, error) {
	o := defaultOptions(opts)
	b, err := newBase(counter, o)
	if err != nil {
		return nil, err
	}
	return &CharacterSplitter{base: b}, nil
}

// Split cuts text into chunks of at most maxTokens tokens, consecutive
// chunks sharing up to overlapTokens tokens of trailing context. With
// zero overlap, concatenating the chunk texts reproduces the (trimmed)
// input exactly. Chunk metadata records byte offsets into the trimmed
// input.
func (s *CharacterSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)

	// Byte offset of each rune boundary, so chunk metadata can point
	// back into the input.
	byteOff := make([]int, len(runes)+1)
	for i, r := range runes {
		byteOff[i+1] = byteOff[i] + len(string(r))
	}

	var chunks []schema.Chunk
	cursor := 0

	for cursor < len(runes) {
		length, tokens, err := s.maxPrefix(ctx, runes[cursor:], s.maxTokens)
		if err != nil {
			return nil, err
		}

		chunkRunes := runes[cursor : cursor+length]
		md := schema.NewMetadataBuilder().
			Set(schema.MetaIndex, len(chunks)).
			Set(schema.MetaStartOffset, byteOff[cursor]).
			Set(schema.MetaEndOffset, byteOff[cursor+length])
		chunks = append(chunks, schema.NewChunk(string(chunkRunes), tokens, md))

		if cursor+length >= len(runes) {
			break
		}

		overlapLen := 0
		if s.overlapTokens > 0 {
			overlapLen, _, err = s.maxSuffix(ctx, chunkRunes, s.overlapTokens)
			if err != nil {
				return nil, err
			}
		}

		advance := length - overlapLen
		if advance <= 0 {
			// The overlap consumed the whole chunk; with a highly
			// non-uniform tokenizer the cursor would stall here.
			return nil, fmt.Errorf("%w: overlap %d tokens consumed the entire %d-rune chunk at offset %d",
				ErrNoProgress, s.overlapTokens, length, byteOff[cursor])
		}
		cursor += advance
	}

	return chunks, nil
}
