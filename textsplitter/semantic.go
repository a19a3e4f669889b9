package textsplitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textutil"
)

// fallbackSegmenter adapts the textutil punctuation heuristic to the
// SentenceSegmenter interface. It is the default when no oracle is
// injected; resolution happens once at construction, not per call.
type fallbackSegmenter struct{}

func (fallbackSegmenter) Segment(_ context.Context, text, _ string) ([]string, error) {
	return textutil.SplitSentences(text), nil
}

// SemanticSplitter packs whole sentences (or, in paragraph mode, whole
// paragraphs) into chunks, carrying a sentence-level overlap tail
// between consecutive chunks. A single segment that alone exceeds the
// token budget is handed to a CharacterSplitter and its chunks are
// appended verbatim.
type SemanticSplitter struct {
	base
	segmenter     SentenceSegmenter
	language      string
	paragraphMode bool
	charSplitter  *CharacterSplitter
}

var _ Splitter = (*SemanticSplitter)(nil)

func NewSemantic(counter TokenCounter, opts ...Option) (*SemanticSplitter, error) {
	o := defaultOptions(opts)
	b, err := newBase(counter, o)
	if err != nil {
		return nil, err
	}

	segmenter := o.segmenter
	if segmenter == nil {
		segmenter = fallbackSegmenter{}
	}

	charSplitter, err := NewCharacter(counter,
		WithMaxTokens(o.maxTokens),
		WithOverlapTokens(o.overlapTokens),
		WithLogger(b.logger),
	)
	if err != nil {
		return nil, err
	}

	return &SemanticSplitter{
		base:          b,
		segmenter:     segmenter,
		language:      o.language,
		paragraphMode: o.paragraphMode,
		charSplitter:  charSplitter,
	}, nil
}

func (s *SemanticSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	whole, err := s.countTokens(ctx, text)
	if err != nil {
		return nil, err
	}
	if whole <= s.maxTokens {
		md := schema.NewMetadataBuilder().
			Set(schema.MetaIndex, 0).
			Set(schema.MetaSegmentCount, 1)
		return []schema.Chunk{schema.NewChunk(text, whole, md)}, nil
	}

	segs, sep, err := s.segments(ctx, text)
	if err != nil {
		return nil, err
	}

	sepTokens, err := s.countTokens(ctx, sep)
	if err != nil {
		return nil, err
	}

	groups, err := s.packSegments(ctx, segs, sep, sepTokens, func(ctx context.Context, _ int, seg segment) ([]schema.Chunk, error) {
		s.logger.Debug("segment exceeds token budget, delegating to character split",
			"tokens", seg.tokens, "max", s.maxTokens)
		return s.charSplitter.Split(ctx, seg.text)
	})
	if err != nil {
		return nil, err
	}

	var chunks []schema.Chunk
	for _, g := range groups {
		if g.sub != nil {
			chunks = append(chunks, g.sub...)
			continue
		}
		md := schema.NewMetadataBuilder().
			Set(schema.MetaIndex, 0).
			Set(schema.MetaSegmentCount, len(g.indices))
		chunks = append(chunks, schema.NewChunk(g.text, g.tokens, md))
	}

	return schema.Reindex(chunks), nil
}

// segments decomposes text into sentences or paragraphs, paired with
// their token counts and the separator used to rejoin them.
func (s *SemanticSplitter) segments(ctx context.Context, text string) ([]segment, string, error) {
	var parts []string
	var sep string

	if s.paragraphMode {
		parts = textutil.SplitParagraphs(text)
		sep = "\n\n"
	} else {
		var err error
		parts, err = s.segmenter.Segment(ctx, text, s.language)
		if err != nil {
			return nil, "", fmt.Errorf("sentence segmentation failed: %w", err)
		}
		if len(parts) == 0 {
			parts = []string{text}
		}
		sep = " "
	}

	segs, err := s.toSegments(ctx, parts)
	if err != nil {
		return nil, "", err
	}
	return segs, sep, nil
}
