package textsplitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textutil"
)

// AdaptiveOverlapSplitter produces a zero-overlap semantic baseline and
// then decides, per chunk boundary, how much trailing context to
// duplicate: sentences from the end of the previous chunk are included
// while the overlap is below the forced minimum, or while they are
// lexically similar to the start of the next chunk. A hard enforcement
// pass guarantees the combined chunk never exceeds the token budget.
type AdaptiveOverlapSplitter struct {
	base
	semantic  *SemanticSplitter
	segmenter SentenceSegmenter
	language  string

	similarityThreshold float64
	minOverlapTokens    int
	maxOverlapTokens    int
	previewRunes        int
}

var _ Splitter = (*AdaptiveOverlapSplitter)(nil)

func NewAdaptiveOverlap(counter TokenCounter, opts ...Option) (*AdaptiveOverlapSplitter, error) {
	o := defaultOptions(opts)
	b, err := newBase(counter, o)
	if err != nil {
		return nil, err
	}

	// Derived defaults are capped into range; explicitly contradictory
	// values fail fast instead.
	maxOverlap := o.maxOverlapTokens
	if maxOverlap == 0 {
		maxOverlap = o.overlapTokens * 2
		if maxOverlap >= o.maxTokens {
			maxOverlap = o.maxTokens - 1
		}
	} else if maxOverlap >= o.maxTokens {
		return nil, fmt.Errorf("%w: max overlap tokens (%d) must be less than max tokens (%d)",
			ErrInvalidOverlap, maxOverlap, o.maxTokens)
	}

	minOverlap := o.minOverlapTokens
	if minOverlap == 0 {
		minOverlap = o.overlapTokens / 4
		if minOverlap > maxOverlap {
			minOverlap = maxOverlap
		}
	} else if minOverlap > maxOverlap {
		return nil, fmt.Errorf("%w: min overlap tokens (%d) exceeds max overlap tokens (%d)",
			ErrInvalidOverlap, minOverlap, maxOverlap)
	}

	// The baseline partition is always built without overlap; the
	// adaptive pass owns all duplication.
	semantic, err := NewSemantic(counter,
		WithMaxTokens(o.maxTokens),
		WithOverlapTokens(0),
		WithMinTokens(o.minTokens),
		WithSegmenter(o.segmenter),
		WithLanguage(o.language),
		WithLogger(b.logger),
	)
	if err != nil {
		return nil, err
	}

	segmenter := o.segmenter
	if segmenter == nil {
		segmenter = fallbackSegmenter{}
	}

	return &AdaptiveOverlapSplitter{
		base:                b,
		semantic:            semantic,
		segmenter:           segmenter,
		language:            o.language,
		similarityThreshold: o.similarityThreshold,
		minOverlapTokens:    minOverlap,
		maxOverlapTokens:    maxOverlap,
		previewRunes:        o.previewRunes,
	}, nil
}

func (s *AdaptiveOverlapSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	baseline, err := s.semantic.Split(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(baseline) <= 1 {
		return baseline, nil
	}

	out := make([]schema.Chunk, 0, len(baseline))
	out = append(out, s.annotate(baseline[0], 0))

	for i := 1; i < len(baseline); i++ {
		chunk, err := s.overlapInto(ctx, baseline[i-1], baseline[i])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk)
	}

	return schema.Reindex(out), nil
}

// overlapInto computes the overlap carried from prev and prepends it to
// cur, enforcing the token bound afterwards.
func (s *AdaptiveOverlapSplitter) overlapInto(ctx context.Context, prev, cur schema.Chunk) (schema.Chunk, error) {
	overlap, err := s.selectOverlap(ctx, prev.Text, cur.Text)
	if err != nil {
		return schema.Chunk{}, err
	}
	if overlap == "" || strings.HasPrefix(cur.Text, overlap) {
		return s.annotate(cur, 0), nil
	}

	// Hard enforcement: the combined chunk must stay within budget, so
	// the overlap gets whatever room cur leaves.
	budget := s.maxTokens - cur.TokenCount - 1
	overlap, err = s.trimOverlap(ctx, overlap, budget)
	if err != nil {
		return schema.Chunk{}, err
	}
	if overlap == "" {
		return s.annotate(cur, 0), nil
	}

	combined := overlap + " " + cur.Text
	tokens, err := s.countTokens(ctx, combined)
	if err != nil {
		return schema.Chunk{}, err
	}
	overlapTokens, err := s.countTokens(ctx, overlap)
	if err != nil {
		return schema.Chunk{}, err
	}

	out := schema.Chunk{
		Text:       combined,
		TokenCount: tokens,
		Metadata:   cur.Metadata,
	}
	return s.annotate(out, overlapTokens), nil
}

// selectOverlap scans sentences backward from the end of prev. A
// sentence is included while the accumulated overlap is below the forced
// minimum, or while its similarity against the preview of next clears
// the threshold; the scan stops at the overlap cap, or once the target
// is met with acceptable similarity, or when inclusion is no longer
// forced and similarity fails. The cap is checked against the token
// count of the joined candidate text, not the sum of sentence counts,
// so the join separators can never push the result past it.
func (s *AdaptiveOverlapSplitter) selectOverlap(ctx context.Context, prev, next string) (string, error) {
	sentences, err := s.segmenter.Segment(ctx, prev, s.language)
	if err != nil {
		return "", fmt.Errorf("sentence segmentation failed: %w", err)
	}
	if len(sentences) == 0 {
		return "", nil
	}

	preview := s.preview(next)
	joined := ""
	accTokens := 0

	for i := len(sentences) - 1; i >= 0; i-- {
		sentence := sentences[i]
		candidate := sentence
		if joined != "" {
			candidate = sentence + " " + joined
		}
		tokens, err := s.countTokens(ctx, candidate)
		if err != nil {
			return "", err
		}
		if tokens > s.maxOverlapTokens {
			break
		}

		forced := accTokens < s.minOverlapTokens
		similar := textutil.JaccardSimilarity(textutil.ExtractPlainText(sentence), preview) >= s.similarityThreshold
		if !forced && !similar {
			break
		}

		joined = candidate
		accTokens = tokens

		if accTokens >= s.overlapTokens && similar {
			break
		}
	}

	return joined, nil
}

// preview returns the fixed-length, markdown-stripped start of next used
// for similarity comparison.
func (s *AdaptiveOverlapSplitter) preview(next string) string {
	plain := textutil.ExtractPlainText(next)
	runes := []rune(plain)
	if len(runes) > s.previewRunes {
		runes = runes[:s.previewRunes]
	}
	return string(runes)
}

// trimOverlap shrinks overlap to fit budget: whole sentences are dropped
// from the front first; if not even one sentence fits, words are taken
// from the end instead.
func (s *AdaptiveOverlapSplitter) trimOverlap(ctx context.Context, overlap string, budget int) (string, error) {
	if budget <= 0 {
		return "", nil
	}
	tokens, err := s.countTokens(ctx, overlap)
	if err != nil {
		return "", err
	}
	if tokens <= budget {
		return overlap, nil
	}

	sentences := textutil.SplitSentences(overlap)
	for len(sentences) > 1 {
		sentences = sentences[1:]
		candidate := strings.Join(sentences, " ")
		if tokens, err = s.countTokens(ctx, candidate); err != nil {
			return "", err
		}
		if tokens <= budget {
			return candidate, nil
		}
	}

	// Word-level fallback: keep the trailing words that fit.
	words := strings.Fields(overlap)
	for len(words) > 0 {
		words = words[1:]
		candidate := strings.Join(words, " ")
		if candidate == "" {
			return "", nil
		}
		if tokens, err = s.countTokens(ctx, candidate); err != nil {
			return "", err
		}
		if tokens <= budget {
			return candidate, nil
		}
	}
	return "", nil
}

// annotate stamps the adaptive-overlap metadata on a chunk.
func (s *AdaptiveOverlapSplitter) annotate(c schema.Chunk, overlapTokens int) schema.Chunk {
	md := c.Metadata.Clone().
		Set(schema.MetaOverlapTokens, overlapTokens).
		Set(schema.MetaAdaptiveOverlap, true)
	return schema.Chunk{Text: c.Text, TokenCount: c.TokenCount, Metadata: md.Build()}
}
