package textsplitter

import (
	"context"
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// DefaultSeparators is the recursive splitter's separator hierarchy,
// coarsest to finest. The trailing empty string means character level:
// decomposition always terminates.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "? ", "! ", " ", ""}

// RecursiveSplitter decomposes text along an ordered separator list. A
// separator absent from the text is skipped; a part still exceeding the
// token budget is re-decomposed with the remaining separators. The
// resulting atomic units are then greedily packed into chunks. An atomic
// unit that alone exceeds the budget (possible with a custom separator
// list lacking the character level) is emitted as its own oversized
// chunk.
type RecursiveSplitter struct {
	base
	separators    []string
	keepSeparator bool
}

var _ Splitter = (*RecursiveSplitter)(nil)

func NewRecursive(counter TokenCounter, opts ...Option) (*RecursiveSplitter, error) {
	o := defaultOptions(opts)
	b, err := newBase(counter, o)
	if err != nil {
		return nil, err
	}

	separators := o.separators
	if separators == nil {
		separators = DefaultSeparators
	}

	return &RecursiveSplitter{
		base:          b,
		separators:    separators,
		keepSeparator: o.keepSeparator,
	}, nil
}

func (s *RecursiveSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	whole, err := s.countTokens(ctx, text)
	if err != nil {
		return nil, err
	}
	if whole <= s.maxTokens {
		md := schema.NewMetadataBuilder().Set(schema.MetaIndex, 0)
		return []schema.Chunk{schema.NewChunk(text, whole, md)}, nil
	}

	units, err := s.decompose(ctx, text, s.separators)
	if err != nil {
		return nil, err
	}

	// Units already carry their separators (or lost them deliberately),
	// so packing joins with nothing or a single space.
	joiner := ""
	if !s.keepSeparator {
		joiner = " "
	}
	joinerTokens := 0
	if joiner != "" {
		joinerTokens, err = s.countTokens(ctx, joiner)
		if err != nil {
			return nil, err
		}
	}

	groups, err := s.packSegments(ctx, units, joiner, joinerTokens, nil)
	if err != nil {
		return nil, err
	}

	chunks := make([]schema.Chunk, 0, len(groups))
	for _, g := range groups {
		text := strings.TrimSpace(g.text)
		if text == "" {
			continue
		}
		tokens := g.tokens
		if text != g.text {
			if tokens, err = s.countTokens(ctx, text); err != nil {
				return nil, err
			}
		}
		md := schema.NewMetadataBuilder().
			Set(schema.MetaIndex, 0).
			Set(schema.MetaSegmentCount, len(g.indices))
		chunks = append(chunks, schema.NewChunk(text, tokens, md))
	}

	return schema.Reindex(chunks), nil
}

// decompose recursively splits text into atomic units, none exceeding
// the token budget unless the separator list ran out first. Recursion
// depth is bounded by the length of the separator list: every level
// strips one separator.
func (s *RecursiveSplitter) decompose(ctx context.Context, text string, separators []string) ([]segment, error) {
	if len(separators) == 0 {
		n, err := s.countTokens(ctx, text)
		if err != nil {
			return nil, err
		}
		return []segment{{text: text, tokens: n}}, nil
	}

	sep := separators[0]
	rest := separators[1:]

	if sep == "" {
		// Character level: each rune is its own unit.
		return s.toSegments(ctx, strings.Split(text, ""))
	}

	if !strings.Contains(text, sep) {
		return s.decompose(ctx, text, rest)
	}

	parts := strings.Split(text, sep)
	if s.keepSeparator {
		for i := 0; i < len(parts)-1; i++ {
			parts[i] += sep
		}
	}

	var units []segment
	for _, part := range parts {
		if part == "" {
			continue
		}
		n, err := s.countTokens(ctx, part)
		if err != nil {
			return nil, err
		}
		if n > s.maxTokens {
			sub, err := s.decompose(ctx, part, rest)
			if err != nil {
				return nil, err
			}
			units = append(units, sub...)
			continue
		}
		units = append(units, segment{text: part, tokens: n})
	}

	return units, nil
}
