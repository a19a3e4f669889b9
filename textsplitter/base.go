package textsplitter

import (
	"context"
	"fmt"
	"log/slog"
)

// base carries the configuration and tokenizer binding shared by every
// strategy, plus the binary-search boundary primitives. It is embedded,
// never used on its own.
type base struct {
	counter       TokenCounter
	logger        *slog.Logger
	maxTokens     int
	overlapTokens int
	minTokens     int
}

func newBase(counter TokenCounter, o *options) (base, error) {
	if counter == nil {
		return base{}, ErrTokenizerNotConfigured
	}
	if o.maxTokens <= 0 {
		return base{}, fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidChunkSize, o.maxTokens)
	}
	if o.overlapTokens < 0 {
		return base{}, fmt.Errorf("%w: overlap tokens cannot be negative: %d", ErrInvalidOverlap, o.overlapTokens)
	}
	if o.overlapTokens >= o.maxTokens {
		return base{}, fmt.Errorf("%w: overlap tokens (%d) must be less than max tokens (%d)",
			ErrInvalidOverlap, o.overlapTokens, o.maxTokens)
	}
	if o.minTokens < 0 {
		return base{}, fmt.Errorf("%w: min tokens cannot be negative: %d", ErrInvalidChunkSize, o.minTokens)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	return base{
		counter:       counter,
		logger:        logger,
		maxTokens:     o.maxTokens,
		overlapTokens: o.overlapTokens,
		minTokens:     o.minTokens,
	}, nil
}

func defaultOptions(opts []Option) *options {
	o := &options{
		maxTokens:           defaultMaxTokens,
		minTokens:           defaultMinTokens,
		similarityThreshold: defaultSimilarityThreshold,
		previewRunes:        defaultPreviewRunes,
		keepSeparator:       true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// countTokens consults the oracle, wrapping any failure so callers can
// errors.Is against ErrTokenization while still seeing the cause.
func (b *base) countTokens(ctx context.Context, text string) (int, error) {
	n, err := b.counter.Count(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenization, err)
	}
	return n, nil
}

// maxPrefix finds the longest rune prefix of runes whose token count
// stays within budget, via binary search over the rune length. Token
// count is not proportional to character count, so every midpoint costs
// one oracle call. When even a single rune exceeds the budget, that rune
// is returned anyway: indivisible input is emitted oversized, never
// dropped.
func (b *base) maxPrefix(ctx context.Context, runes []rune, budget int) (length, tokens int, err error) {
	lo, hi := 1, len(runes)
	bestLen, bestTokens := 0, 0

	for lo <= hi {
		mid := (lo + hi) / 2
		n, err := b.countTokens(ctx, string(runes[:mid]))
		if err != nil {
			return 0, 0, err
		}
		if n <= budget {
			bestLen, bestTokens = mid, n
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if bestLen == 0 {
		n, err := b.countTokens(ctx, string(runes[:1]))
		if err != nil {
			return 0, 0, err
		}
		return 1, n, nil
	}
	return bestLen, bestTokens, nil
}

// maxSuffix is the mirror of maxPrefix: the longest rune suffix within
// budget. Unlike maxPrefix it may legitimately return zero, meaning no
// overlap fits.
func (b *base) maxSuffix(ctx context.Context, runes []rune, budget int) (length, tokens int, err error) {
	if budget <= 0 {
		return 0, 0, nil
	}

	lo, hi := 1, len(runes)
	bestLen, bestTokens := 0, 0

	for lo <= hi {
		mid := (lo + hi) / 2
		n, err := b.countTokens(ctx, string(runes[len(runes)-mid:]))
		if err != nil {
			return 0, 0, err
		}
		if n <= budget {
			bestLen, bestTokens = mid, n
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return bestLen, bestTokens, nil
}
