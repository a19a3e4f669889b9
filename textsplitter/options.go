package textsplitter

import "log/slog"

// options holds configuration shared by all strategies. Strategy-specific
// fields are ignored by strategies that do not use them.
type options struct {
	maxTokens     int
	overlapTokens int
	minTokens     int
	logger        *slog.Logger

	// Semantic / adaptive.
	segmenter     SentenceSegmenter
	language      string
	paragraphMode bool

	// Recursive.
	separators    []string
	keepSeparator bool

	// Adaptive overlap.
	similarityThreshold float64
	minOverlapTokens    int
	maxOverlapTokens    int
	previewRunes        int
}

// Option configures a strategy at construction time.
type Option func(*options)

// WithMaxTokens sets the hard upper bound on chunk size in tokens.
func WithMaxTokens(n int) Option {
	return func(o *options) { o.maxTokens = n }
}

// WithOverlapTokens sets how many trailing tokens are carried into the
// next chunk. Must stay below the maximum chunk size.
func WithOverlapTokens(n int) Option {
	return func(o *options) { o.overlapTokens = n }
}

// WithMinTokens sets the configured minimum chunk size. The value
// participates in construction-time validation only; packing never pads
// or merges chunks to reach it, so a trailing chunk may come out smaller.
func WithMinTokens(n int) Option {
	return func(o *options) { o.minTokens = n }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSegmenter injects a sentence-boundary oracle. Without one, the
// built-in punctuation heuristic is used.
func WithSegmenter(seg SentenceSegmenter) Option {
	return func(o *options) { o.segmenter = seg }
}

// WithLanguage sets the language hint passed to the segmenter.
func WithLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// WithParagraphMode makes the semantic splitter pack whole paragraphs
// instead of sentences.
func WithParagraphMode() Option {
	return func(o *options) { o.paragraphMode = true }
}

// WithSeparators sets the recursive splitter's separator hierarchy,
// ordered coarsest to finest. An empty string means character level.
func WithSeparators(seps []string) Option {
	return func(o *options) {
		if len(seps) > 0 {
			o.separators = seps
		}
	}
}

// WithKeepSeparator controls whether separators are reattached to the
// preceding part during recursive decomposition.
func WithKeepSeparator(keep bool) Option {
	return func(o *options) { o.keepSeparator = keep }
}

// WithSimilarityThreshold sets the minimum Jaccard similarity for a
// sentence to be included in adaptive overlap without being forced.
func WithSimilarityThreshold(t float64) Option {
	return func(o *options) { o.similarityThreshold = t }
}

// WithMinOverlapTokens sets the overlap budget below which sentences are
// always included during adaptive overlap.
func WithMinOverlapTokens(n int) Option {
	return func(o *options) { o.minOverlapTokens = n }
}

// WithMaxOverlapTokens caps the adaptive overlap regardless of
// similarity.
func WithMaxOverlapTokens(n int) Option {
	return func(o *options) { o.maxOverlapTokens = n }
}

// WithPreviewRunes sets the length of the next-chunk preview used for
// similarity comparison.
func WithPreviewRunes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.previewRunes = n
		}
	}
}
