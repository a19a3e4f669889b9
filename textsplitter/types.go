package textsplitter

import "errors"

// Default configuration values. Overlap defaults to zero; callers opt in
// to duplication explicitly.
const (
	defaultMaxTokens = 512
	defaultMinTokens = 0

	// Adaptive overlap defaults.
	defaultSimilarityThreshold = 0.3
	defaultPreviewRunes        = 240
)

var (
	ErrInvalidChunkSize       = errors.New("invalid chunk size")
	ErrInvalidOverlap         = errors.New("invalid overlap")
	ErrTokenizerNotConfigured = errors.New("token counter is not configured")
	ErrTokenization           = errors.New("tokenization failed")
	ErrNoProgress             = errors.New("splitter made no progress")
)
