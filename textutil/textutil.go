// Package textutil provides stateless text helpers shared by the
// splitting strategies: normalization, whitespace cleanup, paragraph and
// sentence segmentation fallbacks, content classification heuristics, and
// lexical similarity measures.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]+`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
	paragraphRe  = regexp.MustCompile(`\n[ \t]*\n`)
)

// NormalizeUnicode returns the NFC form of s so that token counts and
// offsets are stable across differently composed inputs.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// CleanWhitespace canonicalizes line endings, collapses runs of spaces
// and tabs, caps consecutive blank lines at one, and trims the result.
func CleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// SplitParagraphs splits s on blank lines, trimming each paragraph and
// dropping empty ones.
func SplitParagraphs(s string) []string {
	parts := paragraphRe.Split(s, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// SplitLines splits s on newlines without trimming, so that callers can
// reconstruct the original spacing.
func SplitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// Words returns the lowercased word tokens of s, stripping punctuation
// from both ends of each token.
func Words(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// JaccardSimilarity returns |A∩B| / |A∪B| over the word sets of a and b.
// Two empty inputs score 0.
func JaccardSimilarity(a, b string) float64 {
	setA := make(map[string]struct{})
	for _, w := range Words(a) {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{})
	for _, w := range Words(b) {
		setB[w] = struct{}{}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TrailingOverlap returns the length in bytes of the longest suffix of
// prev that is also a prefix of next. Used to detect content already
// duplicated across chunk boundaries.
func TrailingOverlap(prev, next string) int {
	maxLen := len(prev)
	if len(next) < maxLen {
		maxLen = len(next)
	}
	for l := maxLen; l > 0; l-- {
		if prev[len(prev)-l:] == next[:l] {
			return l
		}
	}
	return 0
}
