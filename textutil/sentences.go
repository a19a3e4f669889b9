package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Abbreviations that end with a period but do not terminate a sentence.
// Lowercased for lookup; single capital initials ("J. Smith") are handled
// separately.
var abbreviations = map[string]struct{}{
	"mr":     {},
	"mrs":    {},
	"ms":     {},
	"dr":     {},
	"prof":   {},
	"sr":     {},
	"jr":     {},
	"st":     {},
	"vs":     {},
	"etc":    {},
	"e.g":    {},
	"i.e":    {},
	"cf":     {},
	"fig":    {},
	"no":     {},
	"vol":    {},
	"inc":    {},
	"ltd":    {},
	"co":     {},
	"approx": {},
}

// SplitSentences is the regex-free fallback sentence splitter used when
// no segmentation oracle is configured. It breaks on `.`, `!`, or `?`
// followed by whitespace, except after known abbreviations and single
// capital-letter initials. Linguistic exactness is not a goal here; the
// oracle owns that.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Consume a run of terminators (e.g. "?!" or "...").
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		// A boundary needs trailing whitespace or end of input.
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}
		if r == '.' && isAbbreviationAt(runes, i) {
			i = end
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		i = end
		start = end + 1
	}

	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			sentences = append(sentences, tail)
		}
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isAbbreviationAt reports whether the period at runes[i] ends an
// abbreviation or a single capital initial rather than a sentence.
func isAbbreviationAt(runes []rune, i int) bool {
	// Collect the word immediately before the period.
	start := i
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := strings.TrimRight(string(runes[start:i]), ".")
	if word == "" {
		return false
	}

	// Single uppercase letter: an initial like "J." in "J. Smith".
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		if unicode.IsUpper(r) {
			return true
		}
	}

	_, known := abbreviations[strings.ToLower(word)]
	return known
}
