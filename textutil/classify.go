package textutil

import (
	"regexp"
	"strings"
)

// codeLineRatioThreshold is the fraction of code-looking lines above
// which a document is classified as code.
const codeLineRatioThreshold = 0.3

var (
	mdHeaderRe = regexp.MustCompile(`^#{1,6}\s+\S`)
	mdListRe   = regexp.MustCompile(`^\s*([-*+]|\d+\.)\s+\S`)
	mdLinkRe   = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)

	codeDeclRe     = regexp.MustCompile(`^\s*(def |class |module |function |func |const |let |var |public |private |protected |import |from |package |return |if |for |while |elif |else|try|except|switch )`)
	codeBracketRe  = regexp.MustCompile(`[{}\[\]();]\s*$`)
	codeOperatorRe = regexp.MustCompile(`(:=|==|!=|<=|>=|->|=>|\+=|-=|\|\||&&|::)`)
	codeAssignRe   = regexp.MustCompile(`^\s*[\w.\[\]]+\s*=\s*\S`)
)

// IsMarkdown reports whether text looks like a markdown document: at
// least one line carrying a header, list item, code fence, or link.
func IsMarkdown(text string) bool {
	for _, line := range SplitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if mdHeaderRe.MatchString(trimmed) ||
			mdListRe.MatchString(line) ||
			strings.HasPrefix(trimmed, "```") ||
			mdLinkRe.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// IsCodeLike reports whether text looks like source code: the fraction
// of non-blank lines matching declaration, bracket, indentation, or
// operator patterns exceeds codeLineRatioThreshold.
func IsCodeLike(text string) bool {
	lines := SplitLines(text)
	total := 0
	codeLike := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		total++
		if isCodeLine(line) {
			codeLike++
		}
	}

	if total == 0 {
		return false
	}
	return float64(codeLike)/float64(total) > codeLineRatioThreshold
}

func isCodeLine(line string) bool {
	if codeDeclRe.MatchString(line) {
		return true
	}
	if codeBracketRe.MatchString(line) {
		return true
	}
	if codeOperatorRe.MatchString(line) || codeAssignRe.MatchString(line) {
		return true
	}
	// Deep indentation is a strong code signal in otherwise plain text.
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}
