package textutil

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Shared goldmark instance; parsing is read-only so one parser serves
// all callers.
var (
	mdOnce   sync.Once
	mdParser goldmark.Markdown
)

func markdownParser() goldmark.Markdown {
	mdOnce.Do(func() {
		mdParser = goldmark.New()
	})
	return mdParser
}

// ExtractPlainText strips markdown formatting from s by walking the
// goldmark AST and collecting only text content. Headers, emphasis
// markers, link targets, and fence delimiters are dropped; code block
// contents are kept. Used to normalize text before lexical similarity
// comparison, where formatting tokens would skew word-set overlap.
func ExtractPlainText(s string) string {
	source := []byte(s)
	doc := markdownParser().Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.AutoLink:
			sb.Write(node.URL(source))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				sb.Write(seg.Value(source))
			}
		case *ast.CodeSpan:
			// Children are Text nodes; handled by the Text case.
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
