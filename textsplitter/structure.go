package textsplitter

import (
	"context"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textutil"
)

var (
	headerRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	codeDeclRe = regexp.MustCompile(`^\s*(def |class |module |function |func |const |let |var |public |private |protected )`)
)

const frontMatterSeparator = "---"

// section is one structural unit of a markdown document: a header plus
// the lines that follow it up to the next header. Fenced code blocks are
// captured verbatim, so a fence can never open in one section and close
// in another.
type section struct {
	header      string
	level       int
	text        string
	frontMatter map[string]any
}

// StructureAwareSplitter chunks documents along their visible structure.
// Markdown is split at headers with fenced code blocks kept whole; code
// is split at declaration boundaries; anything else is handed wholesale
// to a SemanticSplitter. A markdown section too large for the token
// budget is itself split semantically, with its header recorded on each
// resulting sub-chunk.
type StructureAwareSplitter struct {
	base
	semantic *SemanticSplitter
}

var _ Splitter = (*StructureAwareSplitter)(nil)

func NewStructureAware(counter TokenCounter, opts ...Option) (*StructureAwareSplitter, error) {
	o := defaultOptions(opts)
	b, err := newBase(counter, o)
	if err != nil {
		return nil, err
	}

	semantic, err := NewSemantic(counter, opts...)
	if err != nil {
		return nil, err
	}

	return &StructureAwareSplitter{base: b, semantic: semantic}, nil
}

func (s *StructureAwareSplitter) Split(ctx context.Context, text string) ([]schema.Chunk, error) {
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

	switch {
	case textutil.IsMarkdown(text):
		return s.splitMarkdown(ctx, text)
	case textutil.IsCodeLike(text):
		return s.splitCode(ctx, text)
	default:
		return s.semantic.Split(ctx, text)
	}
}

// splitMarkdown scans the document into sections, packs whole sections
// into chunks, and defers any section exceeding the budget to the
// semantic splitter.
func (s *StructureAwareSplitter) splitMarkdown(ctx context.Context, text string) ([]schema.Chunk, error) {
	sections := scanSections(text)

	segs := make([]segment, len(sections))
	for i, sec := range sections {
		n, err := s.countTokens(ctx, sec.text)
		if err != nil {
			return nil, err
		}
		segs[i] = segment{text: sec.text, tokens: n}
	}

	sepTokens, err := s.countTokens(ctx, "\n\n")
	if err != nil {
		return nil, err
	}

	groups, err := s.packSegments(ctx, segs, "\n\n", sepTokens, func(ctx context.Context, i int, seg segment) ([]schema.Chunk, error) {
		sec := sections[i]
		s.logger.Debug("markdown section exceeds token budget, splitting semantically",
			"header", sec.header, "tokens", seg.tokens, "max", s.maxTokens)

		sub, err := s.splitOversizedSection(ctx, seg.text)
		if err != nil {
			return nil, err
		}
		annotated := make([]schema.Chunk, len(sub))
		for j, c := range sub {
			annotated[j] = c.WithMetadata(schema.MetaStructure, map[string]any{
				"sub_chunk": map[string]any{
					"header": sec.header,
					"level":  sec.level,
				},
			})
		}
		return annotated, nil
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

		var headers []string
		var levels []int
		var frontMatter map[string]any
		for _, i := range g.indices {
			sec := sections[i]
			if sec.header != "" {
				headers = append(headers, sec.header)
				levels = append(levels, sec.level)
			}
			if sec.frontMatter != nil {
				frontMatter = sec.frontMatter
			}
		}

		structure := map[string]any{
			"headers":       headers,
			"levels":        levels,
			"section_count": len(g.indices),
		}
		md := schema.NewMetadataBuilder().
			Set(schema.MetaIndex, 0).
			Set(schema.MetaStructure, structure)
		if frontMatter != nil {
			md.Set("frontmatter", frontMatter)
		}
		chunks = append(chunks, schema.NewChunk(g.text, g.tokens, md))
	}

	return schema.Reindex(chunks), nil
}

// splitOversizedSection breaks a section that alone exceeds the budget.
// Prose runs go through the semantic splitter; fenced code blocks stay
// atomic — emitted as one chunk, oversized if need be — so a fence is
// never split unless the block alone exceeds the budget.
func (s *StructureAwareSplitter) splitOversizedSection(ctx context.Context, text string) ([]schema.Chunk, error) {
	var chunks []schema.Chunk
	for _, part := range splitFencedParts(text) {
		if strings.TrimSpace(part.text) == "" {
			continue
		}
		if !part.fence {
			sub, err := s.semantic.Split(ctx, part.text)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, sub...)
			continue
		}
		tokens, err := s.countTokens(ctx, part.text)
		if err != nil {
			return nil, err
		}
		if tokens > s.maxTokens {
			s.logger.Debug("fenced code block alone exceeds token budget, emitting oversized",
				"tokens", tokens, "max", s.maxTokens)
		}
		md := schema.NewMetadataBuilder().Set(schema.MetaIndex, 0)
		chunks = append(chunks, schema.NewChunk(part.text, tokens, md))
	}
	return chunks, nil
}

type fencedPart struct {
	text  string
	fence bool
}

// splitFencedParts separates a span into alternating prose and fenced
// code block runs, each block verbatim including its fence lines.
func splitFencedParts(text string) []fencedPart {
	lines := textutil.SplitLines(text)
	var parts []fencedPart
	var buf []string
	inFence := false

	flush := func(fence bool) {
		if len(buf) == 0 {
			return
		}
		parts = append(parts, fencedPart{text: strings.Join(buf, "\n"), fence: fence})
		buf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inFence {
			buf = append(buf, line)
			if strings.HasPrefix(trimmed, "```") {
				flush(true)
				inFence = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			flush(false)
			inFence = true
			buf = append(buf, line)
			continue
		}
		buf = append(buf, line)
	}
	flush(inFence)

	return parts
}

// scanSections walks the document line by line. A 1–6 `#` header opens a
// new section; a code fence switches to verbatim capture until the
// closing fence or end of input; a leading `---` block becomes a
// front-matter section with its properties parsed as YAML.
func scanSections(text string) []section {
	lines := textutil.SplitLines(text)
	var sections []section

	current := section{}
	var buf []string
	inFence := false
	fenceMarker := ""

	flush := func() {
		body := strings.TrimRight(strings.Join(buf, "\n"), "\n")
		if strings.TrimSpace(body) == "" && current.header == "" && current.frontMatter == nil {
			buf = nil
			return
		}
		current.text = body
		sections = append(sections, current)
		current = section{}
		buf = nil
	}

	start := 0
	if len(lines) > 2 && strings.TrimSpace(lines[0]) == frontMatterSeparator {
		if fm, end := scanFrontMatter(lines); end > 0 {
			sections = append(sections, fm)
			start = end + 1
		}
	}

	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)

		if inFence {
			buf = append(buf, line)
			if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			inFence = true
			fenceMarker = "```"
			buf = append(buf, line)
			continue
		}

		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			current.header = strings.TrimSpace(m[2])
			current.level = len(m[1])
			buf = append(buf, line)
			continue
		}

		buf = append(buf, line)
	}
	flush()

	return sections
}

// scanFrontMatter captures a leading `---` delimited block. Returns the
// closing line index, or 0 when the block never closes.
func scanFrontMatter(lines []string) (section, int) {
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != frontMatterSeparator {
			continue
		}
		body := strings.Join(lines[1:i], "\n")
		props := make(map[string]any)
		if err := yaml.Unmarshal([]byte(body), &props); err != nil {
			// Malformed front matter is kept as plain text.
			props = nil
		}
		return section{
			text:        strings.Join(lines[:i+1], "\n"),
			frontMatter: props,
		}, i
	}
	return section{}, 0
}

// splitCode groups lines into blocks at declaration-keyword boundaries
// and splits each block semantically.
func (s *StructureAwareSplitter) splitCode(ctx context.Context, text string) ([]schema.Chunk, error) {
	lines := textutil.SplitLines(text)

	var blocks []string
	var buf []string
	for _, line := range lines {
		if codeDeclRe.MatchString(line) && len(buf) > 0 {
			blocks = append(blocks, strings.Join(buf, "\n"))
			buf = nil
		}
		buf = append(buf, line)
	}
	if len(buf) > 0 {
		blocks = append(blocks, strings.Join(buf, "\n"))
	}

	var chunks []schema.Chunk
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		sub, err := s.semantic.Split(ctx, block)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, sub...)
	}

	return schema.Reindex(chunks), nil
}
