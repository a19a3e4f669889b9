package textsplitter

import (
	"context"
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// segment is one unit of decomposition (sentence, paragraph, section, or
// separator-delimited part) together with its token count. Segments are
// internal; only the packed chunks are exposed.
type segment struct {
	text   string
	tokens int
}

// packedGroup is one output unit of packSegments: either a merged run of
// segments, or (when sub is non-nil) the chunks an oversized segment was
// delegated to.
type packedGroup struct {
	text    string
	tokens  int
	indices []int
	sub     []schema.Chunk
}

// oversizedFunc handles a single segment whose own token count exceeds
// the maximum. It receives the segment's index so callers can attach
// positional metadata.
type oversizedFunc func(ctx context.Context, index int, seg segment) ([]schema.Chunk, error)

// packSegments greedily merges ordered segments into groups bounded by
// maxTokens, joining segment texts with sep (whose token cost is
// sepTokens). After flushing a group, the next one is seeded with a
// carried tail: segments taken back-to-front from the flushed group
// while their cumulative token count stays within overlapTokens.
//
// A segment that alone exceeds maxTokens is never merged: the current
// group is flushed, the segment goes through oversized (or becomes its
// own oversized group when oversized is nil), and packing restarts with
// an empty group.
func (b *base) packSegments(
	ctx context.Context,
	segs []segment,
	sep string,
	sepTokens int,
	oversized oversizedFunc,
) ([]packedGroup, error) {
	var groups []packedGroup
	var group []segment
	var groupIdx []int
	groupTokens := 0

	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		texts := make([]string, len(group))
		for i, s := range group {
			texts[i] = s.text
		}
		text := strings.Join(texts, sep)
		tokens, err := b.countTokens(ctx, text)
		if err != nil {
			return err
		}
		groups = append(groups, packedGroup{
			text:    text,
			tokens:  tokens,
			indices: append([]int(nil), groupIdx...),
		})
		return nil
	}

	for i, seg := range segs {
		if seg.tokens > b.maxTokens {
			if err := flush(); err != nil {
				return nil, err
			}
			if oversized != nil {
				sub, err := oversized(ctx, i, seg)
				if err != nil {
					return nil, err
				}
				groups = append(groups, packedGroup{indices: []int{i}, sub: sub})
			} else {
				// Documented carve-out: an indivisible unit larger than
				// the budget is emitted as its own oversized chunk.
				groups = append(groups, packedGroup{text: seg.text, tokens: seg.tokens, indices: []int{i}})
			}
			group, groupIdx, groupTokens = nil, nil, 0
			continue
		}

		cost := seg.tokens
		if len(group) > 0 {
			cost += sepTokens
		}

		if len(group) > 0 && groupTokens+cost > b.maxTokens {
			flushed := group
			flushedIdx := groupIdx
			if err := flush(); err != nil {
				return nil, err
			}
			group, groupIdx, groupTokens = b.carryTail(flushed, flushedIdx, sepTokens, seg.tokens)
			cost = seg.tokens
			if len(group) > 0 {
				cost += sepTokens
			}
		}

		group = append(group, seg)
		groupIdx = append(groupIdx, i)
		groupTokens += cost
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return groups, nil
}

// carryTail selects the overlap seed for the group following a flush:
// segments from the end of the flushed group, added back-to-front, until
// their cumulative token count would exceed overlapTokens. The carry is
// additionally trimmed from the front so that the upcoming segment still
// fits under maxTokens alongside it.
func (b *base) carryTail(flushed []segment, flushedIdx []int, sepTokens, nextTokens int) ([]segment, []int, int) {
	if b.overlapTokens <= 0 {
		return nil, nil, 0
	}

	var tail []segment
	var tailIdx []int
	tailTokens := 0

	for i := len(flushed) - 1; i >= 0; i-- {
		cost := flushed[i].tokens
		if len(tail) > 0 {
			cost += sepTokens
		}
		if tailTokens+cost > b.overlapTokens {
			break
		}
		tail = append([]segment{flushed[i]}, tail...)
		tailIdx = append([]int{flushedIdx[i]}, tailIdx...)
		tailTokens += cost
	}

	// Drop carried segments from the front while the next segment would
	// push the group past the bound.
	for len(tail) > 0 && tailTokens+sepTokens+nextTokens > b.maxTokens {
		tailTokens -= tail[0].tokens
		if len(tail) > 1 {
			tailTokens -= sepTokens
		}
		tail = tail[1:]
		tailIdx = tailIdx[1:]
	}

	return tail, tailIdx, tailTokens
}

// toSegments runs the oracle over each part and pairs text with count,
// skipping empty parts.
func (b *base) toSegments(ctx context.Context, parts []string) ([]segment, error) {
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		n, err := b.countTokens(ctx, p)
		if err != nil {
			return nil, err
		}
		segs = append(segs, segment{text: p, tokens: n})
	}
	return segs, nil
}
