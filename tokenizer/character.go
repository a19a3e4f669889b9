package tokenizer

import "context"

// CharacterCounter treats every rune as one token. It exists for tests,
// where token arithmetic must be predictable, and as a zero-dependency
// fallback when no subword vocabulary is available.
type CharacterCounter struct{}

func NewCharacter() *CharacterCounter {
	return &CharacterCounter{}
}

func (c *CharacterCounter) Count(_ context.Context, text string) (int, error) {
	return len([]rune(text)), nil
}

func (c *CharacterCounter) Encode(_ context.Context, text string) ([]int, error) {
	runes := []rune(text)
	ids := make([]int, len(runes))
	for i, r := range runes {
		ids[i] = int(r)
	}
	return ids, nil
}

func (c *CharacterCounter) Decode(_ context.Context, ids []int) (string, error) {
	runes := make([]rune, len(ids))
	for i, id := range ids {
		runes[i] = rune(id)
	}
	return string(runes), nil
}

func (c *CharacterCounter) Truncate(_ context.Context, text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return "", nil
	}
	runes := []rune(text)
	if len(runes) <= maxTokens {
		return text, nil
	}
	return string(runes[:maxTokens]), nil
}
