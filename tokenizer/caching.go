package tokenizer

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Counter is the token-counting surface the caching decorator wraps.
// It matches textsplitter.TokenCounter structurally.
type Counter interface {
	Count(ctx context.Context, text string) (int, error)
	Encode(ctx context.Context, text string) ([]int, error)
	Decode(ctx context.Context, ids []int) (string, error)
	Truncate(ctx context.Context, text string, maxTokens int) (string, error)
}

const defaultCacheSize = 4096

// CachingCounter memoizes Count results of an inner counter. The
// splitting strategies probe the same substrings repeatedly during
// binary search, so a small LRU pays for itself quickly. The LRU is
// internally synchronized, which keeps a shared splitter instance safe
// for concurrent Split calls.
type CachingCounter struct {
	inner Counter
	cache *lru.Cache[string, int]
}

// NewCaching wraps inner with an LRU count cache of the given size.
// A non-positive size selects the default.
func NewCaching(inner Counter, size int) (*CachingCounter, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, int](size)
	if err != nil {
		return nil, err
	}
	return &CachingCounter{inner: inner, cache: cache}, nil
}

func (cc *CachingCounter) Count(ctx context.Context, text string) (int, error) {
	if n, ok := cc.cache.Get(text); ok {
		return n, nil
	}
	n, err := cc.inner.Count(ctx, text)
	if err != nil {
		return 0, err
	}
	cc.cache.Add(text, n)
	return n, nil
}

func (cc *CachingCounter) Encode(ctx context.Context, text string) ([]int, error) {
	return cc.inner.Encode(ctx, text)
}

func (cc *CachingCounter) Decode(ctx context.Context, ids []int) (string, error) {
	return cc.inner.Decode(ctx, ids)
}

func (cc *CachingCounter) Truncate(ctx context.Context, text string, maxTokens int) (string, error) {
	return cc.inner.Truncate(ctx, text, maxTokens)
}
