package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/schema"
)

func TestMetadataOrdering(t *testing.T) {
	md := schema.NewMetadataBuilder().
		Set("zebra", 1).
		Set("alpha", 2).
		Set("mango", 3).
		Build()

	assert.Equal(t, []string{"zebra", "alpha", "mango"}, md.Keys())

	raw, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zebra":1,"alpha":2,"mango":3}`, string(raw))
	// Order is part of the contract, not just content.
	assert.Equal(t, `{"zebra":1,"alpha":2,"mango":3}`, string(raw))
}

func TestMetadataSetKeepsPosition(t *testing.T) {
	md := schema.NewMetadataBuilder().
		Set("a", 1).
		Set("b", 2).
		Set("a", 10).
		Build()

	assert.Equal(t, []string{"a", "b"}, md.Keys())
	v, ok := md.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestChunkWithIndexDoesNotMutate(t *testing.T) {
	original := schema.NewChunk("hello", 1, schema.NewMetadataBuilder().Set(schema.MetaIndex, 0))
	derived := original.WithIndex(7)

	assert.Equal(t, 0, original.Index())
	assert.Equal(t, 7, derived.Index())
	assert.Equal(t, original.Text, derived.Text)
	assert.Equal(t, original.TokenCount, derived.TokenCount)
}

func TestChunkWithIndexOnUnindexed(t *testing.T) {
	chunk := schema.NewChunk("x", 1, nil)
	assert.Equal(t, -1, chunk.Index())
	assert.Equal(t, 3, chunk.WithIndex(3).Index())
}

func TestChunkToMap(t *testing.T) {
	chunk := schema.NewChunk("body", 4, schema.NewMetadataBuilder().Set("source_file", "a.txt"))
	m := chunk.ToMap()

	assert.Equal(t, "body", m["text"])
	assert.Equal(t, 4, m["token_count"])
	metadata, ok := m["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a.txt", metadata["source_file"])
}

func TestReindex(t *testing.T) {
	chunks := []schema.Chunk{
		schema.NewChunk("a", 1, schema.NewMetadataBuilder().Set(schema.MetaIndex, 9)),
		schema.NewChunk("b", 1, nil),
		schema.NewChunk("c", 1, schema.NewMetadataBuilder().Set(schema.MetaIndex, 1)),
	}

	out := schema.Reindex(chunks)
	for i, c := range out {
		assert.Equal(t, i, c.Index())
	}
	// Inputs are untouched.
	assert.Equal(t, 9, chunks[0].Index())
}
