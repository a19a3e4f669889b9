package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata is an ordered, string-keyed map that is frozen once built.
// Iteration and JSON marshaling follow insertion order. A zero Metadata
// is valid and empty.
//
// Metadata values are never mutated after construction; deriving a
// variant (for example during re-indexing) goes through Clone on a
// MetadataBuilder, which copies every entry into a fresh map.
type Metadata struct {
	keys   []string
	values map[string]any
}

// MetadataBuilder accumulates key/value pairs and produces a frozen
// Metadata via Build. Builders are not safe for concurrent use.
type MetadataBuilder struct {
	keys   []string
	values map[string]any
}

func NewMetadataBuilder() *MetadataBuilder {
	return &MetadataBuilder{values: make(map[string]any)}
}

// Set adds or replaces a key. Replacing keeps the key's original position.
func (b *MetadataBuilder) Set(key string, value any) *MetadataBuilder {
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
	return b
}

// Build freezes the accumulated entries. The builder may be reused
// afterwards without affecting the returned Metadata.
func (b *MetadataBuilder) Build() Metadata {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	values := make(map[string]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return Metadata{keys: keys, values: values}
}

// Clone returns a builder pre-populated with m's entries, preserving order.
func (m Metadata) Clone() *MetadataBuilder {
	b := NewMetadataBuilder()
	for _, k := range m.keys {
		b.Set(k, m.values[k])
	}
	return b
}

// Get returns the value for key and whether it is present.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetInt returns the value for key as an int, or 0 if absent or not an int.
func (m Metadata) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

// GetString returns the value for key as a string, or "" if absent.
func (m Metadata) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m Metadata) Len() int {
	return len(m.keys)
}

// ToMap returns a plain map copy of the entries. Ordering is lost; use
// Keys or MarshalJSON when order matters.
func (m Metadata) ToMap() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata key %q: %w", k, err)
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal metadata value for %q: %w", k, err)
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
