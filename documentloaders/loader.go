// Package documentloaders feeds source content into the chunking
// engine: plain files (streamed lazily), directory trees, remote git
// repositories, PDFs, and command output. Loaders produce
// schema.Document values; streaming loaders emit schema.Chunk values
// directly through an injected splitter.
package documentloaders

import (
	"context"
	"errors"

	"github.com/sevigo/gochunk/schema"
)

// Loader retrieves documents from a source. Implementations own the
// source-specific logic; the document format stays uniform for
// downstream splitting.
type Loader interface {
	Load(ctx context.Context) ([]schema.Document, error)
}

// ErrFileNotFound marks a missing input file, distinct from other I/O
// failures so callers can give a precise diagnostic.
var ErrFileNotFound = errors.New("input file not found")
