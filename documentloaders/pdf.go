package documentloaders

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
)

// PDFLoader extracts text from a PDF page by page and chunks it with
// the configured splitter. Pages are joined with blank lines so
// paragraph-aware strategies see page boundaries.
type PDFLoader struct {
	path     string
	splitter textsplitter.Splitter
	logger   *slog.Logger
}

func NewPDF(path string, splitter textsplitter.Splitter, logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLoader{path: path, splitter: splitter, logger: logger}
}

func (l *PDFLoader) Load(ctx context.Context) ([]schema.Document, error) {
	text, err := l.extractText()
	if err != nil {
		return nil, err
	}

	chunks, err := l.splitter.Split(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("splitting PDF text from %s: %w", l.path, err)
	}

	docID := uuid.NewString()
	docs := make([]schema.Document, 0, len(chunks))
	for _, chunk := range chunks {
		metadata := chunk.Metadata.ToMap()
		metadata[schema.MetaSourceFile] = l.path
		metadata[schema.MetaDocumentID] = docID
		metadata["token_count"] = chunk.TokenCount
		docs = append(docs, schema.NewDocument(chunk.Text, metadata))
	}
	return docs, nil
}

// extractText concatenates the plain text of every page, separated by
// blank lines so paragraph-aware strategies see page boundaries.
func (l *PDFLoader) extractText() (string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, l.path)
		}
		return "", fmt.Errorf("failed to open PDF %s: %w", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", l.path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read PDF %s: %w", l.path, err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			l.logger.Warn("Skipping null PDF page", "page", i, "path", l.path)
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Warn("Could not extract page text", "page", i, "path", l.path, "error", err)
			continue
		}
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteString("\n\n")
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text extracted from PDF %s", l.path)
	}
	return text, nil
}
