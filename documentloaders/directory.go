package documentloaders

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
)

// DirectoryLoader walks a directory tree (typically a checked-out
// repository), chunks every readable text file with the configured
// splitter, and returns one document per chunk. Build output, dependency
// directories, and binary files are skipped.
type DirectoryLoader struct {
	path     string
	splitter textsplitter.Splitter
	logger   *slog.Logger
}

// DirectoryLoaderOption configures a DirectoryLoader.
type DirectoryLoaderOption func(*DirectoryLoader)

// WithDirectoryLogger sets the loader's logger.
func WithDirectoryLogger(logger *slog.Logger) DirectoryLoaderOption {
	return func(l *DirectoryLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewDirectory(path string, splitter textsplitter.Splitter, opts ...DirectoryLoaderOption) *DirectoryLoader {
	loader := &DirectoryLoader{
		path:     path,
		splitter: splitter,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

func (l *DirectoryLoader) Load(ctx context.Context) ([]schema.Document, error) {
	l.logger.Info("Starting directory load", "path", l.path)

	var documents []schema.Document
	err := filepath.WalkDir(l.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			l.logger.Warn("Could not stat file, skipping", "path", path, "error", err)
			return nil
		}
		if shouldSkipFile(path, info) {
			return nil
		}

		docs := l.processFile(ctx, path)
		documents = append(documents, docs...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Directory load completed", "path", l.path, "total_documents", len(documents))
	return documents, nil
}

func (l *DirectoryLoader) processFile(ctx context.Context, path string) []schema.Document {
	contentBytes, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("Cannot read file, skipping", "path", path, "error", err)
		return nil
	}

	relPath, err := filepath.Rel(l.path, path)
	if err != nil {
		relPath = path
	}

	chunks, err := l.splitter.Split(ctx, string(contentBytes))
	if err != nil {
		l.logger.Warn("Splitting failed, treating as single document", "path", path, "error", err)
		return []schema.Document{schema.NewDocument(string(contentBytes), map[string]any{
			schema.MetaSourceFile: relPath,
		})}
	}

	docID := uuid.NewString()
	docs := make([]schema.Document, 0, len(chunks))
	for _, chunk := range chunks {
		metadata := chunk.Metadata.ToMap()
		metadata[schema.MetaSourceFile] = relPath
		metadata[schema.MetaDocumentID] = docID
		metadata["token_count"] = chunk.TokenCount
		docs = append(docs, schema.NewDocument(chunk.Text, metadata))
	}
	return docs
}

// shouldSkipDir excludes version control, dependency, build output, and
// editor directories from the walk.
func shouldSkipDir(name string) bool {
	skipDirs := []string{
		".git", ".svn", ".hg",
		"vendor", "node_modules", "__pycache__",
		"build", "dist", "target", "out", "bin",
		".vscode", ".idea", ".vs",
	}
	return slices.Contains(skipDirs, name)
}

// shouldSkipFile excludes binaries and very large files. PDFs are also
// skipped here; PDFLoader handles those explicitly.
func shouldSkipFile(path string, info fs.FileInfo) bool {
	const maxFileSize = 10 * 1024 * 1024
	if info.Size() > maxFileSize {
		return true
	}

	ext := strings.ToLower(filepath.Ext(path))
	binaryExts := map[string]bool{
		".exe": true, ".dll": true, ".so": true, ".dylib": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".bmp": true, ".tiff": true, ".svg": true, ".ico": true,
		".zip": true, ".tar": true, ".gz": true, ".rar": true,
		".7z": true, ".bz2": true, ".xz": true,
		".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
		".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
		".ppt": true, ".pptx": true,
		".bin": true, ".dat": true, ".db": true, ".sqlite": true,
		".pdf": true,
	}
	return binaryExts[ext]
}
