package documentloaders

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
)

// RemoteRepoLoader shallow-clones a remote git repository into a
// temporary directory, chunks its files with a DirectoryLoader, and
// cleans the checkout up afterwards.
type RemoteRepoLoader struct {
	repoURL  string
	splitter textsplitter.Splitter
	logger   *slog.Logger
}

func NewRemoteRepo(repoURL string, splitter textsplitter.Splitter, logger *slog.Logger) *RemoteRepoLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteRepoLoader{
		repoURL:  repoURL,
		splitter: splitter,
		logger:   logger,
	}
}

func (l *RemoteRepoLoader) Load(ctx context.Context) ([]schema.Document, error) {
	tempPath, cleanup, err := l.clone(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	docs, err := NewDirectory(tempPath, l.splitter, WithDirectoryLogger(l.logger)).Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		docs[i].Metadata["original_source_url"] = l.repoURL
	}
	return docs, nil
}

// clone checks the repository out into a temporary directory at depth 1.
// The returned cleanup removes the checkout and is safe to defer even
// when loading fails later.
func (l *RemoteRepoLoader) clone(ctx context.Context) (string, func(), error) {
	tempPath, err := os.MkdirTemp("", "gochunk-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cleanup := func() {
		_ = os.RemoveAll(tempPath)
	}

	l.logger.InfoContext(ctx, "Cloning repository", "url", l.repoURL, "path", tempPath)
	_, err = git.PlainCloneContext(ctx, tempPath, false, &git.CloneOptions{
		URL:   l.repoURL,
		Depth: 1,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone repo %q: %w", l.repoURL, err)
	}

	return tempPath, cleanup, nil
}
