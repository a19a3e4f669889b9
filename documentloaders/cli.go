package documentloaders

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sevigo/gochunk/schema"
	"github.com/sevigo/gochunk/textsplitter"
)

// CommandLoader runs a command and chunks its stdout. Useful for
// feeding tool output (man pages, generated reports, `git log`) into an
// indexing pipeline without a temp file in between.
type CommandLoader struct {
	command  string
	args     []string
	splitter textsplitter.Splitter
}

func NewCommand(command string, args []string, splitter textsplitter.Splitter) (*CommandLoader, error) {
	if command == "" {
		return nil, fmt.Errorf("command is required")
	}
	if splitter == nil {
		return nil, fmt.Errorf("splitter is required")
	}
	return &CommandLoader{command: command, args: args, splitter: splitter}, nil
}

func (l *CommandLoader) Load(ctx context.Context) ([]schema.Document, error) {
	// Strip any path component so only binaries resolvable via PATH run.
	cmd := exec.CommandContext(ctx, filepath.Base(l.command), l.args...)
	output, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("command %q failed: %w\nstderr: %s", l.command, err, string(ee.Stderr))
		}
		return nil, fmt.Errorf("running %q: %w", l.command, err)
	}

	source := schema.NewDocument(string(output), map[string]any{
		schema.MetaSourceFile: fmt.Sprintf("command:%s", l.command),
		schema.MetaDocumentID: uuid.NewString(),
	})
	return textsplitter.SplitDocuments(ctx, l.splitter, []schema.Document{source})
}
