package section

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/faizmokh/mdstatus/internal/files"
)

// Loader reads documents through a files.Manager and turns them into one recency-ordered digest.
type Loader struct {
	manager *files.Manager
	logger  *slog.Logger
}

// NewLoader wires a loader using the shared files.Manager. A nil logger discards records.
func NewLoader(manager *files.Manager, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{manager: manager, logger: logger}
}

// Load builds every document in order and merges the results. Any unreadable document aborts the
// whole load; there are no partial results.
func (l *Loader) Load(ctx context.Context, paths []string) ([]Section, error) {
	if l == nil || l.manager == nil {
		return nil, errors.New("loader not initialized with file manager")
	}

	builder := NewBuilder()
	documents := make([][]Section, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := l.manager.Read(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		l.logger.Debug("read document", "path", doc.Path, "bytes", len(doc.Content))

		sections := builder.Build(doc.Path, doc.Content)
		l.logger.Debug("built sections", "path", doc.Path, "sections", len(sections))
		documents = append(documents, sections)
	}

	merged := Aggregate(documents...)
	l.logger.Debug("merged documents", "documents", len(documents), "sections", len(merged))
	return merged, nil
}
