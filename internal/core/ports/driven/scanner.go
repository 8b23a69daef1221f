package driven

import (
	"context"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// CorpusScanner discovers source files under a directory.
// Implementations apply the exclusion rules for filesystem junk
// (OS metadata, trash folders, temp files).
type CorpusScanner interface {
	// Scan walks dir recursively and returns the source files in
	// deterministic (lexical) order.
	Scan(ctx context.Context, dir string) ([]domain.SourceFile, error)
}
