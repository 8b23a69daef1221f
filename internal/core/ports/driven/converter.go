package driven

import (
	"context"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// Converter extracts normalized plain text from one file format.
// Converters must not retain state between calls; any scratch files
// they create are removed before Convert returns, on every exit path.
type Converter interface {
	// SupportedFormats returns the file formats this converter handles.
	SupportedFormats() []domain.FileFormat

	// Priority returns the selection priority (higher = preferred).
	// Format-specific converters should return 50-89.
	// Catch-all converters should return 1-9.
	Priority() int

	// Convert reads the source file and returns its normalized text.
	// The context carries the per-file deadline; a converter that
	// shells out must kill the child process when it expires.
	Convert(ctx context.Context, file domain.SourceFile) (string, error)
}
