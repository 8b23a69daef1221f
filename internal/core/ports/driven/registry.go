package driven

import (
	"context"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// ConverterRegistry selects the appropriate converter for a file.
// It maintains a priority-ordered set of converters and dispatches
// on the detected file format.
type ConverterRegistry interface {
	// Convert extracts text using the best matching converter.
	// Returns domain.ErrUnsupportedFormat when no converter accepts
	// the file's format.
	Convert(ctx context.Context, file domain.SourceFile) (string, error)

	// Register adds a converter to the registry.
	Register(converter Converter)

	// SupportedFormats returns all formats that can be converted.
	SupportedFormats() []domain.FileFormat
}
