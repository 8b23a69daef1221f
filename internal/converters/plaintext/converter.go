package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/catalog-cli/internal/converters"
	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter handles plain text files.
type Converter struct{}

// New creates a new plain text converter.
func New() *Converter {
	return &Converter{}
}

// SupportedFormats returns the formats this converter handles.
func (c *Converter) SupportedFormats() []domain.FileFormat {
	return []domain.FileFormat{domain.FormatPlainText}
}

// Priority returns the selection priority.
func (c *Converter) Priority() int {
	return 50 // Format-specific converter
}

// Convert reads the file and normalizes its content.
func (c *Converter) Convert(ctx context.Context, file domain.SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file.Path, err)
	}

	return converters.NormalizeText(string(data)), nil
}
