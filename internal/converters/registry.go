package converters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ConverterRegistry = (*Registry)(nil)

// Registry dispatches files to converters by detected format.
// Selection picks the highest-priority converter that accepts the
// format; a converter with no declared formats accepts everything.
type Registry struct {
	mu         sync.RWMutex
	converters []driven.Converter
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a converter to the registry.
func (r *Registry) Register(converter driven.Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = append(r.converters, converter)
}

// Convert extracts text using the best matching converter.
func (r *Registry) Convert(ctx context.Context, file domain.SourceFile) (string, error) {
	conv := r.lookup(file.Format)
	if conv == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, file.Format)
	}
	return conv.Convert(ctx, file)
}

// SupportedFormats returns all formats with a registered converter.
func (r *Registry) SupportedFormats() []domain.FileFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.FileFormat]struct{})
	for _, c := range r.converters {
		for _, f := range c.SupportedFormats() {
			seen[f] = struct{}{}
		}
	}

	formats := make([]domain.FileFormat, 0, len(seen))
	for f := range seen {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// lookup returns the highest-priority converter accepting the format.
// Ties resolve to the earliest registration.
func (r *Registry) lookup(format domain.FileFormat) driven.Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.Converter
	bestPriority := -1
	for _, c := range r.converters {
		if !accepts(c, format) {
			continue
		}
		if c.Priority() > bestPriority {
			best = c
			bestPriority = c.Priority()
		}
	}
	return best
}

// accepts reports whether the converter handles the format.
// An empty format list means the converter is a catch-all.
func accepts(c driven.Converter, format domain.FileFormat) bool {
	formats := c.SupportedFormats()
	if len(formats) == 0 {
		return true
	}
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
