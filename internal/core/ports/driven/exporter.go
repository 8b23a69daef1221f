package driven

import (
	"context"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// ReportExporter persists a completed AnalysisReport outside the
// process. The pipeline itself never persists anything; export is an
// explicit, per-run choice of the presentation layer.
type ReportExporter interface {
	// Export writes the report to the exporter's destination.
	Export(ctx context.Context, report *domain.AnalysisReport) error
}
