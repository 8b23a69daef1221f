package driving

import (
	"context"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// Pipeline runs the full extraction-to-clustering analysis.
// One run at a time: starting a run while one is active fails with
// domain.ErrRunInProgress.
type Pipeline interface {
	// Run analyses the corpus directory and returns the report.
	// Cancelling ctx stops the run at the next per-file checkpoint;
	// the returned report is then marked incomplete.
	Run(ctx context.Context, dir string, settings domain.Settings) (*domain.AnalysisReport, error)

	// Status returns a snapshot of the active run's progress.
	Status() RunStatus
}

// RunStatus is a progress snapshot, safe to poll from other
// goroutines while a run is active.
type RunStatus struct {
	// Running reports whether a run is active.
	Running bool

	// Stage is the pipeline stage the run is in.
	Stage domain.RunStage

	// FilesTotal is the number of files discovered by the scan.
	FilesTotal int

	// FilesDone is the number of files whose extraction finished,
	// successfully or not.
	FilesDone int

	// ErrorCount is the number of failed extractions so far.
	ErrorCount int
}
