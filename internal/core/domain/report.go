package domain

import "time"

// RunStage is the pipeline state machine position.
type RunStage string

const (
	StageIdle          RunStage = "idle"
	StageScanning      RunStage = "scanning"
	StageExtracting    RunStage = "extracting"
	StageDeduplicating RunStage = "deduplicating"
	StageVectorizing   RunStage = "vectorizing"
	StageClustering    RunStage = "clustering"
	StageProjecting    RunStage = "projecting"
	StageCompleted     RunStage = "completed"
	StageFailed        RunStage = "failed"
)

// FileOutcome records the extraction result for one source file,
// surfaced in the final report regardless of success.
type FileOutcome struct {
	// Path is the source file path.
	Path string

	// Status is the extraction outcome.
	Status ExtractionStatus

	// Diagnostic carries the converter error, if any.
	Diagnostic string

	// Fingerprint is the content digest for successful extractions.
	Fingerprint Fingerprint
}

// AnalysisReport is the sole artifact a pipeline run hands back to the
// presentation layer. It is immutable once the run finishes and carries
// enough structure to render a dendrogram and a scatter plot without
// re-touching the raw files.
type AnalysisReport struct {
	// RunID uniquely identifies the pipeline run.
	RunID string

	// CorpusDir is the scanned directory.
	CorpusDir string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Stage is the terminal stage (Completed or Failed), or the
	// stage reached when the run was cancelled.
	Stage RunStage

	// Incomplete is set when the run was cancelled before finishing.
	Incomplete bool

	// InsufficientData is set when fewer than two unique documents
	// survived deduplication; clustering and projection are skipped.
	InsufficientData bool

	// Files records the extraction outcome for every scanned file.
	Files []FileOutcome

	// Entries is the deduplicated corpus, in registration order.
	Entries []CorpusEntry

	// Distances is the pairwise distance matrix over Entries.
	// Nil when InsufficientData is set.
	Distances *DistanceMatrix

	// Tree is the hierarchical clustering result.
	// Nil when InsufficientData is set.
	Tree *LinkageTree

	// Projection holds the 2D/3D layout.
	// Nil when InsufficientData is set.
	Projection *Projection

	// Labels maps CorpusEntry ID to a flat cluster label when a cut
	// was requested, nil otherwise.
	Labels map[string]int
}

// FailureCount returns the number of failed extractions.
func (r *AnalysisReport) FailureCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == ExtractionFailed {
			n++
		}
	}
	return n
}

// FailureRate returns failed extractions as a fraction of all files.
func (r *AnalysisReport) FailureRate() float64 {
	if len(r.Files) == 0 {
		return 0
	}
	return float64(r.FailureCount()) / float64(len(r.Files))
}
