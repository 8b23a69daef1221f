package domain

// ExtractionStatus is the outcome of extracting one source file.
type ExtractionStatus int

const (
	// ExtractionSuccess means normalized text was produced.
	ExtractionSuccess ExtractionStatus = iota

	// ExtractionFailed means the converter errored or timed out.
	ExtractionFailed

	// ExtractionSkipped means no converter accepted the file.
	ExtractionSkipped
)

// String returns the status as a lowercase label.
func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionSuccess:
		return "success"
	case ExtractionFailed:
		return "failed"
	case ExtractionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ExtractedDocument is the result of running a converter over a SourceFile.
// Text is UTF-8 plain text with markup stripped; it is empty unless
// Status is ExtractionSuccess.
type ExtractedDocument struct {
	// Source is the file this document was extracted from.
	// Kept for reporting and traceability only.
	Source SourceFile

	// Text is the normalized plain text content.
	Text string

	// Status is the extraction outcome.
	Status ExtractionStatus

	// Diagnostic carries the captured converter error for failed
	// or skipped extractions. Empty on success.
	Diagnostic string
}
