package domain

// Fingerprint is the hex-encoded SHA-256 digest of a document's
// normalized text. Equal text always yields an equal Fingerprint,
// which makes it the deduplication key.
type Fingerprint string

// CorpusEntry is one unique document surviving deduplication.
// Multiple source files with byte-identical normalized text share
// a single entry.
type CorpusEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Fingerprint is the content digest shared by all Sources.
	Fingerprint Fingerprint

	// Text is the representative normalized text.
	Text string

	// Sources lists every file that produced this content,
	// in registration order.
	Sources []SourceFile
}

// Label returns a short human-readable name for the entry,
// taken from its first source file.
func (e *CorpusEntry) Label() string {
	if len(e.Sources) == 0 {
		return e.ID
	}
	return e.Sources[0].Path
}
