package services

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

// Fingerprint returns the content digest of normalized text.
// Pure and deterministic: equal text always yields an equal digest.
func Fingerprint(text string) domain.Fingerprint {
	sum := sha256.Sum256([]byte(text))
	return domain.Fingerprint(hex.EncodeToString(sum[:]))
}

// FingerprintIndex collapses extracted documents with identical
// normalized text into single corpus entries.
//
// Registration is serialized by a mutex: extraction workers post
// documents concurrently but the digest map mutates one registration
// at a time, preserving the one-entry-per-digest invariant.
type FingerprintIndex struct {
	mu      sync.Mutex
	byHash  map[domain.Fingerprint]int
	entries []domain.CorpusEntry
}

// NewFingerprintIndex creates an empty index.
func NewFingerprintIndex() *FingerprintIndex {
	return &FingerprintIndex{
		byHash: make(map[domain.Fingerprint]int),
	}
}

// Register adds a successfully extracted document to the corpus.
// A repeat digest appends the source file to the existing entry
// instead of creating a new one. Returns the entry's fingerprint.
func (x *FingerprintIndex) Register(doc domain.ExtractedDocument) domain.Fingerprint {
	fp := Fingerprint(doc.Text)

	x.mu.Lock()
	defer x.mu.Unlock()

	if i, ok := x.byHash[fp]; ok {
		x.entries[i].Sources = append(x.entries[i].Sources, doc.Source)
		return fp
	}

	x.byHash[fp] = len(x.entries)
	x.entries = append(x.entries, domain.CorpusEntry{
		ID:          uuid.New().String(),
		Fingerprint: fp,
		Text:        doc.Text,
		Sources:     []domain.SourceFile{doc.Source},
	})
	return fp
}

// Len returns the number of unique entries.
func (x *FingerprintIndex) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}

// Entries returns a copy of the corpus in registration order.
func (x *FingerprintIndex) Entries() []domain.CorpusEntry {
	x.mu.Lock()
	defer x.mu.Unlock()

	out := make([]domain.CorpusEntry, len(x.entries))
	for i, e := range x.entries {
		e.Sources = append([]domain.SourceFile(nil), e.Sources...)
		out[i] = e
	}
	return out
}
