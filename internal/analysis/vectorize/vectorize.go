// Package vectorize turns the deduplicated corpus into a TF-IDF
// feature matrix and a pairwise distance matrix.
//
// The scheme is deterministic: the vocabulary is sorted, IDF values
// are smoothed, and every row is L2-normalized, so identical input
// always yields identical matrices.
package vectorize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// Ensure TFIDF implements the interface.
var _ driven.Vectorizer = (*TFIDF)(nil)

// TFIDF is the term-frequency / inverse-document-frequency vectorizer.
type TFIDF struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates a TF-IDF vectorizer with the default tokenizer and
// English stopword list.
func New() *TFIDF {
	return &TFIDF{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Build vectorizes the entries and computes pairwise distances.
func (v *TFIDF) Build(entries []domain.CorpusEntry, metric domain.DistanceMetric) (*domain.FeatureMatrix, *domain.DistanceMatrix, error) {
	if len(entries) < 2 {
		return nil, nil, fmt.Errorf("%w: %d corpus entries, need at least 2", domain.ErrInsufficientData, len(entries))
	}

	tokenized := make([][]string, len(entries))
	for i, e := range entries {
		tokenized[i] = v.tokenize(e.Text)
	}

	// Document frequencies over the corpus
	df := make(map[string]int)
	for _, tokens := range tokenized {
		seen := make(map[string]struct{})
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, nil, fmt.Errorf("%w: corpus contains no tokens", domain.ErrInvalidInput)
	}

	// Stable vocabulary ordering
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(entries))
	for i, term := range terms {
		index[term] = i
		// Smoothed IDF
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	entryIDs := make([]string, len(entries))
	rows := make([][]float64, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.ID
		rows[i] = v.embed(tokenized[i], index, idf)
	}

	fm := &domain.FeatureMatrix{EntryIDs: entryIDs, Terms: terms, Rows: rows}
	dm, err := Distances(fm, metric)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("Vectorized %d entries over %d terms", len(entries), len(terms))
	return fm, dm, nil
}

// embed computes one L2-normalized TF-IDF row.
func (v *TFIDF) embed(tokens []string, index map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(idf))

	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			tf[i]++
			total++
		}
	}
	if total == 0 {
		return vec
	}

	for i, count := range tf {
		vec[i] = float64(count) / float64(total) * idf[i]
	}

	// L2 normalize
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize lowercases the text and extracts word tokens, dropping
// stopwords.
func (v *TFIDF) tokenize(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
