package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Extractor runs content extraction over a set of source files with a
// bounded pool of workers. Each file gets its own timeout; a file that
// fails to convert becomes a failed outcome, never an error for the
// run as a whole.
type Extractor struct {
	registry    driven.ConverterRegistry
	concurrency int
	timeout     time.Duration
}

// NewExtractor creates an extraction service. Concurrency below one is
// clamped to a single worker.
func NewExtractor(registry driven.ConverterRegistry, concurrency int, timeout time.Duration) *Extractor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Extractor{
		registry:    registry,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// ExtractAll converts every file and returns the outcomes sorted by
// source path. The progress callback, if set, is invoked after each
// completed file with the running done and failed counts.
//
// When ctx is cancelled no new files are started. Files whose
// conversion was cut short by the cancellation are dropped from the
// result; only fully settled outcomes are returned.
func (e *Extractor) ExtractAll(ctx context.Context, files []domain.SourceFile, progress func(done, failed int)) []domain.ExtractedDocument {
	jobs := make(chan int)
	results := make(chan domain.ExtractedDocument)

	var wg sync.WaitGroup
	for w := 0; w < e.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				doc, ok := e.extractOne(ctx, files[idx])
				if ok {
					results <- doc
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var docs []domain.ExtractedDocument
	done, failed := 0, 0
	for doc := range results {
		docs = append(docs, doc)
		done++
		if doc.Status != domain.ExtractionSuccess {
			failed++
		}
		if progress != nil {
			progress(done, failed)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Source.Path < docs[j].Source.Path
	})
	return docs
}

// extractOne converts a single file under its own deadline. The second
// return value is false when the run-level context was cancelled and
// no settled outcome exists for the file.
func (e *Extractor) extractOne(ctx context.Context, file domain.SourceFile) (domain.ExtractedDocument, bool) {
	if ctx.Err() != nil {
		return domain.ExtractedDocument{}, false
	}

	fctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.registry.Convert(fctx, file)
	if err != nil {
		if ctx.Err() != nil {
			// Run cancelled while the file was in flight
			return domain.ExtractedDocument{}, false
		}
		status := domain.ExtractionFailed
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			status = domain.ExtractionSkipped
		}
		return domain.ExtractedDocument{
			Source:     file,
			Status:     status,
			Diagnostic: err.Error(),
		}, true
	}

	return domain.ExtractedDocument{
		Source: file,
		Text:   text,
		Status: domain.ExtractionSuccess,
	}, true
}
