package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// PipelineOrchestrator sequences a full analysis run: scan, extract,
// deduplicate, vectorize, cluster, project. It admits one run at a
// time and exposes a pollable progress snapshot for the presentation
// layer.
type PipelineOrchestrator struct {
	scanner    driven.CorpusScanner
	registry   driven.ConverterRegistry
	vectorizer driven.Vectorizer
	clusterer  driven.Clusterer
	projector  driven.Projector

	mu     sync.Mutex
	status driving.RunStatus
}

var _ driving.Pipeline = (*PipelineOrchestrator)(nil)

// NewPipelineOrchestrator wires the pipeline from its driven ports.
func NewPipelineOrchestrator(
	scanner driven.CorpusScanner,
	registry driven.ConverterRegistry,
	vectorizer driven.Vectorizer,
	clusterer driven.Clusterer,
	projector driven.Projector,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		scanner:    scanner,
		registry:   registry,
		vectorizer: vectorizer,
		clusterer:  clusterer,
		projector:  projector,
		status:     driving.RunStatus{Stage: domain.StageIdle},
	}
}

// Run analyses dir and returns the report. A second Run while one is
// active fails with domain.ErrRunInProgress. Cancelling ctx stops the
// run between files; the partial report is returned alongside the
// context error.
func (p *PipelineOrchestrator) Run(ctx context.Context, dir string, settings domain.Settings) (*domain.AnalysisReport, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := p.begin(); err != nil {
		return nil, err
	}

	report := &domain.AnalysisReport{
		RunID:     uuid.New().String(),
		CorpusDir: dir,
		StartedAt: time.Now(),
	}
	defer func() {
		report.FinishedAt = time.Now()
		p.end(report.Stage)
	}()

	logger.Section(fmt.Sprintf("Run %s", report.RunID))

	p.setStage(report, domain.StageScanning)
	files, err := p.scanner.Scan(ctx, dir)
	if err != nil {
		return report, p.fail(report, fmt.Errorf("scanning %s: %w", dir, err))
	}
	if len(files) == 0 {
		return report, p.fail(report, fmt.Errorf("%w: %s", domain.ErrCorpusEmpty, dir))
	}
	p.setTotal(len(files))
	logger.Debug("Scan found %d files in %s", len(files), dir)

	p.setStage(report, domain.StageExtracting)
	extractor := NewExtractor(p.registry, settings.Concurrency, settings.FileTimeout)
	docs := extractor.ExtractAll(ctx, files, p.setProgress)

	for _, doc := range docs {
		report.Files = append(report.Files, domain.FileOutcome{
			Path:       doc.Source.Path,
			Status:     doc.Status,
			Diagnostic: doc.Diagnostic,
		})
	}

	if ctx.Err() != nil {
		logger.Warn("Run cancelled after %d of %d files", len(docs), len(files))
		report.Incomplete = true
		return report, ctx.Err()
	}

	if rate := report.FailureRate(); settings.MaxFailureRate < 1 && rate > settings.MaxFailureRate {
		return report, p.fail(report, fmt.Errorf("%w: %.0f%% of %d files failed",
			domain.ErrFailureRateExceeded, rate*100, len(report.Files)))
	}

	p.setStage(report, domain.StageDeduplicating)
	index := NewFingerprintIndex()
	for i, doc := range docs {
		if doc.Status != domain.ExtractionSuccess {
			continue
		}
		report.Files[i].Fingerprint = index.Register(doc)
	}
	if index.Len() == 0 {
		return report, p.fail(report, fmt.Errorf("%w: no file extracted successfully", domain.ErrCorpusEmpty))
	}
	report.Entries = index.Entries()
	logger.Debug("Deduplicated %d documents into %d entries", len(docs), len(report.Entries))

	if len(report.Entries) < 2 {
		// A single unique document is a completed run with nothing to
		// cluster, not a failure.
		report.InsufficientData = true
		p.setStage(report, domain.StageCompleted)
		return report, nil
	}

	p.setStage(report, domain.StageVectorizing)
	fm, dm, err := p.vectorizer.Build(report.Entries, settings.Metric)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			report.InsufficientData = true
			p.setStage(report, domain.StageCompleted)
			return report, nil
		}
		return report, p.fail(report, fmt.Errorf("vectorizing: %w", err))
	}
	report.Distances = dm

	p.setStage(report, domain.StageClustering)
	tree, err := p.clusterer.Cluster(dm, settings.Linkage)
	if err != nil {
		return report, p.fail(report, fmt.Errorf("clustering: %w", err))
	}
	report.Tree = tree

	switch {
	case settings.CutK > 0:
		labels, err := p.clusterer.Cut(tree, settings.CutK)
		if err != nil {
			return report, p.fail(report, fmt.Errorf("cutting tree: %w", err))
		}
		report.Labels = labels
	case settings.CutDistance > 0:
		report.Labels = p.clusterer.CutDistance(tree, settings.CutDistance)
	}

	p.setStage(report, domain.StageProjecting)
	proj, err := p.projector.Project(fm, settings.Projection, settings.Dims, settings.Seed)
	if err != nil {
		return report, p.fail(report, fmt.Errorf("projecting: %w", err))
	}
	report.Projection = proj

	p.setStage(report, domain.StageCompleted)
	logger.Info("Run %s completed: %d entries, %d merges", report.RunID,
		len(report.Entries), len(report.Tree.Merges))
	return report, nil
}

// Status returns a snapshot of the active run's progress.
func (p *PipelineOrchestrator) Status() driving.RunStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *PipelineOrchestrator) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status.Running {
		return domain.ErrRunInProgress
	}
	p.status = driving.RunStatus{Running: true, Stage: domain.StageIdle}
	return nil
}

func (p *PipelineOrchestrator) end(stage domain.RunStage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = false
	p.status.Stage = stage
}

func (p *PipelineOrchestrator) setStage(report *domain.AnalysisReport, stage domain.RunStage) {
	report.Stage = stage
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Stage = stage
}

func (p *PipelineOrchestrator) setTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.FilesTotal = n
}

func (p *PipelineOrchestrator) setProgress(done, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.FilesDone = done
	p.status.ErrorCount = failed
}

func (p *PipelineOrchestrator) fail(report *domain.AnalysisReport, err error) error {
	logger.Warn("Run %s failed: %v", report.RunID, err)
	report.Stage = domain.StageFailed
	p.mu.Lock()
	p.status.Stage = domain.StageFailed
	p.mu.Unlock()
	return err
}
