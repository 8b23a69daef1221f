package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

func reportFixture() *domain.AnalysisReport {
	return &domain.AnalysisReport{
		RunID:      "run-1",
		CorpusDir:  "/corpus",
		StartedAt:  time.Now().Add(-2 * time.Second),
		FinishedAt: time.Now(),
		Stage:      domain.StageCompleted,
		Files: []domain.FileOutcome{
			{Path: "/corpus/a.txt", Status: domain.ExtractionSuccess},
			{Path: "/corpus/b.txt", Status: domain.ExtractionSuccess},
			{Path: "/corpus/c.txt", Status: domain.ExtractionSuccess},
			{Path: "/corpus/broken.bin", Status: domain.ExtractionFailed, Diagnostic: "no converter"},
		},
		Entries: []domain.CorpusEntry{
			{ID: "e1", Sources: []domain.SourceFile{{Path: "/corpus/a.txt"}}},
			{ID: "e2", Sources: []domain.SourceFile{{Path: "/corpus/b.txt"}}},
			{ID: "e3", Sources: []domain.SourceFile{{Path: "/corpus/c.txt"}}},
		},
		Tree: &domain.LinkageTree{
			EntryIDs: []string{"e1", "e2", "e3"},
			Leaves:   3,
			Merges: []domain.Merge{
				{A: 0, B: 1, Distance: 0.1, Size: 2},
				{A: 2, B: 3, Distance: 0.9, Size: 3},
			},
		},
		Projection: &domain.Projection{
			Method:   domain.ProjectionPCA,
			Dims:     2,
			EntryIDs: []string{"e1", "e2", "e3"},
			Coords:   [][]float64{{0, 0}, {0.1, 0}, {1, 0}},
		},
		Labels: map[string]int{"e1": 0, "e2": 0, "e3": 1},
	}
}

func TestRenderReport_Summary(t *testing.T) {
	out := renderReport(reportFixture())

	assert.Contains(t, out, "Catalog analysis: /corpus")
	assert.Contains(t, out, "Files: 3 extracted, 1 failed, 0 skipped")
	assert.Contains(t, out, "Unique documents: 3")
	assert.Contains(t, out, "broken.bin")
	assert.Contains(t, out, "no converter")
}

func TestRenderReport_InsufficientData(t *testing.T) {
	report := reportFixture()
	report.InsufficientData = true
	report.Tree = nil
	report.Projection = nil
	report.Labels = nil

	out := renderReport(report)
	assert.Contains(t, out, "Fewer than two unique documents")
	assert.NotContains(t, out, "Merge tree")
}

func TestRenderReport_Incomplete(t *testing.T) {
	report := reportFixture()
	report.Incomplete = true

	out := renderReport(report)
	assert.Contains(t, out, "Run interrupted")
}

func TestRenderDendrogram_Structure(t *testing.T) {
	report := reportFixture()
	out := renderDendrogram(report.Tree, report.Entries)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Root, then c.txt and the inner merge with its two leaves
	assert.Equal(t, "d=0.900", lines[0])
	assert.Contains(t, out, "├── c.txt")
	assert.Contains(t, out, "└── d=0.100")
	assert.Contains(t, out, "├── a.txt")
	assert.Contains(t, out, "└── b.txt")

	// Leaves under the inner merge are indented one level deeper
	for _, line := range lines {
		if strings.Contains(line, "a.txt") {
			assert.True(t, strings.HasPrefix(line, "    "))
		}
	}
}

func TestRenderClusters_GroupsByLabel(t *testing.T) {
	report := reportFixture()
	out := renderClusters(report.Labels, report.Entries)

	assert.Contains(t, out, "0: a.txt, b.txt")
	assert.Contains(t, out, "1: c.txt")
}
