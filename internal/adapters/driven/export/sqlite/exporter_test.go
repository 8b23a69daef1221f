package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

func sampleReport(runID string) *domain.AnalysisReport {
	dm := domain.NewDistanceMatrix([]string{"e1", "e2"})
	dm.Set(0, 1, 0.4)

	return &domain.AnalysisReport{
		RunID:      runID,
		CorpusDir:  "/corpus",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Stage:      domain.StageCompleted,
		Files: []domain.FileOutcome{
			{Path: "/corpus/a.txt", Status: domain.ExtractionSuccess, Fingerprint: "aa"},
			{Path: "/corpus/b.txt", Status: domain.ExtractionFailed, Diagnostic: "boom"},
		},
		Entries: []domain.CorpusEntry{
			{ID: "e1", Fingerprint: "aa", Sources: []domain.SourceFile{{Path: "/corpus/a.txt"}}},
			{ID: "e2", Fingerprint: "bb", Sources: []domain.SourceFile{{Path: "/corpus/c.txt"}}},
		},
		Distances: dm,
		Tree: &domain.LinkageTree{
			EntryIDs: []string{"e1", "e2"},
			Leaves:   2,
			Merges:   []domain.Merge{{A: 0, B: 1, Distance: 0.4, Size: 2}},
		},
		Projection: &domain.Projection{
			Method:   domain.ProjectionPCA,
			Dims:     2,
			EntryIDs: []string{"e1", "e2"},
			Coords:   [][]float64{{0.2, 0.0}, {-0.2, 0.0}},
		},
		Labels: map[string]int{"e1": 0, "e2": 1},
	}
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExport_PersistsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, New(path).Export(context.Background(), sampleReport("run-1")))

	db := openDB(t, path)

	var stage string
	var incomplete bool
	require.NoError(t, db.QueryRow(
		"SELECT stage, incomplete FROM runs WHERE run_id = ?", "run-1",
	).Scan(&stage, &incomplete))
	assert.Equal(t, "completed", stage)
	assert.False(t, incomplete)

	var fileCount int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM files WHERE run_id = ?", "run-1",
	).Scan(&fileCount))
	assert.Equal(t, 2, fileCount)

	var diagnostic string
	require.NoError(t, db.QueryRow(
		"SELECT diagnostic FROM files WHERE run_id = ? AND status = 'failed'", "run-1",
	).Scan(&diagnostic))
	assert.Equal(t, "boom", diagnostic)

	var cluster int
	require.NoError(t, db.QueryRow(
		"SELECT cluster FROM entries WHERE run_id = ? AND entry_id = ?", "run-1", "e2",
	).Scan(&cluster))
	assert.Equal(t, 1, cluster)

	var distance float64
	var size int
	require.NoError(t, db.QueryRow(
		"SELECT distance, size FROM merges WHERE run_id = ? AND merge_index = 0", "run-1",
	).Scan(&distance, &size))
	assert.InDelta(t, 0.4, distance, 1e-12)
	assert.Equal(t, 2, size)

	var x float64
	var z sql.NullFloat64
	require.NoError(t, db.QueryRow(
		"SELECT x, z FROM coordinates WHERE run_id = ? AND entry_id = ?", "run-1", "e1",
	).Scan(&x, &z))
	assert.InDelta(t, 0.2, x, 1e-12)
	assert.False(t, z.Valid)
}

func TestExport_RunsAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	exporter := New(path)

	require.NoError(t, exporter.Export(context.Background(), sampleReport("run-1")))
	require.NoError(t, exporter.Export(context.Background(), sampleReport("run-2")))

	db := openDB(t, path)
	var runs int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs))
	assert.Equal(t, 2, runs)
}

func TestExport_DuplicateRunIDFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	exporter := New(path)

	require.NoError(t, exporter.Export(context.Background(), sampleReport("run-1")))
	assert.Error(t, exporter.Export(context.Background(), sampleReport("run-1")))
}

func TestExport_InsufficientDataReport(t *testing.T) {
	report := sampleReport("run-1")
	report.InsufficientData = true
	report.Distances = nil
	report.Tree = nil
	report.Projection = nil
	report.Labels = nil

	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, New(path).Export(context.Background(), report))

	db := openDB(t, path)
	var merges int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM merges").Scan(&merges))
	assert.Zero(t, merges)

	var insufficient bool
	require.NoError(t, db.QueryRow(
		"SELECT insufficient_data FROM runs WHERE run_id = 'run-1'",
	).Scan(&insufficient))
	assert.True(t, insufficient)
}

func TestExport_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "catalog.db")
	require.NoError(t, New(path).Export(context.Background(), sampleReport("run-1")))
	assert.Equal(t, path, New(path).Path())
}
