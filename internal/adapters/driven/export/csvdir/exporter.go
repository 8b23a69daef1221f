// Package csvdir exports an analysis report as a directory of CSV
// files, one per report facet, mirroring the layout spreadsheet tools
// expect.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Exporter writes report CSVs into a target directory:
// files.csv, entries.csv, distances.csv, linkage.csv, projection.csv.
// Facets absent from the report (an insufficient-data run has no
// linkage) produce no file.
type Exporter struct {
	dir string
}

// New creates a CSV exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes the report.
func (e *Exporter) Export(ctx context.Context, report *domain.AnalysisReport) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	if err := e.writeFiles(ctx, report); err != nil {
		return err
	}
	if err := e.writeEntries(ctx, report); err != nil {
		return err
	}
	if report.Distances != nil {
		if err := e.writeDistances(ctx, report); err != nil {
			return err
		}
	}
	if report.Tree != nil {
		if err := e.writeLinkage(ctx, report); err != nil {
			return err
		}
	}
	if report.Projection != nil && !report.Projection.Degenerate {
		if err := e.writeProjection(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeFiles(ctx context.Context, report *domain.AnalysisReport) error {
	rows := [][]string{{"path", "status", "fingerprint", "diagnostic"}}
	for _, f := range report.Files {
		rows = append(rows, []string{f.Path, f.Status.String(), string(f.Fingerprint), f.Diagnostic})
	}
	return e.writeCSV(ctx, "files.csv", rows)
}

func (e *Exporter) writeEntries(ctx context.Context, report *domain.AnalysisReport) error {
	rows := [][]string{{"entry_id", "fingerprint", "label", "source_count", "sources"}}
	for _, entry := range report.Entries {
		paths := make([]string, len(entry.Sources))
		for i, s := range entry.Sources {
			paths[i] = s.Path
		}
		rows = append(rows, []string{
			entry.ID,
			string(entry.Fingerprint),
			entry.Label(),
			strconv.Itoa(len(entry.Sources)),
			strings.Join(paths, ";"),
		})
	}
	return e.writeCSV(ctx, "entries.csv", rows)
}

func (e *Exporter) writeDistances(ctx context.Context, report *domain.AnalysisReport) error {
	dm := report.Distances
	header := append([]string{"entry_id"}, dm.EntryIDs...)
	rows := [][]string{header}
	for i, id := range dm.EntryIDs {
		row := make([]string, 0, len(dm.EntryIDs)+1)
		row = append(row, id)
		for j := range dm.EntryIDs {
			row = append(row, formatFloat(dm.At(i, j)))
		}
		rows = append(rows, row)
	}
	return e.writeCSV(ctx, "distances.csv", rows)
}

func (e *Exporter) writeLinkage(ctx context.Context, report *domain.AnalysisReport) error {
	rows := [][]string{{"merge", "cluster_a", "cluster_b", "distance", "size"}}
	for i, m := range report.Tree.Merges {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(m.A),
			strconv.Itoa(m.B),
			formatFloat(m.Distance),
			strconv.Itoa(m.Size),
		})
	}
	return e.writeCSV(ctx, "linkage.csv", rows)
}

func (e *Exporter) writeProjection(ctx context.Context, report *domain.AnalysisReport) error {
	p := report.Projection
	header := []string{"entry_id", "x", "y"}
	if p.Dims == 3 {
		header = append(header, "z")
	}
	if report.Labels != nil {
		header = append(header, "cluster")
	}

	rows := [][]string{header}
	for i, id := range p.EntryIDs {
		row := []string{id}
		for _, c := range p.Coords[i] {
			row = append(row, formatFloat(c))
		}
		if report.Labels != nil {
			row = append(row, strconv.Itoa(report.Labels[id]))
		}
		rows = append(rows, row)
	}
	return e.writeCSV(ctx, "projection.csv", rows)
}

func (e *Exporter) writeCSV(ctx context.Context, name string, rows [][]string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
