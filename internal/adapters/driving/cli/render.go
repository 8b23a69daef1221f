package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderReport formats the full report for terminal output.
func renderReport(report *domain.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Catalog analysis: " + report.CorpusDir))
	b.WriteString("\n")

	succeeded, failed, skipped := 0, 0, 0
	for _, f := range report.Files {
		switch f.Status {
		case domain.ExtractionSuccess:
			succeeded++
		case domain.ExtractionFailed:
			failed++
		case domain.ExtractionSkipped:
			skipped++
		}
	}
	duration := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	b.WriteString(fmt.Sprintf("Files: %d extracted, %d failed, %d skipped. Unique documents: %d. Took %s.\n",
		succeeded, failed, skipped, len(report.Entries), duration))

	if report.Incomplete {
		b.WriteString(warnStyle.Render("Run interrupted before all files were processed."))
		b.WriteString("\n")
	}
	if report.InsufficientData {
		b.WriteString("Fewer than two unique documents; nothing to cluster.\n")
		return b.String()
	}

	for _, f := range report.Files {
		if f.Status != domain.ExtractionSuccess {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s: %s (%s)", f.Path, f.Status, f.Diagnostic)))
			b.WriteString("\n")
		}
	}

	if report.Tree != nil {
		b.WriteString(headStyle.Render("Merge tree"))
		b.WriteString("\n")
		b.WriteString(renderDendrogram(report.Tree, report.Entries))
	}

	if report.Labels != nil {
		b.WriteString(headStyle.Render("Clusters"))
		b.WriteString("\n")
		b.WriteString(renderClusters(report.Labels, report.Entries))
	}

	if p := report.Projection; p != nil {
		if p.Degenerate {
			b.WriteString("Corpus too small for a layout.\n")
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("Layout: %s, %dD, %d points.", p.Method, p.Dims, len(p.Coords))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderDendrogram draws the merge tree as indented ASCII, leaves
// labelled by their first source file name.
func renderDendrogram(tree *domain.LinkageTree, entries []domain.CorpusEntry) string {
	labels := make([]string, tree.Leaves)
	for i := range labels {
		labels[i] = filepath.Base(entries[i].Label())
	}

	var b strings.Builder
	var walk func(id int, prefix string, last bool)
	walk = func(id int, prefix string, last bool) {
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		if id < tree.Leaves {
			b.WriteString(prefix + connector + labels[id] + "\n")
			return
		}
		m := tree.Merges[id-tree.Leaves]
		b.WriteString(fmt.Sprintf("%s%sd=%.3f\n", prefix, connector, m.Distance))
		walk(m.A, childPrefix, false)
		walk(m.B, childPrefix, true)
	}

	root := tree.Merges[len(tree.Merges)-1]
	b.WriteString(fmt.Sprintf("d=%.3f\n", root.Distance))
	walk(root.A, "", false)
	walk(root.B, "", true)
	return b.String()
}

// renderClusters lists flat cluster members in label order.
func renderClusters(labels map[string]int, entries []domain.CorpusEntry) string {
	byLabel := make(map[int][]string)
	for _, entry := range entries {
		label, ok := labels[entry.ID]
		if !ok {
			continue
		}
		byLabel[label] = append(byLabel[label], filepath.Base(entry.Label()))
	}

	order := make([]int, 0, len(byLabel))
	for label := range byLabel {
		order = append(order, label)
	}
	sort.Ints(order)

	var b strings.Builder
	for _, label := range order {
		b.WriteString(fmt.Sprintf("  %d: %s\n", label, strings.Join(byLabel[label], ", ")))
	}
	return b.String()
}
