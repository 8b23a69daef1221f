package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalog-cli/internal/adapters/driven/export/csvdir"
	"github.com/custodia-labs/catalog-cli/internal/adapters/driven/export/sqlite"
	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driving"
)

var (
	flagExportCSV    string
	flagExportSQLite string
)

var runCmd = &cobra.Command{
	Use:   "run <directory>",
	Short: "Analyse a directory of documents",
	Long: `Scans the directory recursively, extracts and deduplicates text,
clusters the unique documents by similarity and prints the result.
Interrupting the run (Ctrl-C) stops it at the next file boundary and
prints the partial outcome.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalysis,
}

func init() {
	addSettingsFlags(runCmd)
	runCmd.Flags().StringVar(&flagExportCSV, "export-csv", "", "write report CSVs into this directory")
	runCmd.Flags().StringVar(&flagExportSQLite, "export-sqlite", "", "write the report into this SQLite database")
	rootCmd.AddCommand(runCmd)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := runWithProgress(ctx, cmd, pipeline, args[0], settings)
	if report != nil {
		cmd.Print(renderReport(report))
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			cmd.Println("Run interrupted; partial results shown above.")
		} else {
			return fmt.Errorf("analysis failed: %w", runErr)
		}
	}

	if report == nil {
		return nil
	}
	return exportReport(cmd, report)
}

// runWithProgress starts the run and polls its status while waiting.
func runWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	pipeline driving.Pipeline,
	dir string,
	settings domain.Settings,
) (*domain.AnalysisReport, error) {
	type result struct {
		report *domain.AnalysisReport
		err    error
	}
	resCh := make(chan result, 1)
	go func() {
		report, err := pipeline.Run(ctx, dir, settings)
		resCh <- result{report, err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastDone := -1
	for {
		select {
		case res := <-resCh:
			if lastDone >= 0 {
				cmd.Println()
			}
			return res.report, res.err
		case <-ticker.C:
			status := pipeline.Status()
			if status.Stage == domain.StageExtracting && status.FilesDone > lastDone {
				cmd.Printf("\rExtracting... %d/%d files (%d errors)",
					status.FilesDone, status.FilesTotal, status.ErrorCount)
				lastDone = status.FilesDone
			}
		}
	}
}

// exportReport writes the report to every destination requested via
// flags. Exports are best effort per destination but any failure is
// surfaced.
func exportReport(cmd *cobra.Command, report *domain.AnalysisReport) error {
	ctx := context.Background()

	if flagExportCSV != "" {
		if err := csvdir.New(flagExportCSV).Export(ctx, report); err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
		cmd.Printf("Report CSVs written to %s\n", flagExportCSV)
	}
	if flagExportSQLite != "" {
		if err := sqlite.New(flagExportSQLite).Export(ctx, report); err != nil {
			return fmt.Errorf("sqlite export failed: %w", err)
		}
		cmd.Printf("Report written to %s\n", flagExportSQLite)
	}
	return nil
}
