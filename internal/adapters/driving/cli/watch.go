package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalog-cli/internal/connectors/filesystem"
)

var flagDebounce time.Duration

type dirWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// newWatcher is swapped out in tests.
var newWatcher = func(dir string, debounce time.Duration) dirWatcher {
	return filesystem.NewWatcher(dir, debounce)
}

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Re-analyse a directory whenever its contents change",
	Long: `Runs an analysis, then keeps watching the directory and re-runs
after filesystem activity settles. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addSettingsFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", 2*time.Second, "settle time before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	dir := args[0]
	analyse := func() {
		report, err := pipeline.Run(ctx, dir, settings)
		if report != nil {
			cmd.Print(renderReport(report))
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			cmd.PrintErrf("analysis failed: %v\n", err)
		}
	}

	analyse()
	cmd.Printf("Watching %s for changes...\n", dir)

	watcher := newWatcher(dir, flagDebounce)
	if err := watcher.Watch(ctx, analyse); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watch stopped.")
	return nil
}
