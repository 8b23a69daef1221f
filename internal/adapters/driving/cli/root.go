// Package cli implements the command-line surface of the catalog tool.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/catalog-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/catalog-cli/internal/analysis/cluster"
	"github.com/custodia-labs/catalog-cli/internal/analysis/project"
	"github.com/custodia-labs/catalog-cli/internal/analysis/vectorize"
	"github.com/custodia-labs/catalog-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/catalog-cli/internal/converters"
	"github.com/custodia-labs/catalog-cli/internal/converters/command"
	"github.com/custodia-labs/catalog-cli/internal/converters/docx"
	"github.com/custodia-labs/catalog-cli/internal/converters/html"
	"github.com/custodia-labs/catalog-cli/internal/converters/markdown"
	"github.com/custodia-labs/catalog-cli/internal/converters/plaintext"
	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driving"
	"github.com/custodia-labs/catalog-cli/internal/core/services"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Group a directory of documents by content similarity",
	Long: `Catalog extracts plain text from a directory of documents,
deduplicates identical content, and groups the unique documents by
textual similarity using hierarchical clustering. The result is a
merge tree, a 2D/3D layout and per-file extraction outcomes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.catalog)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Settings flags shared by run and watch.
var (
	flagLinkage        string
	flagMetric         string
	flagProjection     string
	flagDims           int
	flagConcurrency    int
	flagTimeout        time.Duration
	flagMaxFailureRate float64
	flagSeed           int64
	flagCutK           int
	flagCutDistance    float64
	flagConverterCmd   string
	flagConverterRate  float64
)

// addSettingsFlags registers the pipeline tuning flags on cmd.
func addSettingsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagLinkage, "linkage", "", "linkage criterion: single, complete, average, ward")
	f.StringVar(&flagMetric, "metric", "", "distance metric: cosine, euclidean, jaccard")
	f.StringVar(&flagProjection, "projection", "", "layout method: pca, mds")
	f.IntVar(&flagDims, "dims", 0, "layout dimensions: 2 or 3")
	f.IntVar(&flagConcurrency, "concurrency", 0, "extraction worker count")
	f.DurationVar(&flagTimeout, "timeout", 0, "per-file extraction timeout")
	f.Float64Var(&flagMaxFailureRate, "max-failure-rate", -1, "abort when this fraction of files fails (1 disables)")
	f.Int64Var(&flagSeed, "seed", 0, "seed for the stochastic layout")
	f.IntVar(&flagCutK, "cut-k", 0, "cut the merge tree into K flat clusters")
	f.Float64Var(&flagCutDistance, "cut-distance", 0, "cut the merge tree at a distance threshold")
	f.StringVar(&flagConverterCmd, "converter-cmd", "", "external converter template with {input} and {outdir}")
	f.Float64Var(&flagConverterRate, "converter-rate", 0, "external converter spawns per second")
}

// resolveSettings layers flag overrides on top of the stored config.
func resolveSettings(cmd *cobra.Command) (domain.Settings, error) {
	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return domain.Settings{}, err
	}
	settings, err := store.Load()
	if err != nil {
		return domain.Settings{}, err
	}

	f := cmd.Flags()
	if f.Changed("linkage") {
		settings.Linkage = domain.LinkageCriterion(flagLinkage)
	}
	if f.Changed("metric") {
		settings.Metric = domain.DistanceMetric(flagMetric)
	}
	if f.Changed("projection") {
		settings.Projection = domain.ProjectionMethod(flagProjection)
	}
	if f.Changed("dims") {
		settings.Dims = flagDims
	}
	if f.Changed("concurrency") {
		settings.Concurrency = flagConcurrency
	}
	if f.Changed("timeout") {
		settings.FileTimeout = flagTimeout
	}
	if f.Changed("max-failure-rate") {
		settings.MaxFailureRate = flagMaxFailureRate
	}
	if f.Changed("seed") {
		settings.Seed = flagSeed
	}
	if f.Changed("cut-k") {
		settings.CutK = flagCutK
	}
	if f.Changed("cut-distance") {
		settings.CutDistance = flagCutDistance
	}
	if f.Changed("converter-cmd") {
		settings.ConverterCommand = flagConverterCmd
	}
	if f.Changed("converter-rate") {
		settings.ConverterRate = flagConverterRate
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// newPipeline wires the orchestrator from the default adapters.
func newPipeline(settings domain.Settings) (driving.Pipeline, error) {
	registry := converters.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(markdown.New())
	registry.Register(html.New())
	registry.Register(docx.New())

	if settings.ConverterCommand != "" {
		external, err := command.New(settings.ConverterCommand, settings.ConverterRate)
		if err != nil {
			return nil, err
		}
		registry.Register(external)
	}

	return services.NewPipelineOrchestrator(
		filesystem.NewScanner(),
		registry,
		vectorize.New(),
		cluster.New(),
		project.New(),
	), nil
}
