package domain

import (
	"fmt"
	"time"
)

// DistanceMetric selects the pairwise dissimilarity measure.
type DistanceMetric string

const (
	// MetricCosine is 1 - cosine similarity of TF-IDF vectors.
	MetricCosine DistanceMetric = "cosine"

	// MetricEuclidean is the L2 distance of TF-IDF vectors.
	MetricEuclidean DistanceMetric = "euclidean"

	// MetricJaccard is 1 - Jaccard similarity of term presence sets.
	MetricJaccard DistanceMetric = "jaccard"
)

// ParseMetric validates and returns a distance metric.
func ParseMetric(s string) (DistanceMetric, error) {
	switch DistanceMetric(s) {
	case MetricCosine, MetricEuclidean, MetricJaccard:
		return DistanceMetric(s), nil
	default:
		return "", fmt.Errorf("%w: distance metric %q", ErrInvalidInput, s)
	}
}

// Settings holds every configuration knob the pipeline consumes.
// Values come from the config file and CLI flags; zero values are
// filled in by DefaultSettings.
type Settings struct {
	// Linkage is the inter-cluster distance criterion.
	Linkage LinkageCriterion

	// Metric is the pairwise distance measure.
	Metric DistanceMetric

	// Projection is the layout method.
	Projection ProjectionMethod

	// Dims is the target dimensionality, 2 or 3.
	Dims int

	// Concurrency bounds the extraction worker pool.
	Concurrency int

	// FileTimeout bounds a single file's extraction, external
	// converter invocation included.
	FileTimeout time.Duration

	// MaxFailureRate is the fraction of failed extractions above
	// which the run aborts. 1.0 disables the check.
	MaxFailureRate float64

	// Seed drives the stochastic MDS initialisation; fixed seed
	// means reproducible coordinates.
	Seed int64

	// CutK requests a flat cut into K clusters. 0 means no cut by
	// count.
	CutK int

	// CutDistance requests a flat cut at a distance threshold.
	// 0 means no cut by threshold.
	CutDistance float64

	// ConverterCommand is the external converter template for
	// formats without a native converter. The tokens {input} and
	// {outdir} are substituted per invocation. Empty disables the
	// external converter.
	ConverterCommand string

	// ConverterRate bounds external converter spawns per second.
	ConverterRate float64
}

// DefaultSettings mirrors the behaviour of the original tool:
// ward linkage, cosine distance, 2D PCA, seed 123.
func DefaultSettings() Settings {
	return Settings{
		Linkage:        LinkageWard,
		Metric:         MetricCosine,
		Projection:     ProjectionPCA,
		Dims:           2,
		Concurrency:    4,
		FileTimeout:    60 * time.Second,
		MaxFailureRate: 0.5,
		Seed:           123,
		ConverterRate:  2.0,
	}
}

// Validate checks the settings for contract violations.
func (s Settings) Validate() error {
	if _, err := ParseLinkage(string(s.Linkage)); err != nil {
		return err
	}
	if _, err := ParseMetric(string(s.Metric)); err != nil {
		return err
	}
	if _, err := ParseProjection(string(s.Projection)); err != nil {
		return err
	}
	if s.Dims != 2 && s.Dims != 3 {
		return fmt.Errorf("%w: target dims %d, want 2 or 3", ErrInvalidInput, s.Dims)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency %d", ErrInvalidInput, s.Concurrency)
	}
	if s.FileTimeout <= 0 {
		return fmt.Errorf("%w: file timeout %v", ErrInvalidInput, s.FileTimeout)
	}
	if s.MaxFailureRate < 0 || s.MaxFailureRate > 1 {
		return fmt.Errorf("%w: max failure rate %g", ErrInvalidInput, s.MaxFailureRate)
	}
	if s.CutK < 0 {
		return fmt.Errorf("%w: cut k %d", ErrInvalidInput, s.CutK)
	}
	if s.CutDistance < 0 {
		return fmt.Errorf("%w: cut distance %g", ErrInvalidInput, s.CutDistance)
	}
	return nil
}
