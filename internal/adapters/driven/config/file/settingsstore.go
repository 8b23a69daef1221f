// Package file implements the settings store on a TOML file in the
// user's catalog config directory.
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore persists pipeline settings as TOML.
// Settings are stored in a file within the catalog config directory.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// fileSettings is the TOML shape of domain.Settings. Zero values mean
// "not set"; Load fills those from the defaults.
type fileSettings struct {
	Linkage          string  `toml:"linkage,omitempty"`
	Metric           string  `toml:"metric,omitempty"`
	Projection       string  `toml:"projection,omitempty"`
	Dims             int     `toml:"dims,omitempty"`
	Concurrency      int     `toml:"concurrency,omitempty"`
	FileTimeoutSecs  int     `toml:"file_timeout_seconds,omitempty"`
	MaxFailureRate   float64 `toml:"max_failure_rate,omitempty"`
	Seed             int64   `toml:"seed,omitempty"`
	CutK             int     `toml:"cut_k,omitempty"`
	CutDistance      float64 `toml:"cut_distance,omitempty"`
	ConverterCommand string  `toml:"converter_command,omitempty"`
	ConverterRate    float64 `toml:"converter_rate,omitempty"`
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.catalog/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".catalog")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the settings file. A missing file yields the defaults;
// values present in the file override the corresponding default.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		return settings, err
	}

	if fs.Linkage != "" {
		settings.Linkage = domain.LinkageCriterion(fs.Linkage)
	}
	if fs.Metric != "" {
		settings.Metric = domain.DistanceMetric(fs.Metric)
	}
	if fs.Projection != "" {
		settings.Projection = domain.ProjectionMethod(fs.Projection)
	}
	if fs.Dims != 0 {
		settings.Dims = fs.Dims
	}
	if fs.Concurrency != 0 {
		settings.Concurrency = fs.Concurrency
	}
	if fs.FileTimeoutSecs != 0 {
		settings.FileTimeout = time.Duration(fs.FileTimeoutSecs) * time.Second
	}
	if fs.MaxFailureRate != 0 {
		settings.MaxFailureRate = fs.MaxFailureRate
	}
	if fs.Seed != 0 {
		settings.Seed = fs.Seed
	}
	if fs.CutK != 0 {
		settings.CutK = fs.CutK
	}
	if fs.CutDistance != 0 {
		settings.CutDistance = fs.CutDistance
	}
	if fs.ConverterCommand != "" {
		settings.ConverterCommand = fs.ConverterCommand
	}
	if fs.ConverterRate != 0 {
		settings.ConverterRate = fs.ConverterRate
	}

	if err := settings.Validate(); err != nil {
		return domain.DefaultSettings(), err
	}
	return settings, nil
}

// Save persists the settings with restricted permissions.
func (s *SettingsStore) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fs := fileSettings{
		Linkage:          string(settings.Linkage),
		Metric:           string(settings.Metric),
		Projection:       string(settings.Projection),
		Dims:             settings.Dims,
		Concurrency:      settings.Concurrency,
		FileTimeoutSecs:  int(settings.FileTimeout / time.Second),
		MaxFailureRate:   settings.MaxFailureRate,
		Seed:             settings.Seed,
		CutK:             settings.CutK,
		CutDistance:      settings.CutDistance,
		ConverterCommand: settings.ConverterCommand,
		ConverterRate:    settings.ConverterRate,
	}

	data, err := toml.Marshal(fs)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
