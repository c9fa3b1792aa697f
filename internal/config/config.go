package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML run configuration consumed by the CLI. Zero values
// fall back to the library defaults, so a partial file is fine.
type Config struct {
	// Vocabulary pruning.
	MinDocFreq  int     `yaml:"min_doc_freq"`
	MaxSparsity float64 `yaml:"max_sparsity"`

	// Cross-validation and grid search.
	Folds   int                  `yaml:"folds"`
	Seed    int64                `yaml:"seed"`
	Workers int                  `yaml:"workers"`
	Grid    []map[string]float64 `yaml:"grid"`

	// Normalization.
	ExtraStopWords    []string `yaml:"extra_stop_words"`
	ParallelNormalize bool     `yaml:"parallel_normalize"`

	// Input columns.
	ProductColumn   string `yaml:"product_column"`
	NarrativeColumn string `yaml:"narrative_column"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MinDocFreq:  1000,
		MaxSparsity: 0.95,
		Folds:       10,
		Seed:        1,
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.MinDocFreq < 1 {
		return Config{}, fmt.Errorf("config %s: min_doc_freq must be at least 1", path)
	}
	if cfg.MaxSparsity <= 0 || cfg.MaxSparsity > 1 {
		return Config{}, fmt.Errorf("config %s: max_sparsity must be in (0, 1]", path)
	}
	if cfg.Folds < 2 {
		return Config{}, fmt.Errorf("config %s: folds must be at least 2", path)
	}

	return cfg, nil
}
