// Package config holds the pipeline configuration: a YAML file with
// environment-variable overrides on top, defaults applied last.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// RetrievalConfig controls the document ranker.
type RetrievalConfig struct {
	// BatchSize is the number of streamed articles scored per batch.
	// Ranking statistics are batch-local, so this trades memory against
	// idf precision.
	BatchSize int `yaml:"batch_size" env:"XQA_BATCH_SIZE"`
	// TopK documents kept per question.
	TopK int `yaml:"top_k" env:"XQA_TOP_K"`
	// CheckpointPath is the bbolt database holding partial ranking
	// state; empty disables checkpointing.
	CheckpointPath string `yaml:"checkpoint" env:"XQA_CHECKPOINT"`
	// Lowercase folds tokens to lower case before indexing.
	Lowercase bool `yaml:"lowercase" env:"XQA_LOWERCASE"`
}

// Config is the full pipeline configuration.
type Config struct {
	// DataDir is the root directory of the corpus files.
	DataDir string `yaml:"data_dir" env:"XQA_DATA_DIR"`
	// Language is the two-letter corpus language code.
	Language string `yaml:"language" env:"XQA_LANGUAGE"`
	// Part selects dev, test, train or all.
	Part string `yaml:"part" env:"XQA_PART"`
	// Workers for parallel answer-span detection.
	Workers int `yaml:"workers" env:"XQA_WORKERS"`

	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and fills in defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Part == "" {
		c.Part = "dev"
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Retrieval.BatchSize <= 0 {
		c.Retrieval.BatchSize = 1000
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 10
	}
}
