package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration. Values act as
// defaults; explicit flags always win.
type FileConfig struct {
	Store      string `yaml:"store"`
	DBPath     string `yaml:"db_path"`
	ReportsDir string `yaml:"reports_dir"`
	ExportsDir string `yaml:"exports_dir"`

	Run     RunFileConfig     `yaml:"run"`
	Predict PredictFileConfig `yaml:"predict"`
}

// RunFileConfig holds cohort parameters for the run command.
type RunFileConfig struct {
	Population          int     `yaml:"population"`
	Seed                int64   `yaml:"seed"`
	Workers             int     `yaml:"workers"`
	Sequential          bool    `yaml:"sequential"`
	SkipInterventions   bool    `yaml:"skip_interventions"`
	FixedLifestyle      bool    `yaml:"fixed_lifestyle"`
	Trajectories        bool    `yaml:"trajectories"`
	MidlifeAge          float64 `yaml:"midlife_age"`
	SampleCellsPerOrgan int     `yaml:"sample_cells_per_organ"`
}

// PredictFileConfig holds defaults for the predict command.
type PredictFileConfig struct {
	Simulations int   `yaml:"simulations"`
	Seed        int64 `yaml:"seed"`
}

// loadFileConfig reads and strictly decodes a YAML config. An empty
// path yields the zero config.
func loadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("load config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
