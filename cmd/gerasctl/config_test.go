package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geras.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
store: sqlite
db_path: /tmp/geras.db
reports_dir: /tmp/reports
run:
  population: 500
  seed: 42
  workers: 8
  sequential: true
  skip_interventions: true
  midlife_age: 45
  sample_cells_per_organ: 50
predict:
  simulations: 200
  seed: 7
`)

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Store != "sqlite" || cfg.DBPath != "/tmp/geras.db" {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if cfg.ReportsDir != "/tmp/reports" {
		t.Fatalf("unexpected reports dir: %s", cfg.ReportsDir)
	}
	if cfg.Run.Population != 500 || cfg.Run.Seed != 42 || cfg.Run.Workers != 8 {
		t.Fatalf("unexpected run config: %+v", cfg.Run)
	}
	if !cfg.Run.Sequential || !cfg.Run.SkipInterventions {
		t.Fatalf("run toggles not parsed: %+v", cfg.Run)
	}
	if cfg.Run.MidlifeAge != 45 || cfg.Run.SampleCellsPerOrgan != 50 {
		t.Fatalf("unexpected run tuning: %+v", cfg.Run)
	}
	if cfg.Predict.Simulations != 200 || cfg.Predict.Seed != 7 {
		t.Fatalf("unexpected predict config: %+v", cfg.Predict)
	}
}

func TestLoadFileConfigEmptyPath(t *testing.T) {
	cfg, err := loadFileConfig("")
	if err != nil {
		t.Fatalf("load empty path: %v", err)
	}
	if cfg != (FileConfig{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFileConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "run:\n  populaton: 500\n")
	if _, err := loadFileConfig(path); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := loadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
