package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"geras/internal/model"
	"geras/internal/organism"
	"geras/internal/population"
)

func testRunRecord(id string) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 1, CodecVersion: 1},
		ID:              id,
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Results: population.Results{
			ID:   id,
			Seed: 7,
			Lives: []population.LifeSummary{
				{
					ID:             "life-1",
					Lifespan:       83.5,
					DeathCause:     organism.DeathCause{Kind: organism.DeathNatural},
					LifestyleScore: 0.6,
				},
				{
					ID:       "life-2",
					Lifespan: 71.0,
					DeathCause: organism.DeathCause{
						Kind:    organism.DeathDisease,
						Disease: organism.Cancer,
					},
					LifestyleScore: 0.3,
				},
			},
			Patterns: []population.CausalPattern{{
				ID:              "pat-1",
				Cause:           population.PatternCause{Kind: population.CauseLifestyle, Name: "optimal"},
				Effect:          population.PatternEffect{Kind: population.EffectLifespan, LifespanYears: 8.2},
				Strength:        0.55,
				Confidence:      0.6,
				SupportingLives: 120,
				Description:     "Optimal lifestyle (score >0.7) vs poor (<0.4): +8.2 years",
			}},
			Statistics: population.Statistics{
				MeanLifespan:    77.25,
				MedianLifespan:  77.25,
				CentenarianRate: 0,
			},
		},
	}
}

func TestWriteAndExportRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "exports")

	record := testRunRecord("run-123")
	runDir, err := WriteRunArtifacts(baseDir, record)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	for _, file := range artifactFiles {
		if _, err := os.Stat(filepath.Join(runDir, file)); err != nil {
			t.Fatalf("expected file %s: %v", file, err)
		}
	}

	exportedDir, err := ExportRunArtifacts(baseDir, "run-123", outDir)
	if err != nil {
		t.Fatalf("export artifacts: %v", err)
	}
	for _, file := range artifactFiles {
		if _, err := os.Stat(filepath.Join(exportedDir, file)); err != nil {
			t.Fatalf("expected exported file %s: %v", file, err)
		}
	}

	loaded, ok, err := ReadRunRecord(baseDir, "run-123")
	if err != nil {
		t.Fatalf("read run record: %v", err)
	}
	if !ok {
		t.Fatal("expected run record on disk")
	}
	if len(loaded.Results.Lives) != 2 || loaded.Results.Seed != 7 {
		t.Fatalf("unexpected record: %+v", loaded)
	}

	statistics, ok, err := ReadStatistics(baseDir, "run-123")
	if err != nil {
		t.Fatalf("read statistics: %v", err)
	}
	if !ok {
		t.Fatal("expected statistics on disk")
	}
	if statistics.MeanLifespan != 77.25 {
		t.Fatalf("unexpected statistics: %+v", statistics)
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), model.RunRecord{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestLifespanSeriesContents(t *testing.T) {
	baseDir := t.TempDir()
	record := testRunRecord("run-csv")

	runDir, err := WriteRunArtifacts(baseDir, record)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	file, err := os.Open(filepath.Join(runDir, "lifespans.csv"))
	if err != nil {
		t.Fatalf("open series: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read series: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 lives", len(rows))
	}
	if rows[0][0] != "id" || rows[0][2] != "death_cause" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "83.5" || rows[1][2] != "natural" {
		t.Fatalf("unexpected first life row: %v", rows[1])
	}
	if rows[2][2] != "disease:cancer" {
		t.Fatalf("unexpected second life row: %v", rows[2])
	}
}

func TestSurvivalSeriesContents(t *testing.T) {
	baseDir := t.TempDir()
	record := testRunRecord("run-survival")

	runDir, err := WriteRunArtifacts(baseDir, record)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	file, err := os.Open(filepath.Join(runDir, "survival.csv"))
	if err != nil {
		t.Fatalf("open series: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read series: %v", err)
	}
	// Header plus ages 0 through 84 for a max lifespan of 83.5.
	if len(rows) != 86 {
		t.Fatalf("got %d rows, want 86", len(rows))
	}
	if rows[1][1] != "1" {
		t.Fatalf("everyone should be alive at age 0: %v", rows[1])
	}
	if rows[73][0] != "72" || rows[73][1] != "0.5" {
		t.Fatalf("expected half the cohort alive at age 72: %v", rows[73])
	}
}

func TestRunIndexAppendReplaceAndOrder(t *testing.T) {
	baseDir := t.TempDir()

	first := RunIndexEntry{
		RunID:          "run-a",
		Seed:           1,
		PopulationSize: 100,
		MeanLifespan:   80,
		CreatedAtUTC:   "2026-01-01T00:00:00Z",
	}
	second := RunIndexEntry{
		RunID:          "run-b",
		Seed:           2,
		PopulationSize: 200,
		MeanLifespan:   82,
		CreatedAtUTC:   "2026-02-01T00:00:00Z",
	}

	if err := AppendRunIndex(baseDir, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := AppendRunIndex(baseDir, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	entries, err := ListRunIndex(baseDir)
	if err != nil {
		t.Fatalf("list index: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].RunID != "run-b" || entries[1].RunID != "run-a" {
		t.Fatalf("unexpected order: %s, %s", entries[0].RunID, entries[1].RunID)
	}

	replacement := first
	replacement.MeanLifespan = 85
	if err := AppendRunIndex(baseDir, replacement); err != nil {
		t.Fatalf("replace entry: %v", err)
	}

	entries, err = ListRunIndex(baseDir)
	if err != nil {
		t.Fatalf("list index after replace: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("replace added a duplicate: %d entries", len(entries))
	}
	for _, entry := range entries {
		if entry.RunID == "run-a" && entry.MeanLifespan != 85 {
			t.Fatalf("replacement not applied: %+v", entry)
		}
	}
}

func TestListRunIndexEmptyDir(t *testing.T) {
	entries, err := ListRunIndex(t.TempDir())
	if err != nil {
		t.Fatalf("list empty index: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries from empty dir", len(entries))
	}
}

func TestExportMissingRunFails(t *testing.T) {
	if _, err := ExportRunArtifacts(t.TempDir(), "missing", t.TempDir()); err == nil {
		t.Fatal("expected error for missing run")
	}
}
