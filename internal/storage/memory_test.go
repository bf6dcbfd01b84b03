package storage

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"geras/internal/genome"
	"geras/internal/model"
	"geras/internal/population"
)

func testGenomeRecord(id string) model.GenomeRecord {
	rng := rand.New(rand.NewSource(1))
	return model.GenomeRecord{
		VersionedRecord: Stamp(),
		ID:              id,
		Label:           "test subject",
		CreatedAt:       time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Genome:          genome.NewRandom(genome.DefaultParams(), rng),
	}
}

func testRunRecord(id string, createdAt time.Time) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              id,
		CreatedAt:       createdAt,
		Results: population.Results{
			ID:   id,
			Seed: 42,
			Lives: []population.LifeSummary{
				{ID: "life-1", Lifespan: 83.0},
				{ID: "life-2", Lifespan: 91.0},
			},
			Statistics: population.Statistics{
				MeanLifespan:    87.0,
				CentenarianRate: 0.0,
			},
		},
	}
}

func TestMemoryStoreGenomeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := testGenomeRecord("g1")
	if err := store.SaveGenome(ctx, input); err != nil {
		t.Fatalf("save genome: %v", err)
	}

	output, ok, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get genome: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted genome")
	}
	if output.ID != "g1" || output.Genome == nil {
		t.Fatalf("unexpected record: %+v", output)
	}
	if output.Genome.ID != input.Genome.ID {
		t.Fatalf("genome id mismatch: %s vs %s", output.Genome.ID, input.Genome.ID)
	}

	_, ok, err = store.GetGenome(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing genome: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit for missing genome")
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := testRunRecord("run-1", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	if err := store.SaveRun(ctx, input); err != nil {
		t.Fatalf("save run: %v", err)
	}

	output, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if len(output.Results.Lives) != 2 {
		t.Fatalf("unexpected lives: %+v", output.Results.Lives)
	}
	if output.Results.Statistics.MeanLifespan != 87.0 {
		t.Fatalf("unexpected statistics: %+v", output.Results.Statistics)
	}
}

func TestMemoryStoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	older := testRunRecord("run-old", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testRunRecord("run-new", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := store.SaveRun(ctx, older); err != nil {
		t.Fatalf("save older run: %v", err)
	}
	if err := store.SaveRun(ctx, newer); err != nil {
		t.Fatalf("save newer run: %v", err)
	}

	summaries, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].ID != "run-new" || summaries[1].ID != "run-old" {
		t.Fatalf("unexpected order: %s, %s", summaries[0].ID, summaries[1].ID)
	}
	if summaries[0].PopulationSize != 2 || summaries[0].Seed != 42 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
}

func TestMemoryStorePredictionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.PredictionRecord{
		VersionedRecord: Stamp(),
		ID:              "pred-1",
		GenomeID:        "g1",
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.SavePrediction(ctx, input); err != nil {
		t.Fatalf("save prediction: %v", err)
	}

	output, ok, err := store.GetPrediction(ctx, "pred-1")
	if err != nil {
		t.Fatalf("get prediction: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted prediction")
	}
	if output.GenomeID != "g1" {
		t.Fatalf("unexpected record: %+v", output)
	}
}
