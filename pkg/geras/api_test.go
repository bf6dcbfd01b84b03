package geras

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	base := t.TempDir()
	client, err := New(Options{
		StoreKind:  "memory",
		ReportsDir: filepath.Join(base, "reports"),
		ExportsDir: filepath.Join(base, "exports"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientRunRunsAndExport(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	summary, err := client.Run(ctx, RunRequest{
		Population:          15,
		Seed:                42,
		Sequential:          true,
		SkipInterventions:   true,
		SampleCellsPerOrgan: 20,
	})
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)
	require.Equal(t, 15, summary.PopulationSize)
	require.Greater(t, summary.MeanLifespan, 0.0)
	require.Zero(t, summary.InterventionCount)

	for _, file := range []string{"results.json", "statistics.json", "patterns.json", "lifespans.csv"} {
		_, err := os.Stat(filepath.Join(summary.ArtifactsDir, file))
		require.NoError(t, err, "expected artifact %s", file)
	}

	runs, err := client.Runs(ctx, RunsRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, summary.RunID, runs[0].RunID)
	require.Equal(t, int64(42), runs[0].Seed)
	require.Equal(t, 15, runs[0].Population)

	exported, err := client.Export(ctx, ExportRequest{Latest: true})
	require.NoError(t, err)
	require.Equal(t, summary.RunID, exported.RunID)
	_, err = os.Stat(filepath.Join(exported.Directory, "results.json"))
	require.NoError(t, err)
}

func TestClientRunMatchesSeededRerun(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	req := RunRequest{
		Population:          10,
		Seed:                7,
		Sequential:          true,
		SkipInterventions:   true,
		SampleCellsPerOrgan: 20,
	}
	first, err := client.Run(ctx, req)
	require.NoError(t, err)
	second, err := client.Run(ctx, req)
	require.NoError(t, err)

	require.NotEqual(t, first.RunID, second.RunID)
	require.Equal(t, first.MeanLifespan, second.MeanLifespan)
	require.Equal(t, first.MedianLifespan, second.MedianLifespan)
	require.Equal(t, first.PatternCount, second.PatternCount)
}

func TestClientGenerateGenomeAndPredict(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	g, err := client.GenerateGenome(ctx, GenomeRequest{Label: "proband", Seed: 1})
	require.NoError(t, err)
	require.NotEmpty(t, g.GenomeID)
	require.Equal(t, "proband", g.Label)
	require.GreaterOrEqual(t, g.RiskScore.Overall, 0.0)
	require.LessOrEqual(t, g.RiskScore.Overall, 1.0)

	prediction, err := client.Predict(ctx, PredictRequest{
		GenomeID:    g.GenomeID,
		Simulations: 5,
		Seed:        2,
	})
	require.NoError(t, err)
	require.NotEmpty(t, prediction.PredictionID)
	require.Equal(t, g.GenomeID, prediction.GenomeID)
	require.Equal(t, 5, prediction.Simulations)
	require.Greater(t, prediction.MeanLifespan, 0.0)
	require.NotEmpty(t, prediction.MostLikelyCause)
}

func TestClientPredictValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Predict(ctx, PredictRequest{})
	require.Error(t, err)

	_, err = client.Predict(ctx, PredictRequest{GenomeID: "missing"})
	require.ErrorContains(t, err, "genome not found")
}

func TestClientExportValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Export(ctx, ExportRequest{RunID: "x", Latest: true})
	require.Error(t, err)

	_, err = client.Export(ctx, ExportRequest{})
	require.Error(t, err)

	_, err = client.Export(ctx, ExportRequest{Latest: true})
	require.ErrorContains(t, err, "no runs available")
}
