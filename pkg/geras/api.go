// Package geras is the public entry point: it wires the population
// simulator, the lifespan predictor, persistence, and run artifacts
// behind a single client.
package geras

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"geras/internal/genome"
	"geras/internal/model"
	"geras/internal/organism"
	"geras/internal/population"
	"geras/internal/report"
	"geras/internal/storage"
)

const (
	defaultReportsDir = "reports"
	defaultExportsDir = "exports"
	defaultDBPath     = "geras.db"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ReportsDir string
	ExportsDir string
	Logger     *zap.Logger
}

type Client struct {
	store storage.Store
	log   *zap.Logger

	reportsDir  string
	exportsDir  string
	initialized bool
}

type RunRequest struct {
	Population          int
	Seed                int64
	Workers             int
	Sequential          bool
	SkipInterventions   bool
	FixedLifestyle      bool
	Trajectories        bool
	MidlifeAge          float64
	SampleCellsPerOrgan int
}

type RunSummary struct {
	RunID             string
	ArtifactsDir      string
	PopulationSize    int
	MeanLifespan      float64
	MedianLifespan    float64
	CentenarianRate   float64
	PatternCount      int
	InterventionCount int
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID           string
	CreatedAtUTC    string
	Seed            int64
	Population      int
	MeanLifespan    float64
	CentenarianRate float64
	PatternCount    int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

type GenomeRequest struct {
	Label string
	Seed  int64
}

type GenomeSummary struct {
	GenomeID    string
	Label       string
	RiskScore   genome.RiskScore
	RiskFactors int
}

type PredictRequest struct {
	GenomeID    string
	Simulations int
	Seed        int64
}

type PredictSummary struct {
	PredictionID    string
	GenomeID        string
	Simulations     int
	MeanLifespan    float64
	MedianLifespan  float64
	StdDevLifespan  float64
	MostLikelyCause string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = "memory"
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	reportsDir := opts.ReportsDir
	if reportsDir == "" {
		reportsDir = defaultReportsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		log:        log,
		reportsDir: reportsDir,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureInit(ctx)
}

// Run simulates a population cohort, persists the full results, and
// writes the run's artifact set to the reports directory.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	cfg := population.DefaultConfig()
	if req.Population > 0 {
		cfg.PopulationSize = req.Population
	}
	if req.Workers > 0 {
		cfg.Workers = req.Workers
	}
	if req.Sequential {
		cfg.Parallel = false
	}
	if req.SkipInterventions {
		cfg.SimulateInterventions = false
	}
	if req.FixedLifestyle {
		cfg.LifestyleVariation = false
	}
	if req.Trajectories {
		cfg.DetailedTrajectories = true
	}
	if req.MidlifeAge > 0 {
		cfg.MidlifeAge = req.MidlifeAge
	}
	if req.SampleCellsPerOrgan > 0 {
		cfg.Organism.SampleCellsPerOrgan = req.SampleCellsPerOrgan
	}

	if err := c.ensureInit(ctx); err != nil {
		return RunSummary{}, err
	}

	sim := population.NewSimulator(cfg, c.log)
	results, err := sim.Run(ctx, req.Seed)
	if err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	record := model.RunRecord{
		VersionedRecord: storage.Stamp(),
		ID:              results.ID,
		CreatedAt:       now,
		Results:         *results,
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}

	runDir, err := report.WriteRunArtifacts(c.reportsDir, record)
	if err != nil {
		return RunSummary{}, err
	}
	if err := report.AppendRunIndex(c.reportsDir, report.RunIndexEntry{
		RunID:           record.ID,
		Seed:            results.Seed,
		PopulationSize:  len(results.Lives),
		MeanLifespan:    results.Statistics.MeanLifespan,
		CentenarianRate: results.Statistics.CentenarianRate,
		PatternCount:    len(results.Patterns),
		CreatedAtUTC:    now.Format(time.RFC3339Nano),
	}); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:             record.ID,
		ArtifactsDir:      filepath.Clean(runDir),
		PopulationSize:    len(results.Lives),
		MeanLifespan:      results.Statistics.MeanLifespan,
		MedianLifespan:    results.Statistics.MedianLifespan,
		CentenarianRate:   results.Statistics.CentenarianRate,
		PatternCount:      len(results.Patterns),
		InterventionCount: len(results.Interventions),
	}, nil
}

// Runs lists persisted runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}

	summaries, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(summaries) > req.Limit {
		summaries = summaries[:req.Limit]
	}

	out := make([]RunItem, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, RunItem{
			RunID:           s.ID,
			CreatedAtUTC:    s.CreatedAt.UTC().Format(time.RFC3339Nano),
			Seed:            s.Seed,
			Population:      s.PopulationSize,
			MeanLifespan:    s.MeanLifespan,
			CentenarianRate: s.CentenarianRate,
			PatternCount:    s.PatternCount,
		})
	}
	return out, nil
}

// Export copies a run's artifact set into the exports directory.
func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either run id or latest")
	}
	if req.RunID == "" && !req.Latest {
		return ExportSummary{}, errors.New("export requires run id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	runID := req.RunID
	if req.Latest {
		entries, err := report.ListRunIndex(c.reportsDir)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(entries) == 0 {
			return ExportSummary{}, errors.New("no runs available to export")
		}
		runID = entries[0].RunID
	}

	exportedDir, err := report.ExportRunArtifacts(c.reportsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

// GenerateGenome draws a random germline genome and persists it for
// later predictions.
func (c *Client) GenerateGenome(ctx context.Context, req GenomeRequest) (GenomeSummary, error) {
	if err := c.ensureInit(ctx); err != nil {
		return GenomeSummary{}, err
	}

	params := genome.DefaultParams()
	rng := rand.New(rand.NewSource(req.Seed))
	g := genome.NewRandom(params, rng)

	record := model.GenomeRecord{
		VersionedRecord: storage.Stamp(),
		ID:              g.ID,
		Label:           req.Label,
		CreatedAt:       time.Now().UTC(),
		Genome:          g,
	}
	if err := c.store.SaveGenome(ctx, record); err != nil {
		return GenomeSummary{}, err
	}

	return GenomeSummary{
		GenomeID:    g.ID,
		Label:       req.Label,
		RiskScore:   g.CalculateRiskScore(params),
		RiskFactors: len(g.IdentifyRiskFactors()),
	}, nil
}

// Predict runs a Monte Carlo lifespan prediction for a stored genome
// and persists the result.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (PredictSummary, error) {
	if req.GenomeID == "" {
		return PredictSummary{}, errors.New("predict requires a genome id")
	}
	if req.Simulations <= 0 {
		req.Simulations = 100
	}
	if err := c.ensureInit(ctx); err != nil {
		return PredictSummary{}, err
	}

	genomeRecord, ok, err := c.store.GetGenome(ctx, req.GenomeID)
	if err != nil {
		return PredictSummary{}, err
	}
	if !ok {
		return PredictSummary{}, fmt.Errorf("genome not found: %s", req.GenomeID)
	}

	cfg := organism.DefaultConfig()
	rng := rand.New(rand.NewSource(req.Seed))
	prediction, err := organism.Predict(&cfg, genomeRecord.Genome, req.Simulations, rng)
	if err != nil {
		return PredictSummary{}, err
	}

	record := model.PredictionRecord{
		VersionedRecord: storage.Stamp(),
		ID:              uuid.NewString(),
		GenomeID:        req.GenomeID,
		CreatedAt:       time.Now().UTC(),
		Prediction:      prediction,
	}
	if err := c.store.SavePrediction(ctx, record); err != nil {
		return PredictSummary{}, err
	}

	return PredictSummary{
		PredictionID:    record.ID,
		GenomeID:        req.GenomeID,
		Simulations:     prediction.Simulations,
		MeanLifespan:    prediction.MeanLifespan,
		MedianLifespan:  prediction.MedianLifespan,
		StdDevLifespan:  prediction.StdDevLifespan,
		MostLikelyCause: prediction.MostLikelyCause,
	}, nil
}

func (c *Client) ensureInit(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}
