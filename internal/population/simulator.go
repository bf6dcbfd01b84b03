package population

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Results is the complete output of one population run.
type Results struct {
	ID            string                   `json:"id"`
	Seed          int64                    `json:"seed"`
	Config        Config                   `json:"config"`
	Lives         []LifeSummary            `json:"lives"`
	Patterns      []CausalPattern          `json:"patterns,omitempty"`
	Statistics    Statistics               `json:"statistics"`
	Interventions []InterventionComparison `json:"interventions,omitempty"`
}

// Simulator runs population cohorts. Every life gets its own rng
// derived from the run seed and the life's index, so parallel and
// sequential runs produce identical results.
type Simulator struct {
	cfg Config
	log *zap.Logger
}

// NewSimulator creates a simulator. A nil logger disables progress
// reporting.
func NewSimulator(cfg Config, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{cfg: cfg, log: log}
}

// Run simulates the cohort, mines patterns, and optionally runs the
// intervention arms. Cancellation is checked at organism boundaries.
func (s *Simulator) Run(ctx context.Context, seed int64) (*Results, error) {
	if s.cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population: size must be positive, got %d", s.cfg.PopulationSize)
	}

	s.log.Info("population run starting",
		zap.Int("population_size", s.cfg.PopulationSize),
		zap.Bool("parallel", s.cfg.Parallel),
		zap.Int64("seed", seed))

	lives := make([]LifeSummary, s.cfg.PopulationSize)
	var err error
	if s.cfg.Parallel {
		err = s.simulateParallel(ctx, seed, lives)
	} else {
		err = s.simulateSequential(ctx, seed, lives)
	}
	if err != nil {
		return nil, err
	}

	statistics := calculateStatistics(lives)
	patterns := minePatterns(lives)

	var interventions []InterventionComparison
	if s.cfg.SimulateInterventions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.log.Info("intervention arms starting",
			zap.Int("sample_size", s.cfg.interventionSampleSize()))
		rng := rand.New(rand.NewSource(seed + int64(s.cfg.PopulationSize)))
		interventions = compareInterventions(&s.cfg, rng)
	}

	s.log.Info("population run complete",
		zap.Float64("mean_lifespan", statistics.MeanLifespan),
		zap.Float64("centenarian_rate", statistics.CentenarianRate),
		zap.Int("patterns", len(patterns)))

	return &Results{
		ID:            uuid.NewString(),
		Seed:          seed,
		Config:        s.cfg,
		Lives:         lives,
		Patterns:      patterns,
		Statistics:    statistics,
		Interventions: interventions,
	}, nil
}

func (s *Simulator) simulateSequential(ctx context.Context, seed int64, lives []LifeSummary) error {
	step := progressStep(len(lives))
	for i := range lives {
		if err := ctx.Err(); err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(seed + int64(i)))
		lives[i] = simulateOneLife(&s.cfg, rng)
		if (i+1)%step == 0 {
			s.log.Info("population progress",
				zap.Int("completed", i+1),
				zap.Int("total", len(lives)))
		}
	}
	return nil
}

func (s *Simulator) simulateParallel(ctx context.Context, seed int64, lives []LifeSummary) error {
	workers := s.cfg.workers()
	if workers > len(lives) {
		workers = len(lives)
	}
	step := progressStep(len(lives))

	indices := make(chan int)
	var wg sync.WaitGroup
	var completed atomic.Int64
	var canceled atomic.Bool

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if ctx.Err() != nil {
					canceled.Store(true)
					continue
				}
				rng := rand.New(rand.NewSource(seed + int64(i)))
				lives[i] = simulateOneLife(&s.cfg, rng)
				done := int(completed.Add(1))
				if done%step == 0 {
					s.log.Info("population progress",
						zap.Int("completed", done),
						zap.Int("total", len(lives)))
				}
			}
		}()
	}

	for i := range lives {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if canceled.Load() {
		return ctx.Err()
	}
	return nil
}

// progressStep logs roughly ten times per run.
func progressStep(total int) int {
	step := total / 10
	if step < 1 {
		step = 1
	}
	return step
}
