// Package population runs cohorts of simulated lives and mines the
// results for causal aging patterns: which variants extend life, which
// midlife biomarkers predict early death, what lifestyle is worth, and
// what interventions would have changed.
package population

import (
	"runtime"

	"geras/internal/organism"
)

// Config controls a population run. Start from DefaultConfig.
type Config struct {
	// PopulationSize is the number of lives to simulate.
	PopulationSize int `json:"population_size"`
	// Parallel distributes lives across workers. Results are identical
	// to a sequential run for the same seed.
	Parallel bool `json:"parallel"`
	// Workers caps the worker pool; 0 means one per CPU.
	Workers int `json:"workers,omitempty"`
	// DetailedTrajectories keeps each life's full biomarker history in
	// its summary. Off by default: a 10k cohort's trajectories dominate
	// the results payload.
	DetailedTrajectories bool `json:"detailed_trajectories"`
	// LifestyleVariation draws a random lifestyle per life instead of
	// the population default.
	LifestyleVariation bool `json:"lifestyle_variation"`
	// SimulateInterventions runs paired control/treatment cohorts after
	// the main population.
	SimulateInterventions bool `json:"simulate_interventions"`
	// InterventionSampleMin floors the paired cohort size; the sample
	// is the larger of this and a tenth of the population.
	InterventionSampleMin int `json:"intervention_sample_min"`
	// MidlifeAge is when the biomarker panel for predictive mining is
	// captured.
	MidlifeAge float64 `json:"midlife_age"`

	Organism organism.Config `json:"organism"`
}

// DefaultConfig returns the standard cohort parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:        10000,
		Parallel:              true,
		LifestyleVariation:    true,
		SimulateInterventions: true,
		InterventionSampleMin: 100,
		MidlifeAge:            50,
		Organism:              organism.DefaultConfig(),
	}
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func (c *Config) interventionSampleSize() int {
	sample := c.PopulationSize / 10
	if sample < c.InterventionSampleMin {
		sample = c.InterventionSampleMin
	}
	return sample
}
