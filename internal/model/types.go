package model

import (
	"time"

	"geras/internal/genome"
	"geras/internal/organism"
	"geras/internal/population"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// GenomeRecord is a persisted genome, typically the query subject of
// lifespan predictions.
type GenomeRecord struct {
	VersionedRecord
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Genome    *genome.Genome `json:"genome"`
}

// RunRecord is a persisted population run with its mined results.
type RunRecord struct {
	VersionedRecord
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Results   population.Results `json:"results"`
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Seed            int64     `json:"seed"`
	PopulationSize  int       `json:"population_size"`
	MeanLifespan    float64   `json:"mean_lifespan"`
	CentenarianRate float64   `json:"centenarian_rate"`
	PatternCount    int       `json:"pattern_count"`
}

// Summary condenses a run record for listings.
func (r *RunRecord) Summary() RunSummary {
	return RunSummary{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		Seed:            r.Results.Seed,
		PopulationSize:  len(r.Results.Lives),
		MeanLifespan:    r.Results.Statistics.MeanLifespan,
		CentenarianRate: r.Results.Statistics.CentenarianRate,
		PatternCount:    len(r.Results.Patterns),
	}
}

// PredictionRecord is a persisted lifespan prediction for one genome.
type PredictionRecord struct {
	VersionedRecord
	ID         string               `json:"id"`
	GenomeID   string               `json:"genome_id"`
	CreatedAt  time.Time            `json:"created_at"`
	Prediction *organism.Prediction `json:"prediction"`
}
