package storage

import (
	"context"

	"geras/internal/model"
)

// Store defines persistence operations for genomes, population runs,
// and lifespan predictions.
type Store interface {
	Init(ctx context.Context) error
	SaveGenome(ctx context.Context, record model.GenomeRecord) error
	GetGenome(ctx context.Context, id string) (model.GenomeRecord, bool, error)
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunSummary, error)
	SavePrediction(ctx context.Context, record model.PredictionRecord) error
	GetPrediction(ctx context.Context, id string) (model.PredictionRecord, bool, error)
}
