package storage

import (
	"context"
	"sort"
	"sync"

	"geras/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	genomes     map[string]model.GenomeRecord
	runs        map[string]model.RunRecord
	predictions map[string]model.PredictionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.genomes = make(map[string]model.GenomeRecord)
	s.runs = make(map[string]model.RunRecord)
	s.predictions = make(map[string]model.PredictionRecord)
	return nil
}

func (s *MemoryStore) SaveGenome(_ context.Context, record model.GenomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.genomes[record.ID] = record
	return nil
}

func (s *MemoryStore) GetGenome(_ context.Context, id string) (model.GenomeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.genomes[id]
	return record, ok, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, record model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.ID] = record
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[id]
	return record, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]model.RunSummary, 0, len(s.runs))
	for id := range s.runs {
		record := s.runs[id]
		summaries = append(summaries, record.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (s *MemoryStore) SavePrediction(_ context.Context, record model.PredictionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.predictions[record.ID] = record
	return nil
}

func (s *MemoryStore) GetPrediction(_ context.Context, id string) (model.PredictionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.predictions[id]
	return record, ok, nil
}
