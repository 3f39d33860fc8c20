package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/crickstat/xfactor/internal/domain/performance"
)

type PerformanceRepository struct {
	mu    sync.RWMutex
	byKey map[string]performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{byKey: make(map[string]performance.Performance)}
}

func (r *PerformanceRepository) FindOrCreate(_ context.Context, inningsID, careerID string) (performance.Performance, error) {
	if inningsID == "" || careerID == "" {
		return performance.Performance{}, fmt.Errorf("innings id and career id are required")
	}
	key := performanceKey(inningsID, careerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.byKey[key]; ok {
		return p, nil
	}
	p := performance.Performance{ID: key, InningsID: inningsID, CareerID: careerID}
	r.byKey[key] = p
	return p, nil
}

func (r *PerformanceRepository) Update(_ context.Context, p performance.Performance) error {
	key := performanceKey(p.InningsID, p.CareerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; !ok {
		return fmt.Errorf("performance %s not found", key)
	}
	if p.ID == "" {
		p.ID = key
	}
	r.byKey[key] = p
	return nil
}

func (r *PerformanceRepository) ListByCareer(_ context.Context, careerID string) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0)
	for _, p := range r.byKey {
		if p.CareerID == careerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PerformanceRepository) CountByCareer(_ context.Context, careerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.byKey {
		if p.CareerID == careerID {
			count++
		}
	}
	return count, nil
}

// Seed installs a performance directly, for tests that need history
// without going through ingestion.
func (r *PerformanceRepository) Seed(p performance.Performance) {
	key := performanceKey(p.InningsID, p.CareerID)
	if p.ID == "" {
		p.ID = key
	}

	r.mu.Lock()
	r.byKey[key] = p
	r.mu.Unlock()
}

func performanceKey(inningsID, careerID string) string {
	return inningsID + ":" + careerID
}
