package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crickstat/xfactor/internal/domain/career"
	idgen "github.com/crickstat/xfactor/internal/platform/id"
)

type CareerRepository struct {
	mu    sync.RWMutex
	byID  map[string]career.Career
	gen   idgen.Generator
	perfs *PerformanceRepository
}

// NewCareerRepository builds the in-memory store. perfs, when set, backs
// the delete-restriction check the schema's foreign key would otherwise
// enforce.
func NewCareerRepository(gen idgen.Generator, perfs *PerformanceRepository) *CareerRepository {
	if gen == nil {
		gen = idgen.NewRandomGenerator()
	}
	return &CareerRepository{
		byID:  make(map[string]career.Career),
		gen:   gen,
		perfs: perfs,
	}
}

func (r *CareerRepository) FindOrCreate(_ context.Context, playerRef int64, format career.Format) (career.Career, error) {
	if playerRef <= 0 {
		return career.Career{}, fmt.Errorf("player ref is required")
	}
	if !format.Valid() {
		return career.Career{}, fmt.Errorf("invalid format %d", format)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byID {
		if c.PlayerRef == playerRef && c.Format == format {
			return c, nil
		}
	}

	id, err := r.gen.NewID()
	if err != nil {
		return career.Career{}, fmt.Errorf("generate career id: %w", err)
	}
	c := career.Career{ID: id, PlayerRef: playerRef, Format: format}
	r.byID[id] = c
	return c, nil
}

func (r *CareerRepository) GetByID(_ context.Context, id string) (career.Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return career.Career{}, career.ErrNotFound
	}
	return c, nil
}

func (r *CareerRepository) ListDirty(_ context.Context) ([]career.Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]career.Career, 0)
	for _, c := range r.byID {
		if c.Freshness == career.FreshnessDirty {
			out = append(out, c)
		}
	}
	sortCareers(out)
	return out, nil
}

func (r *CareerRepository) ListByPlayerRef(_ context.Context, playerRef int64) ([]career.Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]career.Career, 0)
	for _, c := range r.byID {
		if c.PlayerRef == playerRef {
			out = append(out, c)
		}
	}
	sortCareers(out)
	return out, nil
}

func (r *CareerRepository) Update(_ context.Context, c career.Career) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return career.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	if r.perfs != nil {
		count, err := r.perfs.CountByCareer(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return career.ErrHasPerformances
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return career.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *CareerRepository) ListRanked(_ context.Context, format career.Format, limit int) ([]career.Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]career.Career, 0)
	for _, c := range r.byID {
		if c.Format == format && c.XFactor != nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].XFactor > *out[j].XFactor
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortCareers(list []career.Career) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].PlayerRef != list[j].PlayerRef {
			return list[i].PlayerRef < list[j].PlayerRef
		}
		return list[i].Format < list[j].Format
	})
}
