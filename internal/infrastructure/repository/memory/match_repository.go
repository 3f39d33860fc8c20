package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/crickstat/xfactor/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	byRef   map[string]match.Match
	innings map[string]match.Innings
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	byRef := make(map[string]match.Match, len(seed))
	for _, m := range seed {
		byRef[m.Ref] = m
	}
	return &MatchRepository{
		byRef:   byRef,
		innings: make(map[string]match.Innings),
	}
}

func (r *MatchRepository) GetByRef(_ context.Context, ref string) (match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byRef[ref]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	return m, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	if m.Ref == "" {
		return fmt.Errorf("match ref is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byRef[m.Ref] = m
	return nil
}

func (r *MatchRepository) FindOrCreateInnings(_ context.Context, matchRef string, number int) (match.Innings, error) {
	key := inningsKey(matchRef, number)

	r.mu.Lock()
	defer r.mu.Unlock()

	if in, ok := r.innings[key]; ok {
		return in, nil
	}
	in := match.Innings{ID: key, MatchRef: matchRef, Number: number}
	r.innings[key] = in
	return in, nil
}

func inningsKey(matchRef string, number int) string {
	return fmt.Sprintf("%s/%d", matchRef, number)
}
