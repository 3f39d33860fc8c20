package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/crickstat/xfactor/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	bySlug map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{bySlug: make(map[string]player.Player)}
}

func (r *PlayerRepository) FindOrCreateBySlug(_ context.Context, slug string) (player.Player, error) {
	if slug == "" {
		return player.Player{}, fmt.Errorf("slug is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.bySlug[slug]; ok {
		return p, nil
	}
	p := player.Player{Slug: slug}
	r.bySlug[slug] = p
	return p, nil
}

func (r *PlayerRepository) GetBySlug(_ context.Context, slug string) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: %s", player.ErrNotFound, slug)
	}
	return p, nil
}

func (r *PlayerRepository) SetIdentity(_ context.Context, slug, name, fullName string, masterRef int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return fmt.Errorf("%w: %s", player.ErrNotFound, slug)
	}
	p.Name = name
	p.FullName = fullName
	p.MasterRef = masterRef
	r.bySlug[slug] = p
	return nil
}

func (r *PlayerRepository) AddPlayerRef(_ context.Context, slug string, playerRef int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return fmt.Errorf("%w: %s", player.ErrNotFound, slug)
	}
	if !p.HasRef(playerRef) {
		p.PlayerRefs = append(p.PlayerRefs, playerRef)
		r.bySlug[slug] = p
	}
	return nil
}

func (r *PlayerRepository) AddCareerID(_ context.Context, slug, careerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return fmt.Errorf("%w: %s", player.ErrNotFound, slug)
	}
	if !p.HasCareerID(careerID) {
		p.CareerIDs = append(p.CareerIDs, careerID)
		r.bySlug[slug] = p
	}
	return nil
}
