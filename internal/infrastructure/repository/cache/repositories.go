package cache

import (
	"context"
	"strconv"

	"github.com/crickstat/xfactor/internal/domain/career"
	basecache "github.com/crickstat/xfactor/internal/platform/cache"
)

const rankedPrefix = "career:ranked:"

// CareerRepository caches leaderboard reads in front of the persistent
// store. Writes pass through and drop every ranked entry, so a refresh run
// is visible on the next read.
type CareerRepository struct {
	next  career.Repository
	cache *basecache.Store
}

func NewCareerRepository(next career.Repository, cache *basecache.Store) *CareerRepository {
	return &CareerRepository{next: next, cache: cache}
}

func (r *CareerRepository) FindOrCreate(ctx context.Context, playerRef int64, format career.Format) (career.Career, error) {
	return r.next.FindOrCreate(ctx, playerRef, format)
}

func (r *CareerRepository) GetByID(ctx context.Context, id string) (career.Career, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CareerRepository) ListDirty(ctx context.Context) ([]career.Career, error) {
	return r.next.ListDirty(ctx)
}

func (r *CareerRepository) ListByPlayerRef(ctx context.Context, playerRef int64) ([]career.Career, error) {
	return r.next.ListByPlayerRef(ctx, playerRef)
}

func (r *CareerRepository) Update(ctx context.Context, c career.Career) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, rankedPrefix)
	return nil
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, rankedPrefix)
	return nil
}

func (r *CareerRepository) ListRanked(ctx context.Context, format career.Format, limit int) ([]career.Career, error) {
	key := rankedPrefix + format.String() + ":" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListRanked(ctx, format, limit)
		if err != nil {
			return nil, err
		}
		return append([]career.Career(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]career.Career)
	return append([]career.Career(nil), items...), nil
}
