package usecase

import (
	"context"
	"fmt"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

const (
	defaultRankingLimit = 100
	maxRankingLimit     = 500
)

// RankingService reads the scored leaderboard. Careers without a score are
// not ranked at all rather than ranked last.
type RankingService struct {
	careers career.Repository
	logger  *logging.Logger
}

func NewRankingService(careers career.Repository, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{careers: careers, logger: logger}
}

func (s *RankingService) Rankings(ctx context.Context, format career.Format, limit int) ([]career.Career, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rankings")
	defer span.End()

	if !format.Valid() {
		return nil, fmt.Errorf("%w: unknown format", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	if limit > maxRankingLimit {
		limit = maxRankingLimit
	}

	ranked, err := s.careers.ListRanked(ctx, format, limit)
	if err != nil {
		return nil, fmt.Errorf("list ranked careers format=%s: %w", format, err)
	}
	return ranked, nil
}
