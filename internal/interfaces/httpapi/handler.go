package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/logging"
	"github.com/crickstat/xfactor/internal/usecase"
)

type Handler struct {
	rankingService *usecase.RankingService
	refreshService *usecase.RefreshService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	rankingService *usecase.RankingService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rankingService: rankingService,
		refreshService: refreshService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type rankingsRequest struct {
	Format string `validate:"required,oneof=test odi t20i t20"`
	Limit  int    `validate:"gte=0,lte=500"`
}

type rankingEntryDTO struct {
	Rank           int      `json:"rank"`
	PlayerRef      int64    `json:"playerRef"`
	Name           string   `json:"name"`
	FullName       string   `json:"fullName,omitempty"`
	PlayerSlug     string   `json:"playerSlug,omitempty"`
	Format         string   `json:"format"`
	XFactor        float64  `json:"xFactor"`
	MatchCount     *int     `json:"matchCount,omitempty"`
	BattingRuns    int      `json:"battingRuns"`
	BattingAverage *float64 `json:"battingAverage,omitempty"`
	BowlingWickets int      `json:"bowlingWickets"`
	BowlingAverage *float64 `json:"bowlingAverage,omitempty"`
	Catches        int      `json:"catches"`
}

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	req := rankingsRequest{
		Format: strings.ToLower(strings.TrimSpace(r.PathValue("format"))),
	}
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		req.Limit = limit
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	format, err := career.ParseFormat(req.Format)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	ranked, err := h.rankingService.Rankings(ctx, format, req.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rankings failed", "format", format.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rankingEntryDTO, 0, len(ranked))
	for i, c := range ranked {
		entry := rankingEntryDTO{
			Rank:           i + 1,
			PlayerRef:      c.PlayerRef,
			Name:           c.Name,
			FullName:       c.FullName,
			PlayerSlug:     c.PlayerSlug,
			Format:         c.Format.String(),
			MatchCount:     c.MatchCount,
			BattingRuns:    c.Totals.Batting.Runs,
			BattingAverage: c.Totals.Batting.Average,
			BowlingWickets: c.Totals.Bowling.Wickets,
			BowlingAverage: c.Totals.Bowling.Average,
			Catches:        c.Totals.Fielding.Catches,
		}
		if c.XFactor != nil {
			entry.XFactor = *c.XFactor
		}
		out = append(out, entry)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RunRefreshDirtyJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshDirtyJob")
	defer span.End()

	result, err := h.refreshService.RefreshDirty(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh dirty job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRefreshPlayerJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshPlayerJob")
	defer span.End()

	playerRef, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("player_ref")), 10, 64)
	if err != nil || playerRef <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: player_ref must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	result, err := h.refreshService.RefreshPlayerRef(ctx, playerRef)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh player job failed", "player_ref", playerRef, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
