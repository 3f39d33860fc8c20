package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickstat/xfactor/internal/domain/career"
	idgen "github.com/crickstat/xfactor/internal/platform/id"
	qb "github.com/crickstat/xfactor/internal/platform/querybuilder"
)

var careerSelectColumns = []string{
	"id",
	"player_ref",
	"format",
	"name",
	"full_name",
	"player_slug",
	"dirty",
	"match_count",
	"first_match",
	"last_match",
	"x_factor",
	"bat_innings",
	"bat_completed",
	"bat_runs",
	"bat_minutes",
	"bat_balls",
	"bat_fours",
	"bat_sixes",
	"bat_average",
	"bat_strike_rate",
	"bowl_overs",
	"bowl_odd_balls",
	"bowl_overs_string",
	"bowl_maidens",
	"bowl_runs_conceded",
	"bowl_wickets",
	"bowl_average",
	"bowl_strike_rate",
	"bowl_economy",
	"field_dismissals",
	"field_catches_total",
	"field_stumpings",
	"field_catches_keeper",
	"field_catches",
}

type CareerRepository struct {
	db  *sqlx.DB
	gen idgen.Generator
}

func NewCareerRepository(db *sqlx.DB, gen idgen.Generator) *CareerRepository {
	if gen == nil {
		gen = idgen.NewRandomGenerator()
	}
	return &CareerRepository{db: db, gen: gen}
}

func (r *CareerRepository) FindOrCreate(ctx context.Context, playerRef int64, format career.Format) (career.Career, error) {
	if playerRef <= 0 {
		return career.Career{}, fmt.Errorf("player ref is required")
	}
	if !format.Valid() {
		return career.Career{}, fmt.Errorf("invalid format %d", format)
	}

	id, err := r.gen.NewID()
	if err != nil {
		return career.Career{}, fmt.Errorf("generate career id: %w", err)
	}

	query, args, err := qb.InsertInto("careers").
		Columns("id", "player_ref", "format").
		Values(id, playerRef, int(format)).
		Suffix(`ON CONFLICT (player_ref, format) DO NOTHING`).
		ToSQL()
	if err != nil {
		return career.Career{}, fmt.Errorf("build insert career query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return career.Career{}, fmt.Errorf("insert career ref=%d format=%s: %w", playerRef, format, err)
	}

	selectQuery, selectArgs, err := qb.Select(careerSelectColumns...).From("careers").
		Where(
			qb.Eq("player_ref", playerRef),
			qb.Eq("format", int(format)),
		).
		ToSQL()
	if err != nil {
		return career.Career{}, fmt.Errorf("build select career query: %w", err)
	}

	var row careerTableModel
	if err := r.db.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		return career.Career{}, fmt.Errorf("select career ref=%d format=%s: %w", playerRef, format, err)
	}
	return careerFromTableModel(row), nil
}

func (r *CareerRepository) GetByID(ctx context.Context, id string) (career.Career, error) {
	query, args, err := qb.Select(careerSelectColumns...).From("careers").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return career.Career{}, fmt.Errorf("build select career by id query: %w", err)
	}

	var row careerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return career.Career{}, career.ErrNotFound
		}
		return career.Career{}, fmt.Errorf("select career id=%s: %w", id, err)
	}
	return careerFromTableModel(row), nil
}

func (r *CareerRepository) ListDirty(ctx context.Context) ([]career.Career, error) {
	query, args, err := qb.Select(careerSelectColumns...).From("careers").
		Where(qb.Eq("dirty", true)).
		OrderBy("player_ref", "format").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list dirty careers query: %w", err)
	}

	var rows []careerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list dirty careers: %w", err)
	}
	return careersFromTableModels(rows), nil
}

func (r *CareerRepository) ListByPlayerRef(ctx context.Context, playerRef int64) ([]career.Career, error) {
	query, args, err := qb.Select(careerSelectColumns...).From("careers").
		Where(qb.Eq("player_ref", playerRef)).
		OrderBy("format").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list careers by ref query: %w", err)
	}

	var rows []careerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list careers ref=%d: %w", playerRef, err)
	}
	return careersFromTableModels(rows), nil
}

func (r *CareerRepository) Update(ctx context.Context, c career.Career) error {
	if c.ID == "" {
		return fmt.Errorf("career id is required")
	}

	model := careerToTableModel(c)
	query, args, err := qb.Update("careers").
		Set("name", model.Name).
		Set("full_name", model.FullName).
		Set("player_slug", model.PlayerSlug).
		Set("dirty", model.Dirty).
		Set("match_count", model.MatchCount).
		Set("first_match", model.FirstMatch).
		Set("last_match", model.LastMatch).
		Set("x_factor", model.XFactor).
		Set("bat_innings", model.BatInnings).
		Set("bat_completed", model.BatCompleted).
		Set("bat_runs", model.BatRuns).
		Set("bat_minutes", model.BatMinutes).
		Set("bat_balls", model.BatBalls).
		Set("bat_fours", model.BatFours).
		Set("bat_sixes", model.BatSixes).
		Set("bat_average", model.BatAverage).
		Set("bat_strike_rate", model.BatStrikeRate).
		Set("bowl_overs", model.BowlOvers).
		Set("bowl_odd_balls", model.BowlOddBalls).
		Set("bowl_overs_string", model.BowlOversString).
		Set("bowl_maidens", model.BowlMaidens).
		Set("bowl_runs_conceded", model.BowlRunsConceded).
		Set("bowl_wickets", model.BowlWickets).
		Set("bowl_average", model.BowlAverage).
		Set("bowl_strike_rate", model.BowlStrikeRate).
		Set("bowl_economy", model.BowlEconomy).
		Set("field_dismissals", model.FieldDismissals).
		Set("field_catches_total", model.FieldCatchesTotal).
		Set("field_stumpings", model.FieldStumpings).
		Set("field_catches_keeper", model.FieldCatchesKeeper).
		Set("field_catches", model.FieldCatches).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", c.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update career query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update career id=%s: %w", c.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update career id=%s rows affected: %w", c.ID, err)
	}
	if affected == 0 {
		return career.ErrNotFound
	}
	return nil
}

func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		if isRestricted(err) {
			return career.ErrHasPerformances
		}
		return fmt.Errorf("delete career id=%s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete career id=%s rows affected: %w", id, err)
	}
	if affected == 0 {
		return career.ErrNotFound
	}
	return nil
}

func (r *CareerRepository) ListRanked(ctx context.Context, format career.Format, limit int) ([]career.Career, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("invalid format %d", format)
	}

	builder := qb.Select(careerSelectColumns...).From("careers").
		Where(
			qb.Eq("format", int(format)),
			qb.Expr("x_factor IS NOT NULL"),
		).
		OrderBy("x_factor DESC", "player_ref")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ranked careers query: %w", err)
	}

	var rows []careerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ranked careers format=%s: %w", format, err)
	}
	return careersFromTableModels(rows), nil
}

func careersFromTableModels(rows []careerTableModel) []career.Career {
	out := make([]career.Career, 0, len(rows))
	for _, row := range rows {
		out = append(out, careerFromTableModel(row))
	}
	return out
}
