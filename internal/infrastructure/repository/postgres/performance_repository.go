package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickstat/xfactor/internal/domain/performance"
	idgen "github.com/crickstat/xfactor/internal/platform/id"
	qb "github.com/crickstat/xfactor/internal/platform/querybuilder"
)

type PerformanceRepository struct {
	db  *sqlx.DB
	gen idgen.Generator
}

var performanceSelectColumns = []string{
	"id",
	"career_id",
	"innings_id",
	"runs",
	"minutes",
	"balls",
	"fours",
	"sixes",
	"how_out",
	"not_out",
	"overs",
	"odd_balls",
	"maidens",
	"runs_conceded",
	"wickets",
	"dismissals",
	"catches_total",
	"stumpings",
	"catches_keeper",
	"catches",
	"average",
	"strike_rate",
	"cum_strike_rate",
	"cum_economy",
}

func NewPerformanceRepository(db *sqlx.DB, gen idgen.Generator) *PerformanceRepository {
	if gen == nil {
		gen = idgen.NewRandomGenerator()
	}
	return &PerformanceRepository{db: db, gen: gen}
}

func (r *PerformanceRepository) FindOrCreate(ctx context.Context, inningsID, careerID string) (performance.Performance, error) {
	if inningsID == "" || careerID == "" {
		return performance.Performance{}, fmt.Errorf("innings id and career id are required")
	}

	id, err := r.gen.NewID()
	if err != nil {
		return performance.Performance{}, fmt.Errorf("generate performance id: %w", err)
	}

	query, args, err := qb.InsertInto("performances").
		Columns("id", "innings_id", "career_id").
		Values(id, inningsID, careerID).
		Suffix(`ON CONFLICT (innings_id, career_id) DO NOTHING`).
		ToSQL()
	if err != nil {
		return performance.Performance{}, fmt.Errorf("build insert performance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return performance.Performance{}, fmt.Errorf("insert performance innings=%s career=%s: %w", inningsID, careerID, err)
	}

	selectQuery, selectArgs, err := qb.Select(performanceSelectColumns...).From("performances").
		Where(
			qb.Eq("innings_id", inningsID),
			qb.Eq("career_id", careerID),
		).
		ToSQL()
	if err != nil {
		return performance.Performance{}, fmt.Errorf("build select performance query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		return performance.Performance{}, fmt.Errorf("select performance innings=%s career=%s: %w", inningsID, careerID, err)
	}
	return performanceFromTableModel(row), nil
}

func (r *PerformanceRepository) Update(ctx context.Context, p performance.Performance) error {
	if p.InningsID == "" || p.CareerID == "" {
		return fmt.Errorf("innings id and career id are required")
	}

	model := performanceToTableModel(p)
	query, args, err := qb.Update("performances").
		Set("runs", model.Runs).
		Set("minutes", model.Minutes).
		Set("balls", model.Balls).
		Set("fours", model.Fours).
		Set("sixes", model.Sixes).
		Set("how_out", model.HowOut).
		Set("not_out", model.NotOut).
		Set("overs", model.Overs).
		Set("odd_balls", model.OddBalls).
		Set("maidens", model.Maidens).
		Set("runs_conceded", model.RunsConceded).
		Set("wickets", model.Wickets).
		Set("dismissals", model.Dismissals).
		Set("catches_total", model.CatchesTotal).
		Set("stumpings", model.Stumpings).
		Set("catches_keeper", model.CatchesKeeper).
		Set("catches", model.Catches).
		Set("average", model.Average).
		Set("strike_rate", model.StrikeRate).
		Set("cum_strike_rate", model.CumStrikeRate).
		Set("cum_economy", model.CumEconomy).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("innings_id", p.InningsID),
			qb.Eq("career_id", p.CareerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update performance query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update performance innings=%s career=%s: %w", p.InningsID, p.CareerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update performance rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("performance innings=%s career=%s not found", p.InningsID, p.CareerID)
	}
	return nil
}

// ListByCareer returns history in match order so the cumulative fold reads
// the way the source pages do.
func (r *PerformanceRepository) ListByCareer(ctx context.Context, careerID string) ([]performance.Performance, error) {
	columns := make([]string, 0, len(performanceSelectColumns))
	for _, col := range performanceSelectColumns {
		columns = append(columns, "p."+col)
	}

	query, args, err := qb.Select(columns...).
		From("performances p JOIN innings i ON i.id = p.innings_id JOIN matches m ON m.ref = i.match_ref").
		Where(qb.Eq("p.career_id", careerID)).
		OrderBy("m.date_start", "i.number", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list performances career=%s: %w", careerID, err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceFromTableModel(row))
	}
	return out, nil
}

func (r *PerformanceRepository) CountByCareer(ctx context.Context, careerID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM performances WHERE career_id = $1`, careerID); err != nil {
		return 0, fmt.Errorf("count performances career=%s: %w", careerID, err)
	}
	return count, nil
}
