package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickstat/xfactor/internal/domain/match"
	idgen "github.com/crickstat/xfactor/internal/platform/id"
	qb "github.com/crickstat/xfactor/internal/platform/querybuilder"
)

type MatchRepository struct {
	db  *sqlx.DB
	gen idgen.Generator
}

var matchSelectColumns = []string{
	"ref",
	"date_start",
	"date_end",
}

func NewMatchRepository(db *sqlx.DB, gen idgen.Generator) *MatchRepository {
	if gen == nil {
		gen = idgen.NewRandomGenerator()
	}
	return &MatchRepository{db: db, gen: gen}
}

func (r *MatchRepository) GetByRef(ctx context.Context, ref string) (match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("ref", ref)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, fmt.Errorf("select match ref=%s: %w", ref, err)
	}

	return match.Match{
		Ref:       row.Ref,
		DateStart: row.DateStart,
		DateEnd:   row.DateEnd,
	}, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	if m.Ref == "" {
		return fmt.Errorf("match ref is required")
	}

	query, args, err := qb.InsertModel("matches", matchTableModel{
		Ref:       m.Ref,
		DateStart: m.DateStart,
		DateEnd:   m.DateEnd,
	}, `ON CONFLICT (ref) DO UPDATE SET
    date_start = EXCLUDED.date_start,
    date_end = EXCLUDED.date_end`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match ref=%s: %w", m.Ref, err)
	}
	return nil
}

func (r *MatchRepository) FindOrCreateInnings(ctx context.Context, matchRef string, number int) (match.Innings, error) {
	if matchRef == "" || number <= 0 {
		return match.Innings{}, fmt.Errorf("match ref and positive innings number are required")
	}

	id, err := r.gen.NewID()
	if err != nil {
		return match.Innings{}, fmt.Errorf("generate innings id: %w", err)
	}

	query, args, err := qb.InsertModel("innings", inningsTableModel{
		ID:       id,
		MatchRef: matchRef,
		Number:   number,
	}, `ON CONFLICT (match_ref, number) DO NOTHING`)
	if err != nil {
		return match.Innings{}, fmt.Errorf("build insert innings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Innings{}, fmt.Errorf("insert innings match=%s number=%d: %w", matchRef, number, err)
	}

	selectQuery, selectArgs, err := qb.Select("id", "match_ref", "number").From("innings").
		Where(
			qb.Eq("match_ref", matchRef),
			qb.Eq("number", number),
		).
		ToSQL()
	if err != nil {
		return match.Innings{}, fmt.Errorf("build select innings query: %w", err)
	}

	var row inningsTableModel
	if err := r.db.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		return match.Innings{}, fmt.Errorf("select innings match=%s number=%d: %w", matchRef, number, err)
	}

	return match.Innings{
		ID:       row.ID,
		MatchRef: row.MatchRef,
		Number:   row.Number,
	}, nil
}
