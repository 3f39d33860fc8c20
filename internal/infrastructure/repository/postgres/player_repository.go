package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickstat/xfactor/internal/domain/player"
	qb "github.com/crickstat/xfactor/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"slug",
	"name",
	"full_name",
	"master_ref",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) FindOrCreateBySlug(ctx context.Context, slug string) (player.Player, error) {
	if slug == "" {
		return player.Player{}, fmt.Errorf("player slug is required")
	}

	query, args, err := qb.InsertModel("players", playerInsertModel{Slug: slug},
		`ON CONFLICT (slug) DO NOTHING`)
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player slug=%s: %w", slug, err)
	}

	return r.GetBySlug(ctx, slug)
}

func (r *PlayerRepository) GetBySlug(ctx context.Context, slug string) (player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("slug", slug)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, player.ErrNotFound
		}
		return player.Player{}, fmt.Errorf("select player slug=%s: %w", slug, err)
	}

	out := player.Player{
		Slug:      row.Slug,
		Name:      row.Name,
		FullName:  row.FullName,
		MasterRef: row.MasterRef,
	}

	refsQuery, refsArgs, err := qb.Select("ref").From("player_refs").
		Where(qb.Eq("player_slug", slug)).
		OrderBy("ref").
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build select player refs query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &out.PlayerRefs, refsQuery, refsArgs...); err != nil {
		return player.Player{}, fmt.Errorf("select player refs slug=%s: %w", slug, err)
	}

	careersQuery, careersArgs, err := qb.Select("career_id").From("player_careers").
		Where(qb.Eq("player_slug", slug)).
		OrderBy("career_id").
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build select player careers query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &out.CareerIDs, careersQuery, careersArgs...); err != nil {
		return player.Player{}, fmt.Errorf("select player careers slug=%s: %w", slug, err)
	}

	return out, nil
}

func (r *PlayerRepository) SetIdentity(ctx context.Context, slug, name, fullName string, masterRef int64) error {
	query, args, err := qb.Update("players").
		Set("name", name).
		Set("full_name", fullName).
		Set("master_ref", masterRef).
		Where(qb.Eq("slug", slug)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player identity query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player identity slug=%s: %w", slug, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player identity slug=%s rows affected: %w", slug, err)
	}
	if affected == 0 {
		return player.ErrNotFound
	}
	return nil
}

func (r *PlayerRepository) AddPlayerRef(ctx context.Context, slug string, playerRef int64) error {
	query, args, err := qb.InsertInto("player_refs").
		Columns("player_slug", "ref").
		Values(slug, playerRef).
		Suffix(`ON CONFLICT (player_slug, ref) DO NOTHING`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player ref query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player ref slug=%s ref=%d: %w", slug, playerRef, err)
	}
	return nil
}

func (r *PlayerRepository) AddCareerID(ctx context.Context, slug, careerID string) error {
	query, args, err := qb.InsertInto("player_careers").
		Columns("player_slug", "career_id").
		Values(slug, careerID).
		Suffix(`ON CONFLICT (player_slug, career_id) DO NOTHING`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert player career query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player career slug=%s career=%s: %w", slug, careerID, err)
	}
	return nil
}
