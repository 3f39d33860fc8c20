package postgres

import (
	"time"

	"github.com/crickstat/xfactor/internal/domain/career"
)

// careerTableModel flattens the career aggregate into one row. The dirty
// column is tri-state: NULL means the career has never been through a stats
// pass, true means stale, false means clean.
type careerTableModel struct {
	ID         string     `db:"id"`
	PlayerRef  int64      `db:"player_ref"`
	Format     int        `db:"format"`
	Name       string     `db:"name"`
	FullName   string     `db:"full_name"`
	PlayerSlug string     `db:"player_slug"`
	Dirty      *bool      `db:"dirty"`
	MatchCount *int       `db:"match_count"`
	FirstMatch *time.Time `db:"first_match"`
	LastMatch  *time.Time `db:"last_match"`
	XFactor    *float64   `db:"x_factor"`

	BatInnings    int      `db:"bat_innings"`
	BatCompleted  int      `db:"bat_completed"`
	BatRuns       int      `db:"bat_runs"`
	BatMinutes    int      `db:"bat_minutes"`
	BatBalls      int      `db:"bat_balls"`
	BatFours      int      `db:"bat_fours"`
	BatSixes      int      `db:"bat_sixes"`
	BatAverage    *float64 `db:"bat_average"`
	BatStrikeRate *float64 `db:"bat_strike_rate"`

	BowlOvers        int      `db:"bowl_overs"`
	BowlOddBalls     int      `db:"bowl_odd_balls"`
	BowlOversString  string   `db:"bowl_overs_string"`
	BowlMaidens      int      `db:"bowl_maidens"`
	BowlRunsConceded int      `db:"bowl_runs_conceded"`
	BowlWickets      int      `db:"bowl_wickets"`
	BowlAverage      *float64 `db:"bowl_average"`
	BowlStrikeRate   *float64 `db:"bowl_strike_rate"`
	BowlEconomy      *float64 `db:"bowl_economy"`

	FieldDismissals    int `db:"field_dismissals"`
	FieldCatchesTotal  int `db:"field_catches_total"`
	FieldStumpings     int `db:"field_stumpings"`
	FieldCatchesKeeper int `db:"field_catches_keeper"`
	FieldCatches       int `db:"field_catches"`
}

func careerToTableModel(c career.Career) careerTableModel {
	return careerTableModel{
		ID:         c.ID,
		PlayerRef:  c.PlayerRef,
		Format:     int(c.Format),
		Name:       c.Name,
		FullName:   c.FullName,
		PlayerSlug: c.PlayerSlug,
		Dirty:      freshnessToDirty(c.Freshness),
		MatchCount: c.MatchCount,
		FirstMatch: c.FirstMatch,
		LastMatch:  c.LastMatch,
		XFactor:    c.XFactor,

		BatInnings:    c.Totals.Batting.Innings,
		BatCompleted:  c.Totals.Batting.Completed,
		BatRuns:       c.Totals.Batting.Runs,
		BatMinutes:    c.Totals.Batting.Minutes,
		BatBalls:      c.Totals.Batting.Balls,
		BatFours:      c.Totals.Batting.Fours,
		BatSixes:      c.Totals.Batting.Sixes,
		BatAverage:    c.Totals.Batting.Average,
		BatStrikeRate: c.Totals.Batting.StrikeRate,

		BowlOvers:        c.Totals.Bowling.Overs,
		BowlOddBalls:     c.Totals.Bowling.OddBalls,
		BowlOversString:  c.Totals.Bowling.OversString,
		BowlMaidens:      c.Totals.Bowling.Maidens,
		BowlRunsConceded: c.Totals.Bowling.RunsConceded,
		BowlWickets:      c.Totals.Bowling.Wickets,
		BowlAverage:      c.Totals.Bowling.Average,
		BowlStrikeRate:   c.Totals.Bowling.StrikeRate,
		BowlEconomy:      c.Totals.Bowling.Economy,

		FieldDismissals:    c.Totals.Fielding.Dismissals,
		FieldCatchesTotal:  c.Totals.Fielding.CatchesTotal,
		FieldStumpings:     c.Totals.Fielding.Stumpings,
		FieldCatchesKeeper: c.Totals.Fielding.CatchesKeeper,
		FieldCatches:       c.Totals.Fielding.Catches,
	}
}

func careerFromTableModel(row careerTableModel) career.Career {
	return career.Career{
		ID:         row.ID,
		PlayerRef:  row.PlayerRef,
		Format:     career.Format(row.Format),
		Name:       row.Name,
		FullName:   row.FullName,
		PlayerSlug: row.PlayerSlug,
		Freshness:  dirtyToFreshness(row.Dirty),
		MatchCount: row.MatchCount,
		FirstMatch: row.FirstMatch,
		LastMatch:  row.LastMatch,
		XFactor:    row.XFactor,
		Totals: career.Totals{
			Batting: career.Batting{
				Innings:    row.BatInnings,
				Completed:  row.BatCompleted,
				Runs:       row.BatRuns,
				Minutes:    row.BatMinutes,
				Balls:      row.BatBalls,
				Fours:      row.BatFours,
				Sixes:      row.BatSixes,
				Average:    row.BatAverage,
				StrikeRate: row.BatStrikeRate,
			},
			Bowling: career.Bowling{
				Overs:        row.BowlOvers,
				OddBalls:     row.BowlOddBalls,
				OversString:  row.BowlOversString,
				Maidens:      row.BowlMaidens,
				RunsConceded: row.BowlRunsConceded,
				Wickets:      row.BowlWickets,
				Average:      row.BowlAverage,
				StrikeRate:   row.BowlStrikeRate,
				Economy:      row.BowlEconomy,
			},
			Fielding: career.Fielding{
				Dismissals:    row.FieldDismissals,
				CatchesTotal:  row.FieldCatchesTotal,
				Stumpings:     row.FieldStumpings,
				CatchesKeeper: row.FieldCatchesKeeper,
				Catches:       row.FieldCatches,
			},
		},
	}
}

func freshnessToDirty(f career.Freshness) *bool {
	switch f {
	case career.FreshnessDirty:
		v := true
		return &v
	case career.FreshnessClean:
		v := false
		return &v
	default:
		return nil
	}
}

func dirtyToFreshness(dirty *bool) career.Freshness {
	switch {
	case dirty == nil:
		return career.FreshnessIndeterminate
	case *dirty:
		return career.FreshnessDirty
	default:
		return career.FreshnessClean
	}
}
