package postgres

import "github.com/crickstat/xfactor/internal/domain/performance"

type performanceTableModel struct {
	ID        string `db:"id"`
	CareerID  string `db:"career_id"`
	InningsID string `db:"innings_id"`

	Runs    *string `db:"runs"`
	Minutes *int    `db:"minutes"`
	Balls   *int    `db:"balls"`
	Fours   *int    `db:"fours"`
	Sixes   *string `db:"sixes"`
	HowOut  string  `db:"how_out"`
	NotOut  bool    `db:"not_out"`

	Overs        *int `db:"overs"`
	OddBalls     int  `db:"odd_balls"`
	Maidens      int  `db:"maidens"`
	RunsConceded int  `db:"runs_conceded"`
	Wickets      int  `db:"wickets"`

	Dismissals    *string `db:"dismissals"`
	CatchesTotal  int     `db:"catches_total"`
	Stumpings     int     `db:"stumpings"`
	CatchesKeeper int     `db:"catches_keeper"`
	Catches       int     `db:"catches"`

	Average       *float64 `db:"average"`
	StrikeRate    *float64 `db:"strike_rate"`
	CumStrikeRate *float64 `db:"cum_strike_rate"`
	CumEconomy    *float64 `db:"cum_economy"`
}

func performanceToTableModel(p performance.Performance) performanceTableModel {
	return performanceTableModel{
		ID:            p.ID,
		CareerID:      p.CareerID,
		InningsID:     p.InningsID,
		Runs:          p.Runs,
		Minutes:       p.Minutes,
		Balls:         p.Balls,
		Fours:         p.Fours,
		Sixes:         p.Sixes,
		HowOut:        p.HowOut,
		NotOut:        p.NotOut,
		Overs:         p.Overs,
		OddBalls:      p.OddBalls,
		Maidens:       p.Maidens,
		RunsConceded:  p.RunsConceded,
		Wickets:       p.Wickets,
		Dismissals:    p.Dismissals,
		CatchesTotal:  p.CatchesTotal,
		Stumpings:     p.Stumpings,
		CatchesKeeper: p.CatchesKeeper,
		Catches:       p.Catches,
		Average:       p.Average,
		StrikeRate:    p.StrikeRate,
		CumStrikeRate: p.CumStrikeRate,
		CumEconomy:    p.CumEconomy,
	}
}

func performanceFromTableModel(row performanceTableModel) performance.Performance {
	return performance.Performance{
		ID:            row.ID,
		CareerID:      row.CareerID,
		InningsID:     row.InningsID,
		Runs:          row.Runs,
		Minutes:       row.Minutes,
		Balls:         row.Balls,
		Fours:         row.Fours,
		Sixes:         row.Sixes,
		HowOut:        row.HowOut,
		NotOut:        row.NotOut,
		Overs:         row.Overs,
		OddBalls:      row.OddBalls,
		Maidens:       row.Maidens,
		RunsConceded:  row.RunsConceded,
		Wickets:       row.Wickets,
		Dismissals:    row.Dismissals,
		CatchesTotal:  row.CatchesTotal,
		Stumpings:     row.Stumpings,
		CatchesKeeper: row.CatchesKeeper,
		Catches:       row.Catches,
		Average:       row.Average,
		StrikeRate:    row.StrikeRate,
		CumStrikeRate: row.CumStrikeRate,
		CumEconomy:    row.CumEconomy,
	}
}
