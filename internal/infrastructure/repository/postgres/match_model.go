package postgres

import "time"

type matchTableModel struct {
	Ref       string    `db:"ref"`
	DateStart time.Time `db:"date_start"`
	DateEnd   time.Time `db:"date_end"`
}

type inningsTableModel struct {
	ID       string `db:"id"`
	MatchRef string `db:"match_ref"`
	Number   int    `db:"number"`
}
