package postgres

type playerTableModel struct {
	Slug      string `db:"slug"`
	Name      string `db:"name"`
	FullName  string `db:"full_name"`
	MasterRef int64  `db:"master_ref"`
}

type playerInsertModel struct {
	Slug string `db:"slug"`
}
