package postgres

import "time"

type showTableModel struct {
	ID          string    `db:"id"`
	ShowDate    string    `db:"show_date"`
	Venue       string    `db:"venue"`
	City        string    `db:"city"`
	State       string    `db:"state"`
	ShowNumber  int       `db:"show_number"`
	IsCompleted bool      `db:"is_completed"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type showInsertModel struct {
	ID          string    `db:"id"`
	ShowDate    string    `db:"show_date"`
	Venue       string    `db:"venue"`
	City        string    `db:"city"`
	State       string    `db:"state"`
	ShowNumber  int       `db:"show_number"`
	IsCompleted bool      `db:"is_completed"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type setlistEntryTableModel struct {
	ShowID   string `db:"show_id"`
	Segment  string `db:"segment"`
	SongID   string `db:"song_id"`
	Position int    `db:"position"`
	IsOpener bool   `db:"is_opener"`
	IsCloser bool   `db:"is_closer"`
}
