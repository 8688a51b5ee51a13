package postgres

import "time"

type songTableModel struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	IsCover        bool      `db:"is_cover"`
	OriginalArtist string    `db:"original_artist"`
	TimesPlayed    int       `db:"times_played"`
	AvgGap         float64   `db:"avg_gap"`
	DebutDate      string    `db:"debut_date"`
	LastPlayed     string    `db:"last_played"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type songInsertModel struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	IsCover        bool    `db:"is_cover"`
	OriginalArtist string  `db:"original_artist"`
	TimesPlayed    int     `db:"times_played"`
	AvgGap         float64 `db:"avg_gap"`
	DebutDate      string  `db:"debut_date"`
	LastPlayed     string  `db:"last_played"`
}
