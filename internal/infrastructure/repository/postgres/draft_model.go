package postgres

import (
	"time"

	"github.com/lib/pq"
)

type draftTableModel struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	ShowID     string         `db:"show_id"`
	LeagueID   string         `db:"league_id"`
	SongIDs    pq.StringArray `db:"song_ids"`
	CreatedAt  time.Time      `db:"created_at"`
	Scored     bool           `db:"scored"`
	TotalScore int            `db:"total_score"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type draftInsertModel struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	ShowID     string         `db:"show_id"`
	LeagueID   string         `db:"league_id"`
	SongIDs    pq.StringArray `db:"song_ids"`
	CreatedAt  time.Time      `db:"created_at"`
	Scored     bool           `db:"scored"`
	TotalScore int            `db:"total_score"`
}

type draftSongScoreTableModel struct {
	DraftID   string         `db:"draft_id"`
	Position  int            `db:"position"`
	SongID    string         `db:"song_id"`
	Played    bool           `db:"played"`
	Segment   string         `db:"segment"`
	IsOpener  bool           `db:"is_opener"`
	IsCloser  bool           `db:"is_closer"`
	IsBustOut bool           `db:"is_bust_out"`
	IsCover   bool           `db:"is_cover"`
	Points    int            `db:"points"`
	Breakdown pq.StringArray `db:"breakdown"`
}
