package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
	qb "github.com/phantasyphish/setlist-api/internal/platform/querybuilder"
)

type SongRepository struct {
	db *sqlx.DB
}

func NewSongRepository(db *sqlx.DB) *SongRepository {
	return &SongRepository{db: db}
}

func (r *SongRepository) GetByID(ctx context.Context, songID string) (song.Song, bool, error) {
	query, args, err := songBaseSelectBuilder().
		Where(qb.Eq("id", songID)).
		ToSQL()
	if err != nil {
		return song.Song{}, false, fmt.Errorf("build get song query: %w", err)
	}

	var row songTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return song.Song{}, false, nil
		}
		return song.Song{}, false, fmt.Errorf("get song: %w", err)
	}

	return songFromRow(row), true, nil
}

func (r *SongRepository) List(ctx context.Context) ([]song.Song, error) {
	query, args, err := songBaseSelectBuilder().
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list songs query: %w", err)
	}

	var rows []songTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	out := make([]song.Song, 0, len(rows))
	for _, row := range rows {
		out = append(out, songFromRow(row))
	}
	return out, nil
}

func (r *SongRepository) Upsert(ctx context.Context, item song.Song) error {
	insertModel := songInsertModel{
		ID:             item.ID,
		Name:           item.Name,
		IsCover:        item.IsCover,
		OriginalArtist: item.OriginalArtist,
		TimesPlayed:    item.TimesPlayed,
		AvgGap:         item.AvgGap,
		DebutDate:      item.DebutDate,
		LastPlayed:     item.LastPlayed,
	}

	query, args, err := qb.InsertModel("songs", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    is_cover = EXCLUDED.is_cover,
    original_artist = EXCLUDED.original_artist,
    times_played = EXCLUDED.times_played,
    avg_gap = EXCLUDED.avg_gap,
    debut_date = EXCLUDED.debut_date,
    last_played = EXCLUDED.last_played,
    updated_at = now()`)
	if err != nil {
		return fmt.Errorf("build song upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert song: %w", err)
	}
	return nil
}

func songFromRow(row songTableModel) song.Song {
	return song.Song{
		ID:             row.ID,
		Name:           row.Name,
		IsCover:        row.IsCover,
		OriginalArtist: row.OriginalArtist,
		TimesPlayed:    row.TimesPlayed,
		AvgGap:         row.AvgGap,
		DebutDate:      row.DebutDate,
		LastPlayed:     row.LastPlayed,
	}
}

func songBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("songs")
}
