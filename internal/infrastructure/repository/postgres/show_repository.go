package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
	qb "github.com/phantasyphish/setlist-api/internal/platform/querybuilder"
)

type ShowRepository struct {
	db *sqlx.DB
}

func NewShowRepository(db *sqlx.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

func (r *ShowRepository) GetByID(ctx context.Context, showID string) (show.Show, bool, error) {
	query, args, err := showBaseSelectBuilder().
		Where(qb.Eq("id", showID)).
		ToSQL()
	if err != nil {
		return show.Show{}, false, fmt.Errorf("build get show query: %w", err)
	}

	var row showTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return show.Show{}, false, nil
		}
		return show.Show{}, false, fmt.Errorf("get show: %w", err)
	}

	entriesByShow, err := r.loadSetlistEntries(ctx, []string{row.ID})
	if err != nil {
		return show.Show{}, false, err
	}

	return showFromRow(row, entriesByShow[row.ID]), true, nil
}

func (r *ShowRepository) List(ctx context.Context) ([]show.Show, error) {
	return r.list(ctx, nil)
}

func (r *ShowRepository) ListCompleted(ctx context.Context) ([]show.Show, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("is_completed", true)})
}

func (r *ShowRepository) list(ctx context.Context, conditions []qb.Condition) ([]show.Show, error) {
	query, args, err := showBaseSelectBuilder().
		Where(conditions...).
		OrderBy("show_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list shows query: %w", err)
	}

	var rows []showTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	showIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		showIDs = append(showIDs, row.ID)
	}
	entriesByShow, err := r.loadSetlistEntries(ctx, showIDs)
	if err != nil {
		return nil, err
	}

	out := make([]show.Show, 0, len(rows))
	for _, row := range rows {
		out = append(out, showFromRow(row, entriesByShow[row.ID]))
	}
	return out, nil
}

// Upsert replaces the show row and its setlist entries atomically so a
// partially written setlist is never visible to scoring.
func (r *ShowRepository) Upsert(ctx context.Context, item show.Show) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin show upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := showInsertModel{
		ID:          item.ID,
		ShowDate:    item.Date,
		Venue:       item.Venue,
		City:        item.City,
		State:       item.State,
		ShowNumber:  item.ShowNumber,
		IsCompleted: item.IsCompleted,
		UpdatedAt:   item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("shows", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    show_date = EXCLUDED.show_date,
    venue = EXCLUDED.venue,
    city = EXCLUDED.city,
    state = EXCLUDED.state,
    show_number = EXCLUDED.show_number,
    is_completed = EXCLUDED.is_completed,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build show upsert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert show: %w", err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("setlist_entries").
		Where(qb.Eq("show_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear setlist entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear setlist entries: %w", err)
	}

	insert := qb.InsertInto("setlist_entries").
		Columns("show_id", "segment", "song_id", "position", "is_opener", "is_closer")
	total := 0
	for _, segment := range []struct {
		name    show.Segment
		entries []show.SetlistEntry
	}{
		{show.SegmentSet1, item.Set1},
		{show.SegmentSet2, item.Set2},
		{show.SegmentEncore, item.Encore},
	} {
		for _, entry := range segment.entries {
			insert = insert.Values(item.ID, string(segment.name), entry.SongID, entry.Position, entry.IsOpener, entry.IsCloser)
			total++
		}
	}
	if total > 0 {
		entriesQuery, entriesArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert setlist entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, entriesQuery, entriesArgs...); err != nil {
			return fmt.Errorf("insert setlist entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit show upsert tx: %w", err)
	}
	return nil
}

func (r *ShowRepository) loadSetlistEntries(ctx context.Context, showIDs []string) (map[string][]setlistEntryTableModel, error) {
	ids := make([]any, 0, len(showIDs))
	for _, id := range showIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("setlist_entries").
		Where(qb.In("show_id", ids)).
		OrderBy("show_id", "segment", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list setlist entries query: %w", err)
	}

	var rows []setlistEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list setlist entries: %w", err)
	}

	out := make(map[string][]setlistEntryTableModel, len(showIDs))
	for _, row := range rows {
		out[row.ShowID] = append(out[row.ShowID], row)
	}
	return out, nil
}

func showFromRow(row showTableModel, entries []setlistEntryTableModel) show.Show {
	item := show.Show{
		ID:          row.ID,
		Date:        row.ShowDate,
		Venue:       row.Venue,
		City:        row.City,
		State:       row.State,
		ShowNumber:  row.ShowNumber,
		IsCompleted: row.IsCompleted,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, entry := range entries {
		setlistEntry := show.SetlistEntry{
			SongID:   entry.SongID,
			Position: entry.Position,
			IsOpener: entry.IsOpener,
			IsCloser: entry.IsCloser,
		}
		switch show.Segment(entry.Segment) {
		case show.SegmentSet1:
			item.Set1 = append(item.Set1, setlistEntry)
		case show.SegmentSet2:
			item.Set2 = append(item.Set2, setlistEntry)
		case show.SegmentEncore:
			item.Encore = append(item.Encore, setlistEntry)
		}
	}
	return item
}

func showBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("shows")
}
