package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	qb "github.com/phantasyphish/setlist-api/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByID(ctx context.Context, draftID string) (draft.Draft, bool, error) {
	query, args, err := draftBaseSelectBuilder().
		Where(qb.Eq("id", draftID)).
		ToSQL()
	if err != nil {
		return draft.Draft{}, false, fmt.Errorf("build get draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}

	scoresByDraft, err := r.loadSongScores(ctx, []string{row.ID})
	if err != nil {
		return draft.Draft{}, false, err
	}

	return draftFromRow(row, scoresByDraft[row.ID]), true, nil
}

func (r *DraftRepository) List(ctx context.Context) ([]draft.Draft, error) {
	return r.list(ctx, nil)
}

func (r *DraftRepository) ListByShow(ctx context.Context, showID string) ([]draft.Draft, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("show_id", showID)})
}

func (r *DraftRepository) ListByUser(ctx context.Context, userID string) ([]draft.Draft, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("user_id", userID)})
}

func (r *DraftRepository) ListByLeague(ctx context.Context, leagueID string) ([]draft.Draft, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("league_id", leagueID)})
}

func (r *DraftRepository) list(ctx context.Context, conditions []qb.Condition) ([]draft.Draft, error) {
	query, args, err := draftBaseSelectBuilder().
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list drafts query: %w", err)
	}

	var rows []draftTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	draftIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		draftIDs = append(draftIDs, row.ID)
	}
	scoresByDraft, err := r.loadSongScores(ctx, draftIDs)
	if err != nil {
		return nil, err
	}

	out := make([]draft.Draft, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftFromRow(row, scoresByDraft[row.ID]))
	}
	return out, nil
}

// Upsert writes the draft row and its per-song scores atomically so a
// rescore never leaves a draft half scored.
func (r *DraftRepository) Upsert(ctx context.Context, item draft.Draft) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin draft upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := draftInsertModel{
		ID:         item.ID,
		UserID:     item.UserID,
		ShowID:     item.ShowID,
		LeagueID:   item.LeagueID,
		SongIDs:    pq.StringArray(item.SongIDs),
		CreatedAt:  item.CreatedAt,
		Scored:     item.Scored,
		TotalScore: item.TotalScore,
	}
	query, args, err := qb.InsertModel("drafts", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    user_id = EXCLUDED.user_id,
    show_id = EXCLUDED.show_id,
    league_id = EXCLUDED.league_id,
    song_ids = EXCLUDED.song_ids,
    scored = EXCLUDED.scored,
    total_score = EXCLUDED.total_score,
    updated_at = now()`)
	if err != nil {
		return fmt.Errorf("build draft upsert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("draft_song_scores").
		Where(qb.Eq("draft_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear draft song scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear draft song scores: %w", err)
	}

	if len(item.SongScores) > 0 {
		insert := qb.InsertInto("draft_song_scores").
			Columns("draft_id", "position", "song_id", "played", "segment", "is_opener", "is_closer", "is_bust_out", "is_cover", "points", "breakdown")
		for i, score := range item.SongScores {
			insert = insert.Values(
				item.ID,
				i+1,
				score.SongID,
				score.Played,
				string(score.Segment),
				score.IsOpener,
				score.IsCloser,
				score.IsBustOut,
				score.IsCover,
				score.Points,
				pq.StringArray(score.Breakdown),
			)
		}
		scoresQuery, scoresArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert draft song scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, scoresQuery, scoresArgs...); err != nil {
			return fmt.Errorf("insert draft song scores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft upsert tx: %w", err)
	}
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, draftID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin draft delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	scoresQuery, scoresArgs, err := qb.DeleteFrom("draft_song_scores").
		Where(qb.Eq("draft_id", draftID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft song scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, scoresQuery, scoresArgs...); err != nil {
		return fmt.Errorf("delete draft song scores: %w", err)
	}

	draftQuery, draftArgs, err := qb.DeleteFrom("drafts").
		Where(qb.Eq("id", draftID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, draftQuery, draftArgs...); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft delete tx: %w", err)
	}
	return nil
}

func (r *DraftRepository) loadSongScores(ctx context.Context, draftIDs []string) (map[string][]draftSongScoreTableModel, error) {
	ids := make([]any, 0, len(draftIDs))
	for _, id := range draftIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("draft_song_scores").
		Where(qb.In("draft_id", ids)).
		OrderBy("draft_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list draft song scores query: %w", err)
	}

	var rows []draftSongScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list draft song scores: %w", err)
	}

	out := make(map[string][]draftSongScoreTableModel, len(draftIDs))
	for _, row := range rows {
		out[row.DraftID] = append(out[row.DraftID], row)
	}
	return out, nil
}

func draftFromRow(row draftTableModel, scores []draftSongScoreTableModel) draft.Draft {
	item := draft.Draft{
		ID:         row.ID,
		UserID:     row.UserID,
		ShowID:     row.ShowID,
		LeagueID:   row.LeagueID,
		SongIDs:    append([]string(nil), row.SongIDs...),
		CreatedAt:  row.CreatedAt,
		Scored:     row.Scored,
		TotalScore: row.TotalScore,
	}
	for _, score := range scores {
		item.SongScores = append(item.SongScores, draft.SongScore{
			SongID:    score.SongID,
			Played:    score.Played,
			Segment:   show.Segment(score.Segment),
			IsOpener:  score.IsOpener,
			IsCloser:  score.IsCloser,
			IsBustOut: score.IsBustOut,
			IsCover:   score.IsCover,
			Points:    score.Points,
			Breakdown: append([]string(nil), score.Breakdown...),
		})
	}
	return item
}

func draftBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("drafts")
}
