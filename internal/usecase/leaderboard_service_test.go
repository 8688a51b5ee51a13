package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/infrastructure/repository/memory"
	"github.com/phantasyphish/setlist-api/internal/platform/cache"
)

func seedLeaderboardDrafts(t *testing.T, repo *memory.DraftRepository) {
	t.Helper()

	ctx := context.Background()
	rows := []draft.Draft{
		{ID: "a1", UserID: "alice", ShowID: "2024-12-28", LeagueID: "norcal", SongIDs: []string{"x"}, Scored: true, TotalScore: 20},
		{ID: "a2", UserID: "alice", ShowID: "2024-12-29", LeagueID: "norcal", SongIDs: []string{"x"}, Scored: true, TotalScore: 50},
		{ID: "a3", UserID: "alice", ShowID: "2024-12-30", LeagueID: "norcal", SongIDs: []string{"x"}, Scored: true, TotalScore: 30},
		{ID: "b1", UserID: "bob", ShowID: "2024-12-28", LeagueID: "socal", SongIDs: []string{"x"}, Scored: true, TotalScore: 40},
		{ID: "c1", UserID: "carol", ShowID: "2025-07-15", SongIDs: []string{"x"}, Scored: false},
	}
	for _, d := range rows {
		require.NoError(t, repo.Upsert(ctx, d))
	}
}

func TestGetStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts := memory.NewDraftRepository()
	seedLeaderboardDrafts(t, drafts)
	svc := NewLeaderboardService(drafts, cache.NewStore(time.Minute))

	entries, err := svc.GetStandings(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, 100, entries[0].TotalPoints)
	assert.Equal(t, 3, entries[0].ShowsPlayed)
	assert.Equal(t, 50, entries[0].BestShow)
	assert.Equal(t, 33, entries[0].AvgPointsPerShow)

	assert.Equal(t, "bob", entries[1].UserID)
	assert.Equal(t, 40, entries[1].TotalPoints)
}

func TestGetStandings_LeagueScoped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts := memory.NewDraftRepository()
	seedLeaderboardDrafts(t, drafts)
	svc := NewLeaderboardService(drafts, cache.NewStore(time.Minute))

	entries, err := svc.GetStandings(ctx, "socal")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].UserID)
}

func TestGetStandings_CachedUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts := memory.NewDraftRepository()
	seedLeaderboardDrafts(t, drafts)
	svc := NewLeaderboardService(drafts, cache.NewStore(time.Minute))

	first, err := svc.GetStandings(ctx, "")
	require.NoError(t, err)

	// New scores land but the cached view is still served.
	require.NoError(t, drafts.Upsert(ctx, draft.Draft{
		ID: "b2", UserID: "bob", ShowID: "2024-12-29", SongIDs: []string{"x"}, Scored: true, TotalScore: 90,
	}))
	cached, err := svc.GetStandings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	svc.Invalidate(ctx)
	fresh, err := svc.GetStandings(ctx, "")
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, "bob", fresh[0].UserID)
	assert.Equal(t, 130, fresh[0].TotalPoints)
}
