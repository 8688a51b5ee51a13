package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/leaderboard"
	"github.com/phantasyphish/setlist-api/internal/platform/cache"
)

const leaderboardCachePrefix = "leaderboard:"

// LeaderboardService aggregates scored drafts into standings. Results
// are cached briefly since aggregation walks every draft.
type LeaderboardService struct {
	draftRepo draft.Repository
	store     *cache.Store
}

func NewLeaderboardService(draftRepo draft.Repository, store *cache.Store) *LeaderboardService {
	if store == nil {
		store = cache.NewStore(15 * time.Second)
	}
	return &LeaderboardService{
		draftRepo: draftRepo,
		store:     store,
	}
}

// GetStandings returns the leaderboard, scoped to one league when
// leagueID is set and global otherwise.
func (s *LeaderboardService) GetStandings(ctx context.Context, leagueID string) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetStandings")
	defer span.End()

	key := leaderboardCachePrefix + "global"
	if leagueID != "" {
		key = leaderboardCachePrefix + "league:" + leagueID
	}

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.loadStandings(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]leaderboard.Entry)
	if !ok {
		return nil, fmt.Errorf("unexpected leaderboard cache entry type %T", value)
	}
	return entries, nil
}

// Invalidate drops cached standings after drafts are rescored.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	s.store.DeletePrefix(ctx, leaderboardCachePrefix)
}

func (s *LeaderboardService) loadStandings(ctx context.Context, leagueID string) ([]leaderboard.Entry, error) {
	var (
		drafts []draft.Draft
		err    error
	)
	if leagueID != "" {
		drafts, err = s.draftRepo.ListByLeague(ctx, leagueID)
	} else {
		drafts, err = s.draftRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list drafts for leaderboard: %w", err)
	}

	return leaderboard.Aggregate(drafts), nil
}
