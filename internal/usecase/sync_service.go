package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/phantasyphish/setlist-api/internal/platform/logging"
)

const defaultSyncMaxFetches = 4

// ExternalSetlist is a provider's view of one show's setlist.
type ExternalSetlist struct {
	ShowID    string
	Completed bool
	Set1      []string
	Set2      []string
	Encore    []string
}

// SetlistProvider fetches published setlists from an upstream source.
type SetlistProvider interface {
	FetchSetlist(ctx context.Context, showID string) (ExternalSetlist, bool, error)
}

// SyncResult summarizes one provider sync run.
type SyncResult struct {
	CheckedCount   int
	CompletedCount int
	SkippedCount   int
	FailedShowIDs  []string
}

// SetlistSyncService polls the provider for setlists of shows that
// have not completed yet and ingests any that have been published.
type SetlistSyncService struct {
	shows      *ShowService
	provider   SetlistProvider
	logger     *logging.Logger
	maxFetches int
}

func NewSetlistSyncService(shows *ShowService, provider SetlistProvider, logger *logging.Logger) *SetlistSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SetlistSyncService{
		shows:      shows,
		provider:   provider,
		logger:     logger,
		maxFetches: defaultSyncMaxFetches,
	}
}

// SetMaxFetches caps how many provider fetches run concurrently in one
// sync pass. Values below 1 keep the current cap.
func (s *SetlistSyncService) SetMaxFetches(n int) {
	if n >= 1 {
		s.maxFetches = n
	}
}

// SyncSetlists checks every open show against the provider, fetching
// concurrently, and completes the ones whose setlists are published.
func (s *SetlistSyncService) SyncSetlists(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SetlistSyncService.SyncSetlists")
	defer span.End()

	if s.provider == nil {
		return SyncResult{}, fmt.Errorf("%w: setlist provider is not configured", ErrDependencyUnavailable)
	}

	shows, err := s.shows.ListShows(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	openIDs := make([]string, 0, len(shows))
	for _, item := range shows {
		if !item.IsCompleted {
			openIDs = append(openIDs, item.ID)
		}
	}

	result := SyncResult{CheckedCount: len(openIDs)}
	if len(openIDs) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	fetched := make([]ExternalSetlist, 0, len(openIDs))

	fetchPool := pool.New().WithMaxGoroutines(s.maxFetches)
	for _, showID := range openIDs {
		showID := showID
		fetchPool.Go(func() {
			setlist, found, fetchErr := s.provider.FetchSetlist(ctx, showID)
			if fetchErr != nil {
				s.logger.WarnContext(ctx, "fetch setlist from provider",
					"error", fetchErr,
					"show_id", showID,
				)
				mu.Lock()
				result.FailedShowIDs = append(result.FailedShowIDs, showID)
				mu.Unlock()
				return
			}
			if !found || !setlist.Completed {
				mu.Lock()
				result.SkippedCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			fetched = append(fetched, setlist)
			mu.Unlock()
		})
	}
	fetchPool.Wait()

	// Ingest sequentially: each completion triggers a scoring run.
	sort.SliceStable(fetched, func(i, j int) bool {
		return fetched[i].ShowID < fetched[j].ShowID
	})
	for _, setlist := range fetched {
		_, completeErr := s.shows.CompleteShow(ctx, CompleteShowInput{
			ShowID: setlist.ShowID,
			Set1:   setlist.Set1,
			Set2:   setlist.Set2,
			Encore: setlist.Encore,
		})
		if completeErr != nil {
			if errors.Is(completeErr, ErrNotFound) {
				result.SkippedCount++
				continue
			}
			s.logger.ErrorContext(ctx, "complete show from provider setlist",
				"error", completeErr,
				"show_id", setlist.ShowID,
			)
			result.FailedShowIDs = append(result.FailedShowIDs, setlist.ShowID)
			continue
		}
		result.CompletedCount++
	}

	sort.Strings(result.FailedShowIDs)
	if len(result.FailedShowIDs) > 0 {
		return result, fmt.Errorf("setlist sync: %d of %d shows failed", len(result.FailedShowIDs), result.CheckedCount)
	}
	return result, nil
}
