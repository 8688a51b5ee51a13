package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
)

// ShowRepository is an in-memory show store for local runs and tests.
type ShowRepository struct {
	mu    sync.RWMutex
	shows map[string]show.Show
}

func NewShowRepository() *ShowRepository {
	return &ShowRepository{shows: make(map[string]show.Show)}
}

func (r *ShowRepository) GetByID(_ context.Context, id string) (show.Show, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.shows[id]
	return item, ok, nil
}

func (r *ShowRepository) List(_ context.Context) ([]show.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]show.Show, 0, len(r.shows))
	for _, item := range r.shows {
		out = append(out, item)
	}
	sortShows(out)
	return out, nil
}

func (r *ShowRepository) ListCompleted(_ context.Context) ([]show.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]show.Show, 0, len(r.shows))
	for _, item := range r.shows {
		if item.IsCompleted {
			out = append(out, item)
		}
	}
	sortShows(out)
	return out, nil
}

func (r *ShowRepository) Upsert(_ context.Context, s show.Show) error {
	if err := s.ValidateBasic(); err != nil {
		return err
	}

	r.mu.Lock()
	r.shows[s.ID] = s
	r.mu.Unlock()
	return nil
}

func sortShows(shows []show.Show) {
	sort.SliceStable(shows, func(i, j int) bool {
		if shows[i].Date != shows[j].Date {
			return shows[i].Date < shows[j].Date
		}
		return shows[i].ID < shows[j].ID
	})
}
