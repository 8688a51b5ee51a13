package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
)

// DraftRepository is an in-memory draft store for local runs and tests.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]draft.Draft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string]draft.Draft)}
}

func (r *DraftRepository) GetByID(_ context.Context, id string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.drafts[id]
	if !ok {
		return draft.Draft{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *DraftRepository) List(_ context.Context) ([]draft.Draft, error) {
	return r.listWhere(func(draft.Draft) bool { return true })
}

func (r *DraftRepository) ListByShow(_ context.Context, showID string) ([]draft.Draft, error) {
	return r.listWhere(func(d draft.Draft) bool { return d.ShowID == showID })
}

func (r *DraftRepository) ListByUser(_ context.Context, userID string) ([]draft.Draft, error) {
	return r.listWhere(func(d draft.Draft) bool { return d.UserID == userID })
}

func (r *DraftRepository) ListByLeague(_ context.Context, leagueID string) ([]draft.Draft, error) {
	return r.listWhere(func(d draft.Draft) bool { return d.LeagueID == leagueID })
}

func (r *DraftRepository) Upsert(_ context.Context, d draft.Draft) error {
	if err := d.ValidateBasic(); err != nil {
		return err
	}

	r.mu.Lock()
	r.drafts[d.ID] = d.Clone()
	r.mu.Unlock()
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
	return nil
}

func (r *DraftRepository) listWhere(keep func(draft.Draft) bool) ([]draft.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Draft, 0, len(r.drafts))
	for _, item := range r.drafts {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
