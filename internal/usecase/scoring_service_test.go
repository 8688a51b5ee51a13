package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/infrastructure/repository/memory"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []ScoredShowEvent
	err    error
}

func (p *capturingPublisher) PublishScoredShow(_ context.Context, event ScoredShowEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() []ScoredShowEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ScoredShowEvent(nil), p.events...)
}

type countingDraftRepo struct {
	draft.Repository
	mu        sync.Mutex
	listCalls int
}

func (r *countingDraftRepo) ListByShow(ctx context.Context, showID string) ([]draft.Draft, error) {
	r.mu.Lock()
	r.listCalls++
	r.mu.Unlock()
	return r.Repository.ListByShow(ctx, showID)
}

func (r *countingDraftRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

func seedScoringFixture(t *testing.T) (*memory.DraftRepository, *memory.ShowRepository, *memory.SongRepository) {
	t.Helper()

	ctx := context.Background()
	songs := memory.NewSongRepository()
	shows := memory.NewShowRepository()
	if err := memory.Seed(ctx, songs, shows); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return memory.NewDraftRepository(), shows, songs
}

func storeDraft(t *testing.T, repo draft.Repository, d draft.Draft) {
	t.Helper()
	if err := repo.Upsert(context.Background(), d); err != nil {
		t.Fatalf("store draft %s: %v", d.ID, err)
	}
}

func TestRescoreShow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts, shows, songs := seedScoringFixture(t)
	publisher := &capturingPublisher{}
	svc := NewScoringService(drafts, shows, songs, publisher, nil)

	// buried-alive opened 12/28 and is a bust-out: 10 + 20 + 25.
	// bathtub-gin closed set 1: 10 + 15. tweezer was not played.
	storeDraft(t, drafts, draft.Draft{
		ID:      "d1",
		UserID:  "alice",
		ShowID:  "2024-12-28",
		SongIDs: []string{"buried-alive", "bathtub-gin", "tweezer"},
	})
	storeDraft(t, drafts, draft.Draft{
		ID:      "d2",
		UserID:  "bob",
		ShowID:  "2024-12-28",
		SongIDs: []string{"crosseyed-and-painless"},
	})

	result, err := svc.RescoreShow(ctx, "2024-12-28")
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if result.DraftCount != 2 || result.ScoredCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	scored, exists, err := drafts.GetByID(ctx, "d1")
	if err != nil || !exists {
		t.Fatalf("get scored draft: %v exists=%v", err, exists)
	}
	if !scored.Scored || scored.TotalScore != 80 {
		t.Fatalf("expected scored total 80, got %+v", scored)
	}

	// Set 2 opener cover: 10 + 20 + 20.
	scored, _, _ = drafts.GetByID(ctx, "d2")
	if scored.TotalScore != 50 {
		t.Fatalf("expected 50 for crosseyed opener cover, got %d", scored.TotalScore)
	}

	events := publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected one scored-show event, got %d", len(events))
	}
	if events[0].ShowID != "2024-12-28" || events[0].ScoredCount != 2 {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestRescoreShow_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts, shows, songs := seedScoringFixture(t)
	svc := NewScoringService(drafts, shows, songs, nil, nil)

	if _, err := svc.RescoreShow(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RescoreShow(ctx, "1999-12-31"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// The Gorge show has no setlist yet.
	if _, err := svc.RescoreShow(ctx, "2025-07-15"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for open show, got %v", err)
	}
}

func TestRescoreShow_WebhookFailureDoesNotFailScoring(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts, shows, songs := seedScoringFixture(t)
	publisher := &capturingPublisher{err: errors.New("webhook down")}
	svc := NewScoringService(drafts, shows, songs, publisher, nil)

	storeDraft(t, drafts, draft.Draft{
		ID: "d1", UserID: "alice", ShowID: "2024-12-29", SongIDs: []string{"sand"},
	})

	if _, err := svc.RescoreShow(ctx, "2024-12-29"); err != nil {
		t.Fatalf("webhook failure must not fail scoring: %v", err)
	}

	scored, _, _ := drafts.GetByID(ctx, "d1")
	if !scored.Scored {
		t.Fatal("draft should be scored despite webhook failure")
	}
}

func TestEnsureShowScored_ThrottlesWithinInterval(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base, shows, songs := seedScoringFixture(t)
	drafts := &countingDraftRepo{Repository: base}

	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	svc := NewScoringService(drafts, shows, songs, nil, nil)
	svc.now = func() time.Time { return now }

	storeDraft(t, base, draft.Draft{
		ID: "d1", UserID: "alice", ShowID: "2024-12-30", SongIDs: []string{"fluffhead"},
	})

	if err := svc.EnsureShowScored(ctx, "2024-12-30"); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	firstCalls := drafts.calls()
	if firstCalls == 0 {
		t.Fatal("first ensure should hit the draft repository")
	}

	// Within the interval: no repository traffic.
	now = now.Add(10 * time.Second)
	if err := svc.EnsureShowScored(ctx, "2024-12-30"); err != nil {
		t.Fatalf("throttled ensure: %v", err)
	}
	if drafts.calls() != firstCalls {
		t.Fatal("ensure within interval must be a no-op")
	}

	// Past the interval the check runs again.
	now = now.Add(defaultScoringEnsureInterval)
	if err := svc.EnsureShowScored(ctx, "2024-12-30"); err != nil {
		t.Fatalf("post-interval ensure: %v", err)
	}
	if drafts.calls() == firstCalls {
		t.Fatal("ensure past interval should run the check again")
	}
}

func TestEnsureShowScored_SkipsOpenAndUnknownShows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts, shows, songs := seedScoringFixture(t)
	svc := NewScoringService(drafts, shows, songs, nil, nil)

	if err := svc.EnsureShowScored(ctx, "2025-07-15"); err != nil {
		t.Fatalf("open show ensure should be a no-op: %v", err)
	}
	if err := svc.EnsureShowScored(ctx, "1999-12-31"); err != nil {
		t.Fatalf("unknown show ensure should be a no-op: %v", err)
	}
	if err := svc.EnsureShowScored(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEnsureShowScored_ScoresPendingDrafts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drafts, shows, songs := seedScoringFixture(t)
	svc := NewScoringService(drafts, shows, songs, nil, nil)

	storeDraft(t, drafts, draft.Draft{
		ID: "d1", UserID: "alice", ShowID: "2024-12-31", SongIDs: []string{"tweezer", "harpua"},
	})

	if err := svc.EnsureShowScored(ctx, "2024-12-31"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	scored, _, _ := drafts.GetByID(ctx, "d1")
	if !scored.Scored {
		t.Fatal("pending draft should be scored")
	}
	// tweezer closed set 2 (10 + 15); harpua opened the encore and is
	// a bust-out (15 + 20 + 25).
	if scored.TotalScore != 85 {
		t.Fatalf("expected 85, got %d", scored.TotalScore)
	}
}

func TestRubric(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(nil, nil, nil, nil, nil)
	rubric := svc.Rubric()
	if rubric["bustOutBonus"] != 25 || rubric["openerBonus"] != 20 {
		t.Fatalf("unexpected rubric %v", rubric)
	}
}

var _ show.Repository = (*memory.ShowRepository)(nil)
