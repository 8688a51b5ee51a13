package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/scoring"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/domain/song"
	"github.com/phantasyphish/setlist-api/internal/platform/logging"
	"github.com/phantasyphish/setlist-api/internal/platform/resilience"
)

const (
	defaultScoringEnsureInterval = 30 * time.Second
	defaultScoringWorkerCount    = 8
)

// ScoredShowEvent is published after a completed show's drafts have
// been scored.
type ScoredShowEvent struct {
	ShowID      string `json:"showId"`
	DraftCount  int    `json:"draftCount"`
	ScoredCount int    `json:"scoredCount"`
	OccurredAt  int64  `json:"occurredAt"`
}

// WebhookPublisher notifies downstream consumers about scored shows.
type WebhookPublisher interface {
	PublishScoredShow(ctx context.Context, event ScoredShowEvent) error
}

// RescoreResult summarizes one scoring run over a show's drafts.
type RescoreResult struct {
	ShowID      string
	DraftCount  int
	ScoredCount int
	FailedCount int
}

// ScoringService applies the rubric to drafts of completed shows. It
// throttles opportunistic scoring so read paths stay cheap.
type ScoringService struct {
	draftRepo draft.Repository
	showRepo  show.Repository
	songRepo  song.Repository
	publisher WebhookPublisher
	logger    *logging.Logger

	now            func() time.Time
	ensureFlight   resilience.SingleFlight
	ensureMu       sync.Mutex
	lastEnsureAt   map[string]time.Time
	ensureInterval time.Duration
	workerCount    int
}

func NewScoringService(
	draftRepo draft.Repository,
	showRepo show.Repository,
	songRepo song.Repository,
	publisher WebhookPublisher,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		draftRepo:      draftRepo,
		showRepo:       showRepo,
		songRepo:       songRepo,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
		lastEnsureAt:   make(map[string]time.Time),
		ensureInterval: defaultScoringEnsureInterval,
		workerCount:    defaultScoringWorkerCount,
	}
}

// Rubric exposes the fixed point values.
func (s *ScoringService) Rubric() map[string]int {
	return scoring.PointsBreakdown()
}

// EnsureShowScored scores a completed show's drafts if any are still
// pending. Calls within the ensure interval are no-ops and concurrent
// calls for the same show collapse into one run.
func (s *ScoringService) EnsureShowScored(ctx context.Context, showID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EnsureShowScored")
	defer span.End()

	if strings.TrimSpace(showID) == "" {
		return fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	if s.shouldSkipEnsure(showID, now) {
		return nil
	}

	key := "scoring:ensure:" + showID
	_, err, _ := s.ensureFlight.Do(key, func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipEnsure(showID, runNow) {
			return nil, nil
		}

		if runErr := s.ensureShowScoredOnce(ctx, showID); runErr != nil {
			return nil, runErr
		}
		s.markEnsure(showID, runNow)
		return nil, nil
	})
	return err
}

func (s *ScoringService) ensureShowScoredOnce(ctx context.Context, showID string) error {
	target, exists, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return fmt.Errorf("get show for scoring: %w", err)
	}
	if !exists || !target.IsCompleted {
		return nil
	}

	drafts, err := s.draftRepo.ListByShow(ctx, showID)
	if err != nil {
		return fmt.Errorf("list drafts by show for scoring: %w", err)
	}

	pending := false
	for _, d := range drafts {
		if !d.Scored {
			pending = true
			break
		}
	}
	if !pending {
		return nil
	}

	_, err = s.rescoreShow(ctx, target, drafts)
	return err
}

// RescoreShow re-applies the rubric to every draft of a completed
// show, replacing prior scores. Used after setlist corrections.
func (s *ScoringService) RescoreShow(ctx context.Context, showID string) (RescoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RescoreShow")
	defer span.End()

	if strings.TrimSpace(showID) == "" {
		return RescoreResult{}, fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}

	target, exists, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("get show for rescore: %w", err)
	}
	if !exists {
		return RescoreResult{}, fmt.Errorf("%w: show %s", ErrNotFound, showID)
	}
	if !target.IsCompleted {
		return RescoreResult{}, fmt.Errorf("%w: show %s has no completed setlist", ErrInvalidInput, showID)
	}

	drafts, err := s.draftRepo.ListByShow(ctx, showID)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list drafts by show for rescore: %w", err)
	}

	return s.rescoreShow(ctx, target, drafts)
}

func (s *ScoringService) rescoreShow(ctx context.Context, target show.Show, drafts []draft.Draft) (RescoreResult, error) {
	result := RescoreResult{ShowID: target.ID, DraftCount: len(drafts)}
	if len(drafts) == 0 {
		return result, nil
	}

	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list songs for rescore: %w", err)
	}
	catalog := song.NewCatalog(songs)

	workerCount := s.workerCount
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(drafts) {
		workerCount = len(drafts)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	scoredCount := 0
	failedCount := 0

	var workers sync.WaitGroup
	for _, d := range drafts {
		d := d
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			scored := scoring.ScoreDraft(d, target, catalog)
			if upsertErr := s.draftRepo.Upsert(ctx, scored); upsertErr != nil {
				s.logger.ErrorContext(ctx, "persist scored draft",
					"error", upsertErr,
					"draft_id", d.ID,
					"show_id", target.ID,
				)
				mu.Lock()
				failedCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			scoredCount++
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return RescoreResult{}, fmt.Errorf("submit draft to scoring pool: %w", err)
		}
	}
	workers.Wait()

	result.ScoredCount = scoredCount
	result.FailedCount = failedCount
	if failedCount > 0 {
		return result, fmt.Errorf("scoring show %s: %d of %d drafts failed", target.ID, failedCount, len(drafts))
	}

	s.publishScoredShow(ctx, result)
	return result, nil
}

func (s *ScoringService) publishScoredShow(ctx context.Context, result RescoreResult) {
	if s.publisher == nil {
		return
	}

	event := ScoredShowEvent{
		ShowID:      result.ShowID,
		DraftCount:  result.DraftCount,
		ScoredCount: result.ScoredCount,
		OccurredAt:  s.now().UTC().Unix(),
	}
	if err := s.publisher.PublishScoredShow(ctx, event); err != nil {
		// Scoring already persisted; the webhook is best effort.
		s.logger.WarnContext(ctx, "publish scored show event",
			"error", err,
			"show_id", result.ShowID,
			"draft_count", result.DraftCount,
		)
	}
}

func (s *ScoringService) shouldSkipEnsure(showID string, now time.Time) bool {
	if s.ensureInterval <= 0 || showID == "" {
		return false
	}
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	last, ok := s.lastEnsureAt[showID]
	if !ok || last.IsZero() {
		return false
	}
	return now.Sub(last) < s.ensureInterval
}

func (s *ScoringService) markEnsure(showID string, now time.Time) {
	if showID == "" {
		return
	}
	s.ensureMu.Lock()
	s.lastEnsureAt[showID] = now
	s.ensureMu.Unlock()
}
