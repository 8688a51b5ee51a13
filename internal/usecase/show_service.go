package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
)

// CompleteShowInput carries the final setlist for a finished show.
type CompleteShowInput struct {
	ShowID string
	Set1   []string
	Set2   []string
	Encore []string
}

// ShowService manages shows and setlist ingestion. Completing a show
// is one-way: once a setlist lands, drafting closes and scoring runs.
type ShowService struct {
	showRepo show.Repository
	scoring  *ScoringService
	now      func() time.Time
}

func NewShowService(showRepo show.Repository, scoring *ScoringService) *ShowService {
	return &ShowService{
		showRepo: showRepo,
		scoring:  scoring,
		now:      time.Now,
	}
}

func (s *ShowService) GetShow(ctx context.Context, showID string) (show.Show, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShowService.GetShow")
	defer span.End()

	if strings.TrimSpace(showID) == "" {
		return show.Show{}, fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}

	item, exists, err := s.showRepo.GetByID(ctx, showID)
	if err != nil {
		return show.Show{}, fmt.Errorf("get show: %w", err)
	}
	if !exists {
		return show.Show{}, fmt.Errorf("%w: show %s", ErrNotFound, showID)
	}

	return item, nil
}

func (s *ShowService) ListShows(ctx context.Context) ([]show.Show, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShowService.ListShows")
	defer span.End()

	shows, err := s.showRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].Date < shows[j].Date
	})
	return shows, nil
}

// GetSetlist returns the flattened setlist of a completed show.
func (s *ShowService) GetSetlist(ctx context.Context, showID string) ([]show.FlatEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShowService.GetSetlist")
	defer span.End()

	item, err := s.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !item.IsCompleted {
		return nil, fmt.Errorf("%w: show %s", show.ErrNotCompleted, showID)
	}

	return item.Flatten(), nil
}

// CompleteShow ingests the actual setlist, marks the show completed
// and scores every draft against it.
func (s *ShowService) CompleteShow(ctx context.Context, input CompleteShowInput) (RescoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShowService.CompleteShow")
	defer span.End()

	if strings.TrimSpace(input.ShowID) == "" {
		return RescoreResult{}, fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}
	if len(input.Set1)+len(input.Set2)+len(input.Encore) == 0 {
		return RescoreResult{}, fmt.Errorf("%w: setlist is required", ErrInvalidInput)
	}

	item, exists, err := s.showRepo.GetByID(ctx, input.ShowID)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("get show for completion: %w", err)
	}
	if !exists {
		return RescoreResult{}, fmt.Errorf("%w: show %s", ErrNotFound, input.ShowID)
	}
	if item.IsCompleted {
		return RescoreResult{}, fmt.Errorf("%w: %s", show.ErrAlreadyComplete, input.ShowID)
	}

	if item.Set1, err = show.BuildSegment(show.SegmentSet1, input.Set1); err != nil {
		return RescoreResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if item.Set2, err = show.BuildSegment(show.SegmentSet2, input.Set2); err != nil {
		return RescoreResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if item.Encore, err = show.BuildSegment(show.SegmentEncore, input.Encore); err != nil {
		return RescoreResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	item.IsCompleted = true
	item.UpdatedAt = s.now().UTC()

	if err := item.ValidateBasic(); err != nil {
		return RescoreResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.showRepo.Upsert(ctx, item); err != nil {
		return RescoreResult{}, fmt.Errorf("persist completed show: %w", err)
	}

	return s.scoring.RescoreShow(ctx, item.ID)
}
