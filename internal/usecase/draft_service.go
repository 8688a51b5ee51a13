package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/domain/song"
	"github.com/phantasyphish/setlist-api/internal/platform/id"
)

// CreateDraftInput carries a new draft submission.
type CreateDraftInput struct {
	UserID   string
	ShowID   string
	LeagueID string
	SongIDs  []string
}

// DraftService manages draft lifecycle. Reads of drafts for completed
// shows opportunistically trigger scoring so users always see points.
type DraftService struct {
	draftRepo draft.Repository
	showRepo  show.Repository
	songRepo  song.Repository
	scoring   *ScoringService
	idGen     id.Generator
	rules     draft.Rules
	now       func() time.Time
}

func NewDraftService(
	draftRepo draft.Repository,
	showRepo show.Repository,
	songRepo song.Repository,
	scoring *ScoringService,
	idGen id.Generator,
) *DraftService {
	return &DraftService{
		draftRepo: draftRepo,
		showRepo:  showRepo,
		songRepo:  songRepo,
		scoring:   scoring,
		idGen:     idGen,
		rules:     draft.DefaultRules(),
		now:       time.Now,
	}
}

// CreateDraft validates and stores a full 15-song draft for an
// upcoming show.
func (s *DraftService) CreateDraft(ctx context.Context, input CreateDraftInput) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CreateDraft")
	defer span.End()

	if strings.TrimSpace(input.UserID) == "" {
		return draft.Draft{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ShowID) == "" {
		return draft.Draft{}, fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}

	target, exists, err := s.showRepo.GetByID(ctx, input.ShowID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get show for draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, fmt.Errorf("%w: show %s", ErrNotFound, input.ShowID)
	}
	if target.IsCompleted {
		return draft.Draft{}, fmt.Errorf("%w: show %s already has a setlist", ErrInvalidInput, input.ShowID)
	}

	catalog, err := s.catalog(ctx)
	if err != nil {
		return draft.Draft{}, err
	}
	if err := draft.ValidatePicks(input.SongIDs, catalog, s.rules); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	draftID, err := s.idGen.NewID()
	if err != nil {
		return draft.Draft{}, fmt.Errorf("generate draft id: %w", err)
	}

	item := draft.Draft{
		ID:        draftID,
		UserID:    input.UserID,
		ShowID:    input.ShowID,
		LeagueID:  input.LeagueID,
		SongIDs:   append([]string(nil), input.SongIDs...),
		CreatedAt: s.now().UTC(),
	}
	if err := s.draftRepo.Upsert(ctx, item); err != nil {
		return draft.Draft{}, fmt.Errorf("persist draft: %w", err)
	}

	return item, nil
}

// GetDraft returns one draft. If its show has since completed, it
// nudges scoring first so stale pending drafts come back scored.
func (s *DraftService) GetDraft(ctx context.Context, draftID string) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetDraft")
	defer span.End()

	if strings.TrimSpace(draftID) == "" {
		return draft.Draft{}, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	item, exists, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, fmt.Errorf("%w: draft %s", ErrNotFound, draftID)
	}

	if !item.Scored && s.scoring != nil {
		if err := s.scoring.EnsureShowScored(ctx, item.ShowID); err != nil {
			return draft.Draft{}, err
		}
		if refreshed, stillExists, refreshErr := s.draftRepo.GetByID(ctx, draftID); refreshErr == nil && stillExists {
			item = refreshed
		}
	}

	return item, nil
}

func (s *DraftService) DeleteDraft(ctx context.Context, draftID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DeleteDraft")
	defer span.End()

	if strings.TrimSpace(draftID) == "" {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	item, exists, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return fmt.Errorf("get draft for delete: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: draft %s", ErrNotFound, draftID)
	}
	if userID != "" && item.UserID != userID {
		return fmt.Errorf("%w: draft %s belongs to another user", ErrUnauthorized, draftID)
	}

	if err := s.draftRepo.Delete(ctx, draftID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *DraftService) ListUserDrafts(ctx context.Context, userID string) ([]draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ListUserDrafts")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	drafts, err := s.draftRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list drafts by user: %w", err)
	}

	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})
	return drafts, nil
}

func (s *DraftService) ListShowDrafts(ctx context.Context, showID string) ([]draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ListShowDrafts")
	defer span.End()

	if strings.TrimSpace(showID) == "" {
		return nil, fmt.Errorf("%w: show id is required", ErrInvalidInput)
	}

	if s.scoring != nil {
		if err := s.scoring.EnsureShowScored(ctx, showID); err != nil {
			return nil, err
		}
	}

	drafts, err := s.draftRepo.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("list drafts by show: %w", err)
	}

	sort.SliceStable(drafts, func(i, j int) bool {
		if drafts[i].TotalScore != drafts[j].TotalScore {
			return drafts[i].TotalScore > drafts[j].TotalScore
		}
		return drafts[i].UserID < drafts[j].UserID
	})
	return drafts, nil
}

// ShareDraft packs a draft into a portable share code.
func (s *DraftService) ShareDraft(ctx context.Context, draftID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ShareDraft")
	defer span.End()

	item, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return "", err
	}

	code, err := draft.EncodeShareCode(item)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return code, nil
}

// ImportDraft creates a new draft for userID from another user's
// share code. The target show must still be open for drafting.
func (s *DraftService) ImportDraft(ctx context.Context, userID, leagueID, code string) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ImportDraft")
	defer span.End()

	shared, err := draft.DecodeShareCode(code)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.CreateDraft(ctx, CreateDraftInput{
		UserID:   userID,
		ShowID:   shared.ShowID,
		LeagueID: leagueID,
		SongIDs:  shared.SongIDs,
	})
}

func (s *DraftService) catalog(ctx context.Context) (song.Catalog, error) {
	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list songs for draft validation: %w", err)
	}
	return song.NewCatalog(songs), nil
}
