package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/phantasyphish/setlist-api/internal/domain/draft"
	"github.com/phantasyphish/setlist-api/internal/usecase"
)

type createDraftRequest struct {
	ShowID   string   `json:"showId" validate:"required"`
	LeagueID string   `json:"leagueId"`
	SongIDs  []string `json:"songIds" validate:"required,min=1"`
}

type importDraftRequest struct {
	ShareCode string `json:"shareCode" validate:"required"`
	LeagueID  string `json:"leagueId"`
}

type songScoreDTO struct {
	SongID    string   `json:"songId"`
	Played    bool     `json:"played"`
	Segment   string   `json:"set,omitempty"`
	IsOpener  bool     `json:"isOpener"`
	IsCloser  bool     `json:"isCloser"`
	IsBustOut bool     `json:"isBustOut"`
	IsCover   bool     `json:"isCover"`
	Points    int      `json:"points"`
	Breakdown []string `json:"breakdown"`
}

type draftDTO struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	ShowID     string         `json:"showId"`
	LeagueID   string         `json:"leagueId,omitempty"`
	SongIDs    []string       `json:"songIds"`
	CreatedAt  time.Time      `json:"createdAt"`
	Scored     bool           `json:"scored"`
	TotalScore int            `json:"totalScore"`
	SongScores []songScoreDTO `json:"songScores,omitempty"`
}

type shareCodeDTO struct {
	DraftID   string `json:"draftId"`
	ShareCode string `json:"shareCode"`
}

func draftToDTO(d draft.Draft) draftDTO {
	scores := make([]songScoreDTO, 0, len(d.SongScores))
	for _, sc := range d.SongScores {
		scores = append(scores, songScoreDTO{
			SongID:    sc.SongID,
			Played:    sc.Played,
			Segment:   string(sc.Segment),
			IsOpener:  sc.IsOpener,
			IsCloser:  sc.IsCloser,
			IsBustOut: sc.IsBustOut,
			IsCover:   sc.IsCover,
			Points:    sc.Points,
			Breakdown: sc.Breakdown,
		})
	}

	return draftDTO{
		ID:         d.ID,
		UserID:     d.UserID,
		ShowID:     d.ShowID,
		LeagueID:   d.LeagueID,
		SongIDs:    d.SongIDs,
		CreatedAt:  d.CreatedAt,
		Scored:     d.Scored,
		TotalScore: d.TotalScore,
		SongScores: scores,
	}
}

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraft")
	defer span.End()

	var req createDraftRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.draftService.CreateDraft(ctx, usecase.CreateDraftInput{
		UserID:   userIDFromRequest(r),
		ShowID:   req.ShowID,
		LeagueID: req.LeagueID,
		SongIDs:  req.SongIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft failed", "show_id", req.ShowID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft created", "draft_id", item.ID, "show_id", item.ShowID)
	writeSuccess(ctx, w, http.StatusCreated, draftToDTO(item))
}

func (h *Handler) ImportDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportDraft")
	defer span.End()

	var req importDraftRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.draftService.ImportDraft(ctx, userIDFromRequest(r), req.LeagueID, req.ShareCode)
	if err != nil {
		h.logger.WarnContext(ctx, "import draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftToDTO(item))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	draftID := r.PathValue("draftID")
	item, err := h.draftService.GetDraft(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDraft")
	defer span.End()

	draftID := r.PathValue("draftID")
	if err := h.draftService.DeleteDraft(ctx, draftID, userIDFromRequest(r)); err != nil {
		h.logger.WarnContext(ctx, "delete draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": draftID})
}

func (h *Handler) ShareDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ShareDraft")
	defer span.End()

	draftID := r.PathValue("draftID")
	code, err := h.draftService.ShareDraft(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "share draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shareCodeDTO{DraftID: draftID, ShareCode: code})
}

func (h *Handler) ListUserDrafts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserDrafts")
	defer span.End()

	userID := r.PathValue("userID")
	drafts, err := h.draftService.ListUserDrafts(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list user drafts failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftDTO, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, draftToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
