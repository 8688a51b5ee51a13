package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/phantasyphish/setlist-api/internal/domain/show"
	"github.com/phantasyphish/setlist-api/internal/usecase"
)

type showDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	City        string `json:"city"`
	State       string `json:"state"`
	ShowNumber  int    `json:"showNumber"`
	IsCompleted bool   `json:"isCompleted"`
}

type setlistEntryDTO struct {
	SongID   string `json:"songId"`
	Segment  string `json:"set"`
	IsOpener bool   `json:"isOpener"`
	IsCloser bool   `json:"isCloser"`
}

type completeShowRequest struct {
	Set1   []string `json:"set1"`
	Set2   []string `json:"set2"`
	Encore []string `json:"encore"`
}

type rescoreResultDTO struct {
	ShowID      string `json:"showId"`
	DraftCount  int    `json:"draftCount"`
	ScoredCount int    `json:"scoredCount"`
	FailedCount int    `json:"failedCount"`
}

func showToDTO(s show.Show) showDTO {
	return showDTO{
		ID:          s.ID,
		Date:        s.Date,
		Venue:       s.Venue,
		City:        s.City,
		State:       s.State,
		ShowNumber:  s.ShowNumber,
		IsCompleted: s.IsCompleted,
	}
}

func rescoreResultToDTO(r usecase.RescoreResult) rescoreResultDTO {
	return rescoreResultDTO{
		ShowID:      r.ShowID,
		DraftCount:  r.DraftCount,
		ScoredCount: r.ScoredCount,
		FailedCount: r.FailedCount,
	}
}

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShows")
	defer span.End()

	shows, err := h.showService.ListShows(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list shows failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]showDTO, 0, len(shows))
	for _, s := range shows {
		items = append(items, showToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetShow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShow")
	defer span.End()

	showID := r.PathValue("showID")
	item, err := h.showService.GetShow(ctx, showID)
	if err != nil {
		h.logger.WarnContext(ctx, "get show failed", "show_id", showID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, showToDTO(item))
}

func (h *Handler) GetShowSetlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShowSetlist")
	defer span.End()

	showID := r.PathValue("showID")
	entries, err := h.showService.GetSetlist(ctx, showID)
	if err != nil {
		h.logger.WarnContext(ctx, "get setlist failed", "show_id", showID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]setlistEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, setlistEntryDTO{
			SongID:   e.SongID,
			Segment:  e.Segment,
			IsOpener: e.IsOpener,
			IsCloser: e.IsCloser,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListShowDrafts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShowDrafts")
	defer span.End()

	showID := r.PathValue("showID")
	drafts, err := h.draftService.ListShowDrafts(ctx, showID)
	if err != nil {
		h.logger.WarnContext(ctx, "list show drafts failed", "show_id", showID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftDTO, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, draftToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CompleteShow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteShow")
	defer span.End()

	showID := r.PathValue("showID")

	var req completeShowRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.showService.CompleteShow(ctx, usecase.CompleteShowInput{
		ShowID: showID,
		Set1:   req.Set1,
		Set2:   req.Set2,
		Encore: req.Encore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "complete show failed", "show_id", showID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)
	h.logger.InfoContext(ctx, "show completed and scored",
		"show_id", showID,
		"draft_count", result.DraftCount,
		"scored_count", result.ScoredCount,
	)
	writeSuccess(ctx, w, http.StatusOK, rescoreResultToDTO(result))
}

func (h *Handler) RescoreShow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescoreShow")
	defer span.End()

	showID := r.PathValue("showID")
	result, err := h.scoringService.RescoreShow(ctx, showID)
	if err != nil {
		h.logger.WarnContext(ctx, "rescore show failed", "show_id", showID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.Invalidate(ctx)
	writeSuccess(ctx, w, http.StatusOK, rescoreResultToDTO(result))
}

func (h *Handler) RunSetlistSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSetlistSync")
	defer span.End()

	result, err := h.syncService.SyncSetlists(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "setlist sync failed", "error", err, "failed_shows", result.FailedShowIDs)
		writeError(ctx, w, err)
		return
	}

	if result.CompletedCount > 0 {
		h.leaderboardService.Invalidate(ctx)
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"checkedCount":   result.CheckedCount,
		"completedCount": result.CompletedCount,
		"skippedCount":   result.SkippedCount,
	})
}
