package httpapi

import (
	"net/http"

	"github.com/phantasyphish/setlist-api/internal/domain/leaderboard"
)

type leaderboardEntryDTO struct {
	UserID           string     `json:"userId"`
	TotalPoints      int        `json:"totalPoints"`
	ShowsPlayed      int        `json:"showsPlayed"`
	BestShow         int        `json:"bestShow"`
	AvgPointsPerShow int        `json:"avgPointsPerShow"`
	Drafts           []draftDTO `json:"drafts"`
}

func leaderboardEntryToDTO(e leaderboard.Entry) leaderboardEntryDTO {
	drafts := make([]draftDTO, 0, len(e.Drafts))
	for _, d := range e.Drafts {
		drafts = append(drafts, draftToDTO(d))
	}

	return leaderboardEntryDTO{
		UserID:           e.UserID,
		TotalPoints:      e.TotalPoints,
		ShowsPlayed:      e.ShowsPlayed,
		BestShow:         e.BestShow,
		AvgPointsPerShow: e.AvgPointsPerShow,
		Drafts:           drafts,
	}
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	leagueID := r.URL.Query().Get("league_id")
	entries, err := h.leaderboardService.GetStandings(ctx, leagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderboardEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
