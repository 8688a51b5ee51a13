package httpapi

import (
	"net/http"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

type songDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	IsCover        bool    `json:"isCover"`
	OriginalArtist string  `json:"originalArtist,omitempty"`
	TimesPlayed    int     `json:"timesPlayed"`
	AvgGap         float64 `json:"avgGap"`
	DebutDate      string  `json:"debutDate,omitempty"`
	LastPlayed     string  `json:"lastPlayed,omitempty"`
}

func songToDTO(s song.Song) songDTO {
	return songDTO{
		ID:             s.ID,
		Name:           s.Name,
		IsCover:        s.IsCover,
		OriginalArtist: s.OriginalArtist,
		TimesPlayed:    s.TimesPlayed,
		AvgGap:         s.AvgGap,
		DebutDate:      s.DebutDate,
		LastPlayed:     s.LastPlayed,
	}
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSongs")
	defer span.End()

	songs, err := h.songService.ListSongs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list songs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]songDTO, 0, len(songs))
	for _, s := range songs {
		items = append(items, songToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSong")
	defer span.End()

	songID := r.PathValue("songID")
	item, err := h.songService.GetSong(ctx, songID)
	if err != nil {
		h.logger.WarnContext(ctx, "get song failed", "song_id", songID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, songToDTO(item))
}

func (h *Handler) GetScoringRubric(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringRubric")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.scoringService.Rubric())
}
