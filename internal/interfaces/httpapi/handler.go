package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phantasyphish/setlist-api/internal/platform/logging"
	"github.com/phantasyphish/setlist-api/internal/usecase"
)

type Handler struct {
	songService        *usecase.SongService
	showService        *usecase.ShowService
	draftService       *usecase.DraftService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	syncService        *usecase.SetlistSyncService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	songService *usecase.SongService,
	showService *usecase.ShowService,
	draftService *usecase.DraftService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	syncService *usecase.SetlistSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		songService:        songService,
		showService:        showService,
		draftService:       draftService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		syncService:        syncService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// userIDFromRequest resolves the acting user. Identity is asserted by
// the fronting gateway via the X-User-ID header.
func userIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}
