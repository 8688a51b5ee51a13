package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/songs", handler.ListSongs)
	mux.HandleFunc("GET /v1/songs/{songID}", handler.GetSong)
	mux.HandleFunc("GET /v1/scoring/rubric", handler.GetScoringRubric)

	mux.HandleFunc("GET /v1/shows", handler.ListShows)
	mux.HandleFunc("GET /v1/shows/{showID}", handler.GetShow)
	mux.HandleFunc("GET /v1/shows/{showID}/setlist", handler.GetShowSetlist)
	mux.HandleFunc("GET /v1/shows/{showID}/drafts", handler.ListShowDrafts)

	mux.HandleFunc("POST /v1/drafts", handler.CreateDraft)
	mux.HandleFunc("POST /v1/drafts/import", handler.ImportDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}", handler.GetDraft)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}", handler.DeleteDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}/share", handler.ShareDraft)
	mux.HandleFunc("GET /v1/users/{userID}/drafts", handler.ListUserDrafts)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/shows/{showID}/complete", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CompleteShow)))
	mux.Handle("POST /v1/internal/shows/{showID}/rescore", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RescoreShow)))
	mux.Handle("POST /v1/internal/sync/setlists", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSetlistSync)))
}
