package handlers

import (
	"net/http"
	"strconv"
)

// ArchiveRecent lists recently settled looks from the durable archive.
func (a *App) ArchiveRecent(w http.ResponseWriter, r *http.Request) {
	if a.Archive == nil {
		a.error(w, http.StatusServiceUnavailable, "archive_disabled", "no database configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	looks, err := a.Archive.Recent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("http: archive listing failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load archive")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"looks": looks})
}
