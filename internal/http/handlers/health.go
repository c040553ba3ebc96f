package handlers

import (
	"net/http"
)

// Health reports liveness plus which optional collaborators are wired, so a
// deploy missing its archive shows up in the first probe.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "stylist",
		"archive": a.Archive != nil,
	})
}
