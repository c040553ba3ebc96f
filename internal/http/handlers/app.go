// Package handlers holds the HTTP surface: plan intake, job polling, the
// archive listing, and the operational endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"stylist/internal/adapter/repo"
	"stylist/internal/infra"
	"stylist/internal/look"
)

type App struct {
	Logger  infra.Logger
	Service *look.Service
	// Archive is nil when no database is configured; the archive routes
	// then answer 503.
	Archive *repo.LookRepositoryPG
}

func NewApp(logger infra.Logger, service *look.Service, archive *repo.LookRepositoryPG) *App {
	return &App{Logger: logger, Service: service, Archive: archive}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]any{
		"error":   slug,
		"message": message,
	})
}
