package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stylist/internal/domain"
	"stylist/internal/middleware"
)

// LooksCreate accepts a style plan and answers 202 with the job id. A
// fingerprint cache hit is flagged with cached=true; the job it returns is
// already terminal.
func (a *App) LooksCreate(w http.ResponseWriter, r *http.Request) {
	var plan domain.StylePlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if plan.Region == "" {
		plan.Region = middleware.RegionFromContext(r.Context())
	}

	job, cached, err := a.Service.Submit(r.Context(), &plan)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPlan) {
			a.error(w, http.StatusBadRequest, "invalid_plan", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("http: submit failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to submit plan")
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{
		"job_id": job.ID,
		"status": job.Status,
		"cached": cached,
	})
}

// LooksGet polls a job by id.
func (a *App) LooksGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "job_id")
	job, err := a.Service.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "unknown job id")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", id).Msg("http: poll failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}
	a.json(w, http.StatusOK, job)
}
