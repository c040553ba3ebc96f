package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stylist/internal/http/handlers"
	"stylist/internal/infra"
	"stylist/internal/middleware"
	"stylist/internal/obs"
)

// Options carries everything the router needs beyond the handler set.
type Options struct {
	Logger        infra.Logger
	DefaultRegion string
	CountryLookup middleware.CountryLookup
	RateLimit     int
	TrustProxy    bool
	CORSOrigins   []string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	// Region resolves before the logger so request lines carry it.
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.CORS(opts.CORSOrigins),
		middleware.Region(opts.DefaultRegion, opts.CountryLookup),
		middleware.Logger(opts.Logger),
	)
	if opts.RateLimit > 0 {
		r.Use(middleware.RateLimit(opts.RateLimit, time.Minute, opts.TrustProxy))
	}

	r.Get("/v1/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/looks", func(r chi.Router) {
		r.Post("/", app.LooksCreate)
		r.Get("/{job_id}", app.LooksGet)
	})
	r.Get("/v1/archive/looks", app.ArchiveRecent)

	return obs.WrapHTTP("stylist-api", r)
}
