package obs

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	appInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stylist",
			Subsystem: "app",
			Name:      "info",
			Help:      "Static app info for deployment verification.",
		},
		[]string{"service", "version"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "route", "code"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stylist",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	lookJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "look",
			Name:      "jobs_total",
			Help:      "Look generation jobs by final status.",
		},
		[]string{"status"},
	)
	lookJobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stylist",
			Subsystem: "look",
			Name:      "job_duration_seconds",
			Help:      "Look generation job duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"status"},
	)
	cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "look",
			Name:      "cache_events_total",
			Help:      "Fingerprint cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	adapterFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "discovery",
			Name:      "adapter_failures_total",
			Help:      "Absorbed discovery adapter failures by provider.",
		},
		[]string{"provider"},
	)
	validationRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Subsystem: "validate",
			Name:      "rejections_total",
			Help:      "Candidates rejected during validation, by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(
		appInfo,
		httpRequestsTotal,
		httpRequestDuration,
		lookJobsTotal,
		lookJobDuration,
		cacheHitsTotal,
		adapterFailuresTotal,
		validationRejectionsTotal,
	)
}

func SetAppInfo(service string) {
	svc := strings.TrimSpace(service)
	if svc == "" {
		svc = "stylist"
	}
	ver := strings.TrimSpace(os.Getenv("APP_VERSION"))
	if ver == "" {
		ver = "dev"
	}
	appInfo.WithLabelValues(svc, ver).Set(1)
}

// RecordLookJob counts a finished look job and its wall time.
func RecordLookJob(status string, start time.Time) {
	lookJobsTotal.WithLabelValues(status).Inc()
	lookJobDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// RecordCacheEvent counts a fingerprint cache lookup; outcome is "hit" or
// "miss".
func RecordCacheEvent(outcome string) {
	cacheHitsTotal.WithLabelValues(outcome).Inc()
}

// RecordAdapterFailure counts one absorbed provider failure.
func RecordAdapterFailure(provider string) {
	adapterFailuresTotal.WithLabelValues(strings.ToLower(strings.TrimSpace(provider))).Inc()
}

// RecordValidationRejection counts one rejected candidate by reason code.
func RecordValidationRejection(reason string) {
	validationRejectionsTotal.WithLabelValues(reason).Inc()
}

// MetricsMiddleware records request count/latency.
// NOTE: route label is best-effort (path without query); job ids are folded
// into a single label value to keep cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	if next == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: 200}
		next.ServeHTTP(rec, r)
		route := normalizeRouteLabel(r.URL.Path)
		code := strconv.Itoa(rec.code)
		httpRequestsTotal.WithLabelValues(r.Method, route, code).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func normalizeRouteLabel(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	// /v1/looks/{jobId}
	if strings.HasPrefix(p, "/v1/looks/") {
		rest := strings.TrimPrefix(p, "/v1/looks/")
		if rest != "" && !strings.Contains(rest, "/") {
			return "/v1/looks/:jobId"
		}
	}
	return p
}
