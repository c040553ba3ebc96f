package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxBuckets bounds the per-IP map; when exceeded, expired windows are
// pruned before admitting a new client.
const maxBuckets = 10000

type bucket struct {
	count int
	until time.Time
}

// RateLimit caps requests per client IP in a fixed window. Look submissions
// are expensive (a fan-out of external provider calls each), so the same
// cap also shields the providers behind us. With trustProxy, forwarded
// headers identify the client; without it only the socket address counts,
// for deployments exposed directly.
func RateLimit(limit int, per time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := limiterKey(r, trustProxy)
			mu.Lock()
			now := time.Now()
			b, ok := buckets[ip]
			if !ok || now.After(b.until) {
				if len(buckets) >= maxBuckets {
					for k, v := range buckets {
						if now.After(v.until) {
							delete(buckets, k)
						}
					}
				}
				b = &bucket{count: 0, until: now.Add(per)}
				buckets[ip] = b
			}
			if b.count >= limit {
				mu.Unlock()
				w.Header().Set("Retry-After", b.until.UTC().Format(http.TimeFormat))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			b.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func limiterKey(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
			for _, part := range strings.Split(xf, ",") {
				ip := strings.TrimSpace(part)
				if ip == "" {
					continue
				}
				if net.ParseIP(ip) != nil {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
