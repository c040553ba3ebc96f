package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		lookup  CountryLookup
		want    string
	}{
		{
			name:    "explicit region header wins",
			headers: map[string]string{"X-Region": "de", "Accept-Language": "nl-NL"},
			want:    "DE",
		},
		{
			name:    "cdn country header",
			headers: map[string]string{"CF-IPCountry": "FR"},
			want:    "FR",
		},
		{
			name:    "accept-language region subtag",
			headers: map[string]string{"Accept-Language": "nl-NL,nl;q=0.9,en;q=0.8"},
			want:    "NL",
		},
		{
			name:    "bare language carries no region",
			headers: map[string]string{"Accept-Language": "nl"},
			lookup:  func(ip string) (string, error) { return "be", nil },
			want:    "BE",
		},
		{
			name:   "geoip fallback",
			lookup: func(ip string) (string, error) { return "NL", nil },
			want:   "NL",
		},
		{
			name:   "geoip error yields empty",
			lookup: func(ip string) (string, error) { return "", errors.New("no db") },
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.1:4444"
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := ResolveRegion(req, tc.lookup); got != tc.want {
				t.Fatalf("ResolveRegion() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegionMiddlewareDefaultsAndContext(t *testing.T) {
	var gotRegion, gotLocale string
	h := Region("NL", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRegion = RegionFromContext(r.Context())
		gotLocale = LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-AT,de;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotRegion != "AT" {
		t.Fatalf("region = %q, want AT", gotRegion)
	}
	if gotLocale != "de" {
		t.Fatalf("locale = %q, want de", gotLocale)
	}

	gotRegion, gotLocale = "", ""
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotRegion != "NL" {
		t.Fatalf("default region = %q, want NL", gotRegion)
	}
	if gotLocale != "en" {
		t.Fatalf("default locale = %q, want en", gotLocale)
	}
}
