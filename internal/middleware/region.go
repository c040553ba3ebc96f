package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type regionContextKey struct{}
type localeContextKey struct{}

var (
	RegionKey = regionContextKey{}
	LocaleKey = localeContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// localeTags are the chat-surface languages we can render outfit text in;
// everything else falls back to English.
var localeTags = []language.Tag{
	language.English,
	language.Dutch,
	language.German,
	language.French,
}

var supportedLocales = language.NewMatcher(localeTags)

// Region annotates each request with a best-effort shopping region and a
// display locale. Plans that arrive without an explicit region inherit the
// detected one.
func Region(defaultRegion string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			region := ResolveRegion(r, lookup)
			if region == "" {
				region = strings.ToUpper(defaultRegion)
			}
			ctx := context.WithValue(r.Context(), RegionKey, region)
			ctx = context.WithValue(ctx, LocaleKey, detectLocale(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ResolveRegion resolves a best-effort ISO country code for the request:
// explicit headers first, then the Accept-Language region subtag, then a
// GeoIP lookup on the client address.
func ResolveRegion(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Region", "X-Country-Code", "CF-IPCountry"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := acceptLanguageRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

func detectLocale(r *http.Request) string {
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return "en"
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, index, _ := supportedLocales.Match(tags...)
	base, _ := localeTags[index].Base()
	return base.String()
}

// acceptLanguageRegion pulls the region subtag from the first
// Accept-Language entry that carries one, e.g. "nl-NL" yields "NL".
func acceptLanguageRegion(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if token == "" {
			continue
		}
		tag, err := language.Parse(token)
		if err != nil {
			continue
		}
		if region, confident := tag.Region(); confident >= language.High && region.IsCountry() {
			return region.String()
		}
	}
	return ""
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RegionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RegionKey).(string); ok {
		return v
	}
	return ""
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "en"
}
