package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisAddr   string
	GeoIPDBPath string

	// Product discovery.
	SerpAPIKey        string
	SerpBaseURL       string
	ScrapeProxyURL    string
	SearchTimeout     time.Duration
	SearchMaxInflight int

	// Result cache.
	CacheTTL time.Duration

	DefaultRegion   string
	DefaultCurrency string

	// Archive pool sizing. The archive is write-mostly and best-effort,
	// so the pool stays small by default.
	DBMaxConns int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	RateLimitPerMin     int
	RateLimitTrustProxy bool
	CORSOrigins         []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. DATABASE_URL, REDIS_ADDR, and GEOIP_DB_PATH are
// optional: absence disables the archive, the shared cache, and region
// detection respectively rather than failing startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),

		SerpAPIKey:        os.Getenv("SERP_API_KEY"),
		SerpBaseURL:       getEnv("SERP_BASE_URL", "https://serpapi.com"),
		ScrapeProxyURL:    os.Getenv("SCRAPE_PROXY_URL"),
		SearchTimeout:     time.Second * time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 12)),
		SearchMaxInflight: getEnvInt("SEARCH_MAX_INFLIGHT", 6),

		CacheTTL: time.Minute * time.Duration(getEnvInt("LOOK_CACHE_TTL_MINUTES", 15)),

		DefaultRegion:   getEnv("DEFAULT_REGION", "NL"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "EUR"),

		DBMaxConns: getEnvInt("DB_MAX_CONNS", 4),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),

		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitTrustProxy: getEnvBool("RATE_LIMIT_TRUST_PROXY", true),
		CORSOrigins:         getEnvList("CORS_ORIGINS"),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
