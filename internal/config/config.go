package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings: provider credentials, endpoints and
// transport tuning. Domain tunables (lambda clamps, simulation iterations
// and so on) live in pkg/prediction.
type Config struct {
	// API-Football (match, team and league data)
	APIFootballBaseURL string
	APIFootballKey     string

	// OpenWeather (geocoding and current conditions)
	OpenWeatherGeoURL  string
	OpenWeatherDataURL string
	OpenWeatherKey     string

	// The Odds API (bookmaker totals markets)
	OddsAPIBaseURL string
	OddsAPIKey     string

	// HTTP server
	ListenAddr string

	// Transport
	HTTPTimeout time.Duration

	// Provider response cache
	CachePath string
	CacheTTL  time.Duration

	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIFootballBaseURL: envStr("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io"),
		APIFootballKey:     envStr("API_FOOTBALL_KEY", ""),

		OpenWeatherGeoURL:  envStr("OPENWEATHER_GEO_URL", "http://api.openweathermap.org/geo/1.0/direct"),
		OpenWeatherDataURL: envStr("OPENWEATHER_DATA_URL", "https://api.openweathermap.org/data/2.5/weather"),
		OpenWeatherKey:     envStr("OPENWEATHER_KEY", ""),

		OddsAPIBaseURL: envStr("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		OddsAPIKey:     envStr("ODDS_API_KEY", ""),

		ListenAddr: envStr("LISTEN_ADDR", ":8080"),

		HTTPTimeout: time.Duration(envInt("HTTP_TIMEOUT_SEC", 15)) * time.Second,

		CachePath: envStr("CACHE_PATH", ".goalline/cache.db"),
		CacheTTL:  time.Duration(envInt("CACHE_TTL_SEC", 3600)) * time.Second,

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
