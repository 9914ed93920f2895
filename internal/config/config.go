package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"occupancyDash/internal/shared/backend"
)

type Config struct {
	BackendURL string
	ServerPort string

	LogLevel  string
	LogFormat string
	LogDir    string

	PollInterval     time.Duration
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	RESTTimeout      time.Duration
	HandshakeTimeout time.Duration

	LayoutFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads the environment. NEXT_PUBLIC_BACKEND_URL wins over BACKEND_URL.
func Load() *Config {
	return &Config{
		BackendURL: backend.ResolveBaseURL(firstEnv("NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL")),
		ServerPort: envOr("PORT", "8080"),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),
		LogDir:    envOr("LOG_DIR", "logs"),

		PollInterval:     durationEnv("POLL_INTERVAL", 3*time.Second),
		InitialBackoff:   durationEnv("RECONNECT_INITIAL", time.Second),
		MaxBackoff:       durationEnv("RECONNECT_MAX", 10*time.Second),
		RESTTimeout:      durationEnv("REST_TIMEOUT", 10*time.Second),
		HandshakeTimeout: durationEnv("WS_HANDSHAKE_TIMEOUT", 10*time.Second),

		LayoutFile: strings.TrimSpace(os.Getenv("LAYOUT_FILE")),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intEnv("REDIS_DB", 0),
		StatsCacheTTL: durationEnv("STATS_CACHE_TTL", 5*time.Minute),

		KafkaBrokers: splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
		KafkaTopic:   envOr("KAFKA_TOPIC", "occupancy.snapshots"),
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// durationEnv accepts Go durations ("3s") or plain seconds ("3").
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
