package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/normalizer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Decoding limits.
	MaxDepth      int
	MaxInlineSize int64
	MaxInputSize  int64

	// normalize tool defaults.
	DefaultSteps []normalizer.Step
	ExactDedupe  bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from NORMJSON_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("NORMJSON_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("NORMJSON_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("NORMJSON_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("NORMJSON_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("NORMJSON_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxDepth:           envInt("NORMJSON_MAX_DEPTH", codec.DefaultMaxDepth),
		MaxInlineSize:      envInt64("NORMJSON_MAX_INLINE_SIZE", 10*1024*1024),
		MaxInputSize:       envInt64("NORMJSON_MAX_INPUT_SIZE", codec.DefaultMaxInputSize),
		DefaultSteps:       envSteps("NORMJSON_DEFAULT_STEPS", normalizer.DefaultSteps()),
		ExactDedupe:        envBool("NORMJSON_EXACT_DEDUPE", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envSteps(key string, fallback []normalizer.Step) []normalizer.Step {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	steps, err := normalizer.ParseSteps(v)
	if err != nil {
		slog.Warn("invalid steps env var, using default", "key", key, "value", v, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return steps
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
