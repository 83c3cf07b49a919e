package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// MaxInlineSize bounds inline spec content in bytes.
	MaxInlineSize int64
	// AllowPrivateIPs disables the SSRF guard for URL inputs.
	AllowPrivateIPs bool

	// Concurrency is the default snippet generation concurrency.
	Concurrency int

	// Operations tool pagination.
	ListLimit int
	MaxLimit  int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASSAMPLES_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:   int64(envInt("OASSAMPLES_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs: envBool("OASSAMPLES_ALLOW_PRIVATE_IPS", false),
		Concurrency:     envInt("OASSAMPLES_CONCURRENCY", 4),
		ListLimit:       envInt("OASSAMPLES_LIST_LIMIT", 100),
		MaxLimit:        envInt("OASSAMPLES_MAX_LIMIT", 1000),
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
