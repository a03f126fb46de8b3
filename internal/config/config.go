// Package config loads runtime settings from the environment (with optional
// .env file). Everything has a sensible default; only the locale is
// validated strictly, since it swaps base URLs and the collation table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds catalog, resolution and download settings.
type Config struct {
	Language string // "fi" or "sv": base URLs, package paths, collation

	DownloadDir       string // where downloads and their subtitles land
	DownloadIndexPath string // sqlite download history

	CacheSize int           // max cached listings
	CacheTTL  time.Duration // listing cache lifetime

	HTTPTimeout   time.Duration
	LiveBandwidth int  // live channel bitrate tier (kbps-ish index)
	IncludeClips  bool // include clips when listing episodes
}

// FromEnv builds a Config from AREENA_* environment variables, after loading
// .env if one exists next to the working directory.
func FromEnv() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Language:      envOr("AREENA_LANGUAGE", "fi"),
		DownloadDir:   envOr("AREENA_DOWNLOAD_DIR", defaultDownloadDir()),
		CacheSize:     envInt("AREENA_CACHE_SIZE", 0),
		CacheTTL:      envDuration("AREENA_CACHE_TTL", 0),
		HTTPTimeout:   envDuration("AREENA_HTTP_TIMEOUT", 30*time.Second),
		LiveBandwidth: envInt("AREENA_LIVE_BANDWIDTH", 0),
		IncludeClips:  envBool("AREENA_INCLUDE_CLIPS", false),
	}
	cfg.DownloadIndexPath = envOr("AREENA_DOWNLOAD_INDEX", filepath.Join(cfg.DownloadDir, "downloads.db"))

	if cfg.Language != "fi" && cfg.Language != "sv" {
		return nil, fmt.Errorf("AREENA_LANGUAGE=%q: unsupported locale (want fi or sv)", cfg.Language)
	}
	return cfg, nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Videos", "areena")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
