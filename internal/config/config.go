// Package config carries the process-wide defaults that CLI flags can
// override. Values come from the environment with built-in fallbacks.
package config

import (
	"os"

	"github.com/spf13/cast"
)

type Config struct {
	FFmpegPath  string
	FFprobePath string
	CachePath   string // empty selects the per-user default location
	Jobs        int
}

func Load() *Config {
	return &Config{
		FFmpegPath:  env("VHASH_FFMPEG", "ffmpeg"),
		FFprobePath: env("VHASH_FFPROBE", "ffprobe"),
		CachePath:   env("VHASH_CACHE", ""),
		Jobs:        envInt("VHASH_JOBS", 0),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		return cast.ToInt(v)
	}
	return fallback
}
