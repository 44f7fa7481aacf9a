package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Empty(t, cfg.CachePath)
	assert.Zero(t, cfg.Jobs)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VHASH_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("VHASH_JOBS", "4")

	cfg := Load()
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestBadIntFallsBackToZero(t *testing.T) {
	t.Setenv("VHASH_JOBS", "not-a-number")
	assert.Zero(t, Load().Jobs)
}
