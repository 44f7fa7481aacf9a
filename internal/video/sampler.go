// Package video derives the two halves of a video fingerprint: a square
// collage of frames sampled at a fixed temporal stride (hashed
// spatially by an image hasher) and a 64-bit dominant-color temporal
// signature over the same samples.
package video

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/ffmpeg"
)

const (
	// DefaultRate is the sampling stride in seconds.
	DefaultRate = 1.0
	// DefaultThumbSize is the edge length frames are scaled to.
	DefaultThumbSize = 144
)

// Sampler peeks one frame per Rate seconds from a video file.
type Sampler struct {
	FFmpeg  *ffmpeg.FFmpeg
	FFprobe *ffmpeg.FFprobe
	Rate    float64
	Rows    int
	Cols    int
}

func NewSampler(ff *ffmpeg.FFmpeg, probe *ffmpeg.FFprobe) *Sampler {
	return &Sampler{
		FFmpeg:  ff,
		FFprobe: probe,
		Rate:    DefaultRate,
		Rows:    DefaultThumbSize,
		Cols:    DefaultThumbSize,
	}
}

// Sample decodes the first frame at or after k*Rate seconds for
// k = 0, 1, 2, ... while the seek target stays within the duration.
// The returned list is in temporal order; a failed seek or decode ends
// the sampling.
func (s *Sampler) Sample(path string) ([]image.Image, error) {
	probe, err := s.FFprobe.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	duration := probe.GetDurationSeconds()
	if duration <= 0 {
		return nil, fmt.Errorf("invalid video duration %f for %s", duration, path)
	}

	var images []image.Image
	for k := 0; ; k++ {
		at := float64(k) * s.Rate
		if at > duration {
			break
		}
		frame, err := s.FFmpeg.ExtractFrame(path, at, s.Cols, s.Rows)
		if err != nil {
			log.Debug().Err(err).Str("file", path).Float64("at", at).Msg("frame sampling stopped")
			break
		}
		images = append(images, frame)
	}
	return images, nil
}
