// Package hasher is the façade over the image and video pipelines: it
// routes a file through the right one for its type and folds the
// spatial and temporal components into a single 64-bit fingerprint.
package hasher

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/ffmpeg"
	"github.com/JustinTDCT/VHash/internal/imagehash"
	"github.com/JustinTDCT/VHash/internal/verrors"
	"github.com/JustinTDCT/VHash/internal/video"
)

// FileType classifies inputs by extension.
type FileType int

const (
	TypeImage FileType = iota
	TypeVideo
	TypeOther
)

// HashType selects the image-hash algorithm.
type HashType int

const (
	TypeAHash HashType = iota
	TypePHash
	TypeDHash
	TypeWHash // default
)

// Extension sets per media type; immutable after init.
var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "bmp": true,
	"webp": true, "tiff": true, "tif": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "mkv": true, "avi": true, "mov": true,
	"wmv": true, "flv": true, "webm": true, "m4v": true,
	"mpg": true, "mpeg": true, "ts": true, "3gp": true,
}

// DetectFileType classifies a path by its lowercased extension.
func DetectFileType(path string) FileType {
	ext := lowerExt(path)
	if imageExtensions[ext] {
		return TypeImage
	}
	if videoExtensions[ext] {
		return TypeVideo
	}
	return TypeOther
}

// DefaultExtensions returns the union of the built-in image and video
// sets, used as the whitelist when the caller supplies none.
func DefaultExtensions() map[string]bool {
	set := make(map[string]bool, len(imageExtensions)+len(videoExtensions))
	for e := range imageExtensions {
		set[e] = true
	}
	for e := range videoExtensions {
		set[e] = true
	}
	return set
}

func lowerExt(path string) string {
	pos := strings.LastIndexByte(path, '.') + 1
	return strings.ToLower(path[pos:])
}

// Hasher computes a 64-bit fingerprint for one file type with one image
// hash algorithm. Instances carry only configuration and are safe to
// build per task.
type Hasher struct {
	ft FileType
	ht HashType

	image   imagehash.Hasher
	sampler *video.Sampler
}

// New builds a hasher. ffmpegPath and ffprobePath are resolved lazily
// and only used for the video pipeline.
func New(ft FileType, ht HashType, ffmpegPath, ffprobePath string) *Hasher {
	h := &Hasher{ft: ft, ht: ht}
	switch ht {
	case TypeAHash:
		h.image = imagehash.New(imagehash.KindAHash)
	case TypePHash:
		h.image = imagehash.New(imagehash.KindPHash)
	case TypeDHash:
		h.image = imagehash.New(imagehash.KindDHash)
	default:
		h.image = imagehash.New(imagehash.KindWHash)
	}
	h.sampler = video.NewSampler(ffmpeg.NewFFmpeg(ffmpegPath), ffmpeg.NewFFprobe(ffprobePath))
	return h
}

// HashFile fingerprints one file. Image inputs hash spatially only;
// video inputs combine the collage hash with the dominant-color
// temporal hash via XOR. Unknown types yield 0 without error.
func (h *Hasher) HashFile(path string) (uint64, error) {
	switch h.ft {
	case TypeImage:
		return h.hashImage(path)
	case TypeVideo:
		return h.hashVideo(path)
	}
	return 0, nil
}

func (h *Hasher) hashImage(path string) (uint64, error) {
	gray, err := imagehash.DecodeGray(path)
	if err != nil {
		return 0, err
	}
	return h.image.Hash(gray).Uint64(), nil
}

func (h *Hasher) hashVideo(path string) (uint64, error) {
	samples, err := h.sampler.Sample(path)
	if err != nil {
		return 0, fmt.Errorf("sample %s: %w", path, verrors.MakeThumb)
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("no frames sampled from %s: %w", path, verrors.MakeThumb)
	}

	collage := video.Collage(samples, video.DefaultCollageWidth)
	spatial := h.image.Hash(imagehash.ToGray(collage)).Uint64()
	temporal := video.NewDominantColorHash().Hash(samples)

	log.Debug().Str("file", path).
		Uint64("spatial", spatial).Uint64("temporal", temporal).
		Msg("video fingerprint components")
	return spatial ^ temporal, nil
}
