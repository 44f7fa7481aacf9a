// Package imagehash computes the four perceptual fingerprints (average,
// DCT, difference, wavelet) over 8-bit grayscale matrices. The hashers
// never fail: invalid input or configuration is logged and yields the
// all-zero value. DecodeGray reports read and decode failures as errors.
package imagehash

import (
	"image"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/dct"
	"github.com/JustinTDCT/VHash/internal/dwt"
	"github.com/JustinTDCT/VHash/internal/hashval"
)

type Kind int

const (
	KindAHash Kind = iota
	KindPHash
	KindDHash
	KindWHash
)

func (k Kind) String() string {
	switch k {
	case KindAHash:
		return "ahash"
	case KindPHash:
		return "phash"
	case KindDHash:
		return "dhash"
	case KindWHash:
		return "whash"
	}
	return "unknown"
}

const (
	// DefaultSize is the grid width N; hashes carry N*N bits.
	DefaultSize = 8
	// DefaultHighFreqFactor is the PHash oversampling factor.
	DefaultHighFreqFactor = 4
	// DefaultWaveletMode is the WHash analysis wavelet.
	DefaultWaveletMode = "haar"
)

// Hasher is a tagged hash variant with its per-variant configuration.
type Hasher struct {
	Kind Kind
	Size int

	HighFreqFactor int // PHash

	Mode            string // WHash: haar or db4
	ImageScale      int    // WHash: 0 selects the natural scale
	RemoveMaxHaarLL bool   // WHash
}

// New returns a hasher of the given kind with default configuration.
func New(kind Kind) Hasher {
	return Hasher{
		Kind:            kind,
		Size:            DefaultSize,
		HighFreqFactor:  DefaultHighFreqFactor,
		Mode:            DefaultWaveletMode,
		ImageScale:      0,
		RemoveMaxHaarLL: true,
	}
}

// Hash dispatches on the variant tag.
func (h Hasher) Hash(img *image.Gray) hashval.Value {
	switch h.Kind {
	case KindAHash:
		return AHash(img, h.Size)
	case KindPHash:
		return PHash(img, h.Size, h.HighFreqFactor)
	case KindDHash:
		return DHash(img, h.Size)
	case KindWHash:
		return WHash(img, h.Size, h.Mode, h.ImageScale, h.RemoveMaxHaarLL)
	}
	log.Error().Int("kind", int(h.Kind)).Msg("unknown hash kind")
	return hashval.New(h.Size)
}

func valueBytes(n int) int {
	return n * n / 8
}

// AHash resizes to n x n, takes the integer mean, and emits bit i when
// pixel i exceeds it, row-major.
func AHash(img *image.Gray, n int) hashval.Value {
	hv := hashval.New(valueBytes(n))
	if img == nil || n < 2 {
		log.Error().Msg("ahash: invalid input image or size")
		return hv
	}

	im := resizeGray(img, n, n)
	var sum uint64
	for i := 0; i < n*n; i++ {
		sum += uint64(pixAt(im, i, n))
	}
	mean := uint8(float64(sum) / float64(n*n))

	for i := 0; i < n*n; i++ {
		hv.Set(i, pixAt(im, i, n) > mean)
	}
	return hv
}

// PHash resizes to (factor*n)^2, applies a 2-D DCT-II over [0,1]-scaled
// pixels, keeps the top-left n x n coefficients and thresholds them on
// their median.
func PHash(img *image.Gray, n, highFreqFactor int) hashval.Value {
	hv := hashval.New(valueBytes(n))
	if img == nil || n < 2 {
		log.Error().Msg("phash: invalid input image or size")
		return hv
	}
	if highFreqFactor < 1 {
		highFreqFactor = DefaultHighFreqFactor
	}

	size := highFreqFactor * n
	im := resizeGray(img, size, size)

	pixels := make([]float64, size*size)
	for i := range pixels {
		pixels[i] = float64(pixAt(im, i, size)) / 255.0
	}
	coeffs := dct.Transform2D(pixels, size)

	lowfreq := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		lowfreq = append(lowfreq, coeffs[i*size:i*size+n]...)
	}

	med := median(lowfreq)
	for i, v := range lowfreq {
		hv.Set(i, v > med)
	}
	return hv
}

// DHash resizes to (n+1) columns x n rows and emits the horizontal
// gradient bits pixel[j] > pixel[j-1], row-major.
func DHash(img *image.Gray, n int) hashval.Value {
	hv := hashval.New(valueBytes(n))
	if img == nil || n < 2 {
		log.Error().Msg("dhash: invalid input image or size")
		return hv
	}

	im := resizeGray(img, n+1, n)
	index := 0
	for i := 0; i < n; i++ {
		for j := 1; j < n+1; j++ {
			hv.Set(index, pixAt(im, i*(n+1)+j, n+1) > pixAt(im, i*(n+1)+j-1, n+1))
			index++
		}
	}
	return hv
}

// WHash performs the two-pass wavelet analysis: an optional Haar pass
// that zeroes the deepest LL coefficient to drop overall brightness,
// then the main DWT whose leading coefficients are thresholded on their
// median. n must be a power of two; scale 0 selects the greatest power
// of two not above min(rows, cols), clamped to at least n.
func WHash(img *image.Gray, n int, mode string, imgScale int, removeMaxHaarLL bool) hashval.Value {
	hv := hashval.New(valueBytes(n))
	if img == nil || n < 2 || n&(n-1) != 0 {
		log.Error().Msg("whash: invalid input image or size")
		return hv
	}
	if mode != "haar" && mode != "db4" {
		log.Error().Str("mode", mode).Msg("whash: mode should be haar or db4")
		return hv
	}
	if imgScale != 0 {
		if imgScale&(imgScale-1) != 0 {
			log.Error().Int("scale", imgScale).Msg("whash: image scale should be power of 2")
			return hv
		}
		if imgScale < n {
			log.Error().Int("scale", imgScale).Msg("whash: image scale should be greater than or equal to hash size")
			return hv
		}
	}

	b := img.Bounds()
	if imgScale == 0 {
		short := b.Dy()
		if b.Dx() < short {
			short = b.Dx()
		}
		natural := 0
		if short > 0 {
			natural = 1 << uint(math.Log2(float64(short)))
		}
		imgScale = natural
		if imgScale < n {
			imgScale = n
		}
	}

	llMaxLevel := int(math.Log2(float64(imgScale)))
	dwtLevel := llMaxLevel - int(math.Log2(float64(n)))
	if dwtLevel < 1 {
		dwtLevel = 1
	}

	im := resizeGray(img, imgScale, imgScale)
	pixels := make([]float64, imgScale*imgScale)
	for i := range pixels {
		pixels[i] = float64(pixAt(im, i, imgScale)) / 255.0
	}

	if removeMaxHaarLL {
		if err := removeLowFrequency(pixels, imgScale, llMaxLevel); err != nil {
			log.Error().Err(err).Msg("whash: remove max LL failed")
			return hv
		}
	}

	wave, err := dwt.NewWavelet(mode)
	if err != nil {
		log.Error().Err(err).Msg("whash: init wavelet failed")
		return hv
	}
	tr, err := dwt.NewTransform2D(wave, imgScale, dwtLevel)
	if err != nil {
		log.Error().Err(err).Msg("whash: init transform failed")
		return hv
	}
	coeffs, err := tr.Forward(pixels)
	if err != nil {
		log.Error().Err(err).Msg("whash: forward transform failed")
		return hv
	}

	leading := make([]float64, n*n)
	copy(leading, coeffs[:n*n])
	med := median(leading)
	for i := 0; i < n*n; i++ {
		hv.Set(i, coeffs[i] > med)
	}
	return hv
}

// removeLowFrequency runs a deepest-level Haar DWT over pixels, zeroes
// the single LL coefficient and inverse-transforms in place.
func removeLowFrequency(pixels []float64, size, llMaxLevel int) error {
	haar, err := dwt.NewWavelet("haar")
	if err != nil {
		return err
	}
	if max := haar.MaxLevel(size); llMaxLevel > max {
		llMaxLevel = max
	}
	tr, err := dwt.NewTransform2D(haar, size, llMaxLevel)
	if err != nil {
		return err
	}
	coeffs, err := tr.Forward(pixels)
	if err != nil {
		return err
	}
	coeffs[0] = 0
	back, err := tr.Inverse(coeffs)
	if err != nil {
		return err
	}
	copy(pixels, back)
	return nil
}

func pixAt(img *image.Gray, i, stride int) uint8 {
	return img.Pix[(i/stride)*img.Stride+i%stride]
}

// median of vals, defined as the average of the two central order
// statistics: (sorted[(L+1)/2-1] + sorted[L/2]) / 2.
func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	l := len(sorted)
	return (sorted[(l+1)/2-1] + sorted[l/2]) / 2
}
