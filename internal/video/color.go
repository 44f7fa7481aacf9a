package video

import (
	"image"

	"github.com/disintegration/imaging"
)

// ColorType is the dominant color class of a frame.
type ColorType int

const (
	ColorR ColorType = iota // red
	ColorG                  // green
	ColorB                  // blue
	ColorL                  // luminance / gray
	ColorN                  // unknown
)

func (c ColorType) String() string {
	switch c {
	case ColorR:
		return "R"
	case ColorG:
		return "G"
	case ColorB:
		return "B"
	case ColorL:
		return "L"
	}
	return "N"
}

const (
	// dominantColorResize is the per-frame vote grid edge length.
	dominantColorResize = 16
	// minPercentDiffOfRGB is the winning margin a color channel must
	// hold over the runner-up, in percent of total pixels.
	minPercentDiffOfRGB = 10
)

// DominantColor classifies a frame. Each pixel votes for the channel
// that strictly exceeds both others, or for luminance. The frame is L
// when the luminance count ties or beats every channel; otherwise the
// strict channel winner must lead the runner-up by at least
// minPercentDiff percent of all pixels, else the result is N.
func DominantColor(img image.Image, resize, minPercentDiff int) ColorType {
	if img == nil {
		return ColorN
	}
	small := imaging.Resize(img, resize, resize, imaging.Box)
	b := small.Bounds()

	var countR, countG, countB, countL int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := small.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			r := small.Pix[si]
			g := small.Pix[si+1]
			bl := small.Pix[si+2]
			si += 4
			switch {
			case bl > r && bl > g:
				countB++
			case g > r && g > bl:
				countG++
			case r > g && r > bl:
				countR++
			default:
				countL++
			}
		}
	}

	total := b.Dx() * b.Dy()
	if countL >= countB && countL >= countG && countL >= countR {
		return ColorL
	}
	mpd := total * minPercentDiff / 100
	switch {
	case countB > countR && countB > countG && countB-mpd >= countR && countB-mpd >= countG:
		return ColorB
	case countG > countR && countG > countB && countG-mpd >= countR && countG-mpd >= countB:
		return ColorG
	case countR > countG && countR > countB && countR-mpd >= countG && countR-mpd >= countB:
		return ColorR
	}
	return ColorN
}

// DominantColorHash packs per-frame dominant colors into a 64-bit
// temporal signature against a fixed expected-color map: positions 0-15
// expect R, 16-31 G, 32-47 B, 48-63 L. The map carries no N entries and
// samples beyond its length are ignored.
type DominantColorHash struct {
	resize         int
	minPercentDiff int
	expected       [64]ColorType
}

func NewDominantColorHash() *DominantColorHash {
	h := &DominantColorHash{
		resize:         dominantColorResize,
		minPercentDiff: minPercentDiffOfRGB,
	}
	for i := range h.expected {
		h.expected[i] = ColorType(i / 16) // R, G, B, L in 16-slot runs
	}
	return h
}

// Hash sets bit 63-i when sample i's dominant color matches the
// expected color at position i.
func (h *DominantColorHash) Hash(images []image.Image) uint64 {
	var hv uint64
	for i := 0; i < len(images) && i < len(h.expected); i++ {
		if DominantColor(images[i], h.resize, h.minPercentDiff) == h.expected[i] {
			hv |= 1 << uint(len(h.expected)-i-1)
		}
	}
	return hv
}
