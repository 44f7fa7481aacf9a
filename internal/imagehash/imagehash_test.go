package imagehash

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a w x h grayscale ramp, dark top-left to bright
// bottom-right.
func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8((x + y) * 255 / (w + h - 2))
		}
	}
	return img
}

func checkerboard(w, h, cell int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func TestAHashGradient(t *testing.T) {
	hv := AHash(gradient(64, 64), 8)
	assert.NotZero(t, hv.Uint64())

	// A ramp splits at the mean along the anti-diagonal: the top-left
	// half is below, the bottom-right half above.
	assert.False(t, hv.Bit(0))
	assert.True(t, hv.Bit(63))
}

func TestAHashExactBits(t *testing.T) {
	// 8x8 input is used as-is; no resize is involved.
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := 32; i < 64; i++ {
		img.Pix[i] = 200
	}
	// mean = 100; bottom half exceeds it
	hv := AHash(img, 8)
	assert.Equal(t, uint64(0x00000000ffffffff), hv.Uint64())
}

func TestDHashExactBits(t *testing.T) {
	// 9x8 input matches the (n+1) x n target exactly.
	img := image.NewGray(image.Rect(0, 0, 9, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 9; x++ {
			if y%2 == 0 {
				img.Pix[y*img.Stride+x] = uint8(x * 10) // ascending
			} else {
				img.Pix[y*img.Stride+x] = uint8(80 - x*10) // descending
			}
		}
	}
	hv := DHash(img, 8)
	assert.Equal(t, uint64(0xff00ff00ff00ff00), hv.Uint64())
}

func TestPHashGradient(t *testing.T) {
	hv := PHash(gradient(128, 128), 8, 4)
	assert.NotZero(t, hv.Uint64())
}

func TestWHashGradient(t *testing.T) {
	hv := WHash(gradient(128, 128), 8, "haar", 0, true)
	assert.NotZero(t, hv.Uint64())
}

func TestWHashDb4(t *testing.T) {
	hv := WHash(checkerboard(64, 64, 8), 8, "db4", 0, true)
	assert.NotZero(t, hv.Uint64())
}

func TestWHashInvalidConfig(t *testing.T) {
	img := gradient(64, 64)

	assert.True(t, WHash(img, 8, "sym9", 0, true).IsZero())
	assert.True(t, WHash(img, 8, "haar", 12, true).IsZero())
	assert.True(t, WHash(img, 8, "haar", 4, true).IsZero())
	// size not a power of two
	assert.True(t, WHash(img, 6, "haar", 0, true).IsZero())
}

func TestWHashScaleClamp(t *testing.T) {
	// min dimension below the hash size: the natural scale clamps up
	// to n and still yields a well-formed hash.
	hv := WHash(gradient(6, 6), 8, "haar", 0, true)
	assert.Equal(t, 8, hv.Size())
}

func TestDeterminism(t *testing.T) {
	img := checkerboard(96, 96, 12)
	for _, h := range []Hasher{
		New(KindAHash),
		New(KindPHash),
		New(KindDHash),
		New(KindWHash),
	} {
		a := h.Hash(img)
		b := h.Hash(img)
		assert.True(t, a.Equal(b), "%s not deterministic", h.Kind)
	}
}

func TestHashersDiffer(t *testing.T) {
	// Different content should (nearly always) fingerprint differently.
	a := AHash(gradient(64, 64), 8)
	b := AHash(checkerboard(64, 64, 8), 8)
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestMedianEvenLength(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 1.5, median([]float64{1, 2}))
}

func TestToGray(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.Pix[0], nrgba.Pix[1], nrgba.Pix[2], nrgba.Pix[3] = 255, 0, 0, 255
	nrgba.Pix[4], nrgba.Pix[5], nrgba.Pix[6], nrgba.Pix[7] = 0, 255, 0, 255

	gray := ToGray(nrgba)
	require.Equal(t, 2, gray.Bounds().Dx())
	assert.Equal(t, uint8(76), gray.Pix[0])  // 255*0.299
	assert.Equal(t, uint8(150), gray.Pix[1]) // 255*0.587
}
