package dwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveletFilters(t *testing.T) {
	haar, err := NewWavelet("haar")
	require.NoError(t, err)
	assert.Equal(t, 2, haar.FiltLen())
	assert.Equal(t, "haar", haar.Name())

	db4, err := NewWavelet("db4")
	require.NoError(t, err)
	assert.Equal(t, 8, db4.FiltLen())

	_, err = NewWavelet("sym9")
	assert.Error(t, err)
}

func TestMaxLevel(t *testing.T) {
	haar, _ := NewWavelet("haar")
	assert.Equal(t, 6, haar.MaxLevel(64))

	db4, _ := NewWavelet("db4")
	// 64/7 ~ 9.14, log2 ~ 3.19
	assert.Equal(t, 3, db4.MaxLevel(64))
}

func TestHaarRoundTrip(t *testing.T) {
	haar, _ := NewWavelet("haar")
	const size = 16
	tr, err := NewTransform2D(haar, size, 3)
	require.NoError(t, err)

	pixels := make([]float64, size*size)
	for i := range pixels {
		pixels[i] = float64((i*37)%251) / 251
	}

	coeffs, err := tr.Forward(pixels)
	require.NoError(t, err)
	require.Len(t, coeffs, size*size)

	back, err := tr.Inverse(coeffs)
	require.NoError(t, err)
	for i := range pixels {
		assert.InDelta(t, pixels[i], back[i], 1e-9, "pixel %d", i)
	}
}

func TestDb4RoundTrip(t *testing.T) {
	db4, _ := NewWavelet("db4")
	const size = 32
	tr, err := NewTransform2D(db4, size, 2)
	require.NoError(t, err)

	pixels := make([]float64, size*size)
	for i := range pixels {
		pixels[i] = float64((i*13)%97) / 97
	}

	coeffs, err := tr.Forward(pixels)
	require.NoError(t, err)
	back, err := tr.Inverse(coeffs)
	require.NoError(t, err)
	for i := range pixels {
		assert.InDelta(t, pixels[i], back[i], 1e-9, "pixel %d", i)
	}
}

func TestLLSubbandLeadsCoefficients(t *testing.T) {
	haar, _ := NewWavelet("haar")
	const size = 8
	tr, err := NewTransform2D(haar, size, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, tr.LLSize())

	// Constant input: every LL coefficient is the scaled mean, every
	// detail coefficient is zero.
	pixels := make([]float64, size*size)
	for i := range pixels {
		pixels[i] = 1
	}
	coeffs, err := tr.Forward(pixels)
	require.NoError(t, err)

	ll := tr.LLSize() * tr.LLSize()
	for i := 0; i < ll; i++ {
		assert.InDelta(t, 2.0, coeffs[i], 1e-9, "LL coefficient %d", i)
	}
	for i := ll; i < len(coeffs); i++ {
		assert.InDelta(t, 0.0, coeffs[i], 1e-9, "detail coefficient %d", i)
	}
}

func TestDeepestLevelSingleLL(t *testing.T) {
	haar, _ := NewWavelet("haar")
	const size = 8
	tr, err := NewTransform2D(haar, size, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.LLSize())

	pixels := make([]float64, size*size)
	for i := range pixels {
		pixels[i] = 0.25
	}
	coeffs, err := tr.Forward(pixels)
	require.NoError(t, err)

	// Zeroing the single deepest LL coefficient removes the overall
	// brightness: the reconstruction sums to zero.
	coeffs[0] = 0
	back, err := tr.Inverse(coeffs)
	require.NoError(t, err)
	var sum float64
	for _, v := range back {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-9)
}

func TestBadSizes(t *testing.T) {
	haar, _ := NewWavelet("haar")
	_, err := NewTransform2D(haar, 12, 1)
	assert.Error(t, err)
	_, err = NewTransform2D(haar, 8, 0)
	assert.Error(t, err)
	_, err = NewTransform2D(haar, 8, 4)
	assert.Error(t, err)

	tr, _ := NewTransform2D(haar, 8, 1)
	_, err = tr.Forward(make([]float64, 3))
	assert.Error(t, err)
	_, err = tr.Inverse(make([]float64, 3))
	assert.Error(t, err)
}
