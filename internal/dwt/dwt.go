// Package dwt implements the 2-D discrete wavelet transform consumed by
// the wavelet hasher. Signals are extended by periodization, so every
// decomposition level halves the subband exactly and the forward and
// inverse transforms round-trip losslessly for the orthogonal wavelets
// provided here.
//
// Forward returns coefficients as a flat array with the deepest LL
// subband first (row-major), followed by the LH, HL and HH detail blocks
// of each level from deepest to shallowest.
package dwt

import (
	"fmt"
	"math"
)

// scaling (reconstruction low-pass) filters, orthonormal
var scalingFilters = map[string][]float64{
	"haar": {
		0.7071067811865476,
		0.7071067811865476,
	},
	"db4": {
		0.23037781330885523,
		0.7148465705525415,
		0.6308807679295904,
		-0.02798376941698385,
		-0.18703481171888114,
		0.030841381835986965,
		0.032883011666982945,
		-0.010597401784997278,
	},
}

type Wavelet struct {
	name string
	lo   []float64 // decomposition low-pass
	hi   []float64 // decomposition high-pass
}

// NewWavelet builds the named wavelet; haar and db4 are supported.
func NewWavelet(name string) (*Wavelet, error) {
	h, ok := scalingFilters[name]
	if !ok {
		return nil, fmt.Errorf("unknown wavelet %q", name)
	}
	n := len(h)
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i := 0; i < n; i++ {
		lo[i] = h[n-1-i]
		if i%2 == 0 {
			hi[i] = h[i]
		} else {
			hi[i] = -h[i]
		}
	}
	return &Wavelet{name: name, lo: lo, hi: hi}, nil
}

func (w *Wavelet) Name() string { return w.name }

// FiltLen returns the filter length (2 for haar, 8 for db4).
func (w *Wavelet) FiltLen() int { return len(w.lo) }

// MaxLevel returns the deepest feasible decomposition level for a signal
// of the given length, limited by the filter support.
func (w *Wavelet) MaxLevel(length int) int {
	if len(w.lo) <= 1 || length < 2 {
		return 0
	}
	return int(math.Log2(float64(length) / float64(len(w.lo)-1)))
}

// analyze performs one periodized decomposition step of x[0:n] into
// approximation a[0:n/2] and detail d[0:n/2].
func (w *Wavelet) analyze(x []float64, n int, a, d []float64) {
	half := n / 2
	for k := 0; k < half; k++ {
		var sa, sd float64
		for m := 0; m < len(w.lo); m++ {
			xi := x[(2*k+m)%n]
			sa += w.lo[m] * xi
			sd += w.hi[m] * xi
		}
		a[k] = sa
		d[k] = sd
	}
}

// synthesize inverts one analyze step; the analysis operator is
// orthogonal, so the inverse is its transpose.
func (w *Wavelet) synthesize(a, d []float64, x []float64, n int) {
	for i := 0; i < n; i++ {
		x[i] = 0
	}
	half := n / 2
	for k := 0; k < half; k++ {
		for m := 0; m < len(w.lo); m++ {
			x[(2*k+m)%n] += w.lo[m]*a[k] + w.hi[m]*d[k]
		}
	}
}

// Transform2D decomposes size x size row-major buffers to a fixed level.
// size must be a power of two and size>>level must stay >= 1.
type Transform2D struct {
	wave  *Wavelet
	size  int
	level int
}

func NewTransform2D(w *Wavelet, size, level int) (*Transform2D, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("transform size %d is not a power of two", size)
	}
	if level < 1 || size>>level < 1 {
		return nil, fmt.Errorf("level %d out of range for size %d", level, size)
	}
	return &Transform2D{wave: w, size: size, level: level}, nil
}

// LLSize returns the side length of the deepest LL subband.
func (t *Transform2D) LLSize() int { return t.size >> t.level }

// step transforms the top-left cur x cur block of the working matrix:
// rows first, then columns, leaving [LL LH; HL HH] quadrants in place.
func (t *Transform2D) step(work []float64, cur int) {
	half := cur / 2
	row := make([]float64, cur)
	a := make([]float64, half)
	d := make([]float64, half)

	for i := 0; i < cur; i++ {
		copy(row, work[i*t.size:i*t.size+cur])
		t.wave.analyze(row, cur, a, d)
		copy(work[i*t.size:], a)
		copy(work[i*t.size+half:], d)
	}

	col := make([]float64, cur)
	for j := 0; j < cur; j++ {
		for i := 0; i < cur; i++ {
			col[i] = work[i*t.size+j]
		}
		t.wave.analyze(col, cur, a, d)
		for i := 0; i < half; i++ {
			work[i*t.size+j] = a[i]
			work[(i+half)*t.size+j] = d[i]
		}
	}
}

func (t *Transform2D) stepInverse(work []float64, cur int) {
	half := cur / 2
	a := make([]float64, half)
	d := make([]float64, half)
	col := make([]float64, cur)

	for j := 0; j < cur; j++ {
		for i := 0; i < half; i++ {
			a[i] = work[i*t.size+j]
			d[i] = work[(i+half)*t.size+j]
		}
		t.wave.synthesize(a, d, col, cur)
		for i := 0; i < cur; i++ {
			work[i*t.size+j] = col[i]
		}
	}

	row := make([]float64, cur)
	for i := 0; i < cur; i++ {
		copy(a, work[i*t.size:i*t.size+half])
		copy(d, work[i*t.size+half:i*t.size+cur])
		t.wave.synthesize(a, d, row, cur)
		copy(work[i*t.size:], row[:cur])
	}
}

// Forward decomposes pixels (size*size, row-major) and returns the flat
// coefficient array, LL subband first.
func (t *Transform2D) Forward(pixels []float64) ([]float64, error) {
	if len(pixels) != t.size*t.size {
		return nil, fmt.Errorf("forward dwt: got %d samples, want %d", len(pixels), t.size*t.size)
	}
	work := make([]float64, len(pixels))
	copy(work, pixels)

	for lev := 0; lev < t.level; lev++ {
		t.step(work, t.size>>lev)
	}
	return t.pack(work), nil
}

// Inverse reconstructs the size*size pixel buffer from a flat
// coefficient array produced by Forward.
func (t *Transform2D) Inverse(coeffs []float64) ([]float64, error) {
	if len(coeffs) != t.size*t.size {
		return nil, fmt.Errorf("inverse dwt: got %d coefficients, want %d", len(coeffs), t.size*t.size)
	}
	work := t.unpack(coeffs)
	for lev := t.level - 1; lev >= 0; lev-- {
		t.stepInverse(work, t.size>>lev)
	}
	return work, nil
}

// pack serializes the in-place quadrant layout: deepest LL block first,
// then LH, HL, HH per level from deepest to shallowest.
func (t *Transform2D) pack(work []float64) []float64 {
	out := make([]float64, 0, t.size*t.size)
	q := t.size >> t.level
	for i := 0; i < q; i++ {
		out = append(out, work[i*t.size:i*t.size+q]...)
	}
	for lev := t.level; lev >= 1; lev-- {
		h := t.size >> lev
		for i := 0; i < h; i++ { // LH
			out = append(out, work[i*t.size+h:i*t.size+2*h]...)
		}
		for i := h; i < 2*h; i++ { // HL
			out = append(out, work[i*t.size:i*t.size+h]...)
		}
		for i := h; i < 2*h; i++ { // HH
			out = append(out, work[i*t.size+h:i*t.size+2*h]...)
		}
	}
	return out
}

func (t *Transform2D) unpack(coeffs []float64) []float64 {
	work := make([]float64, t.size*t.size)
	pos := 0
	q := t.size >> t.level
	for i := 0; i < q; i++ {
		copy(work[i*t.size:i*t.size+q], coeffs[pos:pos+q])
		pos += q
	}
	for lev := t.level; lev >= 1; lev-- {
		h := t.size >> lev
		for i := 0; i < h; i++ {
			copy(work[i*t.size+h:i*t.size+2*h], coeffs[pos:pos+h])
			pos += h
		}
		for i := h; i < 2*h; i++ {
			copy(work[i*t.size:i*t.size+h], coeffs[pos:pos+h])
			pos += h
		}
		for i := h; i < 2*h; i++ {
			copy(work[i*t.size+h:i*t.size+2*h], coeffs[pos:pos+h])
			pos += h
		}
	}
	return work
}
