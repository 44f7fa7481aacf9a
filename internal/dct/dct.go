// Package dct provides the separable 2-D DCT-II used by the perceptual
// hasher. The transform is unnormalized (each output sample carries the
// conventional factor 2 of a real-to-real DCT-II); callers that threshold
// on the median are insensitive to the uniform scale.
package dct

import "math"

// Transform1D computes the unnormalized DCT-II of input into output.
// Both slices must share a length.
func Transform1D(input, output []float64) {
	n := len(input)
	factor := math.Pi / float64(n)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += input[i] * math.Cos(factor*(float64(i)+0.5)*float64(k))
		}
		output[k] = 2 * sum
	}
}

// Transform2D computes the 2-D DCT-II of a size x size row-major buffer,
// rows first then columns, and returns a new coefficient buffer of the
// same shape.
func Transform2D(pixels []float64, size int) []float64 {
	rows := make([]float64, size*size)
	buf := make([]float64, size)
	for i := 0; i < size; i++ {
		Transform1D(pixels[i*size:(i+1)*size], buf)
		copy(rows[i*size:], buf)
	}

	out := make([]float64, size*size)
	col := make([]float64, size)
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			col[i] = rows[i*size+j]
		}
		Transform1D(col, buf)
		for i := 0; i < size; i++ {
			out[i*size+j] = buf[i]
		}
	}
	return out
}
