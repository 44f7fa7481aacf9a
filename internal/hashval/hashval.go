// Package hashval implements the fixed-width bit string produced by the
// image and video hashers. Bits are MSB-first within each byte: bit i
// lives in byte i/8 at position 7-(i%8).
package hashval

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/JustinTDCT/VHash/internal/verrors"
)

// Size64 is the byte width of the 64-bit values used throughout vhash.
const Size64 = 8

type Value struct {
	v []byte
}

// New returns an all-zero value of the given byte width.
func New(size int) Value {
	return Value{v: make([]byte, size)}
}

func (h Value) Size() int {
	return len(h.v)
}

// Set sets bit index when one is true and clears it otherwise. Negative
// indexes and indexes at or beyond 8*Size fail with verrors.OutOfRange.
func (h *Value) Set(index int, one bool) error {
	if index < 0 || index >= len(h.v)*8 {
		return fmt.Errorf("set bit %d of %d: %w", index, len(h.v)*8, verrors.OutOfRange)
	}
	shift := uint(7 - index%8)
	if one {
		h.v[index/8] |= 1 << shift
	} else {
		h.v[index/8] &^= 1 << shift
	}
	return nil
}

// SetBytes replaces the whole buffer. The length must match the value's
// width.
func (h *Value) SetBytes(b []byte) error {
	if len(b) != len(h.v) {
		return fmt.Errorf("set %d bytes into %d-byte value: %w", len(b), len(h.v), verrors.OutOfRange)
	}
	copy(h.v, b)
	return nil
}

func (h Value) Bit(index int) bool {
	if index < 0 || index >= len(h.v)*8 {
		return false
	}
	return h.v[index/8]&(1<<uint(7-index%8)) != 0
}

// Hex renders the value as 2*Size lowercase hex digits, big-endian, no
// prefix.
func (h Value) Hex() string {
	var b strings.Builder
	for _, vi := range h.v {
		fmt.Fprintf(&b, "%02x", vi)
	}
	return b.String()
}

// Bin renders the value as 8*Size binary digits, MSB first.
func (h Value) Bin() string {
	var b strings.Builder
	for _, vi := range h.v {
		fmt.Fprintf(&b, "%08b", vi)
	}
	return b.String()
}

// Uint8 reads a 1-byte value. Values of any other width yield 0.
func (h Value) Uint8() uint8 {
	if len(h.v) != 1 {
		return 0
	}
	return h.v[0]
}

// Uint16 reads a 2-byte value big-endian. Values of any other width
// yield 0.
func (h Value) Uint16() uint16 {
	if len(h.v) != 2 {
		return 0
	}
	var val uint16
	for _, vi := range h.v {
		val = val<<8 + uint16(vi)
	}
	return val
}

// Uint32 reads a 4-byte value big-endian. Values of any other width
// yield 0.
func (h Value) Uint32() uint32 {
	if len(h.v) != 4 {
		return 0
	}
	var val uint32
	for _, vi := range h.v {
		val = val<<8 + uint32(vi)
	}
	return val
}

// Uint64 reads an 8-byte value big-endian. Values of any other width
// yield 0.
func (h Value) Uint64() uint64 {
	if len(h.v) != 8 {
		return 0
	}
	var val uint64
	for _, vi := range h.v {
		val = val<<8 + uint64(vi)
	}
	return val
}

// And returns the element-wise conjunction. Both values must share a
// width; the receiver's width wins and missing bytes read as zero.
func (h Value) And(o Value) Value {
	r := New(len(h.v))
	for i := range h.v {
		if i < len(o.v) {
			r.v[i] = h.v[i] & o.v[i]
		}
	}
	return r
}

func (h Value) Or(o Value) Value {
	r := New(len(h.v))
	for i := range h.v {
		r.v[i] = h.v[i]
		if i < len(o.v) {
			r.v[i] |= o.v[i]
		}
	}
	return r
}

func (h Value) Xor(o Value) Value {
	r := New(len(h.v))
	for i := range h.v {
		r.v[i] = h.v[i]
		if i < len(o.v) {
			r.v[i] ^= o.v[i]
		}
	}
	return r
}

func (h Value) Not() Value {
	r := New(len(h.v))
	for i := range h.v {
		r.v[i] = ^h.v[i]
	}
	return r
}

func (h Value) Equal(o Value) bool {
	return bytes.Equal(h.v, o.v)
}

// Compare orders two values lexicographically over their bytes.
func (h Value) Compare(o Value) int {
	return bytes.Compare(h.v, o.v)
}

func (h Value) Less(o Value) bool {
	return h.Compare(o) < 0
}

func (h Value) IsZero() bool {
	for _, vi := range h.v {
		if vi != 0 {
			return false
		}
	}
	return true
}

// String renders the value for streams, 0x-prefixed.
func (h Value) String() string {
	if len(h.v) == 0 {
		return ""
	}
	return "0x" + h.Hex()
}
