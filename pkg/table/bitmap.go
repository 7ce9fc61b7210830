package table

import (
	"math/bits"
)

// Bitmap marks the rows of a column that hold a present (non-missing) value.
// Bit = 1 means present.
type Bitmap struct {
	words  []uint64
	length int
}

// NewBitmap creates a bitmap of the given length with every row marked missing.
func NewBitmap(length int) *Bitmap {
	return &Bitmap{
		words:  make([]uint64, (length+63)/64),
		length: length,
	}
}

// Len returns the number of rows covered by the bitmap.
func (b *Bitmap) Len() int {
	return b.length
}

// Set marks row i as present.
func (b *Bitmap) Set(i int) {
	if i < 0 || i >= b.length {
		return
	}
	b.words[i/64] |= uint64(1) << (i % 64)
}

// IsSet reports whether row i is present.
func (b *Bitmap) IsSet(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}
	return b.words[i/64]&(uint64(1)<<(i%64)) != 0
}

// Count returns the number of present rows.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// And returns the rows present in both b and other.
// The result covers the shorter of the two lengths.
func (b *Bitmap) And(other *Bitmap) *Bitmap {
	length := b.length
	if other.length < length {
		length = other.length
	}
	out := NewBitmap(length)
	for i := range out.words {
		out.words[i] = b.words[i] & other.words[i]
	}
	if r := length % 64; r != 0 && len(out.words) > 0 {
		out.words[len(out.words)-1] &= (uint64(1) << r) - 1
	}
	return out
}

// Indices returns the present row indices in ascending order.
func (b *Bitmap) Indices() []int {
	out := make([]int, 0, b.Count())
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*64+tz)
			w &= w - 1
		}
	}
	return out
}
