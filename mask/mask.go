// Package mask implements index masks over a prototype bank.
//
// An IndexMask is an unordered set of prototype indices with no duplicates.
// Masks are values: every set operation returns a new mask and leaves its
// operands untouched.
package mask

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// IndexMask is a set of prototype indices backed by a Roaring bitmap.
// The zero value is an empty mask ready to use.
type IndexMask struct {
	rb *roaring.Bitmap
}

// New creates an empty mask.
func New() IndexMask {
	return IndexMask{rb: roaring.New()}
}

// Of creates a mask containing the given indices. Negative indices are ignored.
func Of(indices ...int) IndexMask {
	m := New()
	for _, i := range indices {
		if i >= 0 {
			m.rb.Add(uint32(i))
		}
	}
	return m
}

// Full creates a mask containing every index in [0, n).
func Full(n int) IndexMask {
	m := New()
	if n > 0 {
		m.rb.AddRange(0, uint64(n))
	}
	return m
}

func (m IndexMask) bitmap() *roaring.Bitmap {
	if m.rb == nil {
		return roaring.New()
	}
	return m.rb
}

// Contains reports whether i is in the mask.
func (m IndexMask) Contains(i int) bool {
	if m.rb == nil || i < 0 {
		return false
	}
	return m.rb.Contains(uint32(i))
}

// Len returns the number of indices in the mask.
func (m IndexMask) Len() int {
	if m.rb == nil {
		return 0
	}
	return int(m.rb.GetCardinality())
}

// IsEmpty returns true if the mask has no indices.
func (m IndexMask) IsEmpty() bool {
	return m.rb == nil || m.rb.IsEmpty()
}

// Union returns m ∪ other.
func (m IndexMask) Union(other IndexMask) IndexMask {
	return IndexMask{rb: roaring.Or(m.bitmap(), other.bitmap())}
}

// Intersect returns m ∩ other.
func (m IndexMask) Intersect(other IndexMask) IndexMask {
	return IndexMask{rb: roaring.And(m.bitmap(), other.bitmap())}
}

// Difference returns m − other.
func (m IndexMask) Difference(other IndexMask) IndexMask {
	return IndexMask{rb: roaring.AndNot(m.bitmap(), other.bitmap())}
}

// Filter returns the indices of m for which keep returns true.
func (m IndexMask) Filter(keep func(i int) bool) IndexMask {
	out := New()
	for i := range m.All() {
		if keep(i) {
			out.rb.Add(uint32(i))
		}
	}
	return out
}

// Equal reports whether both masks hold the same indices.
func (m IndexMask) Equal(other IndexMask) bool {
	return m.bitmap().Equals(other.bitmap())
}

// All iterates the indices in ascending order.
func (m IndexMask) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		if m.rb == nil {
			return
		}
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Indices returns the indices in ascending order.
func (m IndexMask) Indices() []int {
	if m.rb == nil {
		return []int{}
	}
	out := make([]int, 0, m.Len())
	return slices.AppendSeq(out, m.All())
}

// String renders the mask as an index set, e.g. "{1,4,9}".
func (m IndexMask) String() string {
	return m.bitmap().String()
}
