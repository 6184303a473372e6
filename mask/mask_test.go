package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexMask_SetAlgebra(t *testing.T) {
	a := Of(1, 2, 3, 7)
	b := Of(3, 4, 7)

	assert.Equal(t, []int{1, 2, 3, 4, 7}, a.Union(b).Indices())
	assert.Equal(t, []int{3, 7}, a.Intersect(b).Indices())
	assert.Equal(t, []int{1, 2}, a.Difference(b).Indices())

	// Operands are not mutated.
	assert.Equal(t, []int{1, 2, 3, 7}, a.Indices())
	assert.Equal(t, []int{3, 4, 7}, b.Indices())
}

func TestIndexMask_NoDuplicates(t *testing.T) {
	m := Of(5, 5, 2, 2, -1)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []int{2, 5}, m.Indices())
	assert.False(t, m.Contains(-1))
}

func TestIndexMask_ZeroValue(t *testing.T) {
	var m IndexMask
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Indices())
	assert.False(t, m.Contains(0))
	assert.Equal(t, []int{1}, m.Union(Of(1)).Indices())
	assert.True(t, m.Equal(New()))
}

func TestIndexMask_FullAndFilter(t *testing.T) {
	all := Full(6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, all.Indices())
	assert.True(t, Full(0).IsEmpty())

	even := all.Filter(func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []int{0, 2, 4}, even.Indices())
	assert.True(t, all.Difference(even).Union(even).Equal(all))
}

func TestIndexMask_AllEarlyStop(t *testing.T) {
	var seen []int
	for i := range Of(1, 2, 3, 4).All() {
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}
