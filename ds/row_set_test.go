package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowSet_AddRemove(t *testing.T) {
	set := RowSet{}
	assert.True(t, set.IsEmpty())

	assert.True(t, set.Add(4))
	assert.True(t, set.Add(1))
	assert.True(t, set.Add(3))
	assert.False(t, set.Add(3))
	assert.Equal(t, []int{1, 3, 4}, set.Rows())

	assert.True(t, set.Remove(3))
	assert.False(t, set.Remove(3))
	assert.False(t, set.Remove(7))
	assert.Equal(t, []int{1, 4}, set.Rows())
	assert.True(t, set.Contains(4))
	assert.False(t, set.Contains(3))
}

func TestRowSet_TrimFrom(t *testing.T) {
	set := RowSet{}
	for _, row := range []int{0, 2, 5, 6, 9} {
		set.Add(row)
	}

	set.TrimFrom(5)
	assert.Equal(t, []int{0, 2}, set.Rows())

	set.TrimFrom(100)
	assert.Equal(t, 2, set.Len())

	set.Clear()
	assert.True(t, set.IsEmpty())
}

func TestRowSet_RowsIsACopy(t *testing.T) {
	set := RowSet{}
	set.Add(1)
	rows := set.Rows()
	rows[0] = 10

	assert.True(t, set.Contains(1))
}
