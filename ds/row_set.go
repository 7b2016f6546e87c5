package ds

import (
	"sort"
)

// RowSet is a small sorted set of non-negative row indices. The zero value is an empty set.
type RowSet struct {
	rows []int
}

func (r *RowSet) search(row int) int {
	return sort.SearchInts(r.rows, row)
}

func (r *RowSet) Len() int {
	return len(r.rows)
}

func (r *RowSet) IsEmpty() bool {
	return len(r.rows) == 0
}

func (r *RowSet) Contains(row int) bool {
	i := r.search(row)
	return i < len(r.rows) && r.rows[i] == row
}

// Add reports whether row was not in the set before.
func (r *RowSet) Add(row int) bool {
	i := r.search(row)
	if i < len(r.rows) && r.rows[i] == row {
		return false
	}
	r.rows = append(r.rows, 0)
	copy(r.rows[i+1:], r.rows[i:])
	r.rows[i] = row
	return true
}

// Remove reports whether row was in the set.
func (r *RowSet) Remove(row int) bool {
	i := r.search(row)
	if i >= len(r.rows) || r.rows[i] != row {
		return false
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return true
}

// TrimFrom drops every row >= start.
func (r *RowSet) TrimFrom(start int) {
	r.rows = r.rows[:r.search(start)]
}

func (r *RowSet) Clear() {
	r.rows = nil
}

// Rows returns a copy of the rows in ascending order.
func (r *RowSet) Rows() []int {
	return ShallowCopy(r.rows)
}
