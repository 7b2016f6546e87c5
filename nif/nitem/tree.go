package nitem

import (
	"github.com/samber/lo"

	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

// InsertChild creates a child described by field, holding a default value of valueType, at row
// at. Rows out of range append.
func (r *Item) InsertChild(field nschema.Field, valueType nvalue.Type, at int) *Item {
	c := New(field, nvalue.New(valueType))
	c.host = r.host
	r.registerChild(c, at)
	r.structureChanged()
	return c
}

// InsertItem takes ownership of c, detaching it from its previous parent first.
func (r *Item) InsertItem(c *Item, at int) *Item {
	if c == nil || c == r {
		return nil
	}
	for a := r; a != nil; a = a.parent {
		if a == c {
			r.reportFuncError("InsertItem", "cannot insert an item below itself")
			return nil
		}
	}
	if c.parent != nil {
		c.parent.TakeChild(c.Row())
	}
	r.registerChild(c, at)
	c.onParentItemChange()
	r.structureChanged()
	return c
}

// TakeChild detaches and returns the child at row, nil when out of range.
func (r *Item) TakeChild(row int) *Item {
	c := r.unregisterChild(row)
	if c != nil {
		r.structureChanged()
	}
	return c
}

func (r *Item) RemoveChild(row int) bool {
	return r.TakeChild(row) != nil
}

// RemoveChildren removes up to count children starting at row. The range is clamped to the
// existing children.
func (r *Item) RemoveChildren(row int, count int) {
	if row < 0 {
		count += row
		row = 0
	}
	if count <= 0 || row >= len(r.children) {
		return
	}
	end := lo.Min([]int{row + count, len(r.children)})
	for _, c := range r.children[row:end] {
		c.detach()
	}
	r.cutChildren(row, end)
	r.updateChildRows(row)
	r.updateLinkCache(row, true)
	r.structureChanged()
}

// KillChildren removes every child.
func (r *Item) KillChildren() {
	if len(r.children) == 0 {
		return
	}
	r.RemoveChildren(0, len(r.children))
}

func (r *Item) detach() {
	r.parent = nil
	r.row = -1
}

func (r *Item) registerChild(c *Item, at int) {
	c.parent = r
	r.names = nil
	if at < 0 || at >= len(r.children) {
		at = len(r.children)
		r.children = append(r.children, c)
		c.row = at
		r.updateLinkCache(at, false)
		return
	}
	r.children = append(r.children, nil)
	copy(r.children[at+1:], r.children[at:])
	r.children[at] = c
	c.row = at
	r.updateChildRows(at + 1)
	r.updateLinkCache(at, true)
}

// cutChildren drops children[from:to], clearing the vacated tail of the backing array.
func (r *Item) cutChildren(from int, to int) {
	n := len(r.children) - (to - from)
	copy(r.children[from:], r.children[to:])
	for i := n; i < len(r.children); i++ {
		r.children[i] = nil
	}
	r.children = r.children[:n]
}

func (r *Item) unregisterChild(at int) *Item {
	if at < 0 || at >= len(r.children) {
		return nil
	}
	c := r.children[at]
	r.cutChildren(at, at+1)
	c.detach()
	r.updateChildRows(at)
	r.updateLinkCache(at, true)
	return c
}

func (r *Item) updateChildRows(from int) {
	r.names = nil
	for i := from; i < len(r.children); i++ {
		r.children[i].row = i
	}
}

// HasChildLinks reports whether any descendant is a link.
func (r *Item) HasChildLinks() bool {
	return !r.linkRows.IsEmpty() || !r.linkAncestorRows.IsEmpty()
}

// LinkRows are the rows of children that are links.
func (r *Item) LinkRows() []int {
	return r.linkRows.Rows()
}

// LinkAncestorRows are the rows of children with links somewhere below them.
func (r *Item) LinkAncestorRows() []int {
	return r.linkAncestorRows.Rows()
}

// updateLinkCache rescans the children from start on. With cleanup the cached rows >= start
// are dropped first, as they may have shifted. The parents are told if the item gained or lost
// its last link.
func (r *Item) updateLinkCache(start int, cleanup bool) {
	hadLinks := r.HasChildLinks()
	if cleanup {
		r.linkRows.TrimFrom(start)
		r.linkAncestorRows.TrimFrom(start)
	}
	for i := start; i < len(r.children); i++ {
		c := r.children[i]
		if c.IsLink() {
			r.linkRows.Add(i)
		}
		if c.HasChildLinks() {
			r.linkAncestorRows.Add(i)
		}
	}

	hasLinks := r.HasChildLinks()
	switch {
	case hasLinks && !hadLinks:
		r.registerInParentLinkCache()
	case !hasLinks && hadLinks:
		r.unregisterInParentLinkCache()
	}
}

// registerInParentLinkCache records r as a link ancestor upwards. An ancestor that already
// had child links is registered with its own parent, so the walk stops there.
func (r *Item) registerInParentLinkCache() {
	for c, p := r, r.parent; p != nil; c, p = p, p.parent {
		hadLinks := p.HasChildLinks()
		p.linkAncestorRows.Add(c.Row())
		if hadLinks {
			return
		}
	}
}

// unregisterInParentLinkCache removes r as a link ancestor upwards, stopping at the first
// ancestor that still has other child links.
func (r *Item) unregisterInParentLinkCache() {
	for c, p := r, r.parent; p != nil; c, p = p, p.parent {
		if !p.linkAncestorRows.Remove(c.Row()) {
			return
		}
		if p.HasChildLinks() {
			return
		}
	}
}

// onParentItemChange adopts the parent's host and drops every cached condition below.
func (r *Item) onParentItemChange() {
	if r.parent != nil {
		r.setHost(r.parent.host)
	}
	r.InvalidateCondition()
	r.InvalidateVersionCondition()
}

func (r *Item) setHost(host Host) {
	r.host = host
	for _, c := range r.children {
		c.setHost(host)
	}
}

// structureChanged drops the cached conditions that may depend on the children of r.
func (r *Item) structureChanged() {
	r.InvalidateCondition()
}
