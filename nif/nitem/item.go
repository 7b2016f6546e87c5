package nitem

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"niftree/ds"
	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

const (
	stateUnset int8 = -1
	stateFalse int8 = 0
	stateTrue  int8 = 1
)

// Item is one node of a record tree. A parent owns its children; the parent pointer is a
// plain back reference. Nothing here is safe for concurrent use.
type Item struct {
	field  nschema.Field
	value  nvalue.Value
	parent *Item
	host   Host

	children []*Item
	// first row of each child name, built on demand
	names map[string]int

	// rows of children that are links, and of children that have links below them
	linkRows         ds.RowSet
	linkAncestorRows ds.RowSet

	arrConds []bool

	row              int
	condition        int8
	versionCondition int8
}

func newItem(field nschema.Field, value nvalue.Value) *Item {
	return &Item{
		field:            field,
		value:            value,
		row:              -1,
		condition:        stateUnset,
		versionCondition: stateUnset,
	}
}

// New creates a detached item. Hand it to InsertItem to put it in a tree.
func New(field nschema.Field, value nvalue.Value) *Item {
	item := newItem(field, value.Clone())
	if field.IsConditionless() {
		item.condition = stateTrue
	}
	return item
}

func NewRoot(host Host) *Item {
	root := newItem(nschema.Field{}, nvalue.None())
	root.host = host
	return root
}

func (r *Item) Field() nschema.Field {
	return r.field
}

func (r *Item) Name() string {
	return r.field.Name()
}

func (r *Item) TypeName() string {
	return r.field.Type()
}

func (r *Item) Parent() *Item {
	return r.parent
}

func (r *Item) Host() Host {
	return r.host
}

func (r *Item) IsRoot() bool {
	return r.parent == nil
}

func (r *Item) IsArray() bool {
	return r.field.IsArray()
}

func (r *Item) IsLink() bool {
	return r.value.IsLink()
}

func (r *Item) ValueType() nvalue.Type {
	return r.value.Type()
}

// Value returns a copy of the item's value.
func (r *Item) Value() nvalue.Value {
	return r.value.Clone()
}

func (r *Item) ChildCount() int {
	return len(r.children)
}

func (r *Item) Children() []*Item {
	return ds.ShallowCopy(r.children)
}

// Child returns nil for rows out of range.
func (r *Item) Child(row int) *Item {
	if row < 0 || row >= len(r.children) {
		return nil
	}
	return r.children[row]
}

// ChildByName returns the first child with the given name.
func (r *Item) ChildByName(name string) *Item {
	if r.names == nil {
		r.names = make(map[string]int, len(r.children))
		for i := len(r.children) - 1; i >= 0; i-- {
			r.names[r.children[i].Name()] = i
		}
	}
	row, ok := r.names[name]
	if !ok {
		return nil
	}
	return r.children[row]
}

// Row is the index of the item in its parent, 0 for a parentless item.
func (r *Item) Row() int {
	p := r.parent
	if p == nil {
		return 0
	}
	if r.row < 0 || r.row >= len(p.children) || p.children[r.row] != r {
		r.row = lo.IndexOf(p.children, r)
	}
	return r.row
}

// Path is a breadcrumb of names from the top of the tree, array elements shown by row.
func (r *Item) Path() string {
	segments := make([]string, 0)
	for c := r; c.parent != nil; c = c.parent {
		if c.parent.IsArray() {
			segments = append(segments, fmt.Sprintf("[%d]", c.Row()))
		} else {
			segments = append(segments, c.Name())
		}
	}
	if len(segments) == 0 {
		return "<root>"
	}
	return strings.Join(lo.Reverse(segments), "/")
}

func (r *Item) String() string {
	return fmt.Sprintf("%s = %s", r.Path(), r.value.String())
}

// ArrayConditions are the presence flags recorded for the elements of an array item.
func (r *Item) ArrayConditions() []bool {
	return ds.ShallowCopy(r.arrConds)
}

// ResetArrayConditions clears the presence flags to size false entries.
func (r *Item) ResetArrayConditions(size int) {
	r.arrConds = ds.Repeat(size, false)
}

func (r *Item) UpdateArrayCondition(cond bool, at int) {
	if at >= 0 && at < len(r.arrConds) {
		r.arrConds[at] = cond
	}
}
