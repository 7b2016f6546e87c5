package nitem

import (
	"fmt"

	"niftree/ds"
	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

// Get reads the item's value as T. A mismatching T is reported to the host and gives the zero
// value.
func Get[T nvalue.Scalar](item *Item) T {
	t, err := nvalue.Get[T](item.value)
	if err != nil {
		item.reportFuncError("Get", err.Error())
	}
	return t
}

// Set writes t into the item's value. A mismatching T is reported to the host and leaves the
// value untouched.
func Set[T nvalue.Scalar](item *Item, t T) bool {
	if err := nvalue.Set(&item.value, t); err != nil {
		item.reportFuncError("Set", err.Error())
		return false
	}
	item.valueChanged()
	return true
}

// SetValue replaces the value with one of the same type.
func (r *Item) SetValue(v nvalue.Value) bool {
	if v.Type() != r.value.Type() {
		r.reportFuncError(
			"SetValue",
			fmt.Sprintf("cannot assign a %s value to a %s item", v.Type(), r.value.Type()),
		)
		return false
	}
	r.value = v.Clone()
	r.valueChanged()
	return true
}

// ChangeValueType forces the value type, resetting the value to the default of t. Used for
// fields whose real type is only known once the tree is built, templated ones for instance.
func (r *Item) ChangeValueType(t nvalue.Type) {
	if r.value.Type() == t {
		return
	}
	wasLink := r.value.IsLink()
	r.value.ChangeType(t)
	if p := r.parent; p != nil && wasLink != r.value.IsLink() {
		p.updateLinkCache(r.Row(), true)
	}
	r.valueChanged()
}

// valueChanged drops the conditions that can read this value: everything in the top level
// record holding it, since paths reach across the record. A top level item invalidates its
// siblings as well. The host is told last.
func (r *Item) valueChanged() {
	scope := r
	if r.parent != nil {
		scope = r.parent
	}
	for scope.parent != nil && scope.parent.parent != nil {
		scope = scope.parent
	}
	scope.InvalidateCondition()
	if r.host != nil {
		r.host.ValueChanged(r)
	}
}

// MutateField changes the item's own copy of its schema. Other items sharing the schema keep
// the old one.
func (r *Item) MutateField(fn func(f *nschema.Field) error) error {
	field := r.field
	if err := fn(&field); err != nil {
		return err
	}
	r.field = field
	if r.parent != nil {
		r.parent.names = nil
	}
	r.InvalidateCondition()
	r.InvalidateVersionCondition()
	return nil
}

func (r *Item) SetCond(cond string) error {
	return r.MutateField(func(f *nschema.Field) error {
		return f.SetCond(cond)
	})
}

// GetArray reads the values of every child as T. Any mismatch is reported and gives nil.
func GetArray[T nvalue.Scalar](item *Item) []T {
	ts := make([]T, 0, len(item.children))
	for _, c := range item.children {
		t, err := nvalue.Get[T](c.value)
		if err != nil {
			c.reportFuncError("GetArray", err.Error())
			return nil
		}
		ts = append(ts, t)
	}
	return ts
}

// SetArray writes one value per child. A length mismatch or any incompatible element is
// reported and nothing is written.
func SetArray[T nvalue.Scalar](item *Item, ts []T) bool {
	if len(ts) != len(item.children) {
		item.reportFuncError(
			"SetArray",
			fmt.Sprintf("array size mismatch: expected %d items, got %d", len(item.children), len(ts)),
		)
		return false
	}
	staged := make([]nvalue.Value, len(ts))
	for i, t := range ts {
		v := item.children[i].value.Clone()
		if err := nvalue.Set(&v, t); err != nil {
			item.children[i].reportFuncError("SetArray", err.Error())
			return false
		}
		staged[i] = v
	}
	for i, v := range staged {
		item.children[i].value = v
	}
	item.valueChanged()
	return true
}

// FillArray sets every child to t.
func FillArray[T nvalue.Scalar](item *Item, t T) bool {
	return SetArray(item, ds.Repeat(len(item.children), t))
}
