package nmodel

import (
	"fmt"

	"github.com/pkg/errors"

	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

const (
	// TemplateToken is the type of a field that takes the templ of the enclosing field.
	TemplateToken = "#T#"

	maxCompoundDepth = 32
)

// InsertBlock stamps a new block of type typeID at index, appending when index is negative or
// past the end. Links to blocks at or after index are moved up by one.
func (r *Document) InsertBlock(typeID string, index int) (*nitem.Item, error) {
	definition, ok := r.registry.Block(typeID)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBlock, "InsertBlock got %q", typeID)
	}
	if definition.Abstract {
		return nil, errors.Wrapf(ErrAbstractBlock, "InsertBlock got %q", typeID)
	}
	fields, err := r.registry.InheritedFields(typeID)
	if err != nil {
		return nil, errors.Wrapf(err, "InsertBlock got invalid type %q", typeID)
	}

	if index < 0 || index > r.BlockCount() {
		index = r.BlockCount()
	}
	if index < r.BlockCount() {
		r.mapLinks(func(link int32) int32 {
			if link >= int32(index) {
				return link + 1
			}
			return link
		})
	}

	blockField, err := nschema.NewField(nschema.FieldDef{
		Name:  typeID,
		Type:  typeID,
		Text:  definition.Text,
		Flags: nschema.FlagCompound | nschema.FlagConditionless,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "InsertBlock got invalid type %q", typeID)
	}
	block := r.root.InsertChild(blockField, nvalue.TypeNone, index+1)
	for _, f := range fields {
		r.insertType(block, f, 0)
	}
	r.syncHeader()
	return block, nil
}

// insertType appends an item for field f under parent: arrays get sized, compounds get their
// fields and basic types a default value.
func (r *Document) insertType(parent *nitem.Item, f nschema.Field, depth int) *nitem.Item {
	typeName := f.Type()
	if typeName == TemplateToken {
		typeName = r.templateOf(parent)
	}

	if f.IsArray() {
		array := parent.InsertChild(f, nvalue.TypeNone, -1)
		r.UpdateArraySize(array)
		return array
	}

	if compound, ok := r.registry.Compound(typeName); ok {
		if depth >= maxCompoundDepth {
			r.ReportFuncError(parent, "insertType", fmt.Sprintf("compound %q nests too deep", typeName))
			return nil
		}
		if !f.IsCompound() {
			f.SetFlag(nschema.FlagCompound, true)
		}
		item := parent.InsertChild(f, nvalue.TypeNone, -1)
		for _, cf := range compound.Fields() {
			r.insertType(item, cf, depth+1)
		}
		return item
	}

	valueType, ok := r.registry.ValueType(typeName)
	if !ok {
		item := parent.InsertChild(f, nvalue.TypeNone, -1)
		r.ReportFuncError(item, "insertType", fmt.Sprintf("unknown type %q", typeName))
		return item
	}
	return parent.InsertChild(f, valueType, -1)
}

// templateOf is the nearest templ set on an enclosing field, skipping the ones that only pass
// the template on.
func (r *Document) templateOf(parent *nitem.Item) string {
	for p := parent; p != nil && p != r.root; p = p.Parent() {
		if templ := p.Field().Templ(); templ != "" && templ != TemplateToken {
			return templ
		}
	}
	return TemplateToken
}

// UpdateArraySize evaluates the first dimension of array and adds or removes rows to match.
// New rows are stamped from the element schema, a multi-array growing one array per row.
func (r *Document) UpdateArraySize(array *nitem.Item) bool {
	if !array.IsArray() {
		r.ReportFuncError(array, "UpdateArraySize", "item is not an array")
		return false
	}
	size := array.Field().Arr1Expr().Evaluate(func(name string) nexpr.Value {
		return r.ResolveFieldValue(array, name)
	})
	n := size.ToInt()
	if n < 0 || n > int64(r.config.MaxArraySize) {
		r.ReportFuncError(
			array,
			"UpdateArraySize",
			fmt.Sprintf("array size %s is out of range [0, %d]", size, r.config.MaxArraySize),
		)
		return false
	}

	rows := array.ChildCount()
	switch {
	case int(n) > rows:
		element := array.Field().WithoutArray()
		for i := rows; i < int(n); i++ {
			r.insertType(array, element, 0)
		}
	case int(n) < rows:
		array.RemoveChildren(int(n), rows-int(n))
	}
	return true
}

// BlockField finds a field of a block by name using the field offsets of its type, without
// scanning the children.
func (r *Document) BlockField(block *nitem.Item, name string) *nitem.Item {
	chain, err := r.registry.Ancestors(block.TypeName())
	if err != nil {
		return nil
	}
	offset := 0
	for _, definition := range chain {
		if i := definition.FieldIndex(name); i >= 0 {
			if c := block.Child(offset + i); c != nil && c.Name() == name {
				return c
			}
			return nil
		}
		offset += definition.FieldCount()
	}
	return nil
}

// ArrayElementsPresent evaluates the condition of every row of array and records the result
// in the array's condition cache.
func (r *Document) ArrayElementsPresent(array *nitem.Item) []bool {
	rows := array.Children()
	array.ResetArrayConditions(len(rows))
	for i, c := range rows {
		array.UpdateArrayCondition(c.Condition(), i)
	}
	return array.ArrayConditions()
}
