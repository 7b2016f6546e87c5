package nmodel

import (
	"github.com/iancoleman/orderedmap"
	"github.com/samber/lo"

	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nvalue"
)

const (
	FieldNameVersion = "version"
	FieldNameHeader  = "header"
	FieldNameBlocks  = "blocks"
	FieldNameType    = "type"
	FieldNameFields  = "fields"
)

// ToOrderedMap exports the whole document: its version, the header and the blocks in order.
func (r *Document) ToOrderedMap() *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	lhm.Set(FieldNameVersion, nexpr.NumberToVersion(r.version))
	lhm.Set(FieldNameHeader, ToOrderedMap(r.header))
	lhm.Set(FieldNameBlocks, lo.Map(r.Blocks(), func(block *nitem.Item, _ int) *orderedmap.OrderedMap {
		blockMap := orderedmap.New()
		blockMap.Set(FieldNameType, block.TypeName())
		blockMap.Set(FieldNameFields, ToOrderedMap(block))
		return blockMap
	}))
	return lhm
}

// ToOrderedMap exports the present children of item by name, in schema order.
func ToOrderedMap(item *nitem.Item) *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	for _, c := range item.Children() {
		if !c.Condition() {
			continue
		}
		lhm.Set(c.Name(), exportItem(c))
	}
	return lhm
}

func exportItem(item *nitem.Item) any {
	switch {
	case item.IsArray():
		return lo.Map(item.Children(), func(c *nitem.Item, _ int) any {
			return exportItem(c)
		})
	case item.Field().IsCompound():
		return ToOrderedMap(item)
	}
	return exportValue(item.Value())
}

func exportValue(v nvalue.Value) any {
	switch {
	case v.Type() == nvalue.TypeBool:
		return v.ToCount() != 0
	case v.IsCount() && v.IsSigned():
		return v.ToInt()
	case v.IsCount():
		return v.ToCount()
	case v.IsLink():
		return v.ToLink()
	case v.IsFloat():
		return v.ToFloat()
	case v.IsString():
		return v.ToText()
	case v.IsFileVersion():
		return nexpr.NumberToVersion(v.ToFileVersion())
	case !v.IsValid():
		return nil
	}
	return v.String()
}
