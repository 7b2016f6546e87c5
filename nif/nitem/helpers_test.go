package nitem

import (
	"github.com/samber/lo"

	"niftree/nif/nexpr"
	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

var (
	linkField     = nschema.MustField(nschema.FieldDef{Name: "Target", Type: "Ref"})
	countField    = nschema.MustField(nschema.FieldDef{Name: "Num Children", Type: "uint"})
	childrenField = nschema.MustField(nschema.FieldDef{Name: "Children", Type: "Ref", Arr1: "Num Children"})
	groupField    = nschema.MustField(nschema.FieldDef{Name: "Group", Type: "Group", Flags: nschema.FlagCompound})
)

type testHost struct {
	version  uint32
	messages []string
	lookups  int
	changed  []*Item
}

func (h *testHost) Version() uint32 {
	return h.version
}

func (h *testHost) resolve(item *Item, name string) nexpr.Value {
	h.lookups++
	for p := item.Parent(); p != nil; p = p.Parent() {
		if c := p.ChildByName(name); c != nil && c != item {
			v := c.Value()
			if v.IsCount() {
				return nexpr.UInt(v.ToCount())
			}
			return nexpr.Invalid()
		}
	}
	return nexpr.Invalid()
}

func (h *testHost) ResolveFieldValue(item *Item, name string) nexpr.Value {
	return h.resolve(item, name)
}

func (h *testHost) ResolveVersionValue(item *Item, name string) nexpr.Value {
	return h.resolve(item, name)
}

func (h *testHost) ReportError(item *Item, msg string) {
	h.messages = append(h.messages, item.Path()+": "+msg)
}

func (h *testHost) ReportFuncError(item *Item, funcName string, msg string) {
	h.messages = append(h.messages, item.Path()+": "+funcName+": "+msg)
}

func (h *testHost) ItemRepr(item *Item) string {
	return item.Path()
}

func (h *testHost) LinkTarget(link int32) *Item {
	return nil
}

func (h *testHost) ValueChanged(item *Item) {
	h.changed = append(h.changed, item)
}

func field(def nschema.FieldDef) nschema.Field {
	return nschema.MustField(def)
}

func insertUInt(parent *Item, name string, value uint32) *Item {
	c := parent.InsertChild(field(nschema.FieldDef{Name: name, Type: "uint"}), nvalue.TypeUInt, -1)
	Set(c, value)
	return c
}

// allItems lists the tree depth first, root included.
func allItems(root *Item) []*Item {
	items := []*Item{root}
	for _, c := range root.Children() {
		items = append(items, allItems(c)...)
	}
	return items
}

func containsLink(item *Item) bool {
	return lo.SomeBy(item.Children(), func(c *Item) bool {
		return c.IsLink() || containsLink(c)
	})
}

func nschemaDef(name string, typ string) nschema.FieldDef {
	return nschema.FieldDef{Name: name, Type: typ}
}
