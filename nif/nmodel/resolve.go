package nmodel

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nvalue"
)

const (
	argName       = "ARG"
	pathSeparator = `\`
	parentSegment = ".."
)

// ResolveFieldValue finds name for the expressions of item and returns its value.
//
//   - ARG is the arg expression of the nearest ancestor having one, evaluated where that
//     ancestor sits.
//   - A path ("Group\Count", "..\Num Vertices") is walked from the parent of item.
//   - A plain name is searched among the siblings of item, then among the children of each
//     ancestor up to the block. Only present fields match.
//   - An array found this way is indexed by the row of item.
//   - The name of a block type tells whether the block of item inherits from it.
//
// Anything else resolves to an invalid value, which evaluates as false.
func (r *Document) ResolveFieldValue(item *nitem.Item, name string) nexpr.Value {
	r.resolving[item]++
	defer r.release(item)

	if name == argName {
		return r.resolveArg(item)
	}
	if found := r.findField(item, name); found != nil {
		return r.valueOf(found, item)
	}
	if r.registry.IsBlock(name) {
		block := r.BlockOf(item)
		return nexpr.Bool(block != nil && r.registry.Inherits(block.TypeName(), name))
	}
	return nexpr.Invalid()
}

// ResolveVersionValue looks name up in the header. Version and User Version fall back to the
// document's version context when the header has no such field.
func (r *Document) ResolveVersionValue(item *nitem.Item, name string) nexpr.Value {
	r.resolving[item]++
	defer r.release(item)

	if found := r.findPath(r.header, strings.Split(name, pathSeparator)); found != nil {
		return toExprValue(found.Value())
	}
	switch name {
	case "Version":
		return nexpr.UInt(uint64(r.version))
	case "User Version":
		return nexpr.UInt(uint64(r.config.UserVersion))
	}
	return nexpr.Invalid()
}

func (r *Document) release(item *nitem.Item) {
	r.resolving[item]--
	if r.resolving[item] <= 0 {
		delete(r.resolving, item)
	}
}

// Evaluate parses text and evaluates it the way a cond of item would be.
func (r *Document) Evaluate(item *nitem.Item, text string) (nexpr.Value, error) {
	expr, err := nexpr.Parse(text)
	if err != nil {
		return nexpr.Invalid(), errors.Wrap(err, "Evaluate")
	}
	return expr.Evaluate(func(name string) nexpr.Value {
		return r.ResolveFieldValue(item, name)
	}), nil
}

func (r *Document) resolveArg(item *nitem.Item) nexpr.Value {
	for p := item.Parent(); p != nil && p != r.root; p = p.Parent() {
		arg := p.Field().ArgExpr()
		if arg.IsEmpty() {
			continue
		}
		holder := p
		return arg.Evaluate(func(name string) nexpr.Value {
			return r.ResolveFieldValue(holder, name)
		})
	}
	return nexpr.Invalid()
}

func (r *Document) findField(item *nitem.Item, name string) *nitem.Item {
	if strings.Contains(name, pathSeparator) {
		return r.findPath(item.Parent(), strings.Split(name, pathSeparator))
	}
	for p := item.Parent(); p != nil && p != r.root; p = p.Parent() {
		if found := r.presentChild(p, name, item); found != nil {
			return found
		}
	}
	return nil
}

func (r *Document) findPath(start *nitem.Item, segments []string) *nitem.Item {
	current := start
	for _, segment := range segments {
		if current == nil || current == r.root {
			return nil
		}
		if segment == parentSegment {
			current = current.Parent()
			continue
		}
		current = r.presentChild(current, segment, nil)
	}
	if current == r.root {
		return nil
	}
	return current
}

// presentChild is the first child of parent called name whose condition holds. A child whose
// own cond is being evaluated is taken as present, which cuts mutually dependent conditions.
func (r *Document) presentChild(parent *nitem.Item, name string, exclude *nitem.Item) *nitem.Item {
	found, _ := lo.Find(parent.Children(), func(c *nitem.Item) bool {
		return c != exclude && c.Name() == name && (r.resolving[c] > 0 || c.Condition())
	})
	return found
}

func (r *Document) valueOf(found *nitem.Item, item *nitem.Item) nexpr.Value {
	if found.IsArray() {
		found = found.Child(item.Row())
		if found == nil {
			return nexpr.Invalid()
		}
	}
	return toExprValue(found.Value())
}

func toExprValue(v nvalue.Value) nexpr.Value {
	switch {
	case v.Type() == nvalue.TypeBool:
		return nexpr.Bool(v.ToCount() != 0)
	case v.IsCount() && v.IsSigned():
		return nexpr.Int(v.ToInt())
	case v.IsCount():
		return nexpr.UInt(v.ToCount())
	case v.IsFileVersion():
		return nexpr.UInt(uint64(v.ToFileVersion()))
	case v.IsLink():
		return nexpr.Int(int64(v.ToLink()))
	case v.IsFloat():
		return nexpr.Float(float64(v.ToFloat()))
	case v.IsString():
		return nexpr.String(v.ToText())
	}
	return nexpr.Invalid()
}
