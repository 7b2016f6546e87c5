package nschema

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"niftree/ds"
	"niftree/nif/nvalue"
)

// Registry holds every record type known to a document, plus aliases of basic types.
type Registry struct {
	blocks    *ds.LinkedHashMap[string, *Block]
	compounds *ds.LinkedHashMap[string, *Block]
	aliases   map[string]string
	pool      *Pool
}

func NewRegistry() *Registry {
	return &Registry{
		blocks:    ds.NewLinkedHashMap[string, *Block](),
		compounds: ds.NewLinkedHashMap[string, *Block](),
		aliases:   map[string]string{},
		pool:      NewPool(),
	}
}

func (r *Registry) checkFree(id string) error {
	if r.blocks.Has(id) || r.compounds.Has(id) {
		return errors.Wrapf(ErrDuplicateType, "%q", id)
	}
	if _, ok := r.aliases[id]; ok {
		return errors.Wrapf(ErrDuplicateType, "%q is an alias", id)
	}
	return nil
}

// intern shares field data with identical fields already registered.
func (r *Registry) intern(b *Block) {
	for i, f := range b.fields {
		b.fields[i] = r.pool.Intern(f)
		b.index.Put(f.Name(), b.fields[i])
	}
}

func (r *Registry) RegisterBlock(b *Block) error {
	if err := r.checkFree(b.ID); err != nil {
		return errors.Wrap(err, "RegisterBlock")
	}
	r.intern(b)
	r.blocks.Put(b.ID, b)
	return nil
}

func (r *Registry) RegisterCompound(b *Block) error {
	if err := r.checkFree(b.ID); err != nil {
		return errors.Wrap(err, "RegisterCompound")
	}
	r.intern(b)
	r.compounds.Put(b.ID, b)
	return nil
}

// RegisterAlias makes alias resolve to target, which must be a basic type or another alias.
func (r *Registry) RegisterAlias(alias string, target string) error {
	if err := r.checkFree(alias); err != nil {
		return errors.Wrap(err, "RegisterAlias")
	}
	r.aliases[alias] = target
	if _, ok := r.ValueType(alias); !ok {
		delete(r.aliases, alias)
		return errors.Wrapf(ErrUnknownType, "RegisterAlias got %q -> %q", alias, target)
	}
	return nil
}

func (r *Registry) Block(id string) (*Block, bool) {
	return r.blocks.Get(id)
}

func (r *Registry) Compound(id string) (*Block, bool) {
	return r.compounds.Get(id)
}

func (r *Registry) IsBlock(id string) bool {
	return r.blocks.Has(id)
}

func (r *Registry) IsCompound(id string) bool {
	return r.compounds.Has(id)
}

func (r *Registry) BlockIDs() []string {
	return r.blocks.Keys()
}

// ValueType resolves a basic type name, following aliases.
func (r *Registry) ValueType(name string) (nvalue.Type, bool) {
	for seen := 0; seen <= len(r.aliases); seen++ {
		target, ok := r.aliases[name]
		if !ok {
			break
		}
		name = target
	}
	return nvalue.TypeByName(name)
}

// Ancestors walks the ancestor chain of a block, returning it root first with the block
// itself last.
func (r *Registry) Ancestors(id string) ([]*Block, error) {
	stack := ds.NewStack[*Block]()
	seen := map[string]bool{}
	for current := id; current != ""; {
		if seen[current] {
			return nil, errors.Wrapf(ErrAncestorCycle, "Ancestors got a cycle through %q", current)
		}
		seen[current] = true
		b, ok := r.blocks.Get(current)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownType, "Ancestors got unknown block %q", current)
		}
		stack.Push(b)
		current = b.Ancestor
	}
	return stack.Drain(), nil
}

// InheritedFields lists the fields of a block including every inherited one, in the order
// they appear in a record: the root type's fields first.
func (r *Registry) InheritedFields(id string) ([]Field, error) {
	chain, err := r.Ancestors(id)
	if err != nil {
		return nil, err
	}
	return lo.Flatten(lo.Map(chain, func(b *Block, _ int) []Field {
		return b.Fields()
	})), nil
}

// Inherits reports whether block id is ancestor or one of its descendants.
func (r *Registry) Inherits(id string, ancestor string) bool {
	chain, err := r.Ancestors(id)
	if err != nil {
		return false
	}
	return lo.SomeBy(chain, func(b *Block) bool {
		return b.ID == ancestor
	})
}

// PoolSize is the number of distinct field schemas shared among registered types.
func (r *Registry) PoolSize() int {
	return r.pool.Len()
}
