package nschema

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"niftree/ds"
)

// Block is a record type: a block of the object table or a compound used as a field type.
// Only its own fields are listed, the ones inherited from Ancestor live in the ancestor.
type Block struct {
	ID       string
	Ancestor string
	Text     string
	Abstract bool

	fields []Field
	index  *ds.LinkedHashMap[string, Field]
}

func NewBlock(id string, ancestor string, fields ...Field) (*Block, error) {
	b := &Block{
		ID:       id,
		Ancestor: ancestor,
		index:    ds.NewLinkedHashMap[string, Field](),
	}
	for _, f := range fields {
		if err := b.AddField(f); err != nil {
			return nil, errors.Wrapf(err, "NewBlock got invalid fields for %q", id)
		}
	}
	return b, nil
}

func MustBlock(id string, ancestor string, fields ...Field) *Block {
	b, err := NewBlock(id, ancestor, fields...)
	if err != nil {
		panic(err)
	}
	return b
}

func (r *Block) AddField(f Field) error {
	if r.index.Has(f.Name()) {
		return errors.Wrapf(ErrDuplicateField, "%q in %q", f.Name(), r.ID)
	}
	r.index.Put(f.Name(), f)
	r.fields = append(r.fields, f)
	return nil
}

func (r *Block) Fields() []Field {
	return ds.ShallowCopy(r.fields)
}

func (r *Block) FieldCount() int {
	return len(r.fields)
}

// Field looks a field up by name among the block's own fields.
func (r *Block) Field(name string) (Field, bool) {
	return r.index.Get(name)
}

// FieldIndex is the position of the named field in Fields, or -1.
func (r *Block) FieldIndex(name string) int {
	return r.index.Index(name)
}

func (r *Block) FieldNames() []string {
	return lo.Map(r.fields, func(f Field, _ int) string {
		return f.Name()
	})
}
