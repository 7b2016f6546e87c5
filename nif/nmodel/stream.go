package nmodel

import (
	"github.com/pkg/errors"

	"niftree/nif/nbytes"
	"niftree/nif/nitem"
	"niftree/nif/nschema"
)

// WriteDocument writes the header followed by every block, each behind its type name.
func (r *Document) WriteDocument(w *nbytes.Writer) error {
	r.syncHeader()
	if err := r.writeItem(w, r.header); err != nil {
		return errors.Wrap(err, "WriteDocument could not write the header")
	}
	for i, block := range r.Blocks() {
		w.WriteSizedString(block.TypeName())
		if err := r.writeItem(w, block); err != nil {
			return errors.Wrapf(err, "WriteDocument could not write block %d", i)
		}
	}
	return nil
}

// ReadDocument reads what WriteDocument wrote. The version stored in the header replaces the
// one of the options as soon as it is read.
func ReadDocument(registry *nschema.Registry, rd *nbytes.Reader, options ...Option) (*Document, error) {
	r, err := New(registry, options...)
	if err != nil {
		return nil, err
	}
	if err := r.readItem(rd, r.header); err != nil {
		return nil, errors.Wrap(err, "ReadDocument could not read the header")
	}

	count := 0
	if item := r.header.ChildByName("Num Blocks"); item != nil {
		count = int(item.Value().ToCount())
	}
	for i := 0; i < count; i++ {
		typeID, err := rd.ReadSizedString()
		if err != nil {
			return nil, errors.Wrapf(err, "ReadDocument could not read the type of block %d", i)
		}
		if _, err := r.ReadBlock(rd, typeID); err != nil {
			return nil, errors.Wrapf(err, "ReadDocument could not read block %d", i)
		}
	}
	return r, nil
}

// WriteBlock writes the present fields of the block at index in order.
func (r *Document) WriteBlock(w *nbytes.Writer, index int) error {
	block := r.Block(index)
	if block == nil {
		return errors.Wrapf(ErrNoBlock, "WriteBlock got %d", index)
	}
	return r.writeItem(w, block)
}

// ReadBlock appends a block of type typeID and fills it from rd, sizing arrays from the values
// read before them. The block is removed again when reading fails.
func (r *Document) ReadBlock(rd *nbytes.Reader, typeID string) (*nitem.Item, error) {
	block, err := r.InsertBlock(typeID, -1)
	if err != nil {
		return nil, errors.Wrap(err, "ReadBlock")
	}
	if err := r.readItem(rd, block); err != nil {
		r.RemoveBlock(r.BlockIndex(block))
		return nil, errors.Wrapf(err, "ReadBlock could not read %q", typeID)
	}
	return block, nil
}

func (r *Document) writeItem(w *nbytes.Writer, parent *nitem.Item) error {
	for _, c := range parent.Children() {
		if !c.Condition() {
			continue
		}
		if c.IsArray() || c.Field().IsCompound() {
			if err := r.writeItem(w, c); err != nil {
				return err
			}
			continue
		}
		if err := nbytes.WriteValue(w, c.Value()); err != nil {
			return errors.Wrapf(err, "writeItem failed at %s", r.ItemRepr(c))
		}
	}
	return nil
}

func (r *Document) readItem(rd *nbytes.Reader, parent *nitem.Item) error {
	for _, c := range parent.Children() {
		if !c.Condition() {
			continue
		}
		if c.IsArray() && !r.UpdateArraySize(c) {
			return errors.Wrapf(ErrArraySize, "readItem got %s", r.ItemRepr(c))
		}
		if c.IsArray() || c.Field().IsCompound() {
			if err := r.readItem(rd, c); err != nil {
				return err
			}
			continue
		}

		v := c.Value()
		if err := nbytes.ReadValue(rd, &v); err != nil {
			return errors.Wrapf(err, "readItem failed at %s", r.ItemRepr(c))
		}
		c.SetValue(v)
	}
	return nil
}
