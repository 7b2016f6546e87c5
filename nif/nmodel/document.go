package nmodel

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nschema"
	"niftree/nif/nvalue"
)

const (
	// HeaderType is the compound the header record is stamped from.
	HeaderType = "NiHeader"

	headerStringPrefix = "Gamebryo File Format, Version "
)

type (
	// Message is one error reported by an item of the document.
	Message struct {
		Path string
		Func string
		Text string
	}

	// Document is a record tree built from a Registry: a header followed by a flat table of
	// blocks. It resolves names for the conditions of its items and keeps the log of what
	// they report.
	Document struct {
		registry *nschema.Registry
		config   Config
		logger   logrus.FieldLogger

		root    *nitem.Item
		header  *nitem.Item
		version uint32

		messages []Message
		// number of lookups in flight per item whose expressions are being evaluated
		resolving map[*nitem.Item]int
	}
)

var headerField = nschema.MustField(nschema.FieldDef{
	Name:  HeaderType,
	Type:  HeaderType,
	Flags: nschema.FlagCompound | nschema.FlagConditionless,
})

func (r Message) String() string {
	if r.Func == "" {
		return fmt.Sprintf("%s: %s", r.Path, r.Text)
	}
	return fmt.Sprintf("%s: %s: %s", r.Path, r.Func, r.Text)
}

func New(registry *nschema.Registry, options ...Option) (*Document, error) {
	r := &Document{
		registry:  registry,
		config:    DefaultConfig(),
		logger:    logrus.StandardLogger(),
		resolving: map[*nitem.Item]int{},
	}
	for _, option := range options {
		option(r)
	}
	version := nexpr.VersionToNumber(r.config.Version)
	if r.config.Version != "" && version == 0 {
		return nil, errors.Wrapf(ErrInvalidVersion, "New got version %q", r.config.Version)
	}
	r.version = version

	r.root = nitem.NewRoot(r)
	r.header = r.root.InsertChild(headerField, nvalue.TypeNone, -1)
	if compound, ok := registry.Compound(HeaderType); ok {
		for _, f := range compound.Fields() {
			r.insertType(r.header, f, 0)
		}
	}
	r.syncHeader()
	return r, nil
}

func (r *Document) Registry() *nschema.Registry {
	return r.registry
}

func (r *Document) Config() Config {
	return r.config
}

func (r *Document) Root() *nitem.Item {
	return r.root
}

func (r *Document) Header() *nitem.Item {
	return r.header
}

func (r *Document) Version() uint32 {
	return r.version
}

// SetVersion switches the file version. Every cached condition is dropped since any of them
// may depend on it.
func (r *Document) SetVersion(version uint32) {
	r.version = version
	r.syncHeader()
	r.root.InvalidateVersionCondition()
	r.root.InvalidateCondition()
}

// syncHeader writes the version context into the header fields carrying it, if present.
// SetUserVersion changes the user version of the document and the header field carrying it.
func (r *Document) SetUserVersion(userVersion uint32) {
	r.config.UserVersion = userVersion
	r.syncHeader()
	r.root.InvalidateVersionCondition()
	r.root.InvalidateCondition()
}

// ValueChanged follows writes to the header: Version and User Version become the version
// context, and every version condition is dropped since any vercond may read the header.
func (r *Document) ValueChanged(item *nitem.Item) {
	if item.Parent() != r.header {
		return
	}
	switch v := item.Value(); {
	case item.Name() == "Version" && v.IsFileVersion():
		r.version = v.ToFileVersion()
	case item.Name() == "User Version" && v.IsCount():
		r.config.UserVersion = uint32(v.ToCount())
	}
	r.root.InvalidateVersionCondition()
	r.root.InvalidateCondition()
}

func (r *Document) syncHeader() {
	if item := r.header.ChildByName("Header String"); item != nil && item.Value().IsString() {
		nitem.Set(item, headerStringPrefix+nexpr.NumberToVersion(r.version))
	}
	if item := r.header.ChildByName("Version"); item != nil && item.Value().IsFileVersion() {
		nitem.Set(item, r.version)
	}
	if item := r.header.ChildByName("User Version"); item != nil && item.Value().IsCount() {
		nitem.Set(item, r.config.UserVersion)
	}
	if item := r.header.ChildByName("Num Blocks"); item != nil && item.Value().IsCount() {
		nitem.Set(item, uint32(r.BlockCount()))
	}
}

func (r *Document) BlockCount() int {
	return r.root.ChildCount() - 1
}

// Block returns the block at index, nil when out of range.
func (r *Document) Block(index int) *nitem.Item {
	if index < 0 {
		return nil
	}
	return r.root.Child(index + 1)
}

func (r *Document) Blocks() []*nitem.Item {
	return r.root.Children()[1:]
}

// BlockOf returns the top level record containing item: a block or the header.
func (r *Document) BlockOf(item *nitem.Item) *nitem.Item {
	for c := item; c != nil; c = c.Parent() {
		if c.Parent() == r.root {
			return c
		}
	}
	return nil
}

// BlockIndex is the index of the block containing item, -1 for the header and the root.
func (r *Document) BlockIndex(item *nitem.Item) int {
	block := r.BlockOf(item)
	if block == nil {
		return -1
	}
	return block.Row() - 1
}

func (r *Document) Messages() []Message {
	return lo.Map(r.messages, func(m Message, _ int) Message {
		return m
	})
}

func (r *Document) ClearMessages() {
	r.messages = nil
}

func (r *Document) ReportError(item *nitem.Item, msg string) {
	r.ReportFuncError(item, "", msg)
}

func (r *Document) ReportFuncError(item *nitem.Item, funcName string, msg string) {
	m := Message{
		Path: r.ItemRepr(item),
		Func: funcName,
		Text: msg,
	}
	r.messages = append(r.messages, m)
	r.logger.
		WithFields(logrus.Fields{
			"item": m.Path,
			"func": m.Func,
		}).
		Warn(m.Text)
}

// ItemRepr names an item by its block and index followed by its path inside the block:
// "NiNode [3]/Children/[1]".
func (r *Document) ItemRepr(item *nitem.Item) string {
	if item == nil {
		return "<nil>"
	}
	if item == r.root {
		return "<root>"
	}
	segments := make([]string, 0)
	for c := item; c != nil && c != r.root; c = c.Parent() {
		switch {
		case c.Parent() == r.root && c == r.header:
			segments = append(segments, c.Name())
		case c.Parent() == r.root:
			segments = append(segments, fmt.Sprintf("%s [%d]", c.Name(), c.Row()-1))
		case c.Parent().IsArray():
			segments = append(segments, fmt.Sprintf("[%d]", c.Row()))
		default:
			segments = append(segments, c.Name())
		}
	}
	return strings.Join(lo.Reverse(segments), "/")
}

func (r *Document) LinkTarget(link int32) *nitem.Item {
	return r.Block(int(link))
}
