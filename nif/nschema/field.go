package nschema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"niftree/nif/nexpr"
)

type Flags uint16

const (
	FlagAbstract Flags = 1 << iota
	FlagBinary
	FlagTemplated
	FlagCompound
	FlagArray
	FlagMultiArray
	FlagConditionless
	FlagMixin
	FlagTypeCondition
)

type (
	// FieldDef is the plain description a Field is built from. Versions are version strings
	// ("20.2.0.7"), empty meaning unbounded.
	FieldDef struct {
		Name    string
		Type    string
		Templ   string
		Arg     string
		Arr1    string
		Arr2    string
		Cond    string
		Ver1    string
		Ver2    string
		VerCond string
		Text    string
		Flags   Flags
	}

	fieldData struct {
		name  string
		typ   string
		templ string
		text  string

		arg     *nexpr.Expr
		arr1    *nexpr.Expr
		arr2    *nexpr.Expr
		cond    *nexpr.Expr
		vercond *nexpr.Expr

		ver1  uint32
		ver2  uint32
		flags Flags
	}

	// Field describes one field of a record type. Copies of a Field share their backing data;
	// every setter gives the receiving handle its own modified copy and never touches the data
	// other handles see.
	Field struct {
		d *fieldData
	}
)

var emptyFieldData = fieldData{
	arg:     nexpr.MustParse(""),
	arr1:    nexpr.MustParse(""),
	arr2:    nexpr.MustParse(""),
	cond:    nexpr.MustParse(""),
	vercond: nexpr.MustParse(""),
}

func NewField(def FieldDef) (Field, error) {
	d := fieldData{
		name:  def.Name,
		typ:   def.Type,
		templ: def.Templ,
		text:  def.Text,
		ver1:  nexpr.VersionToNumber(def.Ver1),
		ver2:  nexpr.VersionToNumber(def.Ver2),
		flags: def.Flags &^ (FlagArray | FlagMultiArray),
	}
	exprs := []struct {
		target **nexpr.Expr
		text   string
	}{
		{&d.arg, def.Arg},
		{&d.arr1, def.Arr1},
		{&d.arr2, def.Arr2},
		{&d.cond, def.Cond},
		{&d.vercond, def.VerCond},
	}
	for _, e := range exprs {
		parsed, err := nexpr.Parse(e.text)
		if err != nil {
			return Field{}, errors.Wrapf(err, "NewField got invalid expression for field %q", def.Name)
		}
		*e.target = parsed
	}
	if err := d.syncArrayFlags(); err != nil {
		return Field{}, errors.Wrapf(err, "NewField got invalid field %q", def.Name)
	}
	return Field{d: &d}, nil
}

// MustField is NewField for static schema tables.
func MustField(def FieldDef) Field {
	f, err := NewField(def)
	if err != nil {
		panic(err)
	}
	return f
}

func (r *fieldData) syncArrayFlags() error {
	if r.arr1.IsEmpty() && !r.arr2.IsEmpty() {
		return errors.Wrapf(ErrRectangularNonArray, "arr2 is %q", r.arr2.Text())
	}
	r.flags &^= FlagArray | FlagMultiArray
	if !r.arr1.IsEmpty() {
		r.flags |= FlagArray
	}
	if !r.arr2.IsEmpty() {
		r.flags |= FlagMultiArray
	}
	return nil
}

func (r Field) data() *fieldData {
	if r.d == nil {
		return &emptyFieldData
	}
	return r.d
}

// mutate applies fn on a private copy and only keeps it when fn succeeds.
func (r *Field) mutate(fn func(d *fieldData) error) error {
	d := *r.data()
	if err := fn(&d); err != nil {
		return err
	}
	r.d = &d
	return nil
}

// Shares reports whether both handles still point at the same backing data.
func (r Field) Shares(other Field) bool {
	return r.d != nil && r.d == other.d
}

func (r Field) IsZero() bool {
	return r.d == nil
}

func (r Field) Name() string { return r.data().name }
func (r Field) Type() string { return r.data().typ }
func (r Field) Templ() string { return r.data().templ }
func (r Field) Text() string { return r.data().text }
func (r Field) Arg() string { return r.data().arg.Text() }
func (r Field) Arr1() string { return r.data().arr1.Text() }
func (r Field) Arr2() string { return r.data().arr2.Text() }
func (r Field) Cond() string { return r.data().cond.Text() }
func (r Field) VerCond() string { return r.data().vercond.Text() }
func (r Field) ArgExpr() *nexpr.Expr { return r.data().arg }
func (r Field) Arr1Expr() *nexpr.Expr { return r.data().arr1 }
func (r Field) Arr2Expr() *nexpr.Expr { return r.data().arr2 }
func (r Field) CondExpr() *nexpr.Expr { return r.data().cond }
func (r Field) VerCondExpr() *nexpr.Expr { return r.data().vercond }
func (r Field) Ver1() uint32 { return r.data().ver1 }
func (r Field) Ver2() uint32 { return r.data().ver2 }
func (r Field) Flags() Flags { return r.data().flags }

func (r Field) Has(flag Flags) bool {
	return r.data().flags&flag != 0
}

func (r Field) IsAbstract() bool { return r.Has(FlagAbstract) }
func (r Field) IsBinary() bool { return r.Has(FlagBinary) }
func (r Field) IsTemplated() bool { return r.Has(FlagTemplated) }
func (r Field) IsCompound() bool { return r.Has(FlagCompound) }
func (r Field) IsArray() bool { return r.Has(FlagArray) }
func (r Field) IsMultiArray() bool { return r.Has(FlagMultiArray) }
func (r Field) IsConditionless() bool { return r.Has(FlagConditionless) }
func (r Field) IsMixin() bool { return r.Has(FlagMixin) }
func (r Field) HasTypeCondition() bool { return r.Has(FlagTypeCondition) }

// EvalVersion checks the inclusive [ver1, ver2] range, 0 leaving a side open.
func (r Field) EvalVersion(v uint32) bool {
	d := r.data()
	return (d.ver1 == 0 || d.ver1 <= v) && (d.ver2 == 0 || v <= d.ver2)
}

func (r *Field) SetName(name string) {
	_ = r.mutate(func(d *fieldData) error {
		d.name = name
		return nil
	})
}

func (r *Field) SetType(typ string) {
	_ = r.mutate(func(d *fieldData) error {
		d.typ = typ
		return nil
	})
}

func (r *Field) SetTempl(templ string) {
	_ = r.mutate(func(d *fieldData) error {
		d.templ = templ
		return nil
	})
}

func (r *Field) SetText(text string) {
	_ = r.mutate(func(d *fieldData) error {
		d.text = text
		return nil
	})
}

func (r *Field) SetVer1(v uint32) {
	_ = r.mutate(func(d *fieldData) error {
		d.ver1 = v
		return nil
	})
}

func (r *Field) SetVer2(v uint32) {
	_ = r.mutate(func(d *fieldData) error {
		d.ver2 = v
		return nil
	})
}

// SetFlag toggles a flag. The array flags follow arr1 and arr2 and cannot be set directly.
func (r *Field) SetFlag(flag Flags, on bool) {
	flag &^= FlagArray | FlagMultiArray
	_ = r.mutate(func(d *fieldData) error {
		if on {
			d.flags |= flag
		} else {
			d.flags &^= flag
		}
		return nil
	})
}

func (r *Field) setExpr(caller string, text string, pick func(d *fieldData) **nexpr.Expr) error {
	parsed, err := nexpr.Parse(text)
	if err != nil {
		return errors.Wrapf(err, "%s got invalid expression for field %q", caller, r.Name())
	}
	return r.mutate(func(d *fieldData) error {
		*pick(d) = parsed
		if err := d.syncArrayFlags(); err != nil {
			return errors.Wrapf(err, "%s got invalid field %q", caller, d.name)
		}
		return nil
	})
}

func (r *Field) SetArg(text string) error {
	return r.setExpr("SetArg", text, func(d *fieldData) **nexpr.Expr { return &d.arg })
}

// SetArr1 sets the first array dimension. Clearing it while arr2 is set fails.
func (r *Field) SetArr1(text string) error {
	return r.setExpr("SetArr1", text, func(d *fieldData) **nexpr.Expr { return &d.arr1 })
}

func (r *Field) SetArr2(text string) error {
	return r.setExpr("SetArr2", text, func(d *fieldData) **nexpr.Expr { return &d.arr2 })
}

func (r *Field) SetCond(text string) error {
	return r.setExpr("SetCond", text, func(d *fieldData) **nexpr.Expr { return &d.cond })
}

func (r *Field) SetVerCond(text string) error {
	return r.setExpr("SetVerCond", text, func(d *fieldData) **nexpr.Expr { return &d.vercond })
}

// WithoutArray returns the schema of one element of an array field: the same field with the
// first dimension dropped, so a multi-array element becomes an array over arr2.
func (r Field) WithoutArray() Field {
	element := r
	_ = element.mutate(func(d *fieldData) error {
		d.arr1, d.arr2 = d.arr2, emptyFieldData.arr2
		return d.syncArrayFlags()
	})
	return element
}

func (r Field) key() string {
	d := r.data()
	return strings.Join(
		[]string{
			d.name, d.typ, d.templ, d.text,
			d.arg.Text(), d.arr1.Text(), d.arr2.Text(), d.cond.Text(), d.vercond.Text(),
			fmt.Sprintf("%d|%d|%d", d.ver1, d.ver2, d.flags),
		},
		"\x00",
	)
}

// Equal compares the content of two fields, whether or not they share data.
func (r Field) Equal(other Field) bool {
	return r.Shares(other) || r.key() == other.key()
}

func (r Field) String() string {
	s := r.Name() + ": " + r.Type()
	if r.Templ() != "" {
		s += "<" + r.Templ() + ">"
	}
	if r.IsArray() {
		s += "[" + r.Arr1() + "]"
	}
	if r.IsMultiArray() {
		s += "[" + r.Arr2() + "]"
	}
	return s
}
