package nvalue

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Value holds the raw data of one typed field. The zero value has type TypeBool.
// Use New to get a properly defaulted value of a given type.
type Value struct {
	typ Type
	// counts are kept normalised to the declared width, signed ones sign-extended; links and
	// file versions are stored here as well
	num uint64
	f32 float32
	// strings, aggregates, byte arrays
	data any
}

func New(t Type) Value {
	v := Value{typ: t}
	switch {
	case t.IsLink():
		v.num = linkBits(-1)
	case t == TypeStringOffset || t == TypeStringIndex:
		v.num = 0xffffffff
	case t.IsString():
		v.data = ""
	case t.IsByteArray():
		v.data = []byte{}
	}
	switch t {
	case TypeColor3:
		v.data = Color3{1, 1, 1}
	case TypeColor4, TypeByteColor4:
		v.data = Color4{1, 1, 1, 1}
	case TypeVector2, TypeHalfVector2:
		v.data = Vector2{}
	case TypeVector3, TypeHalfVector3, TypeByteVector3:
		v.data = Vector3{}
	case TypeVector4:
		v.data = Vector4{}
	case TypeQuat, TypeQuatXYZW:
		v.data = Quat{W: 1}
	case TypeMatrix:
		v.data = IdentityMatrix()
	case TypeMatrix4:
		v.data = IdentityMatrix4()
	case TypeTriangle:
		v.data = Triangle{}
	case TypeByteMatrix:
		v.data = ByteMatrix{}
	}
	return v
}

func None() Value {
	return New(TypeNone)
}

func linkBits(link int32) uint64 {
	return uint64(int64(link))
}

// normalize casts bits to the width of the count type t like a C integer cast would.
func normalize(t Type, bits uint64) uint64 {
	info := countInfos[t]
	switch {
	case t == TypeBool:
		if bits != 0 {
			return 1
		}
		return 0
	case info.bits >= 64:
		return bits
	case info.signed:
		shift := 64 - info.bits
		return uint64(int64(bits<<shift) >> shift)
	default:
		return bits & (1<<info.bits - 1)
	}
}

func (r Value) Type() Type {
	return r.typ
}

func (r Value) IsValid() bool {
	return r.typ.IsValid()
}

func (r Value) IsCount() bool {
	return r.typ.IsCount()
}

func (r Value) IsLink() bool {
	return r.typ.IsLink()
}

func (r Value) IsFloat() bool {
	return r.typ.IsFloat()
}

func (r Value) IsString() bool {
	return r.typ.IsString()
}

func (r Value) IsFileVersion() bool {
	return r.typ == TypeFileVersion
}

func (r Value) IsByteArray() bool {
	return r.typ.IsByteArray()
}

// ChangeType forces the declared type. The value is reset to the default of t unless the type
// is unchanged, in which case nothing happens.
func (r *Value) ChangeType(t Type) {
	if r.typ == t {
		return
	}
	*r = New(t)
}

// Clone returns a deep copy, byte slices included.
func (r Value) Clone() Value {
	switch data := r.data.(type) {
	case []byte:
		r.data = bytes.Clone(data)
	case ByteMatrix:
		r.data = data.clone()
	}
	return r
}

func (r Value) Equal(other Value) bool {
	if r.typ != other.typ || r.num != other.num || r.f32 != other.f32 {
		return false
	}
	switch data := r.data.(type) {
	case []byte:
		otherData, ok := other.data.([]byte)
		return ok && bytes.Equal(data, otherData)
	case ByteMatrix:
		otherData, ok := other.data.(ByteMatrix)
		return ok && data.Cols == otherData.Cols && data.Rows == otherData.Rows &&
			bytes.Equal(data.Data, otherData.Data)
	default:
		return r.data == other.data
	}
}

// ToCount returns the value of a count as an unsigned number, 0 for anything else.
func (r Value) ToCount() uint64 {
	if !r.IsCount() {
		return 0
	}
	return r.num
}

func (r Value) ToLink() int32 {
	if !r.IsLink() {
		return -1
	}
	return int32(r.num)
}

func (r Value) ToFileVersion() uint32 {
	if !r.IsFileVersion() {
		return 0
	}
	return uint32(r.num)
}

func (r Value) ToFloat() float32 {
	if !r.IsFloat() {
		return 0
	}
	return r.f32
}

func (r Value) ToText() string {
	s, _ := r.data.(string)
	return s
}

// IsSigned reports a signed count type.
func (r Value) IsSigned() bool {
	return countInfos[r.typ].signed
}

// ToInt returns a count as a signed number, sign-extending the signed types.
func (r Value) ToInt() int64 {
	if !r.IsCount() {
		return 0
	}
	return int64(r.num)
}

func (r Value) String() string {
	switch {
	case r.typ == TypeBool:
		return strconv.FormatBool(r.num != 0)
	case r.IsCount() && r.IsSigned():
		return strconv.FormatInt(int64(r.num), 10)
	case r.IsCount():
		return strconv.FormatUint(r.num, 10)
	case r.IsLink():
		return strconv.FormatInt(int64(r.ToLink()), 10)
	case r.IsFloat():
		return strconv.FormatFloat(float64(r.f32), 'g', -1, 32)
	case r.IsString():
		return r.ToText()
	case r.IsFileVersion():
		return fmt.Sprintf("0x%08X", uint32(r.num))
	case r.IsByteArray():
		data, _ := r.data.([]byte)
		return hex.EncodeToString(data)
	case r.typ == TypeNone:
		return ""
	}
	switch data := r.data.(type) {
	case Vector2:
		return formatFloats(data[:]...)
	case Vector3:
		return formatFloats(data[:]...)
	case Vector4:
		return formatFloats(data[:]...)
	case Quat:
		if r.typ == TypeQuatXYZW {
			return formatFloats(data.X, data.Y, data.Z, data.W)
		}
		return formatFloats(data.W, data.X, data.Y, data.Z)
	case Color3:
		return formatFloats(data.R, data.G, data.B)
	case Color4:
		return formatFloats(data.R, data.G, data.B, data.A)
	case Triangle:
		return fmt.Sprintf("%d %d %d", data[0], data[1], data[2])
	case ByteMatrix:
		return fmt.Sprintf("%dx%d", data.Cols, data.Rows)
	case fmt.Stringer:
		return data.String()
	}
	return fmt.Sprintf("%v", r.data)
}
