package nvalue

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"niftree/ds"
)

var ErrTypeMismatch = errors.New("type mismatch")

// Scalar lists the Go types a Value can be read as or written from.
type Scalar interface {
	bool |
		int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | int | uint |
		float32 | float64 |
		string | []byte |
		Vector2 | Vector3 | Vector4 | Quat | Color3 | Color4 | Matrix | Matrix4 | Triangle | ByteMatrix
}

func mismatch[T any](action string, t Type) error {
	var zero T
	return errors.Wrapf(ErrTypeMismatch, "cannot %s %T on a %s value", action, zero, t)
}

// Get reads the value as T. Integer types convert freely between each other and from counts,
// links and file versions, truncating like a C cast. Everything else must match the declared
// type family.
func Get[T Scalar](v Value) (T, error) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *bool:
		var n uint64
		n, err = integer[uint64](v)
		*p = n != 0
	case *int8:
		*p, err = integer[int8](v)
	case *uint8:
		*p, err = integer[uint8](v)
	case *int16:
		*p, err = integer[int16](v)
	case *uint16:
		*p, err = integer[uint16](v)
	case *int32:
		*p, err = integer[int32](v)
	case *uint32:
		*p, err = integer[uint32](v)
	case *int64:
		*p, err = integer[int64](v)
	case *uint64:
		*p, err = integer[uint64](v)
	case *int:
		*p, err = integer[int](v)
	case *uint:
		*p, err = integer[uint](v)
	case *float32:
		if !v.IsFloat() {
			return out, mismatch[T]("get", v.typ)
		}
		*p = v.f32
	case *float64:
		if !v.IsFloat() {
			return out, mismatch[T]("get", v.typ)
		}
		*p = float64(v.f32)
	case *string:
		if !v.IsString() {
			return out, mismatch[T]("get", v.typ)
		}
		*p = v.ToText()
	case *[]byte:
		data, ok := v.data.([]byte)
		if !ok || !v.IsByteArray() {
			return out, mismatch[T]("get", v.typ)
		}
		*p = bytes.Clone(data)
	case *ByteMatrix:
		data, ok := v.data.(ByteMatrix)
		if !ok {
			return out, mismatch[T]("get", v.typ)
		}
		*p = data.clone()
	default:
		data, ok := v.data.(T)
		if !ok {
			return out, mismatch[T]("get", v.typ)
		}
		out = data
	}
	if err != nil {
		return out, mismatch[T]("get", v.typ)
	}
	return out, nil
}

func integer[T constraints.Integer](v Value) (T, error) {
	switch {
	case v.IsCount(), v.IsFileVersion():
		return T(v.num), nil
	case v.IsLink():
		return T(int32(v.num)), nil
	}
	return 0, ErrTypeMismatch
}

// Set writes t into the value, following the same compatibility rules as Get. On failure the
// value is left untouched.
func Set[T Scalar](v *Value, t T) error {
	switch x := any(t).(type) {
	case bool:
		if x {
			return v.setInteger(1)
		}
		return v.setInteger(0)
	case int8:
		return v.setInteger(uint64(x))
	case uint8:
		return v.setInteger(uint64(x))
	case int16:
		return v.setInteger(uint64(x))
	case uint16:
		return v.setInteger(uint64(x))
	case int32:
		return v.setInteger(uint64(x))
	case uint32:
		return v.setInteger(uint64(x))
	case int64:
		return v.setInteger(uint64(x))
	case uint64:
		return v.setInteger(x)
	case int:
		return v.setInteger(uint64(x))
	case uint:
		return v.setInteger(uint64(x))
	case float32:
		return v.setFloat(x)
	case float64:
		return v.setFloat(float32(x))
	case string:
		if !v.IsString() {
			return mismatch[T]("set", v.typ)
		}
		v.data = x
	case []byte:
		if !v.IsByteArray() {
			return mismatch[T]("set", v.typ)
		}
		v.data = bytes.Clone(x)
	case ByteMatrix:
		if v.typ != TypeByteMatrix {
			return mismatch[T]("set", v.typ)
		}
		v.data = x.clone()
	default:
		if !acceptsAggregate[T](v.typ) {
			return mismatch[T]("set", v.typ)
		}
		v.data = t
	}
	return nil
}

// setInteger takes the two's complement bit pattern of a Go integer.
func (r *Value) setInteger(bits uint64) error {
	switch {
	case r.IsCount():
		r.num = normalize(r.typ, bits)
	case r.IsLink():
		r.num = linkBits(int32(bits))
	case r.IsFileVersion():
		r.num = uint64(uint32(bits))
	default:
		return errors.Wrapf(ErrTypeMismatch, "cannot set an integer on a %s value", r.typ)
	}
	return nil
}

func (r *Value) setFloat(f float32) error {
	if !r.IsFloat() {
		return errors.Wrapf(ErrTypeMismatch, "cannot set a float on a %s value", r.typ)
	}
	if r.typ == TypeNormByte {
		switch {
		case f > 1:
			f = 1
		case f < -1:
			f = -1
		}
	}
	r.f32 = f
	return nil
}

func acceptsAggregate[T any](t Type) bool {
	var zero T
	switch any(zero).(type) {
	case Vector2:
		return t == TypeVector2 || t == TypeHalfVector2
	case Vector3:
		return t == TypeVector3 || t == TypeHalfVector3 || t == TypeByteVector3
	case Vector4:
		return t == TypeVector4
	case Quat:
		return t.IsQuat()
	case Color3:
		return t == TypeColor3
	case Color4:
		return t == TypeColor4 || t == TypeByteColor4
	case Matrix:
		return t == TypeMatrix
	case Matrix4:
		return t == TypeMatrix4
	case Triangle:
		return t == TypeTriangle
	}
	panic(ds.ErrUnreachableCode{Caller: "acceptsAggregate", Detail: t})
}
