package nvalue

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, int32(-1), New(TypeLink).ToLink())
	assert.Equal(t, int32(-1), New(TypeUpLink).ToLink())
	assert.Equal(t, uint64(0xffffffff), New(TypeStringIndex).ToCount())
	assert.Equal(t, uint64(0), New(TypeUInt).ToCount())
	assert.Equal(t, "", New(TypeSizedString).ToText())

	quat, err := Get[Quat](New(TypeQuat))
	require.NoError(t, err)
	assert.Equal(t, Quat{W: 1}, quat)

	matrix, err := Get[Matrix](New(TypeMatrix))
	require.NoError(t, err)
	assert.Equal(t, IdentityMatrix(), matrix)

	color, err := Get[Color4](New(TypeByteColor4))
	require.NoError(t, err)
	assert.Equal(t, Color4{1, 1, 1, 1}, color)
}

func TestTypeByName(t *testing.T) {
	expectedValues := map[string]Type{
		"uint":           TypeUInt,
		"Ref":            TypeLink,
		"Ptr":            TypeUpLink,
		"Matrix33":       TypeMatrix,
		"TexCoord":       TypeVector2,
		"QuaternionWXYZ": TypeQuat,
		"FileVersion":    TypeFileVersion,
		"char":           TypeByte,
	}
	for name, expected := range expectedValues {
		actual, ok := TypeByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, actual, name)
	}

	_, ok := TypeByName("NiNode")
	assert.False(t, ok)
	assert.Equal(t, "Ref", TypeLink.String())
}

func TestSet_IntegerCastSemantics(t *testing.T) {
	type testCase struct {
		typ      Type
		input    int64
		expected int64
	}
	testCases := []testCase{
		{TypeByte, 257, 1},
		{TypeByte, -1, 255},
		{TypeShort, 0x18000, -0x8000},
		{TypeWord, -1, 0xffff},
		{TypeInt, 0x1_0000_0005, 5},
		{TypeInt, -7, -7},
		{TypeBool, 42, 1},
		{TypeInt64, -3, -3},
	}
	for _, tc := range testCases {
		v := New(tc.typ)
		require.NoError(t, Set(&v, tc.input), tc.typ.String())

		actual, err := Get[int64](v)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual, tc.typ.String())
	}
}

func TestGet_IntegerWidening(t *testing.T) {
	v := New(TypeShort)
	require.NoError(t, Set(&v, int16(-2)))

	asUint32, err := Get[uint32](v)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xfffffffe), asUint32)

	asInt8, err := Get[int8](v)
	require.NoError(t, err)
	assert.Equal(t, int8(-2), asInt8)

	asBool, err := Get[bool](v)
	require.NoError(t, err)
	assert.True(t, asBool)
}

func TestGetSet_Links(t *testing.T) {
	v := New(TypeLink)
	require.NoError(t, Set(&v, 12))
	assert.Equal(t, int32(12), v.ToLink())

	asInt, err := Get[int](v)
	require.NoError(t, err)
	assert.Equal(t, 12, asInt)

	require.NoError(t, Set(&v, int32(-1)))
	assert.Equal(t, int32(-1), v.ToLink())
	assert.Equal(t, "-1", v.String())
}

func TestGetSet_Mismatch(t *testing.T) {
	f := New(TypeFloat)
	require.NoError(t, Set(&f, float32(1.5)))

	_, err := Get[int](f)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	err = Set(&f, "text")
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Equal(t, float32(1.5), f.ToFloat())

	s := New(TypeString)
	err = Set(&s, Vector3{1, 2, 3})
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	vec := New(TypeVector3)
	_, err = Get[Vector2](vec)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	require.NoError(t, Set(&vec, Vector3{1, 2, 3}))
	assert.Equal(t, "1 2 3", vec.String())
}

func TestSet_ByteArrayIsCopied(t *testing.T) {
	v := New(TypeByteArray)
	input := []byte{1, 2, 3}
	require.NoError(t, Set(&v, input))
	input[0] = 9

	output, err := Get[[]byte](v)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, output)

	output[1] = 9
	again, _ := Get[[]byte](v)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestChangeType(t *testing.T) {
	v := New(TypeUInt)
	require.NoError(t, Set(&v, 5))

	v.ChangeType(TypeUInt)
	assert.Equal(t, uint64(5), v.ToCount())

	v.ChangeType(TypeLink)
	assert.Equal(t, TypeLink, v.Type())
	assert.Equal(t, int32(-1), v.ToLink())
}

func TestValue_CloneAndEqual(t *testing.T) {
	v := New(TypeByteMatrix)
	m := NewByteMatrix(2, 2)
	m.Data[3] = 7
	require.NoError(t, Set(&v, m))

	clone := v.Clone()
	assert.True(t, v.Equal(clone))

	m.Data[0] = 1
	assert.True(t, v.Equal(clone))

	stored, err := Get[ByteMatrix](v)
	require.NoError(t, err)
	assert.Equal(t, byte(7), stored.At(1, 1))
	assert.Equal(t, [][]byte{{0, 0}, {0, 7}}, stored.RowSlices())

	assert.False(t, New(TypeInt).Equal(New(TypeUInt)))
}

func TestValue_String(t *testing.T) {
	fv := New(TypeFileVersion)
	require.NoError(t, Set(&fv, uint32(0x14020007)))
	assert.Equal(t, "0x14020007", fv.String())

	b := New(TypeBool)
	require.NoError(t, Set(&b, true))
	assert.Equal(t, "true", b.String())

	assert.Equal(t, "[1 0 0; 0 1 0; 0 0 1]", New(TypeMatrix).String())
	assert.Equal(t, "", None().String())
}
