package nbytes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftree/nif/nvalue"
)

func value[T nvalue.Scalar](t *testing.T, typ nvalue.Type, x T) nvalue.Value {
	t.Helper()
	v := nvalue.New(typ)
	require.NoError(t, nvalue.Set(&v, x))
	return v
}

func TestWriteValue_Layout(t *testing.T) {
	matrix := nvalue.NewByteMatrix(2, 1)
	matrix.Data = []byte{7, 8}

	expectedBytes := []struct {
		value    nvalue.Value
		expected []byte
	}{
		{value(t, nvalue.TypeBool, true), []byte{1}},
		{value(t, nvalue.TypeWord, uint16(0x1234)), []byte{0x34, 0x12}},
		{value(t, nvalue.TypeShort, int16(-2)), []byte{0xfe, 0xff}},
		{nvalue.New(nvalue.TypeLink), []byte{0xff, 0xff, 0xff, 0xff}},
		{value(t, nvalue.TypeFileVersion, uint32(0x14020007)), []byte{7, 0, 2, 0x14}},
		{value(t, nvalue.TypeShortString, "abc"), []byte{4, 'a', 'b', 'c', 0}},
		{value(t, nvalue.TypeSizedString, "ab"), []byte{2, 0, 0, 0, 'a', 'b'}},
		{value(t, nvalue.TypeLineString, "ab"), []byte{'a', 'b', '\n'}},
		{value(t, nvalue.TypeChar8String, "abc"), []byte{'a', 'b', 'c', 0, 0, 0, 0, 0}},
		{value(t, nvalue.TypeTriangle, nvalue.Triangle{1, 2, 3}), []byte{1, 0, 2, 0, 3, 0}},
		{nvalue.New(nvalue.TypeByteColor4), []byte{0xff, 0xff, 0xff, 0xff}},
		{value(t, nvalue.TypeHalfVector2, nvalue.Vector2{1, -2}), []byte{0x00, 0x3c, 0x00, 0xc0}},
		{value(t, nvalue.TypeByteMatrix, matrix), []byte{2, 0, 0, 0, 1, 0, 0, 0, 7, 8}},
		{value(t, nvalue.TypeBlob, []byte{9}), []byte{1, 0, 0, 0, 9}},
		{nvalue.None(), []byte{}},
	}
	for _, tc := range expectedBytes {
		w := NewWriter()
		require.NoError(t, WriteValue(w, tc.value))
		assert.Equal(t, tc.expected, append([]byte{}, w.Bytes()...), tc.value.Type().String())
	}
}

func TestWriteValue_LineWithNewline(t *testing.T) {
	w := NewWriter()
	assert.Error(t, WriteValue(w, value(t, nvalue.TypeHeaderString, "a\nb")))
}

func TestReadValue_RoundTrip(t *testing.T) {
	values := []nvalue.Value{
		value(t, nvalue.TypeBool, true),
		value(t, nvalue.TypeByte, uint8(200)),
		value(t, nvalue.TypeInt, int32(-7)),
		value(t, nvalue.TypeInt64, int64(-1)),
		value(t, nvalue.TypeUInt64, uint64(1)<<40),
		value(t, nvalue.TypeUpLink, int32(3)),
		value(t, nvalue.TypeFloat, float32(1.5)),
		value(t, nvalue.TypeHFloat, float32(0.5)),
		value(t, nvalue.TypeNormByte, float32(-1)),
		value(t, nvalue.TypeString, "Scene Root"),
		value(t, nvalue.TypeHeaderString, "Gamebryo File Format, Version 20.2.0.7"),
		value(t, nvalue.TypeChar8String, "12345678"),
		value(t, nvalue.TypeColor3, nvalue.Color3{R: 0.5, G: 0.25, B: 1}),
		value(t, nvalue.TypeByteColor4, nvalue.Color4{R: 1, G: 0, B: 1, A: 0}),
		value(t, nvalue.TypeVector3, nvalue.Vector3{1, 2, 3}),
		value(t, nvalue.TypeHalfVector3, nvalue.Vector3{1, -2, 0.25}),
		value(t, nvalue.TypeByteVector3, nvalue.Vector3{1, -1, 1}),
		value(t, nvalue.TypeVector4, nvalue.Vector4{1, 2, 3, 4}),
		value(t, nvalue.TypeQuat, nvalue.Quat{W: 0.5, X: 1, Y: 2, Z: 3}),
		value(t, nvalue.TypeQuatXYZW, nvalue.Quat{W: 0.5, X: 1, Y: 2, Z: 3}),
		value(t, nvalue.TypeMatrix, nvalue.Matrix{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}),
		nvalue.New(nvalue.TypeMatrix4),
		value(t, nvalue.TypeStringPalette, []byte("a\x00b\x00")),
		nvalue.New(nvalue.TypeByteArray),
		nvalue.None(),
	}

	w := NewWriter()
	for _, v := range values {
		require.NoError(t, WriteValue(w, v))
	}
	reader := NewReader(w.Bytes())
	for _, v := range values {
		read := nvalue.New(v.Type())
		require.NoError(t, ReadValue(reader, &read))
		assert.True(t, v.Equal(read), "%s: wrote %s, read %s", v.Type(), v, read)
	}
	assert.Zero(t, reader.Len())
}

func TestReadValue_ShortInput(t *testing.T) {
	v := value(t, nvalue.TypeVector3, nvalue.Vector3{1, 2, 3})
	err := ReadValue(NewReader([]byte{0, 0, 0x80, 0x3f}), &v)
	assert.Error(t, err)

	vec, err := nvalue.Get[nvalue.Vector3](v)
	require.NoError(t, err)
	assert.Equal(t, nvalue.Vector3{1, 2, 3}, vec)

	blob := nvalue.New(nvalue.TypeBlob)
	assert.Error(t, ReadValue(NewReader([]byte{0xff, 0, 0, 0, 1}), &blob))
	matrix := nvalue.New(nvalue.TypeByteMatrix)
	assert.Error(t, ReadValue(NewReader([]byte{9, 0, 0, 0, 9, 0, 0, 0}), &matrix))
}
