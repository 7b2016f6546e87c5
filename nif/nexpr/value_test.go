package nexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Promotion(t *testing.T) {
	type testCase struct {
		l, r     Value
		expected Kind
	}
	testCases := []testCase{
		{Bool(true), Int(1), KindInt},
		{Int(1), UInt(1), KindUInt},
		{UInt(3), Float(3), KindFloat},
		{Float(3), Bool(true), KindFloat},
		{String("12"), UInt(12), KindUInt},
		{Int(-4), String("-4"), KindInt},
	}
	for _, tc := range testCases {
		l, r, ok := normalize(tc.l, tc.r)
		assert.True(t, ok)
		assert.Equal(t, tc.expected, l.Kind())
		assert.Equal(t, tc.expected, r.Kind())
	}

	_, _, ok := normalize(String("abc"), Int(1))
	assert.False(t, ok)
	_, _, ok = normalize(Invalid(), Invalid())
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, equal(Bool(true), Int(1)))
	assert.True(t, equal(Float(2), UInt(2)))
	assert.True(t, equal(String("0x10"), UInt(16)))
	assert.True(t, equal(String("1.2.3.4"), UInt(0x01020304)))
	assert.False(t, equal(String("abc"), UInt(0)))
	assert.False(t, equal(Invalid(), Int(0)))
	assert.True(t, equal(String("a"), String("a")))
}

func TestValue_Conversions(t *testing.T) {
	assert.Equal(t, uint64(0xffffffffffffffff), Int(-1).ToUInt())
	assert.Equal(t, uint64(3), Float(3.9).ToUInt())
	assert.Equal(t, uint64(0), String("nope").ToUInt())
	assert.Equal(t, uint64(0), Invalid().ToUInt())

	truthiness := map[Value]bool{
		String(""):      false,
		String("0"):     false,
		String("False"): false,
		String("x"):     true,
		Float(0.5):      true,
		Int(0):          false,
		Invalid():       false,
	}
	for value, expected := range truthiness {
		assert.Equal(t, expected, value.ToBool(), value.String())
	}
}

func TestVersionToNumber(t *testing.T) {
	expectedValues := map[string]uint32{
		"4.0.0.2":     0x04000002,
		"20.2.0.7":    0x14020007,
		"10.0.1.0":    0x0A000100,
		"3.1":         0x03010000,
		"3.03":        0x03000300,
		"4.2":         0x04020000,
		"2.3.10":      0x02030A00,
		"1.2.3.4.5":   0,
		"335544325":   335544325,
		"0x14020007":  0x14020007,
		"4294967295":  0,
		"0xffffffff":  0,
		"not a value": 0,
		"":            0,
	}
	for input, expected := range expectedValues {
		assert.Equal(t, expected, VersionToNumber(input), input)
	}
}

func TestNumberToVersion(t *testing.T) {
	expectedValues := map[uint32]string{
		0x14020007: "20.2.0.7",
		0x04000002: "4.0.0.2",
		0x03010000: "3.1",
		0x03000300: "3.03",
		0:          "",
	}
	for input, expected := range expectedValues {
		assert.Equal(t, expected, NumberToVersion(input))
		if expected != "" {
			assert.Equal(t, input, VersionToNumber(expected))
		}
	}
}
