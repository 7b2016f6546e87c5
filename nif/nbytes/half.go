package nbytes

import (
	"math"
)

// HalfToFloat widens an IEEE 754 half precision number.
func HalfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exponent := uint32(h>>10) & 0x1f
	mantissa := uint32(h) & 0x3ff
	switch {
	case exponent == 0 && mantissa == 0:
		return math.Float32frombits(sign)
	case exponent == 0:
		// subnormal
		f := float32(mantissa) / (1 << 24)
		if sign != 0 {
			return -f
		}
		return f
	case exponent == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mantissa<<13)
	}
	return math.Float32frombits(sign | (exponent+112)<<23 | mantissa<<13)
}

// FloatToHalf narrows f to half precision, truncating the mantissa. Values too large become
// infinite and values too small become zero.
func FloatToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exponent := int32(bits>>23) & 0xff
	mantissa := bits & 0x7fffff
	switch {
	case exponent == 0xff:
		if mantissa != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exponent-112 >= 0x1f:
		return sign | 0x7c00
	case exponent-112 <= 0:
		if exponent < 103 {
			return sign
		}
		mantissa |= 0x800000
		return sign | uint16(mantissa>>uint32(126-exponent))
	}
	return sign | uint16(exponent-112)<<10 | uint16(mantissa>>13)
}
