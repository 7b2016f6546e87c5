package nexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	versionRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+){0,2}$`)
)

func isVersion(s string) bool {
	return versionRegex.MatchString(s)
}

func atoiOrZero(s string) uint32 {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return uint32(i)
}

// VersionToNumber packs a version string into 32 bits.
//
// A legacy two-part version "N.M" puts N in the top byte and then spreads M over the next
// bytes digit by digit, the last byte taking whatever digits remain: "3.03" is 0x03000300.
// Longer versions such as "20.2.0.7" put one dotted group per byte, most significant first.
// More than four groups is invalid and packs to 0. A string without dots is parsed as an unsigned
// integer (decimal, or hex with a 0x prefix), 0xffffffff and unparsable input both give 0.
func VersionToNumber(s string) uint32 {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		u, err := strconv.ParseUint(s, 0, 32)
		if err != nil || u == 0xffffffff {
			return 0
		}
		return uint32(u)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return 0
	}
	if len(parts) == 2 {
		major, minor := parts[0], parts[1]
		v := atoiOrZero(major) << 24
		if len(minor) >= 1 {
			v += atoiOrZero(minor[0:1]) << 16
		}
		if len(minor) >= 2 {
			v += atoiOrZero(minor[1:2]) << 8
		}
		if len(minor) >= 3 {
			v += atoiOrZero(minor[2:])
		}
		return v
	}

	v := uint32(0)
	for i, part := range parts {
		v += atoiOrZero(part) << ((3 - i) * 8)
	}
	return v
}

// NumberToVersion renders a packed version back to text. Versions below 3.3.0.13 use the
// legacy two-part form.
func NumberToVersion(v uint32) string {
	if v == 0 {
		return ""
	}
	b0, b1, b2, b3 := v>>24, (v>>16)&0xff, (v>>8)&0xff, v&0xff
	if v >= 0x0303000D {
		return fmt.Sprintf("%d.%d.%d.%d", b0, b1, b2, b3)
	}
	s := fmt.Sprintf("%d.%d", b0, b1)
	if b2 != 0 || b3 != 0 {
		s += strconv.Itoa(int(b2))
	}
	if b3 != 0 {
		s += strconv.Itoa(int(b3))
	}
	return s
}
