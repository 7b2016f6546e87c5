package nexpr

import (
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Value is an operand or a result of an expression. Bool, Int and UInt share bits, Int holding
// the two's complement pattern.
type Value struct {
	kind Kind
	bits uint64
	f    float64
	s    string
}

func Invalid() Value {
	return Value{}
}

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, bits: 1}
	}
	return Value{kind: KindBool}
}

func Int(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

func UInt(u uint64) Value {
	return Value{kind: KindUInt, bits: u}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

func (r Value) Kind() Kind {
	return r.kind
}

func (r Value) IsValid() bool {
	return r.kind != KindInvalid
}

// ToUInt coerces any value to an unsigned number. Strings that do not parse and invalid values
// give 0.
func (r Value) ToUInt() uint64 {
	switch r.kind {
	case KindBool, KindInt, KindUInt:
		return r.bits
	case KindFloat:
		return uint64(int64(r.f))
	case KindString:
		if converted, ok := r.convert(KindUInt); ok {
			return converted.bits
		}
	}
	return 0
}

func (r Value) ToInt() int64 {
	if r.kind == KindFloat {
		return int64(r.f)
	}
	return int64(r.ToUInt())
}

func (r Value) ToFloat() float64 {
	switch r.kind {
	case KindInt:
		return float64(int64(r.bits))
	case KindFloat:
		return r.f
	case KindString:
		if converted, ok := r.convert(KindFloat); ok {
			return converted.f
		}
		return 0
	}
	return float64(r.ToUInt())
}

// ToBool is the truthiness used by the logical operators. A string is false when it is empty,
// "0" or "false".
func (r Value) ToBool() bool {
	switch r.kind {
	case KindBool, KindInt, KindUInt:
		return r.bits != 0
	case KindFloat:
		return r.f != 0
	case KindString:
		return r.s != "" && r.s != "0" && !strings.EqualFold(r.s, "false")
	}
	return false
}

func (r Value) ToText() string {
	switch r.kind {
	case KindBool:
		return strconv.FormatBool(r.bits != 0)
	case KindInt:
		return strconv.FormatInt(int64(r.bits), 10)
	case KindUInt:
		return strconv.FormatUint(r.bits, 10)
	case KindFloat:
		return strconv.FormatFloat(r.f, 'g', -1, 64)
	case KindString:
		return r.s
	}
	return ""
}

func (r Value) String() string {
	if r.kind == KindString {
		return strconv.Quote(r.s)
	}
	if r.kind == KindInvalid {
		return "<invalid>"
	}
	return r.ToText()
}

// convert turns r into kind k. Numeric kinds always convert; strings only when they parse.
func (r Value) convert(k Kind) (Value, bool) {
	if r.kind == k {
		return r, true
	}
	if r.kind == KindInvalid || k == KindInvalid {
		return Invalid(), false
	}
	if r.kind == KindString {
		return parseAs(r.s, k)
	}
	switch k {
	case KindBool:
		return Bool(r.ToBool()), true
	case KindInt:
		return Int(r.ToInt()), true
	case KindUInt:
		return UInt(r.ToUInt()), true
	case KindFloat:
		return Float(r.ToFloat()), true
	case KindString:
		return String(r.ToText()), true
	}
	return Invalid(), false
}

func parseAs(s string, k Kind) (Value, bool) {
	s = strings.TrimSpace(s)
	switch k {
	case KindBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return Bool(b), true
		}
		if u, err := strconv.ParseUint(s, 0, 64); err == nil {
			return Bool(u != 0), true
		}
	case KindInt:
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return Int(i), true
		}
	case KindUInt:
		if u, err := strconv.ParseUint(s, 0, 64); err == nil {
			return UInt(u), true
		}
		if isVersion(s) {
			return UInt(uint64(VersionToNumber(s))), true
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f), true
		}
	}
	return Invalid(), false
}

var kindRanks = map[Kind]int{
	KindBool:  1,
	KindInt:   2,
	KindUInt:  3,
	KindFloat: 4,
}

// normalize brings both operands to one kind. Among numbers the lower ranked side is widened
// (bool < int < uint < float); a string converts to the kind of a non-string partner when it
// parses as one. ok is false when no common kind exists.
func normalize(l, r Value) (Value, Value, bool) {
	switch {
	case l.kind == r.kind:
		return l, r, l.kind != KindInvalid
	case l.kind == KindInvalid || r.kind == KindInvalid:
		return l, r, false
	case l.kind == KindString:
		converted, ok := l.convert(r.kind)
		return converted, r, ok
	case r.kind == KindString:
		converted, ok := r.convert(l.kind)
		return l, converted, ok
	case kindRanks[l.kind] < kindRanks[r.kind]:
		converted, ok := l.convert(r.kind)
		return converted, r, ok
	default:
		converted, ok := r.convert(l.kind)
		return l, converted, ok
	}
}

func equal(l, r Value) bool {
	l, r, ok := normalize(l, r)
	if !ok {
		return false
	}
	switch l.kind {
	case KindFloat:
		return l.f == r.f
	case KindString:
		return l.s == r.s
	}
	return l.bits == r.bits
}
