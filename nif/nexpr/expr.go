package nexpr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Op uint8

const (
	OpNop Op = iota
	OpNot
	OpEq
	OpNe
	OpGe
	OpLe
	OpGt
	OpLt
	OpBitAnd
	OpBitOr
	OpAdd
	OpSub
	OpDiv
	OpMul
	OpAnd
	OpOr
)

var (
	opByText = map[string]Op{
		"!=": OpNe,
		"==": OpEq,
		">=": OpGe,
		"<=": OpLe,
		">":  OpGt,
		"<":  OpLt,
		"&":  OpBitAnd,
		"|":  OpBitOr,
		"+":  OpAdd,
		"-":  OpSub,
		"/":  OpDiv,
		"*":  OpMul,
		"&&": OpAnd,
		"||": OpOr,
	}
	textByOp = lo.Invert(opByText)

	intRegex   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	hexRegex   = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	floatRegex = regexp.MustCompile(`^[-+]?([0-9]+\.[0-9]*|\.[0-9]+)([eE][0-9]+)?$`)
)

func (o Op) String() string {
	if o == OpNot {
		return "!"
	}
	return textByOp[o]
}

type (
	// Resolver turns an identifier into a value. Unknown names should give Invalid().
	Resolver func(name string) Value

	// Expr is a parsed condition. Binary expressions split at the first operator outside of
	// parentheses, so "a && b || c" groups as "a && (b || c)" and a leading "!" negates
	// everything after it.
	Expr struct {
		op       Op
		lhs, rhs *Expr
		// set on leaves; ident is empty for literals
		ident   string
		literal Value
		text    string
		// the full text the root was parsed from
		source string
	}
)

// Parse builds an expression tree. The empty string gives an empty expression that evaluates
// to an invalid value.
func Parse(s string) (*Expr, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, errors.Wrapf(err, "Parse got invalid expression %q", s)
	}
	if len(tokens) == 0 {
		return &Expr{source: s}, nil
	}
	parens, err := matchParentheses(tokens)
	if err != nil {
		return nil, errors.Wrapf(err, "Parse got invalid expression %q", s)
	}
	p := parser{source: s, tokens: tokens, parens: parens}
	e, err := p.partition(0, len(tokens))
	if err != nil {
		return nil, errors.Wrapf(err, "Parse got invalid expression %q", s)
	}
	e.source = s
	return e, nil
}

func MustParse(s string) *Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	source string
	tokens []lexer.Token
	parens map[int]int
}

func (r *parser) partition(start, end int) (*Expr, error) {
	if start >= end {
		return nil, errors.Wrapf(ErrMissingOperand, "at offset %d", r.offsetOf(start))
	}

	first := r.tokens[start]
	if first.Type == tokenNot {
		operand, err := r.partition(start+1, end)
		if err != nil {
			return nil, err
		}
		return &Expr{op: OpNot, lhs: operand}, nil
	}

	var lhs *Expr
	pos := start
	switch {
	case first.Type == tokenLParen:
		closing := r.parens[start]
		if closing >= end {
			return nil, errors.Wrapf(ErrUnbalancedParentheses, "at offset %d", first.Pos.Offset)
		}
		inner, err := r.partition(start+1, closing)
		if err != nil {
			return nil, err
		}
		lhs = inner
		pos = closing + 1
	default:
		leaf, next, err := r.leaf(start, end)
		if err != nil {
			return nil, err
		}
		lhs = leaf
		pos = next
	}

	if pos == end {
		return lhs, nil
	}
	token := r.tokens[pos]
	if token.Type != tokenOp {
		return nil, errors.Wrapf(ErrUnexpectedToken, "%q at offset %d", token.Value, token.Pos.Offset)
	}
	rhs, err := r.partition(pos+1, end)
	if err != nil {
		return nil, err
	}
	return &Expr{op: opByText[token.Value], lhs: lhs, rhs: rhs}, nil
}

// leaf reads one operand: an optional sign followed by a run of words. Words separated by
// whitespace form a single identifier, as in "User Version 2".
func (r *parser) leaf(start, end int) (*Expr, int, error) {
	pos := start
	sign := ""
	if token := r.tokens[pos]; token.Type == tokenOp && (token.Value == "-" || token.Value == "+") {
		if pos+1 >= end || r.tokens[pos+1].Type != tokenWord || !startsNumeric(r.tokens[pos+1].Value) {
			return nil, 0, errors.Wrapf(ErrMissingOperand, "at offset %d", token.Pos.Offset)
		}
		sign = token.Value
		pos++
	}
	if r.tokens[pos].Type != tokenWord {
		token := r.tokens[pos]
		return nil, 0, errors.Wrapf(ErrMissingOperand, "found %q at offset %d", token.Value, token.Pos.Offset)
	}
	from := r.tokens[pos].Pos.Offset
	to := from
	for ; pos < end && r.tokens[pos].Type == tokenWord; pos++ {
		to = r.tokens[pos].Pos.Offset + len(r.tokens[pos].Value)
	}
	text := sign + r.source[from:to]
	return newLeaf(text), pos, nil
}

func (r *parser) offsetOf(i int) int {
	if i < len(r.tokens) {
		return r.tokens[i].Pos.Offset
	}
	return len(r.source)
}

func startsNumeric(s string) bool {
	return s != "" && (s[0] == '.' || (s[0] >= '0' && s[0] <= '9'))
}

func newLeaf(text string) *Expr {
	if literal, ok := parseLiteral(text); ok {
		return &Expr{literal: literal, text: text}
	}
	return &Expr{ident: text, text: text}
}

func parseLiteral(text string) (Value, bool) {
	switch {
	case hexRegex.MatchString(text):
		u, err := strconv.ParseUint(text[2:], 16, 64)
		return UInt(u), err == nil
	case intRegex.MatchString(text):
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), true
		}
		u, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64)
		return UInt(u), err == nil
	case isVersion(text):
		return UInt(uint64(VersionToNumber(text))), true
	case floatRegex.MatchString(text):
		f, err := strconv.ParseFloat(text, 64)
		return Float(f), err == nil
	}
	return Invalid(), false
}

// ParseValue reads text the way a literal operand is read, falling back to a string.
func ParseValue(text string) Value {
	text = strings.TrimSpace(text)
	if literal, ok := parseLiteral(text); ok {
		return literal
	}
	return String(text)
}

func (r *Expr) Op() Op {
	return r.op
}

// IsEmpty reports whether the expression was parsed from blank text.
func (r *Expr) IsEmpty() bool {
	return r == nil || (r.op == OpNop && r.ident == "" && !r.literal.IsValid())
}

func (r *Expr) IsNoop() bool {
	return r.op == OpNop
}

func (r *Expr) Text() string {
	if r == nil {
		return ""
	}
	return r.source
}

// Names lists every identifier the expression refers to, in order of first appearance.
func (r *Expr) Names() []string {
	names := make([]string, 0)
	var walk func(e *Expr)
	walk = func(e *Expr) {
		if e == nil {
			return
		}
		if e.op == OpNop {
			if e.ident != "" {
				names = append(names, e.ident)
			}
			return
		}
		walk(e.lhs)
		walk(e.rhs)
	}
	walk(r)
	return lo.Uniq(names)
}

// String renders the tree fully parenthesised.
func (r *Expr) String() string {
	if r.IsEmpty() {
		return ""
	}
	switch r.op {
	case OpNop:
		return r.text
	case OpNot:
		return "!" + r.lhs.String()
	}
	return "(" + r.lhs.String() + " " + r.op.String() + " " + r.rhs.String() + ")"
}

// Evaluate computes the expression. Both sides of every binary operator are evaluated. A nil
// resolver resolves every identifier to an invalid value.
func (r *Expr) Evaluate(resolve Resolver) Value {
	if r == nil {
		return Invalid()
	}
	switch r.op {
	case OpNop:
		if r.ident == "" {
			return r.literal
		}
		if resolve == nil {
			return Invalid()
		}
		return resolve(r.ident)
	case OpNot:
		return Bool(!r.lhs.Evaluate(resolve).ToBool())
	}

	l := r.lhs.Evaluate(resolve)
	rv := r.rhs.Evaluate(resolve)
	switch r.op {
	case OpEq:
		return Bool(equal(l, rv))
	case OpNe:
		return Bool(!equal(l, rv))
	case OpGe:
		return Bool(l.ToUInt() >= rv.ToUInt())
	case OpLe:
		return Bool(l.ToUInt() <= rv.ToUInt())
	case OpGt:
		return Bool(l.ToUInt() > rv.ToUInt())
	case OpLt:
		return Bool(l.ToUInt() < rv.ToUInt())
	case OpBitAnd:
		return UInt(l.ToUInt() & rv.ToUInt())
	case OpBitOr:
		return UInt(l.ToUInt() | rv.ToUInt())
	case OpAdd:
		return UInt(l.ToUInt() + rv.ToUInt())
	case OpSub:
		return UInt(l.ToUInt() - rv.ToUInt())
	case OpMul:
		return UInt(l.ToUInt() * rv.ToUInt())
	case OpDiv:
		divisor := rv.ToUInt()
		if divisor == 0 {
			return UInt(0)
		}
		return UInt(l.ToUInt() / divisor)
	case OpAnd:
		return Bool(l.ToBool() && rv.ToBool())
	case OpOr:
		return Bool(l.ToBool() || rv.ToBool())
	}
	return Invalid()
}

func (r *Expr) EvaluateBool(resolve Resolver) bool {
	return r.Evaluate(resolve).ToBool()
}

func (r *Expr) EvaluateUInt(resolve Resolver) uint64 {
	return r.Evaluate(resolve).ToUInt()
}
