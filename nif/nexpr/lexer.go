package nexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Op", Pattern: `!=|==|>=|<=|&&|\|\||[<>&|+\-/*]`},
		{Name: "Not", Pattern: `!`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "Word", Pattern: `[^\s()!=<>&|+\-/*]+`},
		{Name: "whitespace", Pattern: `\s+`},
	})
	symbols     = exprLexer.Symbols()
	tokenOp     = symbols["Op"]
	tokenNot    = symbols["Not"]
	tokenLParen = symbols["LParen"]
	tokenRParen = symbols["RParen"]
	tokenWord   = symbols["Word"]
)

func tokenize(s string) ([]lexer.Token, error) {
	lex, err := exprLexer.LexString("", s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCharacter, err.Error())
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCharacter, err.Error())
	}
	return lo.Filter(tokens, func(token lexer.Token, _ int) bool {
		return !token.EOF()
	}), nil
}

// matchParentheses maps the index of every opening parenthesis to its closing one.
func matchParentheses(tokens []lexer.Token) (map[int]int, error) {
	matches := make(map[int]int)
	open := make([]int, 0)
	for i, token := range tokens {
		switch token.Type {
		case tokenLParen:
			open = append(open, i)
		case tokenRParen:
			if len(open) == 0 {
				return nil, errors.Wrapf(ErrUnbalancedParentheses, "unmatched ')' at offset %d", token.Pos.Offset)
			}
			matches[open[len(open)-1]] = i
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return nil, errors.Wrapf(ErrUnbalancedParentheses, "unmatched '(' at offset %d", tokens[open[0]].Pos.Offset)
	}
	return matches, nil
}
