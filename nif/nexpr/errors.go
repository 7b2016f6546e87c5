package nexpr

import (
	"github.com/pkg/errors"
)

var (
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrMissingOperand        = errors.New("missing operand")
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrInvalidCharacter      = errors.New("invalid character")
)
