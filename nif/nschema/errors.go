package nschema

import (
	"github.com/pkg/errors"
)

var (
	ErrRectangularNonArray = errors.New("second array dimension on a non-array field")
	ErrDuplicateField      = errors.New("duplicate field name")
	ErrDuplicateType       = errors.New("duplicate type id")
	ErrUnknownType         = errors.New("unknown type")
	ErrAncestorCycle       = errors.New("ancestor cycle")
)
