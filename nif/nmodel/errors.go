package nmodel

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownBlock   = errors.New("unknown block type")
	ErrAbstractBlock  = errors.New("abstract block type")
	ErrInvalidVersion = errors.New("invalid file version")
	ErrNoBlock        = errors.New("no block at index")
	ErrArraySize      = errors.New("invalid array size")
)
