package ds

import (
	"fmt"
)

type (
	ErrUnreachableCode struct {
		Caller string
		Detail any
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.Detail == nil {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf("%s: unreachable code with %v", r.Caller, r.Detail)
}
