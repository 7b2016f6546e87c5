package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Peek(t *testing.T) {
	type T struct {
		Value1 int
		Value2 int
	}
	stack := NewStack[T]()
	stack.Push(
		T{
			Value1: 1,
			Value2: 2,
		},
	)

	last := stack.Peek()

	assert.Equal(t, last.Value1, 1)
	assert.Equal(t, last.Value2, 2)
	assert.Equal(t, 1, stack.Len())
}

func TestStack_Drain(t *testing.T) {
	stack := NewStack[string]()
	stack.Push("NiObject")
	stack.Push("NiObjectNET")
	stack.Push("NiAVObject")

	assert.Equal(t, []string{"NiAVObject", "NiObjectNET", "NiObject"}, stack.Drain())
	assert.True(t, stack.IsEmpty())
}
