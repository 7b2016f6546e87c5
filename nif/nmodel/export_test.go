package nmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftree/ds"
	"niftree/nif/nitem"
)

func TestToOrderedMap(t *testing.T) {
	doc := newDocument(t)
	node := insertBlock(t, doc, "NiNode")
	nitem.Set(doc.BlockField(node, "Name"), "Scene Root")
	nitem.Set(doc.BlockField(node, "Num Children"), uint32(1))
	require.True(t, doc.UpdateArraySize(doc.BlockField(node, "Children")))

	lhm := doc.ToOrderedMap()
	assert.Equal(t, []string{FieldNameVersion, FieldNameHeader, FieldNameBlocks}, lhm.Keys())

	fields := ToOrderedMap(node)
	assert.NotContains(t, fields.Keys(), "Properties")
	assert.NotContains(t, fields.Keys(), "Num Properties")
	assert.Equal(t, "Name", fields.Keys()[0])

	name, ok := fields.Get("Name")
	require.True(t, ok)
	assert.Equal(t, "Scene Root", name)

	children, ok := fields.Get("Children")
	require.True(t, ok)
	assert.Equal(t, []any{int32(-1)}, children)

	dumped := ds.DumpJSON(lhm)
	assert.Contains(t, dumped, `"version":"20.2.0.7"`)
	assert.Contains(t, dumped, `"Version":"20.2.0.7"`)
	assert.Contains(t, dumped, `{"type":"NiNode","fields":{"Name":"Scene Root",`)
	assert.Contains(t, dumped, `"Children":[-1]`)
}

func TestToOrderedMap_SkipsAbsentFields(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiTriShapeData")
	nitem.Set(doc.BlockField(block, "Num Vertices"), uint16(1))
	require.True(t, doc.UpdateArraySize(doc.BlockField(block, "Vertices")))

	assert.NotContains(t, ToOrderedMap(block).Keys(), "Vertices")

	nitem.Set(doc.BlockField(block, "Has Vertices"), true)
	vertices, ok := ToOrderedMap(block).Get("Vertices")
	require.True(t, ok)
	assert.Equal(t, []any{"0 0 0"}, vertices)
}
