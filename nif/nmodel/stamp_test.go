package nmodel

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftree/nif/nitem"
	"niftree/nif/nvalue"
)

func TestInsertBlock_StampsInheritedFields(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiNode")

	assert.Equal(t, "NiNode", block.TypeName())
	assert.Equal(
		t,
		[]string{
			"Name", "Num Extra Data List", "Extra Data List", "Controller",
			"Flags", "Translation", "Rotation", "Scale", "Num Properties", "Properties", "Collision Object",
			"Num Children", "Children", "Num Effects", "Effects",
		},
		names(block.Children()),
	)
	assert.Equal(t, uint32(1), nitem.Get[uint32](doc.Header().ChildByName("Num Blocks")))

	assert.Equal(t, block.Child(0), doc.BlockField(block, "Name"))
	assert.Equal(t, block.Child(12), doc.BlockField(block, "Children"))
	assert.Nil(t, doc.BlockField(block, "Data"))

	children := doc.BlockField(block, "Children")
	assert.True(t, children.IsArray())
	assert.Equal(t, 0, children.ChildCount())
	assert.Equal(t, int32(-1), nitem.Get[int32](doc.BlockField(block, "Controller")))
	assert.Equal(t, nvalue.IdentityMatrix(), nitem.Get[nvalue.Matrix](doc.BlockField(block, "Rotation")))
	assert.Empty(t, doc.Messages())
}

func TestInsertBlock_Errors(t *testing.T) {
	doc := newDocument(t)

	_, err := doc.InsertBlock("NiMesh", -1)
	assert.True(t, errors.Is(err, ErrUnknownBlock))

	_, err = doc.InsertBlock("NiObject", -1)
	assert.True(t, errors.Is(err, ErrAbstractBlock))

	assert.Equal(t, 0, doc.BlockCount())
}

func TestUpdateArraySize(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiNode")
	count := doc.BlockField(block, "Num Children")
	children := doc.BlockField(block, "Children")

	nitem.Set(count, uint32(3))
	require.True(t, doc.UpdateArraySize(children))
	assert.Equal(t, []int32{-1, -1, -1}, nitem.GetArray[int32](children))

	nitem.Set(count, uint32(1))
	require.True(t, doc.UpdateArraySize(children))
	assert.Equal(t, 1, children.ChildCount())

	assert.False(t, doc.UpdateArraySize(count))
	require.Len(t, doc.Messages(), 1)
	assert.Equal(t, "UpdateArraySize", doc.Messages()[0].Func)
}

func TestUpdateArraySize_CappedByConfig(t *testing.T) {
	doc := newDocument(t, WithConfig(Config{Version: DefaultVersion, MaxArraySize: 4}))
	block := insertBlock(t, doc, "NiNode")
	children := doc.BlockField(block, "Children")

	nitem.Set(doc.BlockField(block, "Num Children"), uint32(5))
	assert.False(t, doc.UpdateArraySize(children))
	assert.Equal(t, 0, children.ChildCount())

	messages := doc.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "NiNode [0]/Children", messages[0].Path)
	assert.Contains(t, messages[0].Text, "out of range")

	nitem.Set(doc.BlockField(block, "Num Children"), uint32(4))
	assert.True(t, doc.UpdateArraySize(children))
	assert.Equal(t, 4, children.ChildCount())
}

func TestUpdateArraySize_MultiArrayRows(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiTriShapeData")
	lengths := doc.BlockField(block, "Strip Lengths")
	strips := doc.BlockField(block, "Strips")

	nitem.Set(doc.BlockField(block, "Num Strips"), uint16(2))
	require.True(t, doc.UpdateArraySize(lengths))
	require.True(t, nitem.SetArray(lengths, []uint16{3, 5}))
	require.True(t, doc.UpdateArraySize(strips))

	require.Equal(t, 2, strips.ChildCount())
	assert.True(t, strips.Child(0).IsArray())
	assert.Equal(t, 3, strips.Child(0).ChildCount())
	assert.Equal(t, 5, strips.Child(1).ChildCount())
	assert.Equal(t, nvalue.TypeWord, strips.Child(1).Child(4).ValueType())

	nitem.Set(doc.BlockField(block, "Num Strips"), uint16(1))
	require.True(t, doc.UpdateArraySize(strips))
	assert.Equal(t, 1, strips.ChildCount())
	assert.Empty(t, doc.Messages())
}

func TestInsertType_Templates(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiFloatData")
	data := doc.BlockField(block, "Data")
	interpolation := data.ChildByName("Interpolation")
	keys := data.ChildByName("Keys")

	assert.True(t, data.Field().IsCompound())
	assert.False(t, interpolation.Condition())

	nitem.Set(data.ChildByName("Num Keys"), uint32(2))
	require.True(t, doc.UpdateArraySize(keys))
	require.Equal(t, 2, keys.ChildCount())
	assert.Equal(t, []string{"Time", "Value"}, names(keys.Child(1).Children()))
	assert.Equal(t, nvalue.TypeFloat, keys.Child(1).ChildByName("Value").ValueType())
	assert.True(t, interpolation.Condition())
	assert.Empty(t, doc.Messages())
}

func TestInsertType_UnknownType(t *testing.T) {
	registry := BaseRegistry()
	require.NoError(t, registry.RegisterBlock(testBlock("NiBroken", "NiObject",
		def{Name: "Mystery", Type: "NiNothing"},
		def{Name: "After", Type: "uint"},
	)))
	doc, err := New(registry, WithLogger(nullLogger()))
	require.NoError(t, err)

	block, err := doc.InsertBlock("NiBroken", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mystery", "After"}, names(block.Children()))
	assert.Equal(t, nvalue.TypeNone, block.Child(0).ValueType())
	assert.Equal(t, block.Child(1), doc.BlockField(block, "After"))

	require.Len(t, doc.Messages(), 1)
	assert.Equal(t, "NiBroken [0]/Mystery", doc.Messages()[0].Path)
}

func TestArrayElementsPresent(t *testing.T) {
	doc := newDocument(t)
	block := insertBlock(t, doc, "NiTriShapeData")
	vertices := doc.BlockField(block, "Vertices")

	nitem.Set(doc.BlockField(block, "Num Vertices"), uint16(2))
	require.True(t, doc.UpdateArraySize(vertices))
	assert.Equal(t, []bool{false, false}, doc.ArrayElementsPresent(vertices))
	assert.Equal(t, []bool{false, false}, vertices.ArrayConditions())

	nitem.Set(doc.BlockField(block, "Has Vertices"), true)
	assert.Empty(t, vertices.ArrayConditions())
	assert.Equal(t, []bool{true, true}, doc.ArrayElementsPresent(vertices))
}
