package nmodel

import (
	"niftree/nif/nschema"
)

type def = nschema.FieldDef

func fieldList(defs ...def) []nschema.Field {
	fs := make([]nschema.Field, 0, len(defs))
	for _, d := range defs {
		fs = append(fs, nschema.MustField(d))
	}
	return fs
}

func abstract(b *nschema.Block) *nschema.Block {
	b.Abstract = true
	return b
}

// BaseRegistry builds a small subset of the NIF object hierarchy: the header, a scene graph
// node, triangle geometry and keyed float data.
func BaseRegistry() *nschema.Registry {
	r := nschema.NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.RegisterAlias("NiFixedString", "string"))

	must(r.RegisterCompound(nschema.MustBlock(HeaderType, "", fieldList(
		def{Name: "Header String", Type: "HeaderString"},
		def{Name: "Version", Type: "FileVersion"},
		def{Name: "Endian Type", Type: "byte", Ver1: "20.0.0.3"},
		def{Name: "User Version", Type: "uint", Ver1: "10.0.1.8"},
		def{Name: "Num Blocks", Type: "uint"},
		def{Name: "Num Block Types", Type: "ushort", Ver1: "10.0.1.0"},
		def{Name: "Block Types", Type: "SizedString", Arr1: "Num Block Types", Ver1: "10.0.1.0"},
	)...)))
	must(r.RegisterCompound(nschema.MustBlock("Key", "", fieldList(
		def{Name: "Time", Type: "float"},
		def{Name: "Value", Type: TemplateToken, Flags: nschema.FlagTemplated},
	)...)))
	must(r.RegisterCompound(nschema.MustBlock("KeyGroup", "", fieldList(
		def{Name: "Num Keys", Type: "uint"},
		def{Name: "Interpolation", Type: "uint", Cond: "Num Keys != 0"},
		def{Name: "Keys", Type: "Key", Templ: TemplateToken, Arr1: "Num Keys"},
	)...)))

	must(r.RegisterBlock(abstract(nschema.MustBlock("NiObject", ""))))
	must(r.RegisterBlock(abstract(nschema.MustBlock("NiObjectNET", "NiObject", fieldList(
		def{Name: "Name", Type: "NiFixedString"},
		def{Name: "Num Extra Data List", Type: "uint"},
		def{Name: "Extra Data List", Type: "Ref", Arr1: "Num Extra Data List"},
		def{Name: "Controller", Type: "Ref"},
	)...))))
	must(r.RegisterBlock(abstract(nschema.MustBlock("NiAVObject", "NiObjectNET", fieldList(
		def{Name: "Flags", Type: "Flags"},
		def{Name: "Translation", Type: "Vector3"},
		def{Name: "Rotation", Type: "Matrix33"},
		def{Name: "Scale", Type: "float"},
		def{Name: "Num Properties", Type: "uint", Ver2: "20.1.0.3"},
		def{Name: "Properties", Type: "Ref", Arr1: "Num Properties", Ver2: "20.1.0.3"},
		def{Name: "Collision Object", Type: "Ref", Ver1: "10.0.1.0"},
	)...))))
	must(r.RegisterBlock(nschema.MustBlock("NiNode", "NiAVObject", fieldList(
		def{Name: "Num Children", Type: "uint"},
		def{Name: "Children", Type: "Ref", Arr1: "Num Children"},
		def{Name: "Num Effects", Type: "uint"},
		def{Name: "Effects", Type: "Ref", Arr1: "Num Effects"},
	)...)))
	must(r.RegisterBlock(nschema.MustBlock("BSFadeNode", "NiNode")))
	must(r.RegisterBlock(nschema.MustBlock("NiTriShape", "NiAVObject", fieldList(
		def{Name: "Data", Type: "Ref"},
		def{Name: "Skin Instance", Type: "Ref"},
	)...)))
	must(r.RegisterBlock(nschema.MustBlock("NiTriShapeData", "NiObject", fieldList(
		def{Name: "Num Vertices", Type: "ushort"},
		def{Name: "Has Vertices", Type: "bool"},
		def{Name: "Vertices", Type: "Vector3", Arr1: "Num Vertices", Cond: "Has Vertices"},
		def{Name: "Has Normals", Type: "bool"},
		def{Name: "Normals", Type: "Vector3", Arr1: "Num Vertices", Cond: "Has Normals"},
		def{Name: "Num Triangles", Type: "ushort"},
		def{Name: "Triangles", Type: "Triangle", Arr1: "Num Triangles"},
		def{Name: "Num Strips", Type: "ushort"},
		def{Name: "Strip Lengths", Type: "ushort", Arr1: "Num Strips"},
		def{Name: "Strips", Type: "ushort", Arr1: "Num Strips", Arr2: "Strip Lengths"},
	)...)))
	must(r.RegisterBlock(nschema.MustBlock("NiFloatData", "NiObject", fieldList(
		def{Name: "Data", Type: "KeyGroup", Templ: "float"},
	)...)))
	must(r.RegisterBlock(nschema.MustBlock("NiFloatInterpolator", "NiObject", fieldList(
		def{Name: "Value", Type: "float"},
		def{Name: "Data", Type: "Ref"},
	)...)))
	return r
}
