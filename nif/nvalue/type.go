package nvalue

import (
	"fmt"
)

type Type uint8

const (
	TypeBool Type = iota
	TypeByte
	TypeWord
	TypeFlags
	TypeStringOffset
	TypeStringIndex
	TypeBlockTypeIndex
	TypeInt
	TypeShort
	TypeULittle32
	TypeInt64
	TypeUInt64
	TypeUInt
	TypeLink
	TypeUpLink
	TypeFloat
	TypeHFloat
	TypeNormByte
	TypeString
	TypeSizedString
	TypeText
	TypeShortString
	TypeHeaderString
	TypeLineString
	TypeChar8String
	TypeFilePath
	TypeColor3
	TypeColor4
	TypeByteColor4
	TypeVector2
	TypeVector3
	TypeVector4
	TypeHalfVector2
	TypeHalfVector3
	TypeByteVector3
	TypeQuat
	TypeQuatXYZW
	TypeMatrix
	TypeMatrix4
	TypeTriangle
	TypeFileVersion
	TypeByteArray
	TypeStringPalette
	TypeBlob
	TypeByteMatrix
	typeCount

	// TypeNone marks structural nodes (arrays, compounds) that carry no data of their own.
	TypeNone Type = 0xff
)

type countInfo struct {
	bits   uint
	signed bool
}

var (
	countInfos = map[Type]countInfo{
		TypeBool:           {1, false},
		TypeByte:           {8, false},
		TypeWord:           {16, false},
		TypeFlags:          {16, false},
		TypeStringOffset:   {32, false},
		TypeStringIndex:    {32, false},
		TypeBlockTypeIndex: {16, false},
		TypeInt:            {32, true},
		TypeShort:          {16, true},
		TypeULittle32:      {32, false},
		TypeInt64:          {64, true},
		TypeUInt64:         {64, false},
		TypeUInt:           {32, false},
	}

	canonicalNames = map[Type]string{
		TypeBool:           "bool",
		TypeByte:           "byte",
		TypeWord:           "ushort",
		TypeFlags:          "Flags",
		TypeStringOffset:   "StringOffset",
		TypeStringIndex:    "StringIndex",
		TypeBlockTypeIndex: "BlockTypeIndex",
		TypeInt:            "int",
		TypeShort:          "short",
		TypeULittle32:      "ulittle32",
		TypeInt64:          "int64",
		TypeUInt64:         "uint64",
		TypeUInt:           "uint",
		TypeLink:           "Ref",
		TypeUpLink:         "Ptr",
		TypeFloat:          "float",
		TypeHFloat:         "hfloat",
		TypeNormByte:       "normbyte",
		TypeString:         "string",
		TypeSizedString:    "SizedString",
		TypeText:           "Text",
		TypeShortString:    "ShortString",
		TypeHeaderString:   "HeaderString",
		TypeLineString:     "LineString",
		TypeChar8String:    "char8string",
		TypeFilePath:       "FilePath",
		TypeColor3:         "Color3",
		TypeColor4:         "Color4",
		TypeByteColor4:     "ByteColor4",
		TypeVector2:        "Vector2",
		TypeVector3:        "Vector3",
		TypeVector4:        "Vector4",
		TypeHalfVector2:    "HalfVector2",
		TypeHalfVector3:    "HalfVector3",
		TypeByteVector3:    "ByteVector3",
		TypeQuat:           "Quaternion",
		TypeQuatXYZW:       "QuaternionXYZW",
		TypeMatrix:         "Matrix33",
		TypeMatrix4:        "Matrix44",
		TypeTriangle:       "Triangle",
		TypeFileVersion:    "FileVersion",
		TypeByteArray:      "ByteArray",
		TypeStringPalette:  "StringPalette",
		TypeBlob:           "blob",
		TypeByteMatrix:     "ByteMatrix",
		TypeNone:           "none",
	}

	// schema names that are spelled differently from the canonical name
	aliasNames = map[string]Type{
		"char":           TypeByte,
		"sbyte":          TypeByte,
		"word":           TypeWord,
		"Link":           TypeLink,
		"UpLink":         TypeUpLink,
		"TexCoord":       TypeVector2,
		"HalfTexCoord":   TypeHalfVector2,
		"TBC":            TypeVector3,
		"QuaternionWXYZ": TypeQuat,
		"Matrix":         TypeMatrix,
		"Matrix4":        TypeMatrix4,
	}

	typeByName = func() map[string]Type {
		m := make(map[string]Type, len(canonicalNames)+len(aliasNames))
		for t, name := range canonicalNames {
			m[name] = t
		}
		for name, t := range aliasNames {
			m[name] = t
		}
		return m
	}()
)

// TypeByName maps a schema type name to its value type.
func TypeByName(name string) (Type, bool) {
	t, ok := typeByName[name]
	return t, ok
}

func (t Type) String() string {
	name, ok := canonicalNames[t]
	if !ok {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return name
}

func (t Type) IsCount() bool {
	_, ok := countInfos[t]
	return ok
}

// Size is the number of bytes a count type takes in a file, 0 for every other type.
func (t Type) Size() int {
	info, ok := countInfos[t]
	switch {
	case !ok:
		return 0
	case info.bits < 8:
		return 1
	}
	return int(info.bits / 8)
}

func (t Type) IsLink() bool {
	return t == TypeLink || t == TypeUpLink
}

func (t Type) IsFloat() bool {
	return t == TypeFloat || t == TypeHFloat || t == TypeNormByte
}

func (t Type) IsString() bool {
	return t >= TypeString && t <= TypeFilePath
}

func (t Type) IsByteArray() bool {
	return t == TypeByteArray || t == TypeStringPalette || t == TypeBlob
}

func (t Type) IsColor() bool {
	return t == TypeColor3 || t == TypeColor4 || t == TypeByteColor4
}

func (t Type) IsVector() bool {
	return t >= TypeVector2 && t <= TypeByteVector3
}

func (t Type) IsQuat() bool {
	return t == TypeQuat || t == TypeQuatXYZW
}

func (t Type) IsMatrix() bool {
	return t == TypeMatrix || t == TypeMatrix4
}

func (t Type) IsValid() bool {
	return t < typeCount
}
