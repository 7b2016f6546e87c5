package nvalue

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"niftree/ds"
)

type (
	Vector2 [2]float32
	Vector3 [3]float32
	Vector4 [4]float32
	Quat    struct {
		W, X, Y, Z float32
	}
	Color3 struct {
		R, G, B float32
	}
	Color4 struct {
		R, G, B, A float32
	}
	Matrix   [3][3]float32
	Matrix4  [4][4]float32
	Triangle [3]uint16
	// ByteMatrix is a row-major Cols x Rows block of bytes.
	ByteMatrix struct {
		Cols int
		Rows int
		Data []byte
	}
)

func IdentityMatrix() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func IdentityMatrix4() Matrix4 {
	return Matrix4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func NewByteMatrix(cols, rows int) ByteMatrix {
	if cols < 0 || rows < 0 {
		cols, rows = 0, 0
	}
	return ByteMatrix{
		Cols: cols,
		Rows: rows,
		Data: make([]byte, cols*rows),
	}
}

func (r ByteMatrix) At(col, row int) byte {
	if col < 0 || col >= r.Cols || row < 0 || row >= r.Rows {
		return 0
	}
	return r.Data[row*r.Cols+col]
}

func (r ByteMatrix) RowSlices() [][]byte {
	return ds.MakeChunks(r.Data, r.Cols)
}

func (r ByteMatrix) clone() ByteMatrix {
	r.Data = ds.ShallowCopy(r.Data)
	return r
}

func formatFloats(fs ...float32) string {
	return strings.Join(
		lo.Map(fs, func(f float32, _ int) string {
			return fmt.Sprintf("%g", f)
		}),
		" ",
	)
}

func (r Matrix) String() string {
	rows := lo.Map(r[:], func(row [3]float32, _ int) string {
		return formatFloats(row[:]...)
	})
	return "[" + strings.Join(rows, "; ") + "]"
}

func (r Matrix4) String() string {
	rows := lo.Map(r[:], func(row [4]float32, _ int) string {
		return formatFloats(row[:]...)
	})
	return "[" + strings.Join(rows, "; ") + "]"
}
