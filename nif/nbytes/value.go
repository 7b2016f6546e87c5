package nbytes

import (
	"strings"

	"github.com/pkg/errors"

	"niftree/nif/nvalue"
)

const char8Size = 8

func unitToByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 0xff
	}
	return uint8(f*0xff + 0.5)
}

func byteToUnit(b uint8) float32 {
	return float32(b) / 0xff
}

func signedToByte(f float32) uint8 {
	return unitToByte((f + 1) / 2)
}

func byteToSigned(b uint8) float32 {
	return byteToUnit(b)*2 - 1
}

func (r *Reader) readLengthPrefixed() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Len()) {
		return nil, errors.Errorf("readLengthPrefixed got length %d with %d bytes left", n, r.Len())
	}
	return r.ReadBytes(int(n))
}

func (r *Reader) readHalves(n int) ([]float32, error) {
	fs := make([]float32, n)
	for i := range fs {
		f, err := r.ReadHalfFloat()
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}

// ReadValue reads the on-disk form of v's type into v. v keeps its old data when reading fails.
func ReadValue(r *Reader, v *nvalue.Value) error {
	t := v.Type()
	read := nvalue.New(t)
	err := readInto(r, &read)
	if err != nil {
		return errors.Wrapf(err, "ReadValue could not read a %s value", t)
	}
	*v = read
	return nil
}

func readInto(r *Reader, v *nvalue.Value) error {
	t := v.Type()
	switch {
	case t.IsCount():
		u, err := r.ReadUint(t.Size())
		if err != nil {
			return err
		}
		return nvalue.Set(v, u)
	case t.IsLink():
		u, err := r.ReadUint32()
		if err != nil {
			return err
		}
		return nvalue.Set(v, int32(u))
	}

	switch t {
	case nvalue.TypeFileVersion:
		u, err := r.ReadUint32()
		if err != nil {
			return err
		}
		return nvalue.Set(v, u)
	case nvalue.TypeFloat:
		f, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		return nvalue.Set(v, f)
	case nvalue.TypeHFloat:
		f, err := r.ReadHalfFloat()
		if err != nil {
			return err
		}
		return nvalue.Set(v, f)
	case nvalue.TypeNormByte:
		b, err := r.ReadUint8()
		if err != nil {
			return err
		}
		return nvalue.Set(v, byteToSigned(b))
	case nvalue.TypeString, nvalue.TypeSizedString, nvalue.TypeText, nvalue.TypeFilePath:
		s, err := r.ReadSizedString()
		if err != nil {
			return err
		}
		return nvalue.Set(v, s)
	case nvalue.TypeShortString:
		s, err := r.ReadShortString()
		if err != nil {
			return err
		}
		return nvalue.Set(v, s)
	case nvalue.TypeHeaderString, nvalue.TypeLineString:
		s, err := r.ReadLine()
		if err != nil {
			return err
		}
		return nvalue.Set(v, s)
	case nvalue.TypeChar8String:
		bs, err := r.ReadBytes(char8Size)
		if err != nil {
			return err
		}
		return nvalue.Set(v, strings.TrimRight(string(bs), "\u0000"))
	case nvalue.TypeColor3:
		fs, err := r.ReadFloats(3)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Color3{R: fs[0], G: fs[1], B: fs[2]})
	case nvalue.TypeColor4:
		fs, err := r.ReadFloats(4)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Color4{R: fs[0], G: fs[1], B: fs[2], A: fs[3]})
	case nvalue.TypeByteColor4:
		bs, err := r.ReadBytes(4)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Color4{
			R: byteToUnit(bs[0]),
			G: byteToUnit(bs[1]),
			B: byteToUnit(bs[2]),
			A: byteToUnit(bs[3]),
		})
	case nvalue.TypeVector2:
		fs, err := r.ReadFloats(2)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector2{fs[0], fs[1]})
	case nvalue.TypeVector3:
		fs, err := r.ReadFloats(3)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector3{fs[0], fs[1], fs[2]})
	case nvalue.TypeVector4:
		fs, err := r.ReadFloats(4)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector4{fs[0], fs[1], fs[2], fs[3]})
	case nvalue.TypeHalfVector2:
		fs, err := r.readHalves(2)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector2{fs[0], fs[1]})
	case nvalue.TypeHalfVector3:
		fs, err := r.readHalves(3)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector3{fs[0], fs[1], fs[2]})
	case nvalue.TypeByteVector3:
		bs, err := r.ReadBytes(3)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Vector3{byteToSigned(bs[0]), byteToSigned(bs[1]), byteToSigned(bs[2])})
	case nvalue.TypeQuat:
		fs, err := r.ReadFloats(4)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Quat{W: fs[0], X: fs[1], Y: fs[2], Z: fs[3]})
	case nvalue.TypeQuatXYZW:
		fs, err := r.ReadFloats(4)
		if err != nil {
			return err
		}
		return nvalue.Set(v, nvalue.Quat{X: fs[0], Y: fs[1], Z: fs[2], W: fs[3]})
	case nvalue.TypeMatrix:
		fs, err := r.ReadFloats(9)
		if err != nil {
			return err
		}
		m := nvalue.Matrix{}
		for i, f := range fs {
			m[i/3][i%3] = f
		}
		return nvalue.Set(v, m)
	case nvalue.TypeMatrix4:
		fs, err := r.ReadFloats(16)
		if err != nil {
			return err
		}
		m := nvalue.Matrix4{}
		for i, f := range fs {
			m[i/4][i%4] = f
		}
		return nvalue.Set(v, m)
	case nvalue.TypeTriangle:
		tri := nvalue.Triangle{}
		for i := range tri {
			u, err := r.ReadUint16()
			if err != nil {
				return err
			}
			tri[i] = u
		}
		return nvalue.Set(v, tri)
	case nvalue.TypeByteArray, nvalue.TypeStringPalette, nvalue.TypeBlob:
		bs, err := r.readLengthPrefixed()
		if err != nil {
			return err
		}
		return nvalue.Set(v, bs)
	case nvalue.TypeByteMatrix:
		cols, err := r.ReadUint32()
		if err != nil {
			return err
		}
		rows, err := r.ReadUint32()
		if err != nil {
			return err
		}
		size := uint64(cols) * uint64(rows)
		if size > uint64(r.Len()) {
			return errors.Errorf("readInto got a %dx%d byte matrix with %d bytes left", cols, rows, r.Len())
		}
		m := nvalue.NewByteMatrix(int(cols), int(rows))
		bs, err := r.ReadBytes(int(size))
		if err != nil {
			return err
		}
		copy(m.Data, bs)
		return nvalue.Set(v, m)
	case nvalue.TypeNone:
		return nil
	}
	return errors.Errorf("readInto got unknown type %s", t)
}

// WriteValue writes the on-disk form of v. Structural values write nothing.
func WriteValue(w *Writer, v nvalue.Value) error {
	if err := writeFrom(w, v); err != nil {
		return errors.Wrapf(err, "WriteValue could not write a %s value", v.Type())
	}
	return nil
}

func writeFrom(w *Writer, v nvalue.Value) error {
	t := v.Type()
	switch {
	case t.IsCount():
		w.WriteUint(t.Size(), v.ToCount())
		return nil
	case t.IsLink():
		w.WriteUint32(uint32(v.ToLink()))
		return nil
	case t.IsString():
		return writeString(w, t, v.ToText())
	case t.IsByteArray():
		bs, err := nvalue.Get[[]byte](v)
		if err != nil {
			return err
		}
		w.WriteUint32(uint32(len(bs)))
		w.Write(bs)
		return nil
	}

	switch t {
	case nvalue.TypeFileVersion:
		w.WriteUint32(v.ToFileVersion())
	case nvalue.TypeFloat:
		w.WriteFloat32(v.ToFloat())
	case nvalue.TypeHFloat:
		w.WriteHalfFloat(v.ToFloat())
	case nvalue.TypeNormByte:
		w.WriteUint8(signedToByte(v.ToFloat()))
	case nvalue.TypeColor3:
		c, err := nvalue.Get[nvalue.Color3](v)
		if err != nil {
			return err
		}
		w.WriteFloats(c.R, c.G, c.B)
	case nvalue.TypeColor4:
		c, err := nvalue.Get[nvalue.Color4](v)
		if err != nil {
			return err
		}
		w.WriteFloats(c.R, c.G, c.B, c.A)
	case nvalue.TypeByteColor4:
		c, err := nvalue.Get[nvalue.Color4](v)
		if err != nil {
			return err
		}
		w.Write([]byte{unitToByte(c.R), unitToByte(c.G), unitToByte(c.B), unitToByte(c.A)})
	case nvalue.TypeVector2, nvalue.TypeHalfVector2:
		vec, err := nvalue.Get[nvalue.Vector2](v)
		if err != nil {
			return err
		}
		writeVector(w, t, vec[:])
	case nvalue.TypeVector3, nvalue.TypeHalfVector3, nvalue.TypeByteVector3:
		vec, err := nvalue.Get[nvalue.Vector3](v)
		if err != nil {
			return err
		}
		writeVector(w, t, vec[:])
	case nvalue.TypeVector4:
		vec, err := nvalue.Get[nvalue.Vector4](v)
		if err != nil {
			return err
		}
		w.WriteFloats(vec[:]...)
	case nvalue.TypeQuat:
		q, err := nvalue.Get[nvalue.Quat](v)
		if err != nil {
			return err
		}
		w.WriteFloats(q.W, q.X, q.Y, q.Z)
	case nvalue.TypeQuatXYZW:
		q, err := nvalue.Get[nvalue.Quat](v)
		if err != nil {
			return err
		}
		w.WriteFloats(q.X, q.Y, q.Z, q.W)
	case nvalue.TypeMatrix:
		m, err := nvalue.Get[nvalue.Matrix](v)
		if err != nil {
			return err
		}
		for _, row := range m {
			w.WriteFloats(row[:]...)
		}
	case nvalue.TypeMatrix4:
		m, err := nvalue.Get[nvalue.Matrix4](v)
		if err != nil {
			return err
		}
		for _, row := range m {
			w.WriteFloats(row[:]...)
		}
	case nvalue.TypeTriangle:
		tri, err := nvalue.Get[nvalue.Triangle](v)
		if err != nil {
			return err
		}
		for _, u := range tri {
			w.WriteUint16(u)
		}
	case nvalue.TypeByteMatrix:
		m, err := nvalue.Get[nvalue.ByteMatrix](v)
		if err != nil {
			return err
		}
		w.WriteUint32(uint32(m.Cols))
		w.WriteUint32(uint32(m.Rows))
		w.Write(m.Data)
	case nvalue.TypeNone:
	default:
		return errors.Errorf("writeFrom got unknown type %s", t)
	}
	return nil
}

func writeString(w *Writer, t nvalue.Type, s string) error {
	switch t {
	case nvalue.TypeShortString:
		w.WriteShortString(s)
	case nvalue.TypeHeaderString, nvalue.TypeLineString:
		if strings.ContainsRune(s, '\n') {
			return errors.Errorf("writeString got a line with a newline: %q", s)
		}
		w.WriteLine(s)
	case nvalue.TypeChar8String:
		bs := make([]byte, char8Size)
		copy(bs, s)
		w.Write(bs)
	default:
		w.WriteSizedString(s)
	}
	return nil
}

func writeVector(w *Writer, t nvalue.Type, vec []float32) {
	for _, f := range vec {
		switch t {
		case nvalue.TypeHalfVector2, nvalue.TypeHalfVector3:
			w.WriteHalfFloat(f)
		case nvalue.TypeByteVector3:
			w.WriteUint8(signedToByte(f))
		default:
			w.WriteFloat32(f)
		}
	}
}
