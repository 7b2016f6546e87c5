package nbytes

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer is the counterpart of Reader. Writes to the underlying buffer cannot fail.
type Writer struct {
	bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteUint8(u uint8) {
	w.WriteByte(u)
}

func (w *Writer) WriteUint16(u uint16) {
	bs := make([]byte, 2)
	binary.LittleEndian.PutUint16(bs, u)
	w.Write(bs)
}

func (w *Writer) WriteUint32(u uint32) {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, u)
	w.Write(bs)
}

func (w *Writer) WriteUint64(u uint64) {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, u)
	w.Write(bs)
}

// WriteUint writes the low size bytes of u. Sizes other than 1, 2, 4 and 8 write nothing.
func (w *Writer) WriteUint(size int, u uint64) {
	switch size {
	case 1:
		w.WriteUint8(uint8(u))
	case 2:
		w.WriteUint16(uint16(u))
	case 4:
		w.WriteUint32(uint32(u))
	case 8:
		w.WriteUint64(u)
	}
}

func (w *Writer) WriteFloat32(f float32) {
	w.WriteUint32(math.Float32bits(f))
}

func (w *Writer) WriteHalfFloat(f float32) {
	w.WriteUint16(FloatToHalf(f))
}

func (w *Writer) WriteFloats(fs ...float32) {
	for _, f := range fs {
		w.WriteFloat32(f)
	}
}

func (w *Writer) WriteSizedString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.WriteString(s)
}

// WriteShortString writes s zero terminated behind an 8 bit length, truncating s to fit.
func (w *Writer) WriteShortString(s string) {
	if len(s) > 254 {
		s = s[:254]
	}
	w.WriteUint8(uint8(len(s) + 1))
	w.WriteString(s)
	w.WriteByte(0)
}

func (w *Writer) WriteLine(s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}
