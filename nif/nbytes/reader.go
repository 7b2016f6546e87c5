package nbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Reader reads the little endian layout NIF files use.
type Reader struct {
	bytes.Reader
}

func NewReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

func (r *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// a zero length read at the end of the data is not an error
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(&r.Reader, bs); err != nil {
		return nil, errors.Wrapf(err, "ReadBytes could not read %d bytes at offset %d", n, r.Offset())
	}
	return bs, nil
}

// Offset is the position of the next byte to read.
func (r *Reader) Offset() int64 {
	return r.Size() - int64(r.Len())
}

func (r *Reader) ReadUint8() (uint8, error) {
	bs, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	bs, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	bs, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	bs, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bs), nil
}

// ReadUint reads an unsigned number of size bytes: 1, 2, 4 or 8.
func (r *Reader) ReadUint(size int) (uint64, error) {
	switch size {
	case 1:
		u, err := r.ReadUint8()
		return uint64(u), err
	case 2:
		u, err := r.ReadUint16()
		return uint64(u), err
	case 4:
		u, err := r.ReadUint32()
		return uint64(u), err
	case 8:
		return r.ReadUint64()
	}
	return 0, errors.Errorf("ReadUint got invalid size %d", size)
}

func (r *Reader) ReadFloat32() (float32, error) {
	u, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func (r *Reader) ReadHalfFloat() (float32, error) {
	u, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	return HalfToFloat(u), nil
}

func (r *Reader) ReadFloats(n int) ([]float32, error) {
	fs := make([]float32, n)
	for i := range fs {
		f, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}

// ReadSizedString reads a 32 bit length followed by that many bytes.
func (r *Reader) ReadSizedString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(r.Len()) {
		return "", errors.Errorf("ReadSizedString got length %d with %d bytes left", n, r.Len())
	}
	bs, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// ReadShortString reads an 8 bit length followed by a zero terminated string.
func (r *Reader) ReadShortString() (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	bs, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(bs), "\u0000"), nil
}

// ReadLine reads up to and including the next newline, which is not returned.
func (r *Reader) ReadLine() (string, error) {
	sb := strings.Builder{}
	for {
		b, err := r.ReadUint8()
		if err != nil {
			return "", errors.Wrap(err, "ReadLine found no newline")
		}
		if b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}
