// Package binary provides low-level binary reading for spatial map parsing.
package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// TruncatedInputError is returned when a fixed-width read runs past the end
// of the input region.
type TruncatedInputError struct {
	Offset int64 // position the read started at
	Want   int   // bytes the field required
	Have   int   // bytes that remained
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: need %d bytes at offset %d, have %d", e.Want, e.Offset, e.Have)
}

// Reader consumes a byte region strictly front to back. Multi-byte integers
// are big-endian, the Analyze on-disk convention. Every read either returns
// the decoded value or a *TruncatedInputError; the position never moves on
// failure.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return int64(r.off)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// ReadBytes reads exactly n bytes from the current position. The returned
// slice aliases the underlying region and must not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if rem := len(r.data) - r.off; rem < n {
		return nil, &TruncatedInputError{Offset: int64(r.off), Want: n, Have: rem}
	}
	buf := r.data[r.off : r.off+n]
	r.off += n
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads an IEEE-754 single-precision float in the given byte
// order. The order is a parameter because the float fields of an object
// record vary by encoder while every integer field is fixed big-endian.
func (r *Reader) ReadFloat32(order binary.ByteOrder) (float32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(order.Uint32(buf)), nil
}

// ReadFixedString consumes an n-byte slot and returns the bytes before the
// first NUL. Bytes after the NUL are discarded without inspection. The
// returned slice aliases the underlying region.
func (r *Reader) ReadFixedString(n int) ([]byte, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return buf, nil
}

// Rest consumes and returns every unread byte.
func (r *Reader) Rest() []byte {
	buf := r.data[r.off:]
	r.off = len(r.data)
	return buf
}
