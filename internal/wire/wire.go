// Package wire provides bounds-checked binary reading and writing for
// MMPC container data.
//
// The MMPC container header stores all multi-byte integers in big-endian
// order, while the quantized coefficient stream inside the payload is
// serialized little-endian. Both orders are fixed by the format and never
// depend on the host.
package wire

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer is returned when a read or write operation cannot
	// complete because there isn't enough data or space in the buffer.
	ErrShortBuffer = errors.New("wire: buffer too short")

	// ErrNegativeSize is returned when a size parameter is negative.
	ErrNegativeSize = errors.New("wire: negative size")
)

// Reader provides bounds-checked binary reading from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrShortBuffer
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if r.pos+n > len(r.data) {
		return nil, ErrShortBuffer
	}
	result := make([]byte, n)
	copy(result, r.data[r.pos:r.pos+n])
	r.pos += n
	return result, nil
}

// ReadUint16BE reads an unsigned 16-bit integer in big-endian order.
func (r *Reader) ReadUint16BE() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32BE reads an unsigned 32-bit integer in big-endian order.
func (r *Reader) ReadUint32BE() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadInt16LE reads a signed 16-bit integer in little-endian order.
func (r *Reader) ReadInt16LE() (int16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return int16(v), nil
}

// Writer provides bounds-checked binary writing to a byte slice.
type Writer struct {
	data []byte
	pos  int
}

// NewWriter creates a Writer over a pre-allocated byte slice.
func NewWriter(data []byte) *Writer {
	return &Writer{data: data}
}

// Pos returns the current write position.
func (w *Writer) Pos() int {
	return w.pos
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	if w.pos >= len(w.data) {
		return ErrShortBuffer
	}
	w.data[w.pos] = b
	w.pos++
	return nil
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(b []byte) error {
	if w.pos+len(b) > len(w.data) {
		return ErrShortBuffer
	}
	copy(w.data[w.pos:], b)
	w.pos += len(b)
	return nil
}

// WriteUint16BE writes an unsigned 16-bit integer in big-endian order.
func (w *Writer) WriteUint16BE(v uint16) error {
	if w.pos+2 > len(w.data) {
		return ErrShortBuffer
	}
	binary.BigEndian.PutUint16(w.data[w.pos:], v)
	w.pos += 2
	return nil
}

// WriteUint32BE writes an unsigned 32-bit integer in big-endian order.
func (w *Writer) WriteUint32BE(v uint32) error {
	if w.pos+4 > len(w.data) {
		return ErrShortBuffer
	}
	binary.BigEndian.PutUint32(w.data[w.pos:], v)
	w.pos += 4
	return nil
}

// WriteInt16LE writes a signed 16-bit integer in little-endian order.
func (w *Writer) WriteInt16LE(v int16) error {
	if w.pos+2 > len(w.data) {
		return ErrShortBuffer
	}
	binary.LittleEndian.PutUint16(w.data[w.pos:], uint16(v))
	w.pos += 2
	return nil
}

// PutInt16LE stores a little-endian int16 at byte offset off in dst.
// The caller guarantees dst has room; this is the hot path used when
// flattening coefficient blocks, so there is no bounds error to return.
func PutInt16LE(dst []byte, off int, v int16) {
	binary.LittleEndian.PutUint16(dst[off:], uint16(v))
}

// Int16LE loads a little-endian int16 from byte offset off in src.
func Int16LE(src []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(src[off:]))
}
