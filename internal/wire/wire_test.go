package wire

import (
	"bytes"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	buf := make([]byte, 13)
	w := NewWriter(buf)

	if err := w.WriteBytes([]byte("MMPC")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := w.WriteByte(1); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if err := w.WriteUint16BE(0x1234); err != nil {
		t.Fatalf("WriteUint16BE: %v", err)
	}
	if err := w.WriteUint32BE(0xdeadbeef); err != nil {
		t.Fatalf("WriteUint32BE: %v", err)
	}
	if err := w.WriteInt16LE(-2); err != nil {
		t.Fatalf("WriteInt16LE: %v", err)
	}
	if w.Pos() != 13 {
		t.Errorf("Pos = %d, want 13", w.Pos())
	}

	r := NewReader(buf)
	magic, err := r.ReadBytes(4)
	if err != nil || !bytes.Equal(magic, []byte("MMPC")) {
		t.Errorf("ReadBytes = %q, %v", magic, err)
	}
	if b, _ := r.ReadByte(); b != 1 {
		t.Errorf("ReadByte = %d, want 1", b)
	}
	if v, _ := r.ReadUint16BE(); v != 0x1234 {
		t.Errorf("ReadUint16BE = %#x, want 0x1234", v)
	}
	if v, _ := r.ReadUint32BE(); v != 0xdeadbeef {
		t.Errorf("ReadUint32BE = %#x, want 0xdeadbeef", v)
	}
	if v, _ := r.ReadInt16LE(); v != -2 {
		t.Errorf("ReadInt16LE = %d, want -2", v)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestByteOrders(t *testing.T) {
	buf := make([]byte, 4)
	w := NewWriter(buf)

	w.WriteUint16BE(0x0102)
	w.WriteInt16LE(0x0304)

	want := []byte{0x01, 0x02, 0x04, 0x03}
	if !bytes.Equal(buf, want) {
		t.Errorf("wire bytes = %v, want %v", buf, want)
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{1})

	if _, err := r.ReadUint16BE(); err != ErrShortBuffer {
		t.Errorf("ReadUint16BE on 1 byte: got %v, want ErrShortBuffer", err)
	}
	if _, err := r.ReadBytes(2); err != ErrShortBuffer {
		t.Errorf("ReadBytes(2) on 1 byte: got %v, want ErrShortBuffer", err)
	}
	if _, err := r.ReadBytes(-1); err != ErrNegativeSize {
		t.Errorf("ReadBytes(-1): got %v, want ErrNegativeSize", err)
	}

	// The failed reads must not consume the remaining byte.
	if b, err := r.ReadByte(); err != nil || b != 1 {
		t.Errorf("ReadByte after failures = %d, %v", b, err)
	}
	if _, err := r.ReadByte(); err != ErrShortBuffer {
		t.Errorf("ReadByte at end: got %v, want ErrShortBuffer", err)
	}
}

func TestWriterShortBuffer(t *testing.T) {
	w := NewWriter(make([]byte, 1))

	if err := w.WriteUint32BE(1); err != ErrShortBuffer {
		t.Errorf("WriteUint32BE: got %v, want ErrShortBuffer", err)
	}
	if err := w.WriteByte(9); err != nil {
		t.Errorf("WriteByte: %v", err)
	}
	if err := w.WriteByte(9); err != ErrShortBuffer {
		t.Errorf("WriteByte past end: got %v, want ErrShortBuffer", err)
	}
}

func TestPutInt16LE(t *testing.T) {
	buf := make([]byte, 6)
	PutInt16LE(buf, 0, 0x0102)
	PutInt16LE(buf, 2, -1)
	PutInt16LE(buf, 4, -32768)

	if v := Int16LE(buf, 0); v != 0x0102 {
		t.Errorf("Int16LE(0) = %#x, want 0x0102", v)
	}
	if v := Int16LE(buf, 2); v != -1 {
		t.Errorf("Int16LE(2) = %d, want -1", v)
	}
	if v := Int16LE(buf, 4); v != -32768 {
		t.Errorf("Int16LE(4) = %d, want -32768", v)
	}
}
