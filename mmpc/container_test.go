package mmpc

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		h    Header
	}{
		{"typical", Header{Version: 1, Width: 512, Height: 512, BitDepth: 16, BlockSize: 8, QuantStep: 30, PayloadLength: 12345}},
		{"small", Header{Version: 1, Width: 1, Height: 1, BitDepth: 1, BlockSize: 1, QuantStep: 1, PayloadLength: 0}},
		{"limits", Header{Version: 1, Width: 0xffff, Height: 0xffff, BitDepth: 16, BlockSize: 0xff, QuantStep: 0xffff, PayloadLength: 0xffffffff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.h.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary: %v", err)
			}
			if len(data) != HeaderSize {
				t.Fatalf("header size = %d, want %d", len(data), HeaderSize)
			}

			var parsed Header
			if err := parsed.UnmarshalBinary(data); err != nil {
				t.Fatalf("UnmarshalBinary: %v", err)
			}
			if parsed != tt.h {
				t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", parsed, tt.h)
			}
		})
	}
}

func TestHeaderWireLayout(t *testing.T) {
	h := Header{
		Version:       1,
		Width:         0x0102,
		Height:        0x0304,
		BitDepth:      8,
		BlockSize:     8,
		QuantStep:     0x0506,
		PayloadLength: 0x0708090a,
	}
	data, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	want := []byte{
		'M', 'M', 'P', 'C',
		1,
		0x01, 0x02,
		0x03, 0x04,
		8,
		8,
		0x05, 0x06,
		0x07, 0x08, 0x09, 0x0a,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("wire layout:\ngot  %v\nwant %v", data, want)
	}
}

func TestHeaderBadMagic(t *testing.T) {
	h := Header{Version: 1, Width: 8, Height: 8, BitDepth: 8, BlockSize: 8, QuantStep: 1}
	data, _ := h.MarshalBinary()
	copy(data, "JUNK")

	var parsed Header
	if err := parsed.UnmarshalBinary(data); !errors.Is(err, ErrBadMagic) {
		t.Errorf("bad magic: got %v, want ErrBadMagic", err)
	}
}

func TestHeaderUnsupportedVersion(t *testing.T) {
	h := Header{Version: 1, Width: 8, Height: 8, BitDepth: 8, BlockSize: 8, QuantStep: 1}
	data, _ := h.MarshalBinary()
	data[4] = 2

	var parsed Header
	if err := parsed.UnmarshalBinary(data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("version 2: got %v, want ErrUnsupportedVersion", err)
	}
}

func TestHeaderTruncated(t *testing.T) {
	var parsed Header
	for n := 0; n < HeaderSize; n++ {
		data := make([]byte, n)
		copy(data, Magic)
		if err := parsed.UnmarshalBinary(data); !errors.Is(err, ErrTruncated) {
			t.Errorf("%d bytes: got %v, want ErrTruncated", n, err)
		}
	}
}

func TestSplitContainerTruncatedPayload(t *testing.T) {
	h := Header{Version: 1, Width: 8, Height: 8, BitDepth: 8, BlockSize: 8, QuantStep: 1, PayloadLength: 100}
	data, _ := h.MarshalBinary()
	data = append(data, make([]byte, 50)...)

	if _, _, err := splitContainer(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("short payload: got %v, want ErrTruncated", err)
	}
}

func TestSplitContainerTrailingBytes(t *testing.T) {
	h := Header{Version: 1, Width: 8, Height: 8, BitDepth: 8, BlockSize: 8, QuantStep: 1, PayloadLength: 4}
	data, _ := h.MarshalBinary()
	data = append(data, 1, 2, 3, 4, 0xff, 0xff)

	parsed, payload, err := splitContainer(data)
	if err != nil {
		t.Fatalf("splitContainer: %v", err)
	}
	if parsed.PayloadLength != 4 || !bytes.Equal(payload, []byte{1, 2, 3, 4}) {
		t.Errorf("payload = %v, want [1 2 3 4]", payload)
	}
}
