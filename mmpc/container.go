package mmpc

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/go-mmpc/internal/wire"
)

// Container format errors. All of them indicate a malformed container
// and are only produced while decoding.
var (
	ErrBadMagic           = errors.New("mmpc: bad magic")
	ErrUnsupportedVersion = errors.New("mmpc: unsupported container version")
	ErrTruncated          = errors.New("mmpc: truncated container")
	ErrCoefficientStream  = errors.New("mmpc: corrupt coefficient stream")
)

// Container format constants
const (
	// Magic identifies an MMPC container. It occupies the first four
	// bytes of every file.
	Magic = "MMPC"

	// Version is the container version written by this package. The
	// decoder rejects any other version byte.
	Version = 1

	// HeaderSize is the fixed size of the container header in bytes.
	HeaderSize = 17
)

// Header is the fixed MMPC container header. All multi-byte integers are
// big-endian on the wire:
//
//	offset  size  field
//	0       4     magic = "MMPC"
//	4       1     version
//	5       2     width
//	7       2     height
//	9       1     bitDepth
//	10      1     blockSize
//	11      2     quantStep
//	13      4     payloadLength
//
// PayloadLength is the exact byte count of the compressed payload that
// follows the header.
type Header struct {
	Version       uint8
	Width         uint16
	Height        uint16
	BitDepth      uint8
	BlockSize     uint8
	QuantStep     uint16
	PayloadLength uint32
}

// MarshalBinary serializes the header into its 17-byte wire form.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	w := wire.NewWriter(buf)

	w.WriteBytes([]byte(Magic))
	w.WriteByte(h.Version)
	w.WriteUint16BE(h.Width)
	w.WriteUint16BE(h.Height)
	w.WriteByte(h.BitDepth)
	w.WriteByte(h.BlockSize)
	w.WriteUint16BE(h.QuantStep)
	if err := w.WriteUint32BE(h.PayloadLength); err != nil {
		return nil, err
	}

	return buf, nil
}

// UnmarshalBinary parses a header from the first 17 bytes of data.
// It validates the magic and version but not the payload, which may not
// be present yet.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d header bytes, need %d", ErrTruncated, len(data), HeaderSize)
	}

	r := wire.NewReader(data)

	magic, _ := r.ReadBytes(4)
	if string(magic) != Magic {
		return fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	h.Version, _ = r.ReadByte()
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	h.Width, _ = r.ReadUint16BE()
	h.Height, _ = r.ReadUint16BE()
	h.BitDepth, _ = r.ReadByte()
	h.BlockSize, _ = r.ReadByte()
	h.QuantStep, _ = r.ReadUint16BE()
	h.PayloadLength, _ = r.ReadUint32BE()

	return nil
}

// splitContainer parses the header and slices out exactly PayloadLength
// bytes of payload. Trailing bytes beyond the payload are ignored.
func splitContainer(data []byte) (*Header, []byte, error) {
	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return nil, nil, err
	}

	payloadEnd := HeaderSize + int(h.PayloadLength)
	if len(data) < payloadEnd {
		return nil, nil, fmt.Errorf("%w: payload has %d bytes, header promises %d",
			ErrTruncated, len(data)-HeaderSize, h.PayloadLength)
	}

	return &h, data[HeaderSize:payloadEnd], nil
}
