// Package compression provides the two payload stages of the MMPC
// container: byte-level run-length coding and deflate (zlib).
package compression

import (
	"errors"
)

// Run-length codec errors
var (
	ErrRunLengthCorrupted = errors.New("compression: corrupted run-length data")
)

// maxRunLength is the largest run a single (count, value) pair can express.
const maxRunLength = 255

// RunLengthEncode compresses data as a sequence of (count, value) byte
// pairs. The input is scanned left to right; a pair is emitted whenever
// the byte value changes or the current run reaches 255.
//
// Every input byte is covered by exactly one pair, so the encoding is
// fully reversible. Encoding nil or empty input returns nil.
func RunLengthEncode(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}

	// Worst case: alternating values, one pair per byte.
	dst := make([]byte, 0, len(src))

	val := src[0]
	count := 1
	for _, b := range src[1:] {
		if b == val && count < maxRunLength {
			count++
			continue
		}
		dst = append(dst, byte(count), val)
		val = b
		count = 1
	}
	dst = append(dst, byte(count), val)

	return dst
}

// RunLengthDecode expands a sequence of (count, value) pairs back into
// the original byte stream. The input length must be even and every
// count must be non-zero; anything else is corrupt.
func RunLengthDecode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	if len(src)%2 != 0 {
		return nil, ErrRunLengthCorrupted
	}

	total := 0
	for i := 0; i < len(src); i += 2 {
		if src[i] == 0 {
			return nil, ErrRunLengthCorrupted
		}
		total += int(src[i])
	}

	dst := make([]byte, total)
	pos := 0
	for i := 0; i < len(src); i += 2 {
		count := int(src[i])
		val := src[i+1]
		for end := pos + count; pos < end; pos++ {
			dst[pos] = val
		}
	}

	return dst, nil
}
