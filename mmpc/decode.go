package mmpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrjoshuak/go-mmpc/compression"
	"github.com/mrjoshuak/go-mmpc/internal/wire"
)

// Decoder errors
var (
	ErrHeaderField = errors.New("mmpc: invalid header field")
)

// Decode reconstructs a raster from MMPC container bytes.
//
// It parses and validates the header, slices out exactly PayloadLength
// bytes of payload, inflates it, expands the run-length pairs into the
// coefficient byte stream and reinterprets it as little-endian int16
// values. Each block is dequantized, inverse transformed with the
// transposed basis, placed into the padded raster, then the result is
// cropped to the original dimensions, rounded and clamped into
// [0, 2^bitDepth - 1].
func Decode(data []byte) (*Raster, error) {
	h, payload, err := splitContainer(data)
	if err != nil {
		return nil, err
	}
	if err := validateHeaderFields(h); err != nil {
		return nil, err
	}

	rle, err := compression.DeflateDecompress(payload)
	if err != nil {
		return nil, err
	}
	stream, err := compression.RunLengthDecode(rle)
	if err != nil {
		return nil, err
	}

	b := int(h.BlockSize)
	w, ht := int(h.Width), int(h.Height)
	elemBytes := 2 * b * b
	if len(stream) == 0 || len(stream)%elemBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %dx%d blocks",
			ErrCoefficientStream, len(stream), b, b)
	}

	// The padded dimensions are recomputed exactly as the encoder
	// derived them; the stream must hold one block per padded position.
	padW := (w + b - 1) / b * b
	padH := (ht + b - 1) / b * b
	nbx := padW / b
	nblocks := nbx * (padH / b)
	if len(stream)/elemBytes != nblocks {
		return nil, fmt.Errorf("%w: %d blocks, expected %d",
			ErrCoefficientStream, len(stream)/elemBytes, nblocks)
	}

	step := float64(h.QuantStep)
	basis := DCTBasis(b)
	padded := make([]float64, padW*padH)

	ParallelFor(nblocks, func(i int) {
		bx, by := i%nbx, i/nbx
		coeff := make([]float64, b*b)
		tmp := make([]float64, b*b)
		block := make([]float64, b*b)

		base := i * elemBytes
		for j := range coeff {
			coeff[j] = float64(wire.Int16LE(stream, base+2*j)) * step
		}

		inverseTransform(basis, coeff, tmp, block, b)

		for y := 0; y < b; y++ {
			dst := (by*b+y)*padW + bx*b
			for x := 0; x < b; x++ {
				padded[dst+x] = block[y*b+x]
			}
		}
	})

	out := NewRaster(w, ht, int(h.BitDepth))
	maxSample := out.MaxSample()
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			v := math.Round(padded[y*padW+x])
			if v < 0 {
				v = 0
			} else if v > float64(maxSample) {
				v = float64(maxSample)
			}
			out.Pix[y*w+x] = int32(v)
		}
	}

	return out, nil
}

// validateHeaderFields rejects header field values no encoder can
// produce: zero dimensions, a zero block size or quantization step, and
// bit depths outside [1, 16].
func validateHeaderFields(h *Header) error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrHeaderField, h.Width, h.Height)
	}
	if h.BlockSize == 0 {
		return fmt.Errorf("%w: block size 0", ErrHeaderField)
	}
	if h.BitDepth < 1 || h.BitDepth > 16 {
		return fmt.Errorf("%w: bit depth %d", ErrHeaderField, h.BitDepth)
	}
	if h.QuantStep == 0 {
		return fmt.Errorf("%w: quantization step 0", ErrHeaderField)
	}
	return nil
}
