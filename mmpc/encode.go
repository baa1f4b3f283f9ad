package mmpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrjoshuak/go-mmpc/compression"
	"github.com/mrjoshuak/go-mmpc/internal/wire"
)

// Encoder errors
var (
	ErrInvalidBlockSize = errors.New("mmpc: invalid block size")
)

// DefaultBlockSize is the block size used when Options.BlockSize is zero.
const DefaultBlockSize = 8

// Options configures encoding. The zero value selects the defaults.
type Options struct {
	// BlockSize is the transform block size. 0 means DefaultBlockSize.
	// Negative values and values over 255 (the header field is one
	// byte) are rejected.
	BlockSize int

	// Level is the zlib level for the payload. The zero value selects
	// the moderate default (level 6), so the zlib store level
	// (CompressionLevelNone) cannot be requested through Options.
	Level compression.CompressionLevel
}

func (o *Options) blockSize() int {
	if o == nil || o.BlockSize == 0 {
		return DefaultBlockSize
	}
	return o.BlockSize
}

func (o *Options) level() compression.CompressionLevel {
	if o == nil || o.Level == 0 {
		return compression.CompressionLevelDefault
	}
	return o.Level
}

// quantStep maps the caller's quality parameter to the effective
// quantization step. Any integer is accepted: values below 1 clamp to 1,
// and values beyond the header's uint16 range clamp to 65535.
func quantStep(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 0xffff {
		return 0xffff
	}
	return quality
}

// Encode compresses a raster into MMPC container bytes.
//
// The raster is zero-padded up to a multiple of the block size, each
// block is transformed with the orthonormal DCT basis, and the
// coefficients are divided by the quantization step and rounded.
// Quantized values outside the int16 range saturate to ±32767/-32768
// rather than wrapping. The int16 stream is serialized little-endian,
// run-length coded at byte granularity and deflated into the payload.
//
// Encode either returns a complete container or an error; it never
// produces partial output.
func Encode(r *Raster, quality int, opts *Options) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	b := opts.blockSize()
	if b < 0 || b > 0xff {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, b)
	}

	step := quantStep(quality)
	basis := DCTBasis(b)

	// Pad to whole blocks with zero samples. The padding is derived
	// from (width, height, blockSize) alone and reproduced by the
	// decoder; it is never stored.
	padW := (r.Width + b - 1) / b * b
	padH := (r.Height + b - 1) / b * b
	padded := make([]float64, padW*padH)
	for y := 0; y < r.Height; y++ {
		row := r.Pix[y*r.Width : (y+1)*r.Width]
		for x, v := range row {
			padded[y*padW+x] = float64(v)
		}
	}

	nbx := padW / b
	nblocks := nbx * (padH / b)
	elemBytes := 2 * b * b
	coeffBytes := make([]byte, nblocks*elemBytes)

	// Blocks are independent and write to disjoint slots of
	// coeffBytes, so the parallel path is byte-identical to the
	// sequential one.
	ParallelFor(nblocks, func(i int) {
		bx, by := i%nbx, i/nbx
		block := make([]float64, b*b)
		tmp := make([]float64, b*b)
		coeff := make([]float64, b*b)

		for y := 0; y < b; y++ {
			src := (by*b+y)*padW + bx*b
			for x := 0; x < b; x++ {
				block[y*b+x] = padded[src+x]
			}
		}

		forwardTransform(basis, block, tmp, coeff, b)

		base := i * elemBytes
		for j, c := range coeff {
			q := math.Round(c / float64(step))
			wire.PutInt16LE(coeffBytes, base+2*j, saturateInt16(q))
		}
	})

	rle := compression.RunLengthEncode(coeffBytes)
	payload, err := compression.DeflateCompressLevel(rle, opts.level())
	if err != nil {
		return nil, err
	}

	h := Header{
		Version:       Version,
		Width:         uint16(r.Width),
		Height:        uint16(r.Height),
		BitDepth:      uint8(r.BitDepth),
		BlockSize:     uint8(b),
		QuantStep:     uint16(step),
		PayloadLength: uint32(len(payload)),
	}
	header, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out, nil
}

// saturateInt16 clamps a rounded float into the int16 range.
func saturateInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
