// Package mmpc implements the MMPC lossy still-image codec for
// single-channel rasters.
//
// The codec transforms a grayscale pixel buffer into a compact binary
// container and reconstructs an approximate raster from it. Encoding
// applies an orthonormal block transform (DCT-II) to fixed-size pixel
// blocks, quantizes the coefficients with a single scalar step, serializes
// them as little-endian int16, run-length codes the bytes, and deflates
// the result. The container is a fixed 17-byte big-endian header followed
// by the compressed payload.
package mmpc

import (
	"errors"
	"fmt"
)

// Raster errors
var (
	ErrNilRaster     = errors.New("mmpc: nil raster")
	ErrInvalidRaster = errors.New("mmpc: invalid raster")
)

// Raster is a rectangular grid of integer samples with a single channel.
// Pix holds Width*Height samples in row-major order. Valid sample values
// lie in [0, 2^BitDepth - 1].
type Raster struct {
	Pix      []int32
	Width    int
	Height   int
	BitDepth int
}

// NewRaster allocates a zero-filled raster.
func NewRaster(width, height, bitDepth int) *Raster {
	return &Raster{
		Pix:      make([]int32, width*height),
		Width:    width,
		Height:   height,
		BitDepth: bitDepth,
	}
}

// MaxSample returns the largest valid sample value, 2^BitDepth - 1.
func (r *Raster) MaxSample() int32 {
	return int32(1)<<uint(r.BitDepth) - 1
}

// At returns the sample at (x, y). The caller must stay in bounds.
func (r *Raster) At(x, y int) int32 {
	return r.Pix[y*r.Width+x]
}

// Set stores a sample at (x, y). The caller must stay in bounds.
func (r *Raster) Set(x, y int, v int32) {
	r.Pix[y*r.Width+x] = v
}

// validate checks the structural invariants required for encoding.
// The header stores dimensions as uint16 and bit depth as a single byte,
// which bounds what a raster may carry into a container.
func (r *Raster) validate() error {
	if r == nil {
		return ErrNilRaster
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if r.Width > 0xffff || r.Height > 0xffff {
		return fmt.Errorf("%w: dimensions %dx%d exceed container limit", ErrInvalidRaster, r.Width, r.Height)
	}
	if r.BitDepth < 1 || r.BitDepth > 16 {
		return fmt.Errorf("%w: bit depth %d", ErrInvalidRaster, r.BitDepth)
	}
	if len(r.Pix) < r.Width*r.Height {
		return fmt.Errorf("%w: pixel buffer has %d samples, need %d",
			ErrInvalidRaster, len(r.Pix), r.Width*r.Height)
	}
	return nil
}
