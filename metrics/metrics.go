// Package metrics computes rate and distortion measures for codec
// evaluation: mean squared error, PSNR, maximum absolute sample error
// and compression ratio, plus a JPEG 2000 reference point for
// comparison. It consumes rasters and byte counts; it is not part of
// the codec contract itself.
package metrics

import (
	"errors"
	"math"

	"github.com/mrjoshuak/go-mmpc/mmpc"
)

var (
	// ErrDimensionMismatch is returned when two rasters cannot be
	// compared sample by sample.
	ErrDimensionMismatch = errors.New("metrics: raster dimensions differ")
)

// MSE returns the mean squared error between two rasters of identical
// dimensions.
func MSE(a, b *mmpc.Raster) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, ErrDimensionMismatch
	}

	n := a.Width * a.Height
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a.Pix[i] - b.Pix[i])
		sum += d * d
	}
	return sum / float64(n), nil
}

// RMSE returns the root mean squared error between two rasters.
func RMSE(a, b *mmpc.Raster) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// PSNR returns the peak signal-to-noise ratio in dB between a reference
// raster and its reconstruction, using the reference raster's sample
// peak. Identical rasters yield +Inf.
func PSNR(ref, rec *mmpc.Raster) (float64, error) {
	mse, err := MSE(ref, rec)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}

	peak := float64(ref.MaxSample())
	return 10 * math.Log10(peak*peak/mse), nil
}

// MaxAbsError returns the largest absolute sample difference between
// two rasters of identical dimensions.
func MaxAbsError(a, b *mmpc.Raster) (int32, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, ErrDimensionMismatch
	}

	var maxDiff int32
	for i, v := range a.Pix[:a.Width*a.Height] {
		d := v - b.Pix[i]
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// BitsPerPixel returns the rate of an encoding in bits per sample.
func BitsPerPixel(r *mmpc.Raster, encodedSize int) float64 {
	return float64(encodedSize) * 8 / float64(r.Width*r.Height)
}

// CompressionRatio returns rawSize/encodedSize, where rawSize is the
// raster's uncompressed footprint at its native sample width (one byte
// per sample up to bit depth 8, two bytes beyond).
func CompressionRatio(r *mmpc.Raster, encodedSize int) float64 {
	if encodedSize <= 0 {
		return 0
	}

	bytesPerSample := 1
	if r.BitDepth > 8 {
		bytesPerSample = 2
	}
	raw := r.Width * r.Height * bytesPerSample
	return float64(raw) / float64(encodedSize)
}
