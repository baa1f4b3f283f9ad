package metrics

import (
	"bytes"
	"fmt"

	"github.com/mrjoshuak/go-jpeg2000"

	"github.com/mrjoshuak/go-mmpc/imageio"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

// Baseline holds the rate/distortion point of a reference codec on the
// same raster, for report columns alongside the MMPC results.
type Baseline struct {
	EncodedSize int
	PSNR        float64
	Ratio       float64
}

// JPEG2000Baseline encodes the raster with the JPEG 2000 codec at the
// given quality (1-100, 0 for the codec default) and measures the
// resulting size and distortion. Medical-imaging evaluations
// conventionally report a JPEG 2000 point next to any experimental
// codec, so batch reports carry this column when requested.
func JPEG2000Baseline(r *mmpc.Raster, quality int) (*Baseline, error) {
	opts := jpeg2000.DefaultOptions()
	opts.Format = jpeg2000.FormatJ2K
	if quality > 0 {
		opts.Quality = quality
	}

	var buf bytes.Buffer
	if err := jpeg2000.Encode(&buf, imageio.ToImage(r), opts); err != nil {
		return nil, fmt.Errorf("metrics: jpeg2000 encode: %w", err)
	}

	decoded, err := jpeg2000.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("metrics: jpeg2000 decode: %w", err)
	}

	psnr, err := PSNR(r, imageio.FromImage(decoded))
	if err != nil {
		return nil, err
	}

	return &Baseline{
		EncodedSize: buf.Len(),
		PSNR:        psnr,
		Ratio:       CompressionRatio(r, buf.Len()),
	}, nil
}
