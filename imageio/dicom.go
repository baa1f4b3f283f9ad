package imageio

import (
	"errors"
	"fmt"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrjoshuak/go-mmpc/mmpc"
)

var (
	// ErrNoPixelData is returned when a DICOM file carries no native
	// pixel data the codec can use.
	ErrNoPixelData = errors.New("imageio: dicom file has no native pixel data")
)

// defaultDICOMBitDepth is assumed when BitsAllocated is absent.
const defaultDICOMBitDepth = 16

// ReadDICOM loads the first frame of a DICOM file as a grayscale
// raster. Multi-frame files use frame 0; multi-sample pixels keep only
// the first sample. The bit depth comes from BitsAllocated, falling
// back to the frame's own bits-per-sample.
func ReadDICOM(path string) (*mmpc.Raster, error) {
	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("imageio: parse %s: %w", path, err)
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}
	info := dicom.MustGetPixelDataInfo(el.Value)
	if info.IsEncapsulated || len(info.Frames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}

	native, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, fmt.Errorf("imageio: %s: %w", path, err)
	}

	rows, cols := native.Rows(), native.Cols()
	spp := native.SamplesPerPixel()
	if rows <= 0 || cols <= 0 || spp < 1 {
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}

	bitDepth := native.BitsPerSample()
	if v, ok := datasetInt(&ds, tag.BitsAllocated); ok {
		bitDepth = v
	}
	if bitDepth < 1 || bitDepth > 16 {
		bitDepth = defaultDICOMBitDepth
	}

	r := mmpc.NewRaster(cols, rows, bitDepth)
	n := rows * cols

	// RawDataSlice unrolls samples per pixel in row order; sample 0 of
	// pixel i sits at i*spp.
	switch data := native.RawDataSlice().(type) {
	case []uint8:
		if len(data) < n*spp {
			return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
		}
		for i := 0; i < n; i++ {
			r.Pix[i] = int32(data[i*spp])
		}
	case []uint16:
		if len(data) < n*spp {
			return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
		}
		for i := 0; i < n; i++ {
			r.Pix[i] = int32(data[i*spp])
		}
	case []uint32:
		if len(data) < n*spp {
			return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
		}
		for i := 0; i < n; i++ {
			r.Pix[i] = int32(data[i*spp])
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}

	return r, nil
}

// datasetInt fetches the first integer value of a dataset element.
func datasetInt(ds *dicom.Dataset, t tag.Tag) (int, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return 0, false
	}
	vals, ok := el.Value.GetValue().([]int)
	if !ok || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}
