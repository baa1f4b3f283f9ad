// Package imageio connects the MMPC codec to its external collaborators:
// raster sources (DICOM files, PNG/JPEG images) and the PNG sink for
// reconstructed rasters.
//
// The codec itself never touches the filesystem; everything here is
// boundary glue. File handles are scoped: opened immediately before use
// and closed on every exit path.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/mrjoshuak/go-mmpc/mmpc"
)

// ReadRaster loads a raster from path, dispatching on the file
// extension: .dcm is read as DICOM, everything else through the
// standard image decoders (PNG, JPEG, GIF).
func ReadRaster(path string) (*mmpc.Raster, error) {
	if strings.EqualFold(filepath.Ext(path), ".dcm") {
		return ReadDICOM(path)
	}
	return ReadImage(path)
}

// ReadImage loads a raster from a PNG/JPEG/GIF file. 16-bit grayscale
// PNG input keeps its full depth; any other color model is reduced to
// 8-bit luma.
func ReadImage(path string) (*mmpc.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image into a raster.
func FromImage(img image.Image) *mmpc.Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if g16, ok := img.(*image.Gray16); ok {
		r := mmpc.NewRaster(w, h, 16)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r.Pix[y*w+x] = int32(g16.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return r
	}

	r := mmpc.NewRaster(w, h, 8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			r.Pix[y*w+x] = int32(g.Y)
		}
	}
	return r
}

// ToImage converts a raster into a stdlib image. Bit depths over 8
// map to Gray16, everything else to Gray. Samples are written as-is;
// no range rescaling is performed.
func ToImage(r *mmpc.Raster) image.Image {
	if r.BitDepth > 8 {
		img := image.NewGray16(image.Rect(0, 0, r.Width, r.Height))
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: uint16(r.Pix[y*r.Width+x])})
			}
		}
		return img
	}

	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(r.Pix[y*r.Width+x])})
		}
	}
	return img
}

// WritePNG persists a raster as a PNG file. The write is atomic: the
// image goes to a temp file in the target directory which is renamed
// into place only after a successful encode.
func WritePNG(path string, r *mmpc.Raster) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mmpc-*")
	if err != nil {
		return err
	}

	if err := png.Encode(tmp, ToImage(r)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// WriteFileAtomic writes data to path through a temp file + rename so a
// failure can never leave a partial file behind.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mmpc-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
