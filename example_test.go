package mmpc_test

import (
	"fmt"

	"github.com/mrjoshuak/go-mmpc/metrics"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

// Example_encodeDecode demonstrates the basic encode/decode round trip.
func Example_encodeDecode() {
	// A 16x16 8-bit raster of constant value 128.
	raster := mmpc.NewRaster(16, 16, 8)
	for i := range raster.Pix {
		raster.Pix[i] = 128
	}

	// Encode at quality 10 (quantization step 10).
	container, err := mmpc.Encode(raster, 10, nil)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	decoded, err := mmpc.Decode(container)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	maxErr, _ := metrics.MaxAbsError(raster, decoded)
	fmt.Printf("%dx%d %d-bit, max error %d\n",
		decoded.Width, decoded.Height, decoded.BitDepth, maxErr)
	// Output:
	// 16x16 8-bit, max error 0
}

// Example_options demonstrates encoding with a non-default block size.
func Example_options() {
	raster := mmpc.NewRaster(20, 20, 8)
	for i := range raster.Pix {
		raster.Pix[i] = int32(i % 200)
	}

	container, err := mmpc.Encode(raster, 1, &mmpc.Options{BlockSize: 4})
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	var header mmpc.Header
	if err := header.UnmarshalBinary(container); err != nil {
		fmt.Println("parse error:", err)
		return
	}
	fmt.Printf("block size %d, quant step %d\n", header.BlockSize, header.QuantStep)
	// Output:
	// block size 4, quant step 1
}
