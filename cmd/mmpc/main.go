// mmpc encodes grayscale images into MMPC containers and decodes them back.
//
// Usage:
//
//	mmpc encode [options] <input> <output.mmpc>
//	mmpc decode [options] <input.mmpc> <output.png>
//
// Encode options:
//
//	-q <n>       quality / quantization step (default 30)
//	-b <n>       transform block size (default 8)
//	-level <n>   zlib level for the payload, -2..9; 0 selects the
//	             default (6), so a stored stream is not available here
//
// Inputs ending in .dcm are read as DICOM; everything else goes through
// the standard PNG/JPEG/GIF decoders. Decoded output is written as PNG,
// 8- or 16-bit grayscale depending on the container's bit depth.
//
// Exit codes:
//
//	0: success
//	1: encode/decode failure
//	2: usage error
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrjoshuak/go-mmpc/compression"
	"github.com/mrjoshuak/go-mmpc/imageio"
	"github.com/mrjoshuak/go-mmpc/mmpc"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "encode":
		os.Exit(runEncode(os.Args[2:]))
	case "decode":
		os.Exit(runDecode(os.Args[2:]))
	case "-h", "--help", "help":
		printUsage()
		os.Exit(0)
	case "-version", "--version":
		fmt.Printf("mmpc version %s\n", version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "mmpc: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  mmpc encode [-q quality] [-b blocksize] [-level zlib] <input> <output.mmpc>\n")
	fmt.Fprintf(os.Stderr, "  mmpc decode <input.mmpc> <output.png>\n")
}

func runEncode(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	quality := fs.Int("q", 30, "quality / quantization step")
	blockSize := fs.Int("b", mmpc.DefaultBlockSize, "transform block size")
	level := fs.Int("level", int(compression.CompressionLevelDefault), "zlib compression level, -2..9 (0 selects the default)")
	fs.Parse(args)

	if fs.NArg() != 2 {
		printUsage()
		return 2
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	raster, err := imageio.ReadRaster(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	opts := &mmpc.Options{
		BlockSize: *blockSize,
		Level:     compression.CompressionLevel(*level),
	}
	encoded, err := mmpc.Encode(raster, *quality, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	if err := imageio.WriteFileAtomic(outPath, encoded); err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	fmt.Printf("%s: %dx%d %d-bit -> %d bytes (q=%d)\n",
		outPath, raster.Width, raster.Height, raster.BitDepth, len(encoded), *quality)
	return 0
}

func runDecode(args []string) int {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 2 {
		printUsage()
		return 2
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	raster, err := mmpc.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	if err := imageio.WritePNG(outPath, raster); err != nil {
		fmt.Fprintf(os.Stderr, "mmpc: %v\n", err)
		return 1
	}

	fmt.Printf("%s: %dx%d %d-bit\n", outPath, raster.Width, raster.Height, raster.BitDepth)
	return 0
}
