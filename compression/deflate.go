package compression

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Deflate stage errors
var (
	ErrDeflateCorrupted = errors.New("compression: corrupted deflate data")
)

// CompressionLevel represents a zlib compression level.
// Valid values are -2 to 9, where:
//   - -2: Huffman-only compression (klauspost extension)
//   - -1: Default compression (level 6)
//   - 0: No compression (store)
//   - 1: Best speed
//   - 9: Best compression
type CompressionLevel int

// Standard compression levels. The MMPC payload uses the moderate
// default level rather than best compression.
const (
	CompressionLevelHuffmanOnly CompressionLevel = -2
	CompressionLevelDefault     CompressionLevel = -1
	CompressionLevelNone        CompressionLevel = 0
	CompressionLevelBestSpeed   CompressionLevel = 1
	CompressionLevelBestSize    CompressionLevel = 9
)

// Pool for zlib writers to reduce allocations.
// Each pooled item contains both the writer and its destination buffer.
type zlibWriterPoolItem struct {
	writer *zlib.Writer
	buf    *bytes.Buffer
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w, _ := zlib.NewWriterLevel(buf, zlib.DefaultCompression)
		return &zlibWriterPoolItem{writer: w, buf: buf}
	},
}

// DeflateCompress compresses data with zlib at the default level.
func DeflateCompress(src []byte) ([]byte, error) {
	return DeflateCompressLevel(src, CompressionLevelDefault)
}

// DeflateCompressLevel compresses data with zlib at the given level.
func DeflateCompressLevel(src []byte, level CompressionLevel) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	// Use pool for default level (most common case)
	if level == CompressionLevelDefault {
		item := zlibWriterPool.Get().(*zlibWriterPoolItem)
		item.buf.Reset()
		item.writer.Reset(item.buf)

		if _, err := item.writer.Write(src); err != nil {
			item.writer.Close()
			zlibWriterPool.Put(item)
			return nil, err
		}

		if err := item.writer.Close(); err != nil {
			zlibWriterPool.Put(item)
			return nil, err
		}

		result := make([]byte, item.buf.Len())
		copy(result, item.buf.Bytes())
		zlibWriterPool.Put(item)

		return result, nil
	}

	buf := new(bytes.Buffer)
	w, err := zlib.NewWriterLevel(buf, int(level))
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// zlibReaderPoolItem wraps a zlib reader for pooling
type zlibReaderPoolItem struct {
	reader io.ReadCloser
	srcBuf *bytes.Reader
}

var zlibReaderPool = sync.Pool{
	New: func() any {
		return &zlibReaderPoolItem{
			srcBuf: bytes.NewReader(nil),
		}
	},
}

// DeflateDecompress decompresses zlib-encoded data. The decompressed
// size is not recorded in the MMPC container, so the stream is read to
// EOF rather than into a pre-sized buffer.
func DeflateDecompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	item := zlibReaderPool.Get().(*zlibReaderPoolItem)
	item.srcBuf.Reset(src)

	var err error
	if item.reader == nil {
		item.reader, err = zlib.NewReader(item.srcBuf)
		if err != nil {
			zlibReaderPool.Put(item)
			return nil, ErrDeflateCorrupted
		}
	} else if resetter, ok := item.reader.(zlib.Resetter); ok {
		if err = resetter.Reset(item.srcBuf, nil); err != nil {
			item.reader.Close()
			item.reader, err = zlib.NewReader(item.srcBuf)
			if err != nil {
				zlibReaderPool.Put(item)
				return nil, ErrDeflateCorrupted
			}
		}
	} else {
		item.reader.Close()
		item.reader, err = zlib.NewReader(item.srcBuf)
		if err != nil {
			zlibReaderPool.Put(item)
			return nil, ErrDeflateCorrupted
		}
	}

	dst, err := io.ReadAll(item.reader)
	zlibReaderPool.Put(item)
	if err != nil {
		return nil, ErrDeflateCorrupted
	}

	return dst, nil
}
