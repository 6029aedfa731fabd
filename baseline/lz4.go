package baseline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/squeeze/compress"
	"github.com/pierrec/lz4/v4"
)

// Every LZ4 output starts with one of these markers. LZ4 block compression
// reports incompressible input by writing nothing, in which case the input
// is stored after lz4Stored.
const (
	lz4Stored byte = 0x00
	lz4Block  byte = 0x01
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec wraps the LZ4 block format.
type LZ4Codec struct{}

var _ compress.Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates an LZ4 block codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress encodes data as a marker byte followed by an LZ4 block, or by the
// raw input when LZ4 cannot shrink it.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		dst = append(dst[:1], data...)
		dst[0] = lz4Stored

		return dst, nil
	}
	dst[0] = lz4Block

	return dst[:1+n], nil
}

// Decompress reverses Compress. The decoded size is not stored, so the
// output buffer starts at four times the input and doubles until the block
// fits or maxDecodedSize is reached.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4Stored:
		return append([]byte(nil), data[1:]...), nil
	case lz4Block:
	default:
		return nil, fmt.Errorf("lz4 decompression failed: unknown marker 0x%02x", data[0])
	}

	block := data[1:]
	if len(block) == 0 {
		return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
	}
	for bufSize := len(block) * 4; bufSize <= maxDecodedSize; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}

	return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
}
