//go:build !cgozstd || !cgo

package baseline

import (
	"fmt"
	"sync"

	"github.com/arloliu/squeeze/internal/pool"
	"github.com/klauspost/compress/zstd"
)

// EncodeAll and DecodeAll may be called concurrently, so one encoder and one
// decoder serve every ZstdCodec. Both are built on first use.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	})
)

// Compress encodes data as one checksummed Zstandard frame.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, err := zstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)
	buf.B = encoder.EncodeAll(data, buf.B[:0])

	return buf.Detach(), nil
}

// Decompress decodes Zstandard frames. Output larger than 128MiB is refused.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, err := zstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
