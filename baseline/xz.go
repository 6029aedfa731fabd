package baseline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/internal/pool"
	"github.com/ulikunitz/xz"
)

// XZCodec wraps the xz container with LZMA2 at the library defaults.
type XZCodec struct{}

var _ compress.Codec = (*XZCodec)(nil)

// NewXZCodec creates an xz codec.
func NewXZCodec() XZCodec {
	return XZCodec{}
}

// Compress encodes data as a single xz stream.
func (c XZCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("xz compression failed: %w", err)
	}

	return buf.Detach(), nil
}

// Decompress decodes an xz stream.
func (c XZCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xz decompression failed: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xz decompression failed: %w", err)
	}

	return out, nil
}
