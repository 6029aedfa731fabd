package baseline

import (
	"fmt"

	"github.com/arloliu/squeeze/compress"
	"github.com/klauspost/compress/s2"
)

// S2Codec wraps the S2 block format.
type S2Codec struct{}

var _ compress.Codec = (*S2Codec)(nil)

// NewS2Codec creates an S2 block codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress encodes data as a single S2 block.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes a single S2 block.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
