package baseline

import (
	"bytes"

	"github.com/arloliu/squeeze/compress"
)

// StoreCodec copies data through unchanged. It anchors comparisons at a
// ratio of exactly 1.0.
type StoreCodec struct{}

var _ compress.Codec = (*StoreCodec)(nil)

// NewStoreCodec creates a pass-through codec.
func NewStoreCodec() StoreCodec {
	return StoreCodec{}
}

// Compress returns a copy of data.
func (c StoreCodec) Compress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Decompress returns a copy of data.
func (c StoreCodec) Decompress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}
