package baseline

import "github.com/arloliu/squeeze/compress"

// ZstdCodec wraps Zstandard frames at the default level.
//
// The pure Go encoder from klauspost/compress is used unless the binary is
// built with the cgozstd tag and cgo enabled, which switches to the libzstd
// bindings. Both produce standard frames and decode each other's output.
type ZstdCodec struct{}

var _ compress.Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
