// Package compress provides the two squeeze codecs: run-length encoding and
// an LZ77-style sliding-window encoding.
//
// # Overview
//
// Both codecs implement the same interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are pure functions of their input. They never modify the input
// slice and always return a freshly allocated result, so a single codec value
// can be shared between goroutines.
//
// # RLE (format.CodecRLE)
//
//	codec, _ := compress.NewRLECodec()
//	encoded, _ := codec.Compress([]byte("AAAABBBCCDAA"))
//	// encoded = 04 41 03 42 02 43 01 44 02 41
//
// The stream is a sequence of [count][value] pairs with count in [1, 255].
// Runs of a single byte still cost two bytes, so RLE only pays off on data
// with long runs of identical bytes.
//
// # Window codec (format.CodecLZ77)
//
//	codec, _ := compress.NewWindowCodec()
//	encoded, _ := codec.Compress([]byte("ABABABAB"))
//	// encoded = 00 41 00 42 01 02 06
//
// The stream is a sequence of tokens:
//
//	Literal   = [0x00][byte]
//	Reference = [0x01][distance][length]
//
// Distance and length are single bytes. The encoder therefore searches at
// most 255 bytes back and never emits a match longer than 255 bytes. A
// reference is only emitted for matches of three bytes or more.
//
// # Field policy
//
// FieldClamp (default) splits and caps values so they fit their one-byte
// fields. FieldStrict keeps the encoder's raw choices and returns
// errs.ErrUnsupportedField when one of them would overflow. Strict mode is
// mostly useful to inspect what an unclamped encoder would have produced,
// for example with a 1024-byte window.
//
// # Errors
//
// Decoders check bounds before every read. Corrupt input fails with
// errs.ErrMalformedStream; asking for a codec other than rle or lz77 fails
// with errs.ErrUnknownCodec.
package compress
