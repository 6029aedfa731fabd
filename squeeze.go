// Package squeeze provides two small byte-stream codecs and a heuristic that
// picks between them.
//
// # Codecs
//
//   - RLE: pairs of (count, value) bytes. Best for long runs of one byte.
//   - LZ77: literal and back-reference tokens over a look-back window of at
//     most 255 bytes. Best for repeated substrings.
//
// Encoded streams carry no header: the caller records which codec produced
// them and must decode with the same one.
//
// # Basic Usage
//
//	encoded, err := squeeze.RLEEncode([]byte("AAAABBBCCDAA"))
//	// encoded == 04 41 03 42 02 43 01 44 02 41
//
//	decoded, err := squeeze.RLEDecode(encoded)
//
// Choosing a codec automatically:
//
//	codec := squeeze.SuggestFromBytes(data)
//	res, err := squeeze.Compress(codec, data)
//	fmt.Printf("%s: %d -> %d bytes (%.2f)\n", codec, res.OriginalSize, res.CompressedSize, res.Ratio())
//
// # Package Structure
//
// This package wraps the compress and detect packages for the most common
// calls. Use compress directly to configure window size, minimum match length
// or field overflow policy, and the batch package to process many files.
package squeeze

import (
	"time"

	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/detect"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/hash"
)

// Codec identifiers re-exported for callers that only import this package.
const (
	RLE  = format.CodecRLE
	LZ77 = format.CodecLZ77
)

// RLEEncode run-length encodes data. Runs longer than 255 bytes are split.
// Encoding never fails with the default codec.
func RLEEncode(data []byte) ([]byte, error) {
	return compress.RLECodec{}.Compress(data)
}

// RLEDecode reverses RLEEncode.
//
// Returns errs.ErrMalformedStream when data has odd length or contains a
// zero count. An empty stream is accepted and decodes to empty output, so
// RLEDecode(RLEEncode(nil)) round-trips.
func RLEDecode(data []byte) ([]byte, error) {
	return compress.RLECodec{}.Decompress(data)
}

// WindowEncode encodes data with the LZ77-style window codec using a 255
// byte window and a minimum match of 3.
func WindowEncode(data []byte) ([]byte, error) {
	return compress.WindowCodec{}.Compress(data)
}

// WindowDecode reverses WindowEncode.
//
// Returns errs.ErrMalformedStream for truncated tokens, unknown tags, zero
// distances or lengths, and references reaching before the start of output.
// An empty stream decodes to empty output.
func WindowDecode(data []byte) ([]byte, error) {
	return compress.WindowCodec{}.Decompress(data)
}

// SuggestFromLabel returns RLE for text/*, application/json and
// application/xml labels, and LZ77 for anything else.
func SuggestFromLabel(label string) format.CodecType {
	return detect.SuggestFromLabel(label)
}

// SuggestFromBytes returns RLE when data contains only printable ASCII and
// ASCII whitespace, and LZ77 otherwise.
func SuggestFromBytes(data []byte) format.CodecType {
	return detect.SuggestFromBytes(data)
}

// Result is the outcome of Compress or Decompress.
type Result struct {
	// Data is the output buffer, owned by the caller.
	Data []byte

	// Codec is the codec that produced Data.
	Codec format.CodecType

	// OriginalSize is the size of the raw buffer.
	OriginalSize int

	// CompressedSize is the size of the encoded buffer.
	CompressedSize int

	// Duration is the time spent inside the codec.
	Duration time.Duration
}

// Ratio returns CompressedSize / OriginalSize, or 0 for empty input.
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}

	return float64(r.CompressedSize) / float64(r.OriginalSize)
}

// Compress encodes data with the default codec of type codecType.
//
// Returns errs.ErrUnknownCodec for a codec other than RLE or LZ77.
func Compress(codecType format.CodecType, data []byte) (Result, error) {
	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return Result{}, err
	}

	out, stats, err := compress.Measure(codecType, codec, data)
	if err != nil {
		return Result{}, err
	}

	return newResult(out, stats), nil
}

// CompressAuto picks a codec from name and data with detect.Suggest and
// encodes data with it. Result.Codec reports the choice.
func CompressAuto(name string, data []byte) (Result, error) {
	return Compress(detect.Suggest(name, data), data)
}

// Decompress decodes data, which must have been produced by codecType.
func Decompress(codecType format.CodecType, data []byte) (Result, error) {
	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return Result{}, err
	}

	out, stats, err := compress.MeasureDecompress(codecType, codec, data)
	if err != nil {
		return Result{}, err
	}

	return newResult(out, stats), nil
}

func newResult(out []byte, stats compress.CompressionStats) Result {
	return Result{
		Data:           out,
		Codec:          stats.Algorithm,
		OriginalSize:   int(stats.OriginalSize),
		CompressedSize: int(stats.CompressedSize),
		Duration:       stats.Duration,
	}
}

// ContentID returns the 64-bit xxHash of data, as recorded in batch reports.
func ContentID(data []byte) uint64 {
	return hash.ID(data)
}
