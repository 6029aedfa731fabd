package compress

import (
	"fmt"
	"io"
	"time"

	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
)

// Compressor turns a raw byte buffer into an encoded buffer.
type Compressor interface {
	// Compress encodes data and returns the encoded result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is never modified
	//   - Internal scratch buffers may be reused across calls
	Compress(data []byte) ([]byte, error)
}

// Decompressor reconstructs a raw buffer from an encoded buffer.
//
// Implementations validate every field before reading it and report
// errs.ErrMalformedStream instead of panicking on corrupt input.
type Decompressor interface {
	// Decompress decodes data and returns the original bytes.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is never modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
//
// All codecs in this package are immutable values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// FieldPolicy selects what an encoder does when a run count, match distance
// or match length does not fit its one-byte field.
type FieldPolicy uint8

const (
	// FieldClamp splits long runs, caps match lengths at 255 and shrinks the
	// look-back window to 255 bytes. Encoding never fails. It is the default.
	FieldClamp FieldPolicy = iota

	// FieldStrict leaves values untouched and fails with
	// errs.ErrUnsupportedField whenever one would overflow its field.
	FieldStrict
)

func (p FieldPolicy) String() string {
	switch p {
	case FieldClamp:
		return "clamp"
	case FieldStrict:
		return "strict"
	default:
		return "unknown"
	}
}

func (p FieldPolicy) valid() bool {
	return p == FieldClamp || p == FieldStrict
}

// CompressionStats describes a single compress or decompress call.
type CompressionStats struct {
	// Algorithm identifies the codec used.
	Algorithm format.CodecType

	// OriginalSize is the size of the raw data.
	OriginalSize int64

	// CompressedSize is the size of the encoded data.
	CompressedSize int64

	// Duration is the wall time spent inside the codec.
	Duration time.Duration
}

// CompressionRatio returns compressed size / original size.
//
// Values below 1.0 mean the codec saved space. Returns 0.0 when the original
// size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage. It is negative when
// the encoded form is larger than the input.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// ParseCodec maps a codec name to its type, reporting errs.ErrUnknownCodec
// for anything other than "rle" or "lz77".
func ParseCodec(name string) (format.CodecType, error) {
	codecType, ok := format.ParseCodecType(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected rle or lz77)", errs.ErrUnknownCodec, name)
	}

	return codecType, nil
}

// CreateCodec builds a Codec for codecType with default settings.
//
// Parameters:
//   - codecType: CodecRLE or CodecLZ77
//   - target: description of the caller's use, included in error messages
//
// Returns:
//   - Codec: codec instance for the given type
//   - error: wraps errs.ErrUnknownCodec for any other type
func CreateCodec(codecType format.CodecType, target string) (Codec, error) {
	switch codecType {
	case format.CodecRLE:
		return NewRLECodec()
	case format.CodecLZ77:
		return NewWindowCodec()
	default:
		return nil, fmt.Errorf("%w: invalid %s codec %d", errs.ErrUnknownCodec, target, uint8(codecType))
	}
}

var builtinCodecs = map[format.CodecType]Codec{
	format.CodecRLE:  RLECodec{},
	format.CodecLZ77: WindowCodec{},
}

// GetCodec returns the shared default Codec for codecType.
func GetCodec(codecType format.CodecType) (Codec, error) {
	if codec, ok := builtinCodecs[codecType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCodec, codecType)
}

// Measure compresses data with c and records the sizes and elapsed time.
func Measure(codecType format.CodecType, c Compressor, data []byte) ([]byte, CompressionStats, error) {
	start := time.Now()
	out, err := c.Compress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		Algorithm:      codecType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
		Duration:       elapsed,
	}, nil
}

// MeasureDecompress decompresses data with d and records the sizes and
// elapsed time. OriginalSize is the decoded size.
func MeasureDecompress(codecType format.CodecType, d Decompressor, data []byte) ([]byte, CompressionStats, error) {
	start := time.Now()
	out, err := d.Decompress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		Algorithm:      codecType,
		OriginalSize:   int64(len(out)),
		CompressedSize: int64(len(data)),
		Duration:       elapsed,
	}, nil
}

// CompressTo compresses data and writes the result to w.
// It returns the number of encoded bytes written. An empty result writes
// nothing.
func CompressTo(c Compressor, data []byte, w io.Writer) (int, error) {
	out, err := c.Compress(data)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}

	return w.Write(out)
}

// DecompressTo decompresses data and writes the result to w.
// It returns the number of decoded bytes written. An empty result writes
// nothing.
func DecompressTo(d Decompressor, data []byte, w io.Writer) (int, error) {
	out, err := d.Decompress(data)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}

	return w.Write(out)
}
