package compress

import (
	"fmt"

	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/options"
	"github.com/arloliu/squeeze/internal/pool"
)

// WindowCodec is an LZ77-style codec producing literal and reference tokens.
//
// Wire format:
//
//	Literal   = [0x00][byte]
//	Reference = [0x01][distance u8][length u8]
//
// The encoder performs a brute-force backward search over the last
// WindowSize() input bytes at every position. Matches of at least MinMatch()
// bytes become references, everything else a literal.
//
// The zero value is ready to use and equals NewWindowCodec() with no options.
type WindowCodec struct {
	windowSize int
	minMatch   int
	policy     FieldPolicy
}

var _ Codec = (*WindowCodec)(nil)

// NewWindowCodec creates a window codec.
//
// Returns:
//   - WindowCodec: configured codec
//   - error: wraps errs.ErrInvalidOption if an option is out of range
//
// Example:
//
//	codec, err := compress.NewWindowCodec(compress.WithWindowSize(128))
//	if err != nil {
//		return err
//	}
//	encoded, err := codec.Compress(data)
func NewWindowCodec(opts ...WindowOption) (WindowCodec, error) {
	cfg := &windowConfig{
		windowSize: format.DefaultWindowSize,
		minMatch:   format.DefaultMinMatch,
		policy:     FieldClamp,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return WindowCodec{}, err
	}
	if err := cfg.finalize(); err != nil {
		return WindowCodec{}, err
	}

	return WindowCodec{
		windowSize: cfg.windowSize,
		minMatch:   cfg.minMatch,
		policy:     cfg.policy,
	}, nil
}

// WindowSize returns the look-back window in bytes.
func (c WindowCodec) WindowSize() int {
	if c.windowSize == 0 {
		return format.DefaultWindowSize
	}

	return c.windowSize
}

// MinMatch returns the shortest match length emitted as a reference.
func (c WindowCodec) MinMatch() int {
	if c.minMatch == 0 {
		return format.DefaultMinMatch
	}

	return c.minMatch
}

// Policy returns the codec's field policy.
func (c WindowCodec) Policy() FieldPolicy {
	return c.policy
}

// Compress encodes data into literal and reference tokens.
//
// Under FieldClamp match lengths stop at 255 and the window never exceeds
// 255 bytes, so encoding always succeeds. Under FieldStrict a chosen match
// whose distance or length exceeds 255 fails with errs.ErrUnsupportedField.
func (c WindowCodec) Compress(data []byte) ([]byte, error) {
	window, minMatch := c.WindowSize(), c.MinMatch()

	limit := format.MaxFieldValue
	if c.policy == FieldStrict {
		// Search one byte further so an overflowing length is observable.
		limit++
	}

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	buf.Grow(len(data) * format.LiteralTokenSize)

	for i := 0; i < len(data); {
		m := findLongestMatch(data, i, window, limit)
		if m.length < minMatch {
			buf.Append(format.TagLiteral, data[i])
			i++

			continue
		}

		if m.distance > format.MaxFieldValue {
			return nil, fmt.Errorf("%w: match distance %d at offset %d does not fit the distance field",
				errs.ErrUnsupportedField, m.distance, i)
		}
		if m.length > format.MaxFieldValue {
			return nil, fmt.Errorf("%w: match length of more than %d bytes at offset %d does not fit the length field",
				errs.ErrUnsupportedField, format.MaxFieldValue, i)
		}

		buf.Append(format.TagReference, byte(m.distance), byte(m.length))
		i += m.length
	}

	return buf.Detach(), nil
}

// Decompress decodes a token stream.
//
// References are copied one byte at a time from the growing output so that
// overlapping references (distance < length) repeat correctly. Truncated
// tokens, unknown tags, zero distances or lengths, and references reaching
// before the start of the output fail with errs.ErrMalformedStream.
func (c WindowCodec) Decompress(data []byte) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	buf.Grow(len(data))

	for i := 0; i < len(data); {
		switch tag := data[i]; tag {
		case format.TagLiteral:
			if i+format.LiteralTokenSize > len(data) {
				return nil, fmt.Errorf("%w: truncated literal at offset %d", errs.ErrMalformedStream, i)
			}
			buf.AppendByte(data[i+1])
			i += format.LiteralTokenSize

		case format.TagReference:
			if i+format.ReferenceTokenSize > len(data) {
				return nil, fmt.Errorf("%w: truncated reference at offset %d", errs.ErrMalformedStream, i)
			}
			distance, length := int(data[i+1]), int(data[i+2])
			if distance == 0 || length == 0 {
				return nil, fmt.Errorf("%w: zero distance or length in reference at offset %d",
					errs.ErrMalformedStream, i)
			}
			if distance > buf.Len() {
				return nil, fmt.Errorf("%w: reference at offset %d points %d bytes back with only %d decoded",
					errs.ErrMalformedStream, i, distance, buf.Len())
			}

			buf.Grow(length)
			from := buf.Len() - distance
			for k := 0; k < length; k++ {
				buf.AppendByte(buf.B[from+k])
			}
			i += format.ReferenceTokenSize

		default:
			return nil, fmt.Errorf("%w: unknown tag 0x%02x at offset %d", errs.ErrMalformedStream, tag, i)
		}
	}

	return buf.Detach(), nil
}
