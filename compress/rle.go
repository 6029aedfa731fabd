package compress

import (
	"fmt"

	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/options"
	"github.com/arloliu/squeeze/internal/pool"
)

// RLECodec encodes data as a sequence of (count, value) byte pairs.
//
// Every maximal run of equal bytes becomes one or more pairs; a single byte
// is still written as (1, value). Counts are always in [1, 255], so runs
// longer than 255 bytes are split into consecutive pairs under FieldClamp.
//
// The zero value is ready to use and applies FieldClamp.
type RLECodec struct {
	policy FieldPolicy
}

var _ Codec = (*RLECodec)(nil)

type rleConfig struct {
	policy FieldPolicy
}

// RLEOption configures an RLECodec.
type RLEOption = options.Option[*rleConfig]

// WithRLEFieldPolicy selects how runs longer than 255 bytes are handled.
func WithRLEFieldPolicy(policy FieldPolicy) RLEOption {
	return options.New(func(c *rleConfig) error {
		if !policy.valid() {
			return fmt.Errorf("%w: rle field policy %d", errs.ErrInvalidOption, uint8(policy))
		}
		c.policy = policy

		return nil
	})
}

// NewRLECodec creates an RLE codec.
//
// Returns:
//   - RLECodec: configured codec
//   - error: wraps errs.ErrInvalidOption if an option is out of range
func NewRLECodec(opts ...RLEOption) (RLECodec, error) {
	cfg := &rleConfig{policy: FieldClamp}
	if err := options.Apply(cfg, opts...); err != nil {
		return RLECodec{}, err
	}

	return RLECodec{policy: cfg.policy}, nil
}

// Policy returns the codec's field policy.
func (c RLECodec) Policy() FieldPolicy {
	return c.policy
}

// Compress run-length encodes data.
//
// Empty input yields empty output. With FieldStrict, a run longer than 255
// bytes fails with errs.ErrUnsupportedField instead of being split.
func (c RLECodec) Compress(data []byte) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	buf.Grow(len(data) * format.RLEPairSize)

	for i := 0; i < len(data); {
		value := data[i]
		run := 1
		for i+run < len(data) && data[i+run] == value {
			run++
		}

		if run > format.MaxFieldValue && c.policy == FieldStrict {
			return nil, fmt.Errorf("%w: run of %d bytes at offset %d does not fit the count field",
				errs.ErrUnsupportedField, run, i)
		}

		for remaining := run; remaining > 0; {
			count := min(remaining, format.MaxFieldValue)
			buf.Append(byte(count), value)
			remaining -= count
		}

		i += run
	}

	return buf.Detach(), nil
}

// Decompress expands (count, value) pairs.
//
// The stream must consist of whole pairs with non-zero counts; anything else
// fails with errs.ErrMalformedStream. Empty input yields empty output.
func (c RLECodec) Decompress(data []byte) ([]byte, error) {
	if len(data)%format.RLEPairSize != 0 {
		return nil, fmt.Errorf("%w: rle stream has odd length %d, last pair is truncated",
			errs.ErrMalformedStream, len(data))
	}

	// First pass validates counts and sizes the output exactly.
	total := 0
	for i := 0; i < len(data); i += format.RLEPairSize {
		if data[i] == 0 {
			return nil, fmt.Errorf("%w: zero run count in pair %d", errs.ErrMalformedStream, i/format.RLEPairSize)
		}
		total += int(data[i])
	}

	out := make([]byte, total)
	pos := 0
	for i := 0; i < len(data); i += format.RLEPairSize {
		count, value := int(data[i]), data[i+1]
		for k := 0; k < count; k++ {
			out[pos+k] = value
		}
		pos += count
	}

	return out, nil
}
