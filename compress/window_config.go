package compress

import (
	"fmt"

	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/options"
)

type windowConfig struct {
	windowSize int
	minMatch   int
	policy     FieldPolicy
}

// WindowOption configures a WindowCodec.
type WindowOption = options.Option[*windowConfig]

// WithWindowSize sets how many already-consumed bytes the encoder searches
// for matches.
//
// Under FieldClamp (the default) sizes above 255 are reduced to 255, the
// largest distance the format can carry. Under FieldStrict sizes up to 1024
// are kept and matches farther than 255 bytes are reported as errors.
func WithWindowSize(size int) WindowOption {
	return options.New(func(c *windowConfig) error {
		if size < 1 {
			return fmt.Errorf("%w: window size %d must be at least 1", errs.ErrInvalidOption, size)
		}
		c.windowSize = size

		return nil
	})
}

// WithMinMatch sets the shortest match emitted as a reference. The default
// is 3, so matches of two bytes or fewer are always written as literals.
func WithMinMatch(length int) WindowOption {
	return options.New(func(c *windowConfig) error {
		if length < format.DefaultMinMatch || length > format.MaxFieldValue {
			return fmt.Errorf("%w: minimum match %d outside [%d, %d]",
				errs.ErrInvalidOption, length, format.DefaultMinMatch, format.MaxFieldValue)
		}
		c.minMatch = length

		return nil
	})
}

// WithWindowFieldPolicy selects how out-of-range distances and lengths are
// handled.
func WithWindowFieldPolicy(policy FieldPolicy) WindowOption {
	return options.New(func(c *windowConfig) error {
		if !policy.valid() {
			return fmt.Errorf("%w: window field policy %d", errs.ErrInvalidOption, uint8(policy))
		}
		c.policy = policy

		return nil
	})
}

// finalize reconciles the window size with the policy once all options ran,
// so the result does not depend on option order.
func (c *windowConfig) finalize() error {
	switch c.policy {
	case FieldClamp:
		c.windowSize = min(c.windowSize, format.MaxFieldValue)
	case FieldStrict:
		if c.windowSize > format.MaxStrictWindowSize {
			return fmt.Errorf("%w: window size %d exceeds %d",
				errs.ErrInvalidOption, c.windowSize, format.MaxStrictWindowSize)
		}
	}

	return nil
}
