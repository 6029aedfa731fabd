package batch

import (
	"fmt"
	"log"
	"runtime"

	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/options"
)

// Mode selects the direction of a batch run.
type Mode uint8

const (
	// ModeCompress encodes every input. It is the default.
	ModeCompress Mode = iota
	// ModeDecompress decodes every input with an explicitly chosen codec.
	ModeDecompress
)

func (m Mode) String() string {
	switch m {
	case ModeCompress:
		return "compress"
	case ModeDecompress:
		return "decompress"
	default:
		return "unknown"
	}
}

type config struct {
	codec       format.CodecType
	auto        bool
	mode        Mode
	outputDir   string
	concurrency int
	logger      *log.Logger
	policy      compress.FieldPolicy
	windowSize  int
	minMatch    int
}

func defaultConfig() *config {
	return &config{
		auto:        true,
		mode:        ModeCompress,
		concurrency: runtime.GOMAXPROCS(0),
		policy:      compress.FieldClamp,
		windowSize:  format.DefaultWindowSize,
		minMatch:    format.DefaultMinMatch,
	}
}

// Option configures a Processor.
type Option = options.Option[*config]

// WithCodec fixes the codec used for every input, disabling automatic
// selection.
func WithCodec(codecType format.CodecType) Option {
	return options.New(func(c *config) error {
		if !codecType.Valid() {
			return fmt.Errorf("%w: codec %d", errs.ErrUnknownCodec, uint8(codecType))
		}
		c.codec = codecType
		c.auto = false

		return nil
	})
}

// WithAutoCodec picks a codec per input from its signature, extension or
// content. This is the default for compression.
func WithAutoCodec() Option {
	return options.NoError(func(c *config) {
		c.auto = true
	})
}

// WithMode selects compression or decompression.
func WithMode(mode Mode) Option {
	return options.New(func(c *config) error {
		if mode != ModeCompress && mode != ModeDecompress {
			return fmt.Errorf("%w: batch mode %d", errs.ErrInvalidOption, uint8(mode))
		}
		c.mode = mode

		return nil
	})
}

// WithOutputDir sets the directory outputs are written to. It is created on
// demand.
func WithOutputDir(dir string) Option {
	return options.NoError(func(c *config) {
		c.outputDir = dir
	})
}

// WithConcurrency bounds the number of inputs processed at once.
// The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency %d must be at least 1", errs.ErrInvalidOption, n)
		}
		c.concurrency = n

		return nil
	})
}

// WithLogger enables one progress line per input. A nil logger is silent.
func WithLogger(logger *log.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithFieldPolicy sets the field policy of both codecs.
func WithFieldPolicy(policy compress.FieldPolicy) Option {
	return options.NoError(func(c *config) {
		c.policy = policy
	})
}

// WithWindowSize sets the window codec's look-back window.
func WithWindowSize(size int) Option {
	return options.NoError(func(c *config) {
		c.windowSize = size
	})
}

// WithMinMatch sets the window codec's shortest back-reference.
func WithMinMatch(length int) Option {
	return options.NoError(func(c *config) {
		c.minMatch = length
	})
}
