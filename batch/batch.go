// Package batch compresses or decompresses many files in one run.
//
// Inputs are given as glob patterns. Each matching file is read, encoded or
// decoded with its own codec choice and written to an output directory. A
// failing input does not stop the others: every failure is collected into a
// single multierror and the Report still lists all inputs in order.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/detect"
	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/collision"
	"github.com/arloliu/squeeze/internal/hash"
	"github.com/arloliu/squeeze/internal/options"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Processor runs batch jobs with a fixed configuration. It is safe to call
// Run from several goroutines.
type Processor struct {
	cfg    *config
	rle    compress.RLECodec
	window compress.WindowCodec
}

// NewProcessor creates a Processor.
//
// An output directory is required, and decompression requires WithCodec
// since encoded streams do not record their codec.
func NewProcessor(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.outputDir == "" {
		return nil, fmt.Errorf("%w: output directory is required", errs.ErrInvalidOption)
	}
	if cfg.mode == ModeDecompress && cfg.auto {
		return nil, fmt.Errorf("%w: decompression needs an explicit codec", errs.ErrInvalidOption)
	}

	rle, err := compress.NewRLECodec(compress.WithRLEFieldPolicy(cfg.policy))
	if err != nil {
		return nil, err
	}
	window, err := compress.NewWindowCodec(
		compress.WithWindowSize(cfg.windowSize),
		compress.WithMinMatch(cfg.minMatch),
		compress.WithWindowFieldPolicy(cfg.policy),
	)
	if err != nil {
		return nil, err
	}

	return &Processor{cfg: cfg, rle: rle, window: window}, nil
}

// Expand resolves glob patterns to regular files.
//
// Files keep the order in which patterns and their sorted matches produce
// them, and a file matched twice is listed once. Patterns that are invalid
// or match nothing are reported together in the returned error, alongside
// the files the other patterns matched.
func Expand(patterns []string) ([]string, error) {
	var merr *multierror.Error
	seen := make(map[string]struct{})
	files := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("pattern %q: %w", pattern, err))
			continue
		}

		found := 0
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			found++

			match = filepath.Clean(match)
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
		if found == 0 {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q", errs.ErrNoMatch, pattern))
		}
	}

	return files, merr.ErrorOrNil()
}

// Run processes every file matched by patterns.
//
// The returned Report is never nil once the output directory exists. The
// error aggregates pattern and per-input failures; a cancelled ctx stops
// inputs that have not started yet and is returned as is. Items are logged
// in input order after the last worker finishes.
func (p *Processor) Run(ctx context.Context, patterns ...string) (*Report, error) {
	inputs, expandErr := Expand(patterns)

	if err := os.MkdirAll(p.cfg.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	report := &Report{Mode: p.cfg.mode, Items: make([]Item, len(inputs))}
	names, planErrs := planOutputs(inputs)
	for i, input := range inputs {
		report.Items[i] = Item{Input: input}
	}

	var (
		mu   sync.Mutex
		merr *multierror.Error
	)
	if expandErr != nil {
		merr = multierror.Append(merr, expandErr)
	}

	contents := make([]content, len(inputs))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.concurrency)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				report.Items[i].Error = err.Error()
				return err
			}

			var err error
			if planErrs[i] != nil {
				err = planErrs[i]
				report.Items[i].Error = err.Error()
			} else {
				report.Items[i], contents[i], err = p.processFile(input, names[i])
			}
			if err != nil {
				mu.Lock()
				merr = multierror.Append(merr, err)
				mu.Unlock()
			}

			return nil
		})
	}

	waitErr := g.Wait()
	if err := resolveDuplicates(report, contents); err != nil {
		merr = multierror.Append(merr, err)
	}
	for _, item := range report.Items {
		p.logItem(item)
	}

	if waitErr != nil {
		return report, waitErr
	}

	return report, merr.ErrorOrNil()
}

// content identifies what processFile read from one input.
type content struct {
	id   uint64
	size int64
	read bool
}

// resolveDuplicates walks the inputs in order so that DuplicateOf always
// names an earlier input, whatever order the workers finished in.
func resolveDuplicates(report *Report, contents []content) error {
	var merr *multierror.Error
	tracker := collision.NewTracker()

	for i := range report.Items {
		if !contents[i].read {
			continue
		}
		item := &report.Items[i]
		first, err := tracker.Track(item.Input, contents[i].id, contents[i].size)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", item.Input, err))
			continue
		}
		item.DuplicateOf = first
	}

	report.Duplicates = tracker.Duplicates()
	report.HashCollision = tracker.HasCollision()

	return merr.ErrorOrNil()
}

// planOutputs assigns each input the base name of its output file. Inputs
// whose base name was already taken by an earlier input get an error
// instead, since both would write the same output.
func planOutputs(inputs []string) ([]string, []error) {
	names := make([]string, len(inputs))
	planErrs := make([]error, len(inputs))
	owners := make(map[string]string, len(inputs))

	for i, input := range inputs {
		base := filepath.Base(input)
		if owner, ok := owners[base]; ok {
			planErrs[i] = fmt.Errorf("%s: output name %q already used by %s", input, base, owner)
			continue
		}
		owners[base] = input
		names[i] = base
	}

	return names, planErrs
}

func (p *Processor) processFile(input, name string) (Item, content, error) {
	item := Item{Input: input}
	var seen content
	fail := func(err error) (Item, content, error) {
		err = fmt.Errorf("%s: %w", input, err)
		item.Error = err.Error()

		return item, seen, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fail(err)
	}

	seen = content{id: hash.ID(data), size: int64(len(data)), read: true}
	item.ContentID = fmt.Sprintf("%016x", seen.id)

	codecType := p.cfg.codec
	if p.cfg.mode == ModeCompress {
		item.Label = detect.Detect(input, data)
		if p.cfg.auto {
			codecType = detect.Suggest(input, data)
		}
	}
	item.Codec = codecType.String()

	var (
		out   []byte
		stats compress.CompressionStats
	)
	codec := p.codecFor(codecType)
	if p.cfg.mode == ModeCompress {
		out, stats, err = compress.Measure(codecType, codec, data)
	} else {
		out, stats, err = compress.MeasureDecompress(codecType, codec, data)
	}
	if err != nil {
		return fail(err)
	}

	item.OriginalSize = stats.OriginalSize
	item.CompressedSize = stats.CompressedSize
	item.Ratio = stats.CompressionRatio()
	item.DurationMicros = stats.Duration.Microseconds()
	item.Output = filepath.Join(p.cfg.outputDir, p.outputName(name, codecType))

	if err := os.WriteFile(item.Output, out, 0o644); err != nil {
		item.Output = ""
		return fail(err)
	}

	return item, seen, nil
}

func (p *Processor) codecFor(codecType format.CodecType) compress.Codec {
	if codecType == format.CodecRLE {
		return p.rle
	}

	return p.window
}

// outputName appends the codec extension when compressing. When
// decompressing it strips that extension, or appends ".out" if the name
// does not carry it.
func (p *Processor) outputName(name string, codecType format.CodecType) string {
	ext := Extension(codecType)
	if p.cfg.mode == ModeCompress {
		return name + ext
	}
	if trimmed, ok := strings.CutSuffix(name, ext); ok && trimmed != "" {
		return trimmed
	}

	return name + ".out"
}

// Extension returns the file extension used for outputs of codecType,
// including the leading dot.
func Extension(codecType format.CodecType) string {
	return "." + codecType.String()
}

func (p *Processor) logItem(item Item) {
	if p.cfg.logger == nil {
		return
	}
	if item.Failed() {
		p.cfg.logger.Printf("FAIL %s: %s", item.Input, item.Error)
		return
	}

	in, out := item.OriginalSize, item.CompressedSize
	if p.cfg.mode == ModeDecompress {
		in, out = out, in
	}
	dup := ""
	if item.DuplicateOf != "" {
		dup = " (same content as " + item.DuplicateOf + ")"
	}
	p.cfg.logger.Printf("%s %s -> %s [%s] %d -> %d bytes%s",
		p.cfg.mode, item.Input, item.Output, item.Codec, in, out, dup)
}
