package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/arloliu/squeeze/baseline"
	"github.com/arloliu/squeeze/batch"
	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/detect"
	"github.com/arloliu/squeeze/format"
	"github.com/arloliu/squeeze/internal/hash"
	"github.com/hashicorp/go-multierror"
	"github.com/noxer/bytewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const usageExitCode = 2

func compressFile(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("compress: expected IN and OUT (use - for stdin or stdout)", usageExitCode)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	codecType, auto, err := parseAlgorithm(c.String("algorithm"), true)
	if err != nil {
		return err
	}
	if out == "-" && !c.Bool("force") && isTerminal(c.App.Writer) {
		return cli.Exit("compress: refusing to write encoded data to a terminal (use --force)", usageExitCode)
	}

	data, err := readInput(c, in)
	if err != nil {
		return err
	}
	if auto {
		name := in
		if in == "-" {
			name = ""
		}
		codecType = detect.Suggest(name, data)
	}

	codec, err := newCodec(c, codecType)
	if err != nil {
		return err
	}

	start := time.Now()
	n, err := writeOutput(c, out, func(w io.Writer) (int, error) {
		return compress.CompressTo(codec, data, w)
	})
	if err != nil {
		return fmt.Errorf("compress %s: %w", in, err)
	}

	if c.Bool("verbose") {
		stats := compress.CompressionStats{
			Algorithm:      codecType,
			OriginalSize:   int64(len(data)),
			CompressedSize: int64(n),
			Duration:       time.Since(start),
		}
		fmt.Fprintf(c.App.ErrWriter, "%s: %d -> %d bytes (ratio %.3f, %s)\n",
			codecType, stats.OriginalSize, stats.CompressedSize, stats.CompressionRatio(), stats.Duration)
	}

	return nil
}

func decompressFile(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("decompress: expected IN and OUT (use - for stdin or stdout)", usageExitCode)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	codecType, _, err := parseAlgorithm(c.String("algorithm"), false)
	if err != nil {
		return err
	}
	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return err
	}

	data, err := readInput(c, in)
	if err != nil {
		return err
	}
	_, err = writeOutput(c, out, func(w io.Writer) (int, error) {
		return compress.DecompressTo(codec, data, w)
	})
	if err != nil {
		return fmt.Errorf("decompress %s: %w", in, err)
	}

	return nil
}

func detectFiles(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("detect: expected at least one FILE", usageExitCode)
	}

	var merr *multierror.Error
	for _, path := range c.Args().Slice() {
		label, err := detect.DetectFile(path)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		id, err := fileContentID(path)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%016x\n", path, label, detect.SuggestFromLabel(label), id)
	}

	return merr.ErrorOrNil()
}

// fileContentID streams path through the content hash.
func fileContentID(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	id, err := hash.IDReader(f)
	if err != nil {
		return 0, fmt.Errorf("hash %s: %w", path, err)
	}

	return id, nil
}

func batchFiles(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("batch: expected at least one GLOB", usageExitCode)
	}

	codecType, auto, err := parseAlgorithm(c.String("algorithm"), true)
	if err != nil {
		return err
	}

	opts := []batch.Option{
		batch.WithOutputDir(c.String("out")),
		batch.WithConcurrency(c.Int("jobs")),
		batch.WithWindowSize(c.Int("window")),
		batch.WithMinMatch(c.Int("min-match")),
		batch.WithFieldPolicy(fieldPolicy(c)),
	}
	if !auto {
		opts = append(opts, batch.WithCodec(codecType))
	}
	if c.Bool("decompress") {
		opts = append(opts, batch.WithMode(batch.ModeDecompress))
	}
	if c.Bool("verbose") {
		opts = append(opts, batch.WithLogger(log.New(c.App.ErrWriter, "", log.LstdFlags)))
	}

	p, err := batch.NewProcessor(opts...)
	if err != nil {
		return cli.Exit(err, usageExitCode)
	}

	report, runErr := p.Run(c.Context, c.Args().Slice()...)
	if report == nil {
		return runErr
	}

	if path := c.String("report"); path != "" {
		if err := report.WriteCSVFile(path); err != nil {
			return multierror.Append(runErr, err)
		}
	}

	original, compressed, failed := report.Totals()
	fmt.Fprintf(c.App.Writer, "%d files, %d failed, %d duplicates, %d -> %d bytes (ratio %.3f)\n",
		len(report.Items), failed, report.Duplicates, original, compressed, report.Ratio())
	if report.HashCollision {
		fmt.Fprintln(c.App.ErrWriter, "warning: inputs of different size share a content ID")
	}

	return runErr
}

func compareFile(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("compare: expected one FILE", usageExitCode)
	}
	in := c.Args().First()

	data, err := readInput(c, in)
	if err != nil {
		return err
	}

	rows := make([]ratioRow, 0, 2+len(baseline.Names()))
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODEC\tSIZE\tRATIO\tSAVED\tTIME")

	for _, codecType := range []format.CodecType{format.CodecRLE, format.CodecLZ77} {
		codec, err := newCodec(c, codecType)
		if err != nil {
			return err
		}
		row, err := compareRow(tw, codecType.String(), codecType, codec, data)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	for _, name := range baseline.Names() {
		codec, err := baseline.Get(name)
		if err != nil {
			return err
		}
		row, err := compareRow(tw, name, 0, codec, data)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if path := c.String("chart"); path != "" {
		if len(data) == 0 {
			return cli.Exit("compare: cannot chart an empty input", usageExitCode)
		}

		return writeRatioChart(path, "compressed/original: "+in, rows)
	}

	return nil
}

// compareRow encodes data, checks that it decodes back and prints one line.
func compareRow(w io.Writer, name string, codecType format.CodecType, codec compress.Codec, data []byte) (ratioRow, error) {
	encoded, stats, err := compress.Measure(codecType, codec, data)
	if err != nil {
		return ratioRow{}, fmt.Errorf("%s: %w", name, err)
	}

	decoded := make([]byte, len(data))
	n, err := compress.DecompressTo(codec, encoded, bytewriter.New(decoded))
	if errors.Is(err, bytewriter.SliceFull) || (err == nil && n != len(data)) {
		return ratioRow{}, fmt.Errorf("%s: round trip size mismatch", name)
	}
	if err != nil {
		return ratioRow{}, fmt.Errorf("%s: %w", name, err)
	}
	if !bytes.Equal(decoded, data) {
		return ratioRow{}, fmt.Errorf("%s: round trip mismatch", name)
	}

	row := ratioRow{name: name, ratio: stats.CompressionRatio()}
	_, err = fmt.Fprintf(w, "%s\t%d\t%.3f\t%.1f%%\t%s\n",
		name, stats.CompressedSize, row.ratio, stats.SpaceSavings(), stats.Duration)

	return row, err
}

// parseAlgorithm maps the -a flag to a codec. The second result is true for
// "auto" when allowAuto is set.
func parseAlgorithm(name string, allowAuto bool) (format.CodecType, bool, error) {
	if allowAuto && strings.EqualFold(strings.TrimSpace(name), "auto") {
		return 0, true, nil
	}

	codecType, err := compress.ParseCodec(name)
	if err != nil {
		return 0, false, cli.Exit(err.Error(), usageExitCode)
	}

	return codecType, false, nil
}

func fieldPolicy(c *cli.Context) compress.FieldPolicy {
	if c.Bool("strict") {
		return compress.FieldStrict
	}

	return compress.FieldClamp
}

// newCodec builds the codec selected on the command line. Option errors
// are usage errors.
func newCodec(c *cli.Context, codecType format.CodecType) (compress.Codec, error) {
	var (
		codec compress.Codec
		err   error
	)
	policy := fieldPolicy(c)
	if codecType == format.CodecRLE {
		codec, err = compress.NewRLECodec(compress.WithRLEFieldPolicy(policy))
	} else {
		codec, err = compress.NewWindowCodec(
			compress.WithWindowSize(c.Int("window")),
			compress.WithMinMatch(c.Int("min-match")),
			compress.WithWindowFieldPolicy(policy),
		)
	}
	if err != nil {
		return nil, cli.Exit(err, usageExitCode)
	}

	return codec, nil
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.App.Reader)
	}

	return os.ReadFile(path)
}

// writeOutput hands write the destination for path, "-" meaning stdout. A
// file whose write fails is removed.
func writeOutput(c *cli.Context, path string, write func(io.Writer) (int, error)) (int, error) {
	if path == "-" {
		return write(c.App.Writer)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return n, err
	}

	return n, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
