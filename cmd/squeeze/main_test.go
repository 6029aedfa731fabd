package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/squeeze/batch"
	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/internal/hash"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp(bytes.NewReader(stdin), &stdout, &stderr)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"squeeze"}, args...))

	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, code, exitErr.ExitCode())
}

func TestCompressDecompressFiles(t *testing.T) {
	content := []byte(strings.Repeat("squeeze me ", 40) + strings.Repeat("!", 300))

	for _, algorithm := range []string{"rle", "lz77"} {
		t.Run(algorithm, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "input.txt")
			enc := filepath.Join(dir, "input.enc")
			dec := filepath.Join(dir, "input.dec")
			require.NoError(t, os.WriteFile(in, content, 0o600))

			_, _, err := runApp(t, nil, "compress", "-a", algorithm, in, enc)
			require.NoError(t, err)
			_, _, err = runApp(t, nil, "decompress", "-a", algorithm, enc, dec)
			require.NoError(t, err)

			decoded, err := os.ReadFile(dec)
			require.NoError(t, err)
			require.Equal(t, content, decoded)
		})
	}
}

func TestCompress_Stdio(t *testing.T) {
	stdout, stderr, err := runApp(t, []byte("aaaabb"), "compress", "-a", "rle", "-v", "-", "-")
	require.NoError(t, err)
	require.Equal(t, "\x04a\x02b", stdout)
	require.Contains(t, stderr, "rle: 6 -> 4 bytes")

	stdout, _, err = runApp(t, []byte("\x04a\x02b"), "decompress", "-a", "rle", "-", "-")
	require.NoError(t, err)
	require.Equal(t, "aaaabb", stdout)
}

func TestCompress_Auto(t *testing.T) {
	stdout, stderr, err := runApp(t, []byte{0x00, 0x00, 0x00, 0x00}, "compress", "-v", "-", "-")
	require.NoError(t, err)
	require.Contains(t, stderr, "lz77:")
	require.Equal(t, "\x00\x00\x01\x01\x03", stdout)

	stdout, _, err = runApp(t, []byte("zzz"), "compress", "-", "-")
	require.NoError(t, err)
	require.Equal(t, "\x03z", stdout)
}

func TestCompress_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "long.txt")
	require.NoError(t, os.WriteFile(in, bytes.Repeat([]byte{'A'}, 300), 0o600))

	_, _, err := runApp(t, nil, "compress", "-a", "gzip", in, "-")
	requireExitCode(t, err, usageExitCode)
	require.ErrorContains(t, err, "unknown codec")

	_, _, err = runApp(t, nil, "compress", in)
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, nil, "compress", "-a", "rle", "--strict", in, "-")
	require.ErrorIs(t, err, errs.ErrUnsupportedField)

	_, _, err = runApp(t, nil, "compress", "-a", "lz77", "--window", "0", in, "-")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, nil, "compress", "-a", "lz77", "--strict", "--window", "2000", in, "-")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, nil, "compress", "-a", "lz77", "--min-match", "1", in, "-")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, nil, "compress", "-a", "rle", filepath.Join(dir, "missing"), "-")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompress_WindowFromEnv(t *testing.T) {
	t.Setenv("SQUEEZE_WINDOW", "0")

	_, _, err := runApp(t, []byte("abc"), "compress", "-a", "lz77", "-", "-")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)
}

func TestDecompress_Errors(t *testing.T) {
	_, _, err := runApp(t, []byte{0x01}, "decompress", "-", "-")
	require.Error(t, err)

	_, _, err = runApp(t, []byte{0x01}, "decompress", "-a", "auto", "-", "-")
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, []byte{0x01}, "decompress", "-a", "rle", "-", "-")
	require.ErrorIs(t, err, errs.ErrMalformedStream)

	_, _, err = runApp(t, []byte{0x01, 0x05, 0x01}, "decompress", "-a", "lz77", "-", "-")
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	png := filepath.Join(dir, "image.dat")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(png, []byte{0x89, 'P', 'N', 'G', 0x0D}, 0o600))

	stdout, _, err := runApp(t, nil, "detect", txt, png)
	require.NoError(t, err)
	require.Equal(t,
		txt+"\ttext/plain\trle\t"+contentID("hello")+"\n"+
			png+"\timage/png\tlz77\t"+contentID("\x89PNG\r")+"\n",
		stdout)

	stdout, _, err = runApp(t, nil, "detect", txt, filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, stdout, "notes.txt")

	_, _, err = runApp(t, nil, "detect")
	requireExitCode(t, err, usageExitCode)
}

func contentID(s string) string {
	return fmt.Sprintf("%016x", hash.ID([]byte(s)))
}

func TestBatch(t *testing.T) {
	inDir, outDir, decDir := t.TempDir(), t.TempDir(), t.TempDir()
	files := map[string][]byte{
		"a.txt": []byte(strings.Repeat("a", 100)),
		"b.bin": {0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01},
		"c.csv": []byte("x,y\n1,2\n1,2\n1,2\n"),
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(inDir, name), content, 0o600))
	}
	reportPath := filepath.Join(t.TempDir(), "report.csv")

	stdout, stderr, err := runApp(t, nil, "batch", "-a", "lz77", "-j", "2", "-v",
		"--out", outDir, "--report", reportPath, filepath.Join(inDir, "*"))
	require.NoError(t, err)
	require.Contains(t, stdout, "3 files, 0 failed, 0 duplicates")
	require.Contains(t, stderr, "a.txt")

	f, err := os.Open(reportPath)
	require.NoError(t, err)
	defer f.Close()
	var items []batch.Item
	require.NoError(t, gocsv.Unmarshal(f, &items))
	require.Len(t, items, 3)
	for _, item := range items {
		require.Equal(t, "lz77", item.Codec)
	}

	stdout, _, err = runApp(t, nil, "batch", "-d", "-a", "lz77", "--out", decDir, filepath.Join(outDir, "*.lz77"))
	require.NoError(t, err)
	require.Contains(t, stdout, "3 files, 0 failed")

	for name, content := range files {
		decoded, err := os.ReadFile(filepath.Join(decDir, name))
		require.NoError(t, err)
		require.Equal(t, content, decoded)
	}
}

func TestBatch_Errors(t *testing.T) {
	outDir := t.TempDir()

	_, _, err := runApp(t, nil, "batch", "--out", outDir)
	requireExitCode(t, err, usageExitCode)

	_, _, err = runApp(t, nil, "batch", "-d", "--out", outDir, "*.none")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)

	stdout, _, err := runApp(t, nil, "batch", "--out", outDir, filepath.Join(t.TempDir(), "*.none"))
	require.ErrorIs(t, err, errs.ErrNoMatch)
	require.Contains(t, stdout, "0 files, 0 failed")

	_, _, err = runApp(t, nil, "batch", "*.txt")
	require.Error(t, err)
}

func TestBatch_JobsFromEnv(t *testing.T) {
	t.Setenv("SQUEEZE_JOBS", "0")

	_, _, err := runApp(t, nil, "batch", "--out", t.TempDir(), "*.txt")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	requireExitCode(t, err, usageExitCode)
}

func TestBatch_DuplicateSummary(t *testing.T) {
	inDir := t.TempDir()
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(inDir, name), []byte("repeated body"), 0o600))
	}

	stdout, stderr, err := runApp(t, nil, "batch", "-j", "3", "--out", t.TempDir(), filepath.Join(inDir, "*.txt"))
	require.NoError(t, err)
	require.Contains(t, stdout, "3 files, 0 failed, 2 duplicates")
	require.NotContains(t, stderr, "warning")
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(in, []byte(strings.Repeat("compare these codecs ", 64)), 0o600))

	stdout, _, err := runApp(t, nil, "compare", in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1+2+5)
	require.Equal(t, []string{"CODEC", "SIZE", "RATIO", "SAVED", "TIME"}, strings.Fields(lines[0]))
	for i, name := range []string{"rle", "lz77", "store", "s2", "lz4", "zstd", "xz"} {
		require.True(t, strings.HasPrefix(lines[i+1], name+" "), lines[i+1])
	}

	require.Contains(t, lines[3], "0.0%", "store saves nothing")

	_, _, err = runApp(t, nil, "compare")
	requireExitCode(t, err, usageExitCode)
}

func TestCompare_Chart(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sample.txt")
	svg := filepath.Join(dir, "ratios.svg")
	require.NoError(t, os.WriteFile(in, []byte(strings.Repeat("chart me ", 100)), 0o600))

	_, _, err := runApp(t, nil, "compare", "--chart", svg, in)
	require.NoError(t, err)

	rendered, err := os.ReadFile(svg)
	require.NoError(t, err)
	require.Contains(t, string(rendered), "<svg")

	_, _, err = runApp(t, []byte{}, "compare", "--chart", svg, "-")
	requireExitCode(t, err, usageExitCode)
}
