package main

import (
	"io"
	"log"
	"os"
	"runtime"

	"github.com/arloliu/squeeze/format"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "squeeze",
		Usage:     "Compress files with run-length or sliding-window encoding",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Encode a file with rle, lz77 or an automatically chosen codec",
				ArgsUsage: "IN OUT",
				Action:    compressFile,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "rle, lz77 or auto",
						Value:   "auto",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "write encoded data even when stdout is a terminal",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "print sizes and ratio to stderr",
					},
				}, codecFlags()...),
			},
			{
				Name:      "decompress",
				Usage:     "Decode a file produced by compress",
				ArgsUsage: "IN OUT",
				Action:    decompressFile,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "algorithm",
						Aliases:  []string{"a"},
						Usage:    "rle or lz77",
						Required: true,
					},
				},
			},
			{
				Name:      "detect",
				Usage:     "Print the detected type, suggested codec and content ID of files",
				ArgsUsage: "FILE...",
				Action:    detectFiles,
			},
			{
				Name:      "batch",
				Usage:     "Compress or decompress every file matching the patterns",
				ArgsUsage: "GLOB...",
				Action:    batchFiles,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "rle, lz77 or auto (auto is not allowed with -d)",
						Value:   "auto",
					},
					&cli.BoolFlag{
						Name:    "decompress",
						Aliases: []string{"d"},
						Usage:   "decode instead of encode",
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "output directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "write a CSV report to this file",
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "files processed in parallel",
						Value:   runtime.GOMAXPROCS(0),
						EnvVars: []string{"SQUEEZE_JOBS"},
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "log every file to stderr",
					},
				}, codecFlags()...),
			},
			{
				Name:      "compare",
				Usage:     "Compare rle and lz77 with general-purpose compressors on a file",
				ArgsUsage: "FILE",
				Action:    compareFile,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "chart",
						Usage: "also write the ratios as an SVG bar chart to this file",
					},
				}, codecFlags()...),
			},
		},
	}
}

// codecFlags returns fresh copies of the flags shared by compress and batch.
func codecFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "window",
			Usage:   "look-back window in bytes for lz77",
			Value:   format.DefaultWindowSize,
			EnvVars: []string{"SQUEEZE_WINDOW"},
		},
		&cli.IntFlag{
			Name:  "min-match",
			Usage: "shortest match written as a back-reference",
			Value: format.DefaultMinMatch,
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail instead of splitting runs or clamping the window",
		},
	}
}
