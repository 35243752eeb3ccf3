package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	wastencode "github.com/wippyai/wast-encode"
	"github.com/wippyai/wast-encode/encoder"
	"github.com/wippyai/wast-encode/internal/config"
	"github.com/wippyai/wast-encode/stream"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: wast-encode [-file records.json] [-summary] <dir>")
	fmt.Fprintln(os.Stderr, "       wast-encode -file records.json -i <dir>  (interactive mode)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Reads wast2json command records and prints one runner command line per record.")
	fmt.Fprintln(os.Stderr, "<dir> defaults to $WAST_ENCODE_DIR.")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}

func main() {
	os.Exit(mainWithCode())
}

func mainWithCode() int {
	var (
		file        = flag.String("file", "", "Read records from file instead of stdin")
		summary     = flag.Bool("summary", false, "Print per-kind counts to stderr when done")
		interactive = flag.Bool("i", false, "Interactive record browser (requires -file)")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if flag.NArg() > 1 {
		usage()
		return 2
	}
	dir, err := cfg.ResolveDir(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		return 2
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()
	setLogger(logger)

	if *interactive {
		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -i requires -file")
			return 2
		}
		if !isTerminal(os.Stdout.Fd()) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			return 2
		}
		if err := runInteractive(dir, *file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := run(context.Background(), dir, *file, *summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func setLogger(l *zap.Logger) {
	wastencode.SetLogger(l)
	stream.SetLogger(l.Named("stream"))
	encoder.SetLogger(l.Named("encoder"))
}

func run(ctx context.Context, dir, file string, summary bool) error {
	var in io.Reader = os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	stats, err := wastencode.Convert(ctx, dir, in, os.Stdout, os.Stderr)
	if summary {
		fmt.Fprint(os.Stderr, renderSummary(stats, isTerminal(os.Stderr.Fd())))
	}
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}
