// Command ihc converts inline markdown to HTML.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/rgonek/inline-html-converter/converter"
	"github.com/rgonek/inline-html-converter/segment"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	formatHTML     = "html"
	formatSegments = "segments"
)

type options struct {
	preset     string
	configPath string
	engine     string
	wrap       string
	strict     bool
	format     string
	workers    int
	verbose    bool
	files      []string
}

type input struct {
	name string
	text string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := log.New(io.Discard, "[ihc] ", 0)
	if opts.verbose {
		logger.SetOutput(stderr)
	}
	// maxprocs.Set only fails on an invalid GOMAXPROCS value; runtime defaults apply then.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Printf))

	cfg, err := resolveConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}
	conv, err := converter.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}

	inputs, err := readInputs(opts.files, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	results, err := convertAll(context.Background(), conv, inputs, opts.workers, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting input: %v\n", err)
		return 1
	}

	if err := writeResults(stdout, opts.format, inputs, results); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flags := pflag.NewFlagSet("ihc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.preset, "preset", presetBalanced, "Preset: balanced|strict|commonmark")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.engine, "engine", "", "Tokenizer engine: builtin|goldmark")
	flags.StringVar(&opts.wrap, "wrap", "", "Wrap output in this element, e.g. p")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on malformed markup and unresolved references")
	flags.StringVarP(&opts.format, "format", "f", formatHTML, "Output format: html|segments")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Files converted in parallel (default GOMAXPROCS)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log warnings to stderr")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ihc [options] [file...]\n\nReads stdin when no file is given.\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	if opts.format != formatHTML && opts.format != formatSegments {
		return options{}, fmt.Errorf("unknown format %q (allowed: html, segments)", opts.format)
	}
	if opts.workers < 0 {
		return options{}, fmt.Errorf("workers must not be negative, got %d", opts.workers)
	}

	opts.files = flags.Args()
	return opts, nil
}

func readInputs(files []string, stdin io.Reader) ([]input, error) {
	if len(files) == 0 {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, errors.New("no input files and stdin is a terminal")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []input{{name: "<stdin>", text: trimLineEnd(data)}}, nil
	}

	inputs := make([]input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{name: file, text: trimLineEnd(data)})
	}
	return inputs, nil
}

// trimLineEnd drops the final newline so each input renders on one output line.
func trimLineEnd(data []byte) string {
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r")
}

func convertAll(ctx context.Context, conv *converter.Converter, inputs []input, workers int, logger *log.Logger) ([]converter.Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]converter.Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			result, err := conv.ConvertWithContext(ctx, in.text, converter.ConvertOptions{SourcePath: in.name})
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			for _, w := range result.Warnings {
				logger.Printf("%s: %s: %s", in.name, w.Type, w.Message)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeResults(w io.Writer, format string, inputs []input, results []converter.Result) error {
	if format == formatSegments {
		type fileSegments struct {
			File     string              `json:"file"`
			Segments []segment.Segment   `json:"segments"`
			Warnings []converter.Warning `json:"warnings,omitempty"`
		}
		out := make([]fileSegments, len(results))
		for i, result := range results {
			out[i] = fileSegments{File: inputs[i].name, Segments: result.Segments, Warnings: result.Warnings}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, result := range results {
		if _, err := fmt.Fprintln(w, result.HTML); err != nil {
			return err
		}
	}
	return nil
}
