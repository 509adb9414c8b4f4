// Command mdmd renders markdown documents (or JSON document trees) into
// markdown with LaTeX package directives.
//
// Usage:
//
//	mdmd [flags] [file...]
//
// With no files and no -glob, input is read from stdin.
//
// Flags:
//
//	-glob string         Pattern of input files under -dir (supports **)
//	-dir string          Root directory for -glob (default ".")
//	-out string          Directory for rendered files (default: stdout)
//	-format string       Input format: auto, markdown, json (default "auto")
//	-no-preamble         Omit the \usepackage preamble
//	-image-width float   Pixel width that maps to an image scale of 1.0 (default 600)
//	-jobs int            Documents rendered in parallel (default: number of CPUs)
//	-v                   Verbose logging
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fwojciec/mdmd"
	"github.com/fwojciec/mdmd/fs"
	"golang.org/x/sync/errgroup"
)

// outputExt replaces the input extension of files written to -out.
const outputExt = ".tex.md"

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// config holds the parsed command-line flags.
type config struct {
	glob       string
	dir        string
	out        string
	format     string
	noPreamble bool
	imageWidth float64
	jobs       int
	verbose    bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	flags := flag.NewFlagSet("mdmd", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.glob, "glob", "", "Pattern of input files under -dir (supports **)")
	flags.StringVar(&cfg.dir, "dir", ".", "Root directory for -glob")
	flags.StringVar(&cfg.out, "out", "", "Directory for rendered files (default: stdout)")
	flags.StringVar(&cfg.format, "format", "auto", "Input format: auto, markdown, json")
	flags.BoolVar(&cfg.noPreamble, "no-preamble", false, "Omit the \\usepackage preamble")
	flags.Float64Var(&cfg.imageWidth, "image-width", mdmd.DefaultReferenceWidth, "Pixel width that maps to an image scale of 1.0")
	flags.IntVar(&cfg.jobs, "jobs", runtime.NumCPU(), "Documents rendered in parallel")
	flags.BoolVar(&cfg.verbose, "v", false, "Verbose logging")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	cfg.files = flags.Args()
	if _, err := parserFor(cfg.format, ""); err != nil {
		return config{}, err
	}
	if cfg.jobs < 1 {
		cfg.jobs = 1
	}
	return cfg, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if cfg.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(stderr, level)
	ctx := withLogger(context.Background(), logger)

	inputs, err := resolveInputs(cfg)
	if err != nil {
		return err
	}

	opts := []mdmd.Option{mdmd.WithImageReferenceWidth(cfg.imageWidth)}

	if len(inputs) == 0 {
		if cfg.out != "" {
			logger.Warn("Ignoring -out for stdin input", "out", cfg.out)
		}
		p, err := parserFor(cfg.format, "")
		if err != nil {
			return err
		}
		src, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		out, err := convert(ctx, "<stdin>", src, p, opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, document(out, cfg.noPreamble))
		return err
	}

	var dests []string
	if cfg.out != "" {
		if dests, err = destinations(cfg.out, inputs); err != nil {
			return err
		}
	}

	p := newProgress(logger)
	rendered := make([]string, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := convertFile(gctx, in.path, cfg.format, opts)
			if err != nil {
				return err
			}
			rendered[i] = document(out, cfg.noPreamble)
			if dests == nil {
				return nil
			}
			return writeOutput(gctx, dests[i], rendered[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d documents", len(inputs)))

	if dests != nil {
		return nil
	}
	for _, s := range rendered {
		if _, err := io.WriteString(stdout, s); err != nil {
			return err
		}
	}
	return nil
}

// input is a file to render. name is its path relative to the -dir root
// for glob matches, or its base name for positional files.
type input struct {
	path string
	name string
}

// resolveInputs combines positional files with -glob matches. A file
// named twice is rendered once.
func resolveInputs(cfg config) ([]input, error) {
	var inputs []input
	seen := make(map[string]bool)
	add := func(path, name string) {
		key := filepath.Clean(path)
		if seen[key] {
			return
		}
		seen[key] = true
		inputs = append(inputs, input{path: path, name: name})
	}
	for _, f := range cfg.files {
		add(f, filepath.Base(f))
	}
	if cfg.glob == "" {
		return inputs, nil
	}
	matches, err := fs.Glob(cfg.dir, cfg.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 && len(inputs) == 0 {
		return nil, errors.New("no input files match " + cfg.glob)
	}
	for _, m := range matches {
		name, err := filepath.Rel(cfg.dir, m)
		if err != nil {
			name = filepath.Base(m)
		}
		add(m, name)
	}
	return inputs, nil
}

// destinations maps every input to its rendered file under dir. Two inputs
// that would write the same file are an error.
func destinations(dir string, inputs []input) ([]string, error) {
	dests := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		dst := outputPath(dir, in.name)
		if prev, ok := owner[dst]; ok {
			return nil, fmt.Errorf("%s and %s both render to %s", prev, in.path, dst)
		}
		owner[dst] = in.path
		dests[i] = dst
	}
	return dests, nil
}

// outputPath maps an input name to its rendered file under dir, keeping
// the directories of name.
func outputPath(dir, name string) string {
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+outputExt)
}

func writeOutput(ctx context.Context, dst, content string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	loggerFromContext(ctx).Debug("Wrote output", "path", dst)
	return nil
}

// document returns the final text for a rendered document.
func document(out mdmd.Output, noPreamble bool) string {
	if noPreamble {
		return out.Body
	}
	return out.String()
}
