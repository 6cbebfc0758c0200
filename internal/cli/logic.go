package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/stree/internal/parse"
	"github.com/idelchi/stree/internal/scan"
	"github.com/idelchi/stree/internal/tree"
	"github.com/idelchi/stree/internal/view"
)

// run executes the pipeline: obtain a normalized mapping (by scanning or
// parsing), build the tree, render it.
func run(opts options) error {
	switch {
	case opts.scanRoot == "" && opts.input == "":
		return errors.New("either --scan or --input is required")
	case opts.scanRoot != "" && opts.input != "":
		return errors.New("--scan and --input are mutually exclusive")
	}

	renderer, err := view.New(opts.viewName, view.Options{DirsOnly: opts.dirsOnly})
	if err != nil {
		return err
	}

	var mapping parse.Mapping

	if opts.scanRoot != "" {
		mapping, err = runScan(opts)
	} else {
		mapping, err = parse.Load(opts.parser, opts.input)
	}

	if err != nil {
		return err
	}

	built, err := tree.NewBuilder().Build(mapping)
	if err != nil {
		return fmt.Errorf("building tree: %w", err)
	}

	if opts.output == "" {
		return render(renderer, os.Stdout, built)
	}

	file, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := render(renderer, file, built); err != nil {
		file.Close()

		return err
	}

	return file.Close()
}

func render(renderer view.Renderer, w io.Writer, built *tree.Tree) error {
	if err := renderer.RenderRoot(w, built); err != nil {
		return fmt.Errorf("rendering tree: %w", err)
	}

	return nil
}

// progressEnabled reports whether the in-place status line should be
// shown: only on a terminal, never alongside debug output, and not while
// the rendered tree is being written to a file.
func progressEnabled(opts options, terminal bool) bool {
	return opts.output == "" && !opts.debug && terminal
}

// runScan walks the requested directory, with in-place progress updates on
// stderr when attached to a terminal.
func runScan(opts options) (parse.Mapping, error) {
	minSize, err := humanize.ParseBytes(opts.minSize)
	if err != nil {
		return nil, fmt.Errorf("invalid min-size: %w", err)
	}

	enableProgress := progressEnabled(opts, isatty.IsTerminal(os.Stderr.Fd()))

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s", files, humanize.IBytes(uint64(bytes)))
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	mapping, summary, err := scan.Run(context.Background(), scan.Options{
		Root:     opts.scanRoot,
		TopN:     opts.topN,
		MinSize:  int64(minSize),
		Excludes: opts.excludes,
		Debug:    opts.debug,
	}, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return nil, err
	}

	if enableProgress {
		fmt.Fprintf(os.Stderr, "Scanned %d files (%s) in %v\n",
			summary.FilesSeen, humanize.IBytes(uint64(summary.TotalBytes)), summary.Elapsed)
	}

	return mapping, nil
}
