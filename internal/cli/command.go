// Package cli wires the scan/parse/build/render pipeline behind the stree
// command.
package cli

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/stree/internal/parse"
	"github.com/idelchi/stree/internal/view"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// DefaultExcludes contains the default exclusion patterns for scans.
var DefaultExcludes = []string{`.*\.git/.*`, `.*node_modules/.*`}

// options holds the parsed flag values.
type options struct {
	scanRoot string
	input    string
	parser   string
	viewName string
	output   string
	topN     int
	minSize  string
	excludes []string
	dirsOnly bool
	debug    bool
}

// register declares all flags on the given flag set.
func (o *options) register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.scanRoot, "scan", "s", "", "Directory to scan for the heaviest files")
	flags.StringVarP(&o.input, "input", "i", "", "Report file to render instead of scanning")
	flags.StringVarP(&o.parser, "parser", "p", "du", "Parser for --input")
	flags.StringVarP(&o.viewName, "view", "v", "text", "View used to render the tree")
	flags.StringVarP(&o.output, "output", "o", "", "File to write the rendered tree to (default stdout)")
	flags.IntVarP(&o.topN, "top", "n", 50, "Number of heaviest files to keep when scanning")
	flags.StringVar(&o.minSize, "min-size", "0B", "Minimum file size when scanning (e.g. 1KB)")
	flags.StringSliceVarP(&o.excludes, "exclude", "e", DefaultExcludes, "Regex patterns to exclude when scanning")
	flags.BoolVar(&o.dirsOnly, "dirs", false, "Render only directories")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug output")

	flags.SortFlags = false
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "stree",
		Short: "Build and render a storage tree of the heaviest files",
		Long: heredoc.Docf(`
			stree inspects disk usage. It scans a directory for its heaviest
			files (or reads an existing report), builds a directory tree from
			the results, and renders it through the selected view.

			Scan a directory directly:

			    stree --scan /var --top 50

			Or render an existing report:

			    stree --input report.csv --parser csv --view html-colored --output tree.html

			Available parsers: %s
			Available views: %s
		`, strings.Join(parse.Available(), ", "), strings.Join(view.Available(), ", ")),
		Version:       c.version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	opts.register(cmd.Flags())

	return cmd.Execute()
}
