package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/idelchi/stree/internal/tree"
)

// topRanks is the number of leaderboard entries the color view highlights.
const topRanks = 10

// colorStyles groups the lipgloss styles used by the color view.
type colorStyles struct {
	dir  lipgloss.Style
	file lipgloss.Style
	top  lipgloss.Style
	size lipgloss.Style
}

// Color renders the same layout as the text view, styled for terminals:
// bold directories with cumulative sizes, muted size annotations, and the
// ten heaviest files highlighted.
type Color struct {
	opts   Options
	styles colorStyles
}

func newColor(opts Options) Color {
	return Color{
		opts: opts,
		styles: colorStyles{
			dir:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
			file: lipgloss.NewStyle(),
			top:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("204")),
			size: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}

// RenderRoot delegates to the root directory.
func (v Color) RenderRoot(w io.Writer, t *tree.Tree) error {
	return v.RenderDirectory(w, t.Root())
}

// RenderDirectory writes the styled directory line followed by its children.
func (v Color) RenderDirectory(w io.Writer, d *tree.Directory) error {
	name := d.Name()
	if name != tree.Separator {
		name += "/"
	}

	line := strings.Repeat(indentUnit, d.Depth()) +
		v.styles.dir.Render(name) +
		v.styles.size.Render(" ("+humanize.IBytes(uint64(d.Size()))+")")

	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	return renderChildren(v, w, d, v.opts.DirsOnly)
}

// RenderFile writes the styled file line, highlighting leaderboard entries.
func (v Color) RenderFile(w io.Writer, f *tree.File) error {
	style := v.styles.file
	if f.Rank() < topRanks {
		style = v.styles.top
	}

	line := strings.Repeat(indentUnit, f.Depth()) +
		style.Render(f.Name()) +
		v.styles.size.Render(" "+humanize.IBytes(uint64(f.Size())))

	_, err := fmt.Fprintln(w, line)

	return err
}
