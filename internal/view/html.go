package view

import (
	"fmt"
	"html"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/stree/internal/tree"
)

// listStyles is cycled through by nesting level in the colored HTML view.
var listStyles = []string{"disc", "circle", "square"}

// leftoverShare is the fraction of a directory's size below which children
// are rolled up into a single "..." entry instead of being listed.
const leftoverShare = 0.01

// HTMLColored renders an HTML document of nested lists. File entries fade
// from red to black by their rank on the size leaderboard, the ten heaviest
// are bold, and children contributing less than one percent of their
// parent's size collapse into a "..." entry. Single-directory chains render
// on one line (a/b/c/).
type HTMLColored struct {
	opts Options

	// total is the tree's file count, captured by RenderRoot and used to
	// scale the color gradient.
	total int
}

// RenderRoot wraps the root's subtree in the document shell.
func (v *HTMLColored) RenderRoot(w io.Writer, t *tree.Tree) error {
	v.total = t.FileCount()

	if _, err := fmt.Fprintf(w, `<html><body><ul style="list-style-type: %s">`, listStyles[1]); err != nil {
		return err
	}

	if err := v.RenderDirectory(w, t.Root()); err != nil {
		return err
	}

	_, err := io.WriteString(w, "</ul></body></html>")

	return err
}

// RenderDirectory writes the directory's entry and its children.
func (v *HTMLColored) RenderDirectory(w io.Writer, d *tree.Directory) error {
	if d.Parent() == nil {
		if _, err := io.WriteString(w, "<li>"); err != nil {
			return err
		}
	} else if len(d.Parent().Children()) > 1 {
		if _, err := io.WriteString(w, "<li>"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, html.EscapeString(d.Name())+"/"); err != nil {
		return err
	}

	// A lone child directory continues on the same line, so the whole
	// single-entry chain reads as one path.
	if children := d.Children(); len(children) == 1 {
		if dir, ok := children[0].(*tree.Directory); ok {
			return v.RenderDirectory(w, dir)
		}
	}

	if _, err := fmt.Fprintf(w, " (%s)</li>", humanize.IBytes(uint64(d.Size()))); err != nil {
		return err
	}

	if len(d.Children()) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, `<ul style="list-style-type: %s">`, listStyles[d.Depth()%len(listStyles)]); err != nil {
		return err
	}

	threshold := float64(d.Size()) * leftoverShare

	var leftover int64

	for _, child := range d.Children() {
		if len(d.Children()) > 1 && float64(child.Size()) < threshold {
			leftover += child.Size()

			continue
		}

		switch node := child.(type) {
		case *tree.Directory:
			if err := v.RenderDirectory(w, node); err != nil {
				return err
			}
		case *tree.File:
			if err := v.RenderFile(w, node); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedNodeKind, child)
		}
	}

	if leftover > 0 && !v.opts.DirsOnly {
		// The rolled-up entry ranks last so it renders fully faded.
		if err := v.fileEntry(w, "...", "", leftover, v.total); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</ul>")

	return err
}

// RenderFile writes the file's colored entry, or nothing in directory-only
// mode.
func (v *HTMLColored) RenderFile(w io.Writer, f *tree.File) error {
	if v.opts.DirsOnly {
		return nil
	}

	return v.fileEntry(w, f.Name(), f.Path(), f.Size(), f.Rank())
}

// fileEntry writes one list item with the rank-based gradient.
func (v *HTMLColored) fileEntry(w io.Writer, name, path string, size int64, rank int) error {
	fade := 0.0
	if v.total > 0 {
		fade = float64(rank) / float64(v.total)
	}

	red := int(255 - fade*255)

	if _, err := fmt.Fprintf(w, `<li><a style="color: rgb(%d, 0, 0);">`, red); err != nil {
		return err
	}

	bold := rank < topRanks

	if bold {
		if _, err := io.WriteString(w, "<b>"); err != nil {
			return err
		}
	}

	entry := fmt.Sprintf(`<abbr title=%q>%s</abbr> | %s`,
		html.EscapeString(path), html.EscapeString(name), humanize.IBytes(uint64(size)))

	if _, err := io.WriteString(w, entry); err != nil {
		return err
	}

	if bold {
		if _, err := io.WriteString(w, "</b>"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</a></li>")

	return err
}

// HTMLCompact renders an HTML document of collapsible <details> sections,
// one per directory.
type HTMLCompact struct {
	opts Options
}

// RenderRoot wraps the root's subtree in the document shell.
func (v HTMLCompact) RenderRoot(w io.Writer, t *tree.Tree) error {
	if _, err := io.WriteString(w, "<html><body>"); err != nil {
		return err
	}

	if err := v.RenderDirectory(w, t.Root()); err != nil {
		return err
	}

	_, err := io.WriteString(w, "</body></html>")

	return err
}

// RenderDirectory writes the collapsible section for the directory.
func (v HTMLCompact) RenderDirectory(w io.Writer, d *tree.Directory) error {
	_, err := fmt.Fprintf(w, "<details><summary>%s/ (%s)</summary><ul>",
		html.EscapeString(d.Name()), humanize.IBytes(uint64(d.Size())))
	if err != nil {
		return err
	}

	if err := renderChildren(v, w, d, v.opts.DirsOnly); err != nil {
		return err
	}

	_, err = io.WriteString(w, "</ul></details>")

	return err
}

// RenderFile writes the file's list item.
func (v HTMLCompact) RenderFile(w io.Writer, f *tree.File) error {
	_, err := fmt.Fprintf(w, "<li>%s | %s</li>",
		html.EscapeString(f.Name()), humanize.IBytes(uint64(f.Size())))

	return err
}
