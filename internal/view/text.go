package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/stree/internal/tree"
)

// indentUnit is the per-level indentation of the text view.
const indentUnit = "  "

// Text renders the tree as a plain indented listing: `name/` for
// directories, `name - <bytes>` for files, two spaces per level.
type Text struct {
	opts Options
}

// RenderRoot delegates to the root directory; the text view has no framing.
func (v Text) RenderRoot(w io.Writer, t *tree.Tree) error {
	return v.RenderDirectory(w, t.Root())
}

// RenderDirectory writes the directory's own line followed by its children.
func (v Text) RenderDirectory(w io.Writer, d *tree.Directory) error {
	name := d.Name()
	if name != tree.Separator {
		name += "/"
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(indentUnit, d.Depth()), name); err != nil {
		return err
	}

	return renderChildren(v, w, d, v.opts.DirsOnly)
}

// RenderFile writes the file's indented name and size in bytes.
func (v Text) RenderFile(w io.Writer, f *tree.File) error {
	_, err := fmt.Fprintf(w, "%s%s - %d\n", strings.Repeat(indentUnit, f.Depth()), f.Name(), f.Size())

	return err
}
