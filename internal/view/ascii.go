package view

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/xlab/treeprint"

	"github.com/idelchi/stree/internal/tree"
)

// ASCII renders the tree with box-drawing branch connectors, sizes
// humanized.
type ASCII struct {
	opts Options
}

// RenderRoot delegates to the root directory.
func (v ASCII) RenderRoot(w io.Writer, t *tree.Tree) error {
	return v.RenderDirectory(w, t.Root())
}

// RenderDirectory draws the directory and its subtree.
func (v ASCII) RenderDirectory(w io.Writer, d *tree.Directory) error {
	root := treeprint.NewWithRoot(v.label(d))

	if err := v.branch(root, d); err != nil {
		return err
	}

	_, err := io.WriteString(w, root.String())

	return err
}

// RenderFile writes a single unconnected leaf line.
func (v ASCII) RenderFile(w io.Writer, f *tree.File) error {
	_, err := fmt.Fprintf(w, "%s %s\n", f.Name(), humanize.IBytes(uint64(f.Size())))

	return err
}

// branch adds d's children to the treeprint branch, recursing into
// directories.
func (v ASCII) branch(br treeprint.Tree, d *tree.Directory) error {
	for _, child := range d.Children() {
		switch node := child.(type) {
		case *tree.Directory:
			if err := v.branch(br.AddBranch(v.label(node)), node); err != nil {
				return err
			}
		case *tree.File:
			if v.opts.DirsOnly {
				continue
			}

			br.AddNode(fmt.Sprintf("%s %s", node.Name(), humanize.IBytes(uint64(node.Size()))))
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedNodeKind, child)
		}
	}

	return nil
}

func (v ASCII) label(d *tree.Directory) string {
	name := d.Name()
	if name != tree.Separator {
		name += "/"
	}

	return fmt.Sprintf("%s (%s)", name, humanize.IBytes(uint64(d.Size())))
}
