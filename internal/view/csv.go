package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/idelchi/stree/internal/tree"
)

// CSV renders the tree as a flat table with one record per node:
// path, kind, depth, size_bytes, in depth-first insertion order.
type CSV struct {
	opts Options
}

// RenderRoot writes the header row, then the root's subtree.
func (v CSV) RenderRoot(w io.Writer, t *tree.Tree) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"path", "kind", "depth", "size_bytes"}); err != nil {
		return err
	}

	if err := v.directory(writer, t.Root()); err != nil {
		return err
	}

	writer.Flush()

	return writer.Error()
}

// RenderDirectory writes the directory's record followed by its children.
func (v CSV) RenderDirectory(w io.Writer, d *tree.Directory) error {
	writer := csv.NewWriter(w)

	if err := v.directory(writer, d); err != nil {
		return err
	}

	writer.Flush()

	return writer.Error()
}

// RenderFile writes the file's record.
func (v CSV) RenderFile(w io.Writer, f *tree.File) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(fileRecord(f)); err != nil {
		return err
	}

	writer.Flush()

	return writer.Error()
}

// directory writes d's record and recurses into its children on the shared
// writer.
func (v CSV) directory(writer *csv.Writer, d *tree.Directory) error {
	record := []string{d.Path(), "directory", strconv.Itoa(d.Depth()), strconv.FormatInt(d.Size(), 10)}
	if err := writer.Write(record); err != nil {
		return err
	}

	for _, child := range d.Children() {
		switch node := child.(type) {
		case *tree.Directory:
			if err := v.directory(writer, node); err != nil {
				return err
			}
		case *tree.File:
			if v.opts.DirsOnly {
				continue
			}

			if err := writer.Write(fileRecord(node)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedNodeKind, child)
		}
	}

	return nil
}

func fileRecord(f *tree.File) []string {
	return []string{f.Path(), "file", strconv.Itoa(f.Depth()), strconv.FormatInt(f.Size(), 10)}
}
