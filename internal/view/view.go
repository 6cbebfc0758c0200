// Package view renders a storage tree into one of several output formats.
// Each view is a strategy implementing the same three operations over the
// two node kinds; new formats plug in without touching the tree or builder.
package view

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/idelchi/stree/internal/tree"
)

var (
	// ErrUnsupportedNodeKind reports a node that is neither a directory
	// nor a file. Only two kinds exist, so hitting this is a programming
	// error and never recoverable.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")

	// ErrUnknownView reports a view name with no registered renderer.
	ErrUnknownView = errors.New("unknown view")
)

// Options tweak rendering across all views.
type Options struct {
	// DirsOnly hides files and renders only the directory skeleton.
	DirsOnly bool
}

// Renderer turns a tree into one output format. RenderDirectory recursively
// dispatches each child to RenderDirectory or RenderFile based on its kind;
// RenderRoot wraps the root in any format-specific framing.
//
// Rendering is total over a valid tree and deterministic: children appear
// in the order they were inserted during the build. A view that wants a
// different order must sort explicitly.
type Renderer interface {
	RenderRoot(w io.Writer, t *tree.Tree) error
	RenderDirectory(w io.Writer, d *tree.Directory) error
	RenderFile(w io.Writer, f *tree.File) error
}

// views maps view names to renderer factories.
var views = map[string]func(Options) Renderer{
	"text":         func(opts Options) Renderer { return Text{opts: opts} },
	"color":        func(opts Options) Renderer { return newColor(opts) },
	"ascii":        func(opts Options) Renderer { return ASCII{opts: opts} },
	"csv":          func(opts Options) Renderer { return CSV{opts: opts} },
	"html-colored": func(opts Options) Renderer { return &HTMLColored{opts: opts} },
	"html-compact": func(opts Options) Renderer { return HTMLCompact{opts: opts} },
	"json":         func(_ Options) Renderer { return JSON{} },
}

// New returns the renderer registered under name.
func New(name string, opts Options) (Renderer, error) {
	factory, ok := views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownView, name, Available())
	}

	return factory(opts), nil
}

// Available returns the registered view names, sorted.
func Available() []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// renderChildren dispatches each child of d to the renderer's method for
// its kind, skipping files when dirsOnly is set.
func renderChildren(r Renderer, w io.Writer, d *tree.Directory, dirsOnly bool) error {
	for _, child := range d.Children() {
		switch node := child.(type) {
		case *tree.Directory:
			if err := r.RenderDirectory(w, node); err != nil {
				return err
			}
		case *tree.File:
			if dirsOnly {
				continue
			}

			if err := r.RenderFile(w, node); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedNodeKind, child)
		}
	}

	return nil
}
