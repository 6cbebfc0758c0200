package tree

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/idelchi/stree/internal/parse"
)

var (
	// ErrMalformedPath reports a path that is empty, relative, or not
	// normalized. Normalization is the adapter's job; the builder only
	// refuses what slipped through.
	ErrMalformedPath = errors.New("malformed path")

	// ErrDuplicatePath reports a path already present in the tree, or a
	// path that collides with an existing node of the other kind.
	ErrDuplicatePath = errors.New("duplicate path")
)

// Tree is a single root directory plus an index from absolute path to the
// node representing it. The index avoids re-creating directories during
// insertion and mirrors the tree's nodes exactly.
type Tree struct {
	root  *Directory
	index map[string]Node
	files int
}

// Root returns the tree's root directory.
func (t *Tree) Root() *Directory { return t.root }

// FileCount returns the number of file nodes in the tree.
func (t *Tree) FileCount() int { return t.files }

// Lookup returns the node for the given absolute path, if any. The root is
// indexed under Separator.
func (t *Tree) Lookup(p string) (Node, bool) {
	n, ok := t.index[p]

	return n, ok
}

// Walk visits every node in depth-first, insertion order, root first.
func (t *Tree) Walk(visit func(Node)) { t.root.Walk(visit) }

// Insert adds a single file to the tree, creating intermediate directories
// as needed and propagating the file's size to every ancestor. A failed
// insert leaves the tree untouched.
func (t *Tree) Insert(p string, size int64) error {
	if p == "" || p == Separator || !strings.HasPrefix(p, Separator) {
		return fmt.Errorf("%w: %q is not an absolute file path", ErrMalformedPath, p)
	}

	if p != path.Clean(p) {
		return fmt.Errorf("%w: %q is not normalized", ErrMalformedPath, p)
	}

	if _, ok := t.index[p]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, p)
	}

	segments := strings.Split(strings.TrimPrefix(p, Separator), Separator)

	// Validate before mutating so a conflict never leaves partial
	// directories behind.
	prefix := ""

	for _, segment := range segments[:len(segments)-1] {
		prefix += Separator + segment

		if node, ok := t.index[prefix]; ok {
			if _, isDir := node.(*Directory); !isDir {
				return fmt.Errorf("%w: %s is a file", ErrDuplicatePath, prefix)
			}
		}
	}

	dir := t.root
	prefix = ""

	for _, segment := range segments[:len(segments)-1] {
		prefix += Separator + segment

		if node, ok := t.index[prefix]; ok {
			dir = node.(*Directory)

			continue
		}

		child := &Directory{
			name:   segment,
			path:   prefix,
			depth:  dir.depth + 1,
			parent: dir,
		}
		dir.children = append(dir.children, child)
		t.index[prefix] = child
		dir = child
	}

	leaf := &File{
		name:  segments[len(segments)-1],
		path:  p,
		depth: dir.depth + 1,
		size:  size,
	}
	dir.children = append(dir.children, leaf)
	t.index[p] = leaf
	t.files++

	dir.addSize(size)

	return nil
}

// Builder constructs a Tree from a normalized mapping.
type Builder struct {
	rootName string
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithRootName overrides the synthetic root's name. The default is
// Separator.
func WithRootName(name string) BuilderOption {
	return func(b *Builder) { b.rootName = name }
}

// NewBuilder returns a Builder with the given options applied.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{rootName: Separator}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build inserts every entry of the mapping into a fresh tree and assigns
// leaderboard ranks to the files. Insertion order follows the mapping's
// order, so child ordering is deterministic for a deterministic input.
//
// An empty mapping yields a tree holding only the root, with size 0.
func (b *Builder) Build(mapping parse.Mapping) (*Tree, error) {
	tr := &Tree{
		root:  &Directory{name: b.rootName, path: Separator},
		index: make(map[string]Node, len(mapping)),
	}
	tr.index[Separator] = tr.root

	for _, entry := range mapping {
		if err := tr.Insert(entry.Path, entry.Size); err != nil {
			return nil, err
		}
	}

	tr.assignRanks()

	return tr, nil
}

// assignRanks orders all files by descending size, ties broken by ascending
// path, and stores each file's position. Rank 0 is the heaviest file.
func (t *Tree) assignRanks() {
	files := make([]*File, 0, t.files)

	for _, node := range t.index {
		if file, ok := node.(*File); ok {
			files = append(files, file)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].size != files[j].size {
			return files[i].size > files[j].size
		}

		return files[i].path < files[j].path
	})

	for i, file := range files {
		file.rank = i
	}
}
