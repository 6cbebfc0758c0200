package tree

// Separator is the uniform path separator used throughout the tree.
// Adapters convert native paths to this form before they reach the builder.
const Separator = "/"

// Node is a single entry in the storage tree, either a *Directory or a
// *File. No other kinds exist.
type Node interface {
	// Name is the last path segment of the node.
	Name() string
	// Path is the absolute, slash-separated path of the node.
	Path() string
	// Depth is the distance from the root. The root has depth 0.
	Depth() int
	// Size is the node's size in bytes. For a directory this is the
	// cumulative size of its entire subtree.
	Size() int64
}

// Directory is an interior node. It owns its children exclusively and keeps
// them in insertion order.
type Directory struct {
	name     string
	path     string
	depth    int
	size     int64
	parent   *Directory
	children []Node
}

// Name returns the directory's name.
func (d *Directory) Name() string { return d.name }

// Path returns the directory's absolute path.
func (d *Directory) Path() string { return d.path }

// Depth returns the directory's distance from the root.
func (d *Directory) Depth() int { return d.depth }

// Size returns the cumulative size of the directory's subtree in bytes.
func (d *Directory) Size() int64 { return d.size }

// Parent returns the parent directory, or nil for the root.
func (d *Directory) Parent() *Directory { return d.parent }

// Children returns the directory's children in insertion order.
func (d *Directory) Children() []Node { return d.children }

// Walk visits the directory and every descendant in depth-first,
// insertion order.
func (d *Directory) Walk(visit func(Node)) {
	visit(d)

	for _, child := range d.children {
		if dir, ok := child.(*Directory); ok {
			dir.Walk(visit)
		} else {
			visit(child)
		}
	}
}

// addSize adds n bytes to this directory and every ancestor.
func (d *Directory) addSize(n int64) {
	d.size += n
	if d.parent != nil {
		d.parent.addSize(n)
	}
}

// File is a leaf node. It is immutable after creation.
type File struct {
	name  string
	path  string
	depth int
	size  int64
	rank  int
}

// Name returns the file's name.
func (f *File) Name() string { return f.name }

// Path returns the file's absolute path.
func (f *File) Path() string { return f.path }

// Depth returns the file's distance from the root.
func (f *File) Depth() int { return f.depth }

// Size returns the file's size in bytes.
func (f *File) Size() int64 { return f.size }

// Rank is the file's position on the size leaderboard: 0 is the heaviest
// file in the tree, ties broken by ascending path. Ranks are assigned by
// Build once all entries have been inserted.
func (f *File) Rank() int { return f.rank }
