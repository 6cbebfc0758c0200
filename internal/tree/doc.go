// Package tree holds the in-memory storage tree: a hierarchy of directory
// and file nodes built from a normalized path/size mapping.
//
// The tree is built in a single pass. Directories are created on the fly as
// paths are inserted, sizes propagate eagerly to every ancestor, and a
// path index guarantees each path maps to exactly one node.
package tree
