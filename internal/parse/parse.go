// Package parse normalizes external disk-usage reports into the path/size
// mapping consumed by the tree builder. One adapter exists per supported
// input format; all adapters produce the same normalized shape.
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
)

var (
	// ErrUnreadableSource reports an input that cannot be loaded: a
	// missing file or a payload the format's decoder rejects.
	ErrUnreadableSource = errors.New("unreadable source")

	// ErrSchema reports raw content that loaded fine but lacks the
	// required path/size fields, or carries invalid values for them.
	ErrSchema = errors.New("invalid schema")

	// ErrUnknownParser reports a format name with no registered adapter.
	ErrUnknownParser = errors.New("unknown parser")
)

// Entry is one normalized path/size pair.
type Entry struct {
	// Path is the absolute, slash-separated file path.
	Path string
	// Size is the file's size in bytes.
	Size int64
}

// Mapping is the normalized output of an adapter: absolute slash-separated
// paths with sizes in bytes, sorted ascending by path.
type Mapping []Entry

// Raw is an adapter's intermediate representation of its source. Its
// concrete type is private to each adapter.
type Raw any

// Adapter converts one input format into the normalized mapping.
// Extraction is all-or-nothing: no partial mapping is returned on failure.
type Adapter interface {
	// ReadSource loads and decodes the raw input into the adapter's
	// intermediate form.
	ReadSource(r io.Reader) (Raw, error)

	// Extract projects the intermediate form down to path/size pairs,
	// discarding every other field.
	Extract(raw Raw) (Mapping, error)
}

// adapters maps format names to adapter factories.
var adapters = map[string]func() Adapter{
	"du":   func() Adapter { return DU{} },
	"csv":  func() Adapter { return CSV{} },
	"json": func() Adapter { return JSON{} },
}

// New returns the adapter registered under name.
func New(name string) (Adapter, error) {
	factory, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownParser, name, Available())
	}

	return factory(), nil
}

// Available returns the registered format names, sorted.
func Available() []string {
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Load runs the named adapter over the file at src and returns the
// normalized mapping.
func Load(name, src string) (Mapping, error) {
	adapter, err := New(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrUnreadableSource, src, err)
	}
	defer file.Close()

	raw, err := adapter.ReadSource(file)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", src, err)
	}

	mapping, err := adapter.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("extracting from %q: %w", src, err)
	}

	return Normalize(mapping)
}

// Normalize converts paths to slash form, cleans them, validates that they
// are absolute with non-negative sizes, and sorts the mapping ascending by
// path so tree construction is deterministic for any input format.
func Normalize(mapping Mapping) (Mapping, error) {
	out := make(Mapping, 0, len(mapping))

	for _, entry := range mapping {
		cleaned := path.Clean(filepath.ToSlash(entry.Path))

		if !path.IsAbs(cleaned) {
			return nil, fmt.Errorf("%w: path %q is not absolute", ErrSchema, entry.Path)
		}

		if entry.Size < 0 {
			return nil, fmt.Errorf("%w: negative size %d for %q", ErrSchema, entry.Size, entry.Path)
		}

		out = append(out, Entry{Path: cleaned, Size: entry.Size})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out, nil
}
