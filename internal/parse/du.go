package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// DU parses plain listings with one "<size> <path>" pair per line, the
// format emitted by du-style tools. Sizes are raw byte counts or humanized
// values (e.g. 1.5MB, 2KiB). Blank lines are ignored.
type DU struct{}

// ReadSource loads the listing into a slice of lines.
func (DU) ReadSource(r io.Reader) (Raw, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	return lines, nil
}

// Extract parses each line into a path/size pair. Paths may contain spaces;
// only the first whitespace run separates size from path.
func (DU) Extract(raw Raw) (Mapping, error) {
	lines, ok := raw.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected raw content %T", ErrSchema, raw)
	}

	mapping := make(Mapping, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cut := strings.IndexAny(line, " \t")
		if cut < 0 {
			return nil, fmt.Errorf("%w: line %d has no path column: %q", ErrSchema, i+1, line)
		}

		size, err := humanize.ParseBytes(line[:cut])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has invalid size %q: %v", ErrSchema, i+1, line[:cut], err)
		}

		mapping = append(mapping, Entry{
			Path: strings.TrimSpace(line[cut:]),
			Size: int64(size),
		})
	}

	return mapping, nil
}
