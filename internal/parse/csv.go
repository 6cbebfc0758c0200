package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSV parses tabular exports carrying at least a "path" and a "size" column,
// identified by the header row. Extra columns (uid, atime, mtime, ...) are
// discarded.
type CSV struct{}

// ReadSource decodes the full CSV document into its records.
func (CSV) ReadSource(r io.Reader) (Raw, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	return records, nil
}

// Extract locates the path and size columns via the header row and projects
// every following record down to a path/size pair.
func (CSV) Extract(raw Raw) (Mapping, error) {
	records, ok := raw.([][]string)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected raw content %T", ErrSchema, raw)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrSchema)
	}

	pathCol, sizeCol := -1, -1

	for i, column := range records[0] {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "path":
			pathCol = i
		case "size":
			sizeCol = i
		}
	}

	if pathCol < 0 || sizeCol < 0 {
		return nil, fmt.Errorf("%w: header %v lacks path/size columns", ErrSchema, records[0])
	}

	mapping := make(Mapping, 0, len(records)-1)

	for i, record := range records[1:] {
		size, err := strconv.ParseInt(record[sizeCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d has invalid size %q: %v", ErrSchema, i+2, record[sizeCol], err)
		}

		mapping = append(mapping, Entry{Path: record[pathCol], Size: size})
	}

	return mapping, nil
}
