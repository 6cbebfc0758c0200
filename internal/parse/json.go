package parse

import (
	"encoding/json"
	"fmt"
	"io"
)

// scanReport is the slice of a scan report this adapter cares about: the
// shape `stree --scan` and compatible tools emit as JSON.
type scanReport struct {
	TopFiles []struct {
		Path string `json:"path"`
		Size int64  `json:"size"`
	} `json:"top_files"`
}

// JSON parses scan reports with a "top_files" array of {path, size} objects.
type JSON struct{}

// ReadSource decodes the JSON document.
func (JSON) ReadSource(r io.Reader) (Raw, error) {
	var report scanReport

	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	return report, nil
}

// Extract projects the report's top_files down to path/size pairs.
func (JSON) Extract(raw Raw) (Mapping, error) {
	report, ok := raw.(scanReport)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected raw content %T", ErrSchema, raw)
	}

	if report.TopFiles == nil {
		return nil, fmt.Errorf("%w: report has no top_files field", ErrSchema)
	}

	mapping := make(Mapping, 0, len(report.TopFiles))

	for _, file := range report.TopFiles {
		mapping = append(mapping, Entry{Path: file.Path, Size: file.Size})
	}

	return mapping, nil
}
