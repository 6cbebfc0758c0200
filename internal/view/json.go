package view

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/idelchi/stree/internal/tree"
)

// report is the JSON shape of a rendered subtree: the same scan-report
// shape the json parser adapter consumes, so rendered output can be fed
// back through `--parser json`.
type report struct {
	FileCount  int          `json:"file_count"`
	TotalBytes int64        `json:"total_bytes"`
	TopFiles   []reportFile `json:"top_files"`
}

type reportFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// JSON renders the tree as a scan report with files ordered by their
// leaderboard rank, heaviest first. Directory-only mode does not apply
// here: a report without files would carry nothing.
type JSON struct{}

// RenderRoot delegates to the root directory; the report needs no extra
// framing.
func (v JSON) RenderRoot(w io.Writer, t *tree.Tree) error {
	return v.RenderDirectory(w, t.Root())
}

// RenderDirectory writes the report of the directory's subtree.
func (v JSON) RenderDirectory(w io.Writer, d *tree.Directory) error {
	var files []*tree.File

	d.Walk(func(n tree.Node) {
		if file, ok := n.(*tree.File); ok {
			files = append(files, file)
		}
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Rank() < files[j].Rank() })

	out := report{
		FileCount:  len(files),
		TotalBytes: d.Size(),
		TopFiles:   make([]reportFile, 0, len(files)),
	}

	for _, file := range files {
		out.TopFiles = append(out.TopFiles, reportFile{Path: file.Path(), Size: file.Size()})
	}

	return v.write(w, out)
}

// RenderFile writes a single-entry report.
func (v JSON) RenderFile(w io.Writer, f *tree.File) error {
	return v.write(w, report{
		FileCount:  1,
		TotalBytes: f.Size(),
		TopFiles:   []reportFile{{Path: f.Path(), Size: f.Size()}},
	})
}

func (JSON) write(w io.Writer, out report) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
