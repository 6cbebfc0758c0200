package view_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/stree/internal/parse"
	"github.com/idelchi/stree/internal/tree"
	"github.com/idelchi/stree/internal/view"
)

// scenarioTree builds the reference tree with a root named "root".
func scenarioTree(t *testing.T) *tree.Tree {
	t.Helper()

	built, err := tree.NewBuilder(tree.WithRootName("root")).Build(parse.Mapping{
		{Path: "/a/b/c.txt", Size: 100},
		{Path: "/a/d.txt", Size: 50},
	})
	require.NoError(t, err)

	return built
}

func renderWith(t *testing.T, name string, opts view.Options, tr *tree.Tree) string {
	t.Helper()

	renderer, err := view.New(name, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderRoot(&buf, tr))

	return buf.String()
}

func TestTextGolden(t *testing.T) {
	out := renderWith(t, "text", view.Options{}, scenarioTree(t))

	assert.Equal(t, "root/\n  a/\n    b/\n      c.txt - 100\n    d.txt - 50\n", out)
}

func TestTextSeparatorRoot(t *testing.T) {
	built, err := tree.NewBuilder().Build(parse.Mapping{{Path: "/a.txt", Size: 1}})
	require.NoError(t, err)

	out := renderWith(t, "text", view.Options{}, built)

	assert.Equal(t, "/\n  a.txt - 1\n", out)
}

func TestTextEmptyTree(t *testing.T) {
	built, err := tree.NewBuilder(tree.WithRootName("root")).Build(nil)
	require.NoError(t, err)

	out := renderWith(t, "text", view.Options{}, built)

	assert.Equal(t, "root/\n", out)
}

func TestTextDirsOnly(t *testing.T) {
	out := renderWith(t, "text", view.Options{DirsOnly: true}, scenarioTree(t))

	assert.Equal(t, "root/\n  a/\n    b/\n", out)
}

func TestRenderingIsIdempotent(t *testing.T) {
	tr := scenarioTree(t)

	for _, name := range view.Available() {
		first := renderWith(t, name, view.Options{}, tr)
		second := renderWith(t, name, view.Options{}, tr)

		assert.Equal(t, first, second, "view %s", name)
	}
}

func TestChildrenKeepInsertionOrder(t *testing.T) {
	// /z.txt is inserted before /a.txt and must render first.
	built, err := tree.NewBuilder(tree.WithRootName("root")).Build(parse.Mapping{
		{Path: "/z.txt", Size: 1},
		{Path: "/a.txt", Size: 2},
	})
	require.NoError(t, err)

	out := renderWith(t, "text", view.Options{}, built)

	assert.Equal(t, "root/\n  z.txt - 1\n  a.txt - 2\n", out)
}

func TestCSVGolden(t *testing.T) {
	built, err := tree.NewBuilder().Build(parse.Mapping{
		{Path: "/a/b/c.txt", Size: 100},
		{Path: "/a/d.txt", Size: 50},
	})
	require.NoError(t, err)

	out := renderWith(t, "csv", view.Options{}, built)

	assert.Equal(t,
		"path,kind,depth,size_bytes\n"+
			"/,directory,0,150\n"+
			"/a,directory,1,150\n"+
			"/a/b,directory,2,100\n"+
			"/a/b/c.txt,file,3,100\n"+
			"/a/d.txt,file,2,50\n",
		out)
}

func TestHTMLColored(t *testing.T) {
	out := renderWith(t, "html-colored", view.Options{}, scenarioTree(t))

	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "<html><body>")
	assert.Contains(t, out, "</body></html>")

	// The lone child directory chain collapses onto the root's line.
	assert.Contains(t, out, "root/a/ (150 B)")

	// The heaviest file is full red and bold.
	assert.Contains(t, out, `rgb(255, 0, 0)`)
	assert.Contains(t, out, `<b><abbr title="/a/b/c.txt">c.txt</abbr> | 100 B</b>`)
	assert.Contains(t, out, `<abbr title="/a/d.txt">d.txt</abbr> | 50 B`)
}

func TestHTMLColoredLeftover(t *testing.T) {
	// Children below one percent of the parent roll up into "...".
	built, err := tree.NewBuilder(tree.WithRootName("root")).Build(parse.Mapping{
		{Path: "/big.bin", Size: 100000},
		{Path: "/tiny1.txt", Size: 10},
		{Path: "/tiny2.txt", Size: 10},
	})
	require.NoError(t, err)

	out := renderWith(t, "html-colored", view.Options{}, built)

	assert.Contains(t, out, "big.bin")
	assert.NotContains(t, out, "tiny1.txt")
	assert.Contains(t, out, ">...</abbr> | 20 B")
}

func TestHTMLCompact(t *testing.T) {
	out := renderWith(t, "html-compact", view.Options{}, scenarioTree(t))

	assert.Contains(t, out, "<html><body><details><summary>root/ (150 B)</summary>")
	assert.Contains(t, out, "<details><summary>a/ (150 B)</summary>")
	assert.Contains(t, out, "<li>c.txt | 100 B</li>")
	assert.Contains(t, out, "<li>d.txt | 50 B</li>")
	assert.Contains(t, out, "</body></html>")
}

func TestASCII(t *testing.T) {
	out := renderWith(t, "ascii", view.Options{}, scenarioTree(t))

	assert.Contains(t, out, "root/ (150 B)")
	assert.Contains(t, out, "a/ (150 B)")
	assert.Contains(t, out, "c.txt 100 B")
	assert.Contains(t, out, "└──")
}

func TestColor(t *testing.T) {
	out := renderWith(t, "color", view.Options{}, scenarioTree(t))

	assert.Contains(t, out, "root/")
	assert.Contains(t, out, "c.txt")
	assert.Contains(t, out, "150 B")
}

func TestJSONGolden(t *testing.T) {
	out := renderWith(t, "json", view.Options{}, scenarioTree(t))

	assert.Equal(t, `{
  "file_count": 2,
  "total_bytes": 150,
  "top_files": [
    {
      "path": "/a/b/c.txt",
      "size": 100
    },
    {
      "path": "/a/d.txt",
      "size": 50
    }
  ]
}
`, out)
}

func TestJSONRoundTrip(t *testing.T) {
	// A rendered report must parse back through the json adapter.
	out := renderWith(t, "json", view.Options{}, scenarioTree(t))

	adapter := parse.JSON{}

	raw, err := adapter.ReadSource(strings.NewReader(out))
	require.NoError(t, err)

	mapping, err := adapter.Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, parse.Mapping{
		{Path: "/a/b/c.txt", Size: 100},
		{Path: "/a/d.txt", Size: 50},
	}, mapping)
}

func TestJSONEmptyTree(t *testing.T) {
	built, err := tree.NewBuilder().Build(nil)
	require.NoError(t, err)

	out := renderWith(t, "json", view.Options{}, built)

	// top_files stays an array, not null, so the adapter accepts it.
	assert.Contains(t, out, `"top_files": []`)
	assert.Contains(t, out, `"file_count": 0`)
}

func TestUnknownView(t *testing.T) {
	_, err := view.New("nope", view.Options{})
	assert.ErrorIs(t, err, view.ErrUnknownView)
}

func TestAvailable(t *testing.T) {
	assert.Equal(t,
		[]string{"ascii", "color", "csv", "html-colored", "html-compact", "json", "text"},
		view.Available())
}
