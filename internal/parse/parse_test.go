package parse_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/stree/internal/parse"
)

func extract(t *testing.T, adapter parse.Adapter, input string) (parse.Mapping, error) {
	t.Helper()

	raw, err := adapter.ReadSource(strings.NewReader(input))
	require.NoError(t, err)

	return adapter.Extract(raw)
}

func TestDUExtract(t *testing.T) {
	input := "100 /a/b.txt\n2KiB\t/a/with space.txt\n\n1.5MB /e.bin\n"

	mapping, err := extract(t, parse.DU{}, input)
	require.NoError(t, err)

	assert.Equal(t, parse.Mapping{
		{Path: "/a/b.txt", Size: 100},
		{Path: "/a/with space.txt", Size: 2048},
		{Path: "/e.bin", Size: 1500000},
	}, mapping)
}

func TestDUExtractInvalid(t *testing.T) {
	_, err := extract(t, parse.DU{}, "not-a-size /a/b.txt\n")
	assert.ErrorIs(t, err, parse.ErrSchema)

	_, err = extract(t, parse.DU{}, "100\n")
	assert.ErrorIs(t, err, parse.ErrSchema)
}

func TestCSVExtract(t *testing.T) {
	input := "uid,size,path\n1000,100,/a/b.txt\n1000,50,/a/c.txt\n"

	mapping, err := extract(t, parse.CSV{}, input)
	require.NoError(t, err)

	assert.Equal(t, parse.Mapping{
		{Path: "/a/b.txt", Size: 100},
		{Path: "/a/c.txt", Size: 50},
	}, mapping)
}

func TestCSVExtractInvalid(t *testing.T) {
	// No size column.
	_, err := extract(t, parse.CSV{}, "path,uid\n/a,1\n")
	assert.ErrorIs(t, err, parse.ErrSchema)

	// No header at all.
	_, err = extract(t, parse.CSV{}, "")
	assert.ErrorIs(t, err, parse.ErrSchema)

	// Non-numeric size.
	_, err = extract(t, parse.CSV{}, "path,size\n/a,big\n")
	assert.ErrorIs(t, err, parse.ErrSchema)
}

func TestJSONExtract(t *testing.T) {
	input := `{"file_count": 2, "top_files": [{"path": "/a/b.txt", "size": 100}, {"path": "/a/c.txt", "size": 50}]}`

	mapping, err := extract(t, parse.JSON{}, input)
	require.NoError(t, err)

	assert.Equal(t, parse.Mapping{
		{Path: "/a/b.txt", Size: 100},
		{Path: "/a/c.txt", Size: 50},
	}, mapping)
}

func TestJSONExtractInvalid(t *testing.T) {
	adapter := parse.JSON{}

	_, err := adapter.ReadSource(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, parse.ErrUnreadableSource)

	_, err = extract(t, adapter, `{"file_count": 2}`)
	assert.ErrorIs(t, err, parse.ErrSchema)
}

func TestLoad(t *testing.T) {
	src := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(src, []byte("50 /z.txt\n100 /a.txt\n"), 0o644))

	mapping, err := parse.Load("du", src)
	require.NoError(t, err)

	// Load sorts ascending by path.
	assert.Equal(t, parse.Mapping{
		{Path: "/a.txt", Size: 100},
		{Path: "/z.txt", Size: 50},
	}, mapping)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := parse.Load("du", filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, parse.ErrUnreadableSource)
}

func TestLoadUnknownParser(t *testing.T) {
	_, err := parse.Load("nope", "whatever")
	assert.ErrorIs(t, err, parse.ErrUnknownParser)
}

func TestNormalize(t *testing.T) {
	mapping, err := parse.Normalize(parse.Mapping{
		{Path: "/a//b.txt", Size: 1},
		{Path: "/a/x/../c.txt", Size: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, parse.Mapping{
		{Path: "/a/b.txt", Size: 1},
		{Path: "/a/c.txt", Size: 2},
	}, mapping)
}

func TestNormalizeInvalid(t *testing.T) {
	_, err := parse.Normalize(parse.Mapping{{Path: "relative.txt", Size: 1}})
	assert.ErrorIs(t, err, parse.ErrSchema)

	_, err = parse.Normalize(parse.Mapping{{Path: "/a.txt", Size: -1}})
	assert.ErrorIs(t, err, parse.ErrSchema)
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"csv", "du", "json"}, parse.Available())
}
