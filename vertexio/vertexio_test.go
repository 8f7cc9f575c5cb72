package vertexio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/vertexio"
)

func TestRead_MixedSeparators(t *testing.T) {
	in := strings.Join([]string{
		"# x,y",
		"",
		"1,2",
		"3 4",
		"5;6",
		"  7.5 ,\t-8  ",
		"lonely",
		"9,10,ignored",
		"# trailing comment",
	}, "\n")

	vs, err := vertexio.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []aco.Vertex{
		{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7.5, Y: -8}, {X: 9, Y: 10},
	}, vs)
}

func TestRead_Errors(t *testing.T) {
	_, err := vertexio.Read(strings.NewReader("# only a header\n\n"))
	require.ErrorIs(t, err, vertexio.ErrEmpty)

	_, err = vertexio.Read(strings.NewReader("1,2\n3,abc\n"))
	require.ErrorIs(t, err, vertexio.ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")

	_, err = vertexio.Read(strings.NewReader("Inf,1\n"))
	require.ErrorIs(t, err, vertexio.ErrSyntax)

	_, err = vertexio.Read(strings.NewReader("NaN 1\n"))
	require.ErrorIs(t, err, vertexio.ErrSyntax)
}

func TestWriteThenRead(t *testing.T) {
	vs := []aco.Vertex{{X: 0, Y: 0}, {X: 12.25, Y: 3}, {X: -1, Y: 1e-3}}

	var buf bytes.Buffer
	require.NoError(t, vertexio.Write(&buf, vs))
	assert.Equal(t, "# x,y\n0,0\n12.25,3\n-1,0.001\n", buf.String())

	back, err := vertexio.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, vs, back)
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	vs := []aco.Vertex{{X: 1, Y: 1}, {X: 2, Y: 3}}

	path, err := vertexio.SaveFile(filepath.Join(dir, "runs", "today", "points"), vs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runs", "today", "points.csv"), path)

	back, err := vertexio.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, vs, back)

	kept, err := vertexio.SaveFile(filepath.Join(dir, "upper.CSV"), vs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "upper.CSV"), kept)

	_, err = vertexio.LoadFile(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithin(t *testing.T) {
	vs := []aco.Vertex{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 11, Y: 1}, {X: 3, Y: -1}}

	kept, dropped := vertexio.Within(vs, 10, 5)
	assert.Equal(t, []aco.Vertex{{X: 0, Y: 0}, {X: 10, Y: 5}}, kept)
	assert.Equal(t, 2, dropped)
}
