package file

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sif/siflines"
	errors "github.com/go-sif/siflines/errors"
	"github.com/stretchr/testify/require"
)

func testFile(name string) string {
	return filepath.Join("testdata", name)
}

func drain(t *testing.T, it siflines.LineIterator) []string {
	var lines []string
	for it.HasNextLine() {
		line, err := it.NextLine()
		require.Nil(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestTraverseThreeFiles(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ";"}, testFile("data1.csv"), testFile("data2.csv"), testFile("data3.csv"))
	require.Nil(t, err)
	require.NotNil(t, it)
	require.Equal(t, siflines.Ordered, it.Ordering())
	rows := drain(t, it)
	require.Nil(t, it.Close())

	require.Len(t, rows, 4)
	require.Equal(t, "header1-1;header1-2;header1-3;header2-1;header2-2;header2-3;header3-1;header3-2;header3-3", rows[0])
	require.Equal(t, "value1-1-1;value1-1-2;value1-1-3;value2-1-1;value2-1-2;value2-1-3;value3-1-1;value3-1-2;value3-1-3", rows[1])
	require.Equal(t, "value1-1-2;value1-2-2;value1-3-2;value2-1-2;value2-2-2;value2-3-2;value3-1-2;value3-2-2;value3-3-2", rows[2])
	require.Equal(t, "value1-1-3;value1-2-3;value1-3-3;value2-1-3;value2-2-3;value2-3-3;value3-1-3;value3-2-3;value3-3-3", rows[3])
}

func TestTraverseIncompleteFile(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ";"}, testFile("data1.csv"), testFile("dataLessRows4.csv"))
	require.Nil(t, err)
	defer it.Close()
	rows := drain(t, it)

	require.Len(t, rows, 4)
	require.Equal(t, "header1-1;header1-2;header1-3;header4-1;header4-2;header4-3", rows[0])
	require.Equal(t, "value1-1-1;value1-1-2;value1-1-3;value4-1-1;value4-1-2;value4-1-3", rows[1])
	require.Equal(t, "value1-1-2;value1-2-2;value1-3-2;", rows[2])
	require.Equal(t, "value1-1-3;value1-2-3;value1-3-3;", rows[3])
}

func TestTraverseShorterFileFirst(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: "|"}, testFile("dataLessRows4.csv"), testFile("data1.csv"))
	require.Nil(t, err)
	defer it.Close()
	rows := drain(t, it)
	require.Len(t, rows, 4)
	require.Equal(t, "|value1-1-3;value1-2-3;value1-3-3", rows[3])
}

func TestTraverseSingleFile(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: "#"}, testFile("data1.csv"))
	require.Nil(t, err)
	defer it.Close()
	rows := drain(t, it)
	require.Len(t, rows, 4)
	require.Equal(t, "header1-1;header1-2;header1-3", rows[0])
	require.NotContains(t, rows[3], "#")
}

func TestTraverseEndListener(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ","}, testFile("data1.csv"), testFile("data2.csv"))
	require.Nil(t, err)
	ended := 0
	it.OnEnd(func() { ended++ })
	drain(t, it)
	require.Equal(t, 1, ended)
	_, err = it.NextLine()
	require.IsType(t, errors.NoMoreLinesError{}, err)
	require.Nil(t, it.Close())
	require.Equal(t, 1, ended)
}

func TestTraversePartialConsumptionClose(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ","}, testFile("data1.csv"), testFile("data2.csv"))
	require.Nil(t, err)
	_, err = it.NextLine()
	require.Nil(t, err)
	require.Nil(t, it.Close())
	require.False(t, it.HasNextLine())
	for _, s := range it.(*traversingIterator).sources {
		require.Nil(t, s.(*fileLineIterator).file)
	}
	// closing twice is harmless
	require.Nil(t, it.Close())
}

func TestTraverseNilSeparator(t *testing.T) {
	it, err := TraverseFiles(nil, "does-not-matter.csv")
	require.Nil(t, it)
	require.Equal(t, errors.NilArgumentError{Name: "separator"}, err)
}

func TestTraverseNoFiles(t *testing.T) {
	_, err := TraverseFiles(&TraverseConf{Separator: ","})
	require.IsType(t, errors.ConfigurationError{}, err)
	require.Contains(t, err.Error(), "There must be at least one file as a parameter")

	_, err = TraverseFiles(&TraverseConf{Separator: ","}, []string{}...)
	require.IsType(t, errors.ConfigurationError{}, err)
}

func TestTraverseEmptyPath(t *testing.T) {
	_, err := TraverseFiles(&TraverseConf{Separator: ","}, testFile("data1.csv"), "", testFile("data2.csv"))
	require.NotNil(t, err)
	var ioErr errors.IOFailureError
	require.True(t, goerrors.As(err, &ioErr))
	var nilErr errors.NilArgumentError
	require.True(t, goerrors.As(err, &nilErr))
	require.Equal(t, "path", nilErr.Name)
}

func TestTraverseMissingFile(t *testing.T) {
	_, err := TraverseFiles(&TraverseConf{Separator: ","}, testFile("data1.csv"), testFile("notExistingFile.csv"))
	require.NotNil(t, err)
	var ioErr errors.IOFailureError
	require.True(t, goerrors.As(err, &ioErr))
	require.Equal(t, "open", ioErr.Op)
	require.True(t, goerrors.Is(err, os.ErrNotExist))
}

func TestTraverseLineTooLong(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ",", MaxBufferSize: 8}, testFile("data1.csv"), testFile("data2.csv"))
	require.Nil(t, err)
	defer it.Close()
	require.True(t, it.HasNextLine())
	_, err = it.NextLine()
	var ioErr errors.IOFailureError
	require.True(t, goerrors.As(err, &ioErr))
	require.Equal(t, "read", ioErr.Op)
}

func TestTraverseLongLineDefaults(t *testing.T) {
	long := writeLongLineFile(t, "long.txt", 70000)
	it, err := TraverseFiles(&TraverseConf{Separator: ";"}, long, testFile("dataLessRows4.csv"))
	require.Nil(t, err)
	defer it.Close()
	rows := drain(t, it)
	require.Len(t, rows, 3)
	require.Equal(t, "short;header4-1;header4-2;header4-3", rows[0])
	require.Equal(t, strings.Repeat("x", 70000)+";value4-1-1;value4-1-2;value4-1-3", rows[1])
	require.Equal(t, "last;", rows[2])
}

func TestTraverseStopsAfterReadError(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.Nil(t, os.WriteFile(a, []byte("a0\na1\na2\n"), 0644))
	require.Nil(t, os.WriteFile(b, []byte("b0\n"+strings.Repeat("y", 100)+"\nb2\n"), 0644))

	it, err := TraverseFiles(&TraverseConf{Separator: ",", MaxBufferSize: 16}, a, b)
	require.Nil(t, err)
	ended := 0
	it.OnEnd(func() { ended++ })

	row, err := it.NextLine()
	require.Nil(t, err)
	require.Equal(t, "a0,b0", row)

	_, err = it.NextLine()
	var ioErr errors.IOFailureError
	require.True(t, goerrors.As(err, &ioErr))
	require.Equal(t, "read", ioErr.Op)
	require.Equal(t, 1, ended)

	// no misaligned rows are produced after the failure
	require.False(t, it.HasNextLine())
	_, err = it.NextLine()
	require.IsType(t, errors.NoMoreLinesError{}, err)
	for _, s := range it.(*traversingIterator).sources {
		require.Nil(t, s.(*fileLineIterator).file)
	}
	require.Nil(t, it.Close())
	require.Equal(t, 1, ended)
}

func TestTraverseEndListenerMayClose(t *testing.T) {
	it, err := TraverseFiles(&TraverseConf{Separator: ","}, testFile("data1.csv"), testFile("dataLessRows4.csv"))
	require.Nil(t, err)
	closed := false
	it.OnEnd(func() {
		require.Nil(t, it.Close())
		closed = true
	})
	require.Len(t, drain(t, it), 4)
	require.True(t, closed)
}
