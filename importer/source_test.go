package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenCSVReadsByColumnName(t *testing.T) {
	path := writeTempCSV(t, "Last Name,First Name,Email\nDoe,Jane,jane@example.com\nSmith,,\n")

	src, err := OpenCSV(path)
	require.NoError(t, err)
	defer src.Close()

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Doe", row.Get("Last Name"))
	assert.Equal(t, "Jane", row.Get("First Name"))
	assert.Equal(t, "jane@example.com", row.Get("Email"))

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Smith", row.Get("Last Name"))
	assert.Equal(t, "", row.Get("First Name"))

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenCSVStripsByteOrderMark(t *testing.T) {
	path := writeTempCSV(t, "\uFEFFLast Name,Email\nDoe,jane@example.com\n")

	src, err := OpenCSV(path)
	require.NoError(t, err)
	defer src.Close()

	row, err := src.Next()
	require.NoError(t, err)
	// without BOM handling the first header would read as "<BOM>Last Name"
	assert.Equal(t, "Doe", row.Get("Last Name"))
}

func TestRecordMissingColumnReadsEmpty(t *testing.T) {
	path := writeTempCSV(t, "Last Name\nDoe\n")

	src, err := OpenCSV(path)
	require.NoError(t, err)
	defer src.Close()

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("Phone"))
}

func TestRecordTrimsWhitespace(t *testing.T) {
	path := writeTempCSV(t, "Last Name,Phone\n  Doe  ,  555-0100 \n")

	src, err := OpenCSV(path)
	require.NoError(t, err)
	defer src.Close()

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Doe", row.Get("Last Name"))
	assert.Equal(t, "555-0100", row.Get("Phone"))
}

func TestOpenCSVEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	src, err := OpenCSV(path)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}
