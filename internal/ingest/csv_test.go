package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "Item Code,Qty,Line Total\nA100,10,820\nB200,2,100\n")

	header, records, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Item Code", "Qty", "Line Total"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"A100", "10", "820"}, records[0])
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "Item Code,Qty,Line Total\nA100,10\nB200,2,100,extra\n")

	_, records, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0], 2)
	assert.Len(t, records[1], 4)
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, _, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
