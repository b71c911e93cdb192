package ohsumed

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/meshwup/meshwup/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return logging.Discard()
}

func corpus() fstest.MapFS {
	return fstest.MapFS{
		"C01/0001":     {Data: []byte("Bacterial infection in children\nWe studied 40 cases.\nMore text.\n")},
		"C01/0002":     {Data: []byte("Title only\n")},
		"C04/0003":     {Data: []byte("Tumour growth\nCaf\xe9 au lait spots were observed.\n")},
		"C04/sub/0004": {Data: []byte("nested\nignored\n")},
		"README":       {Data: []byte("not a category\n")},
		"D01/0005":     {Data: []byte("other\nignored\n")},
	}
}

func TestScan(t *testing.T) {
	records, stats, err := Scan(corpus(), quietLogger())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, Record{
		Title:    "Bacterial infection in children",
		Abstract: "We studied 40 cases.\nMore text.",
		Label:    "C01",
	}, records[0])
	assert.Equal(t, "C04", records[1].Label)
	assert.Equal(t, "Café au lait spots were observed.", records[1].Abstract, "Latin-1 is decoded")

	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, map[string]int{"C01": 1, "C04": 1}, stats.PerLabel)
}

func TestScan_NoCategories(t *testing.T) {
	_, _, err := Scan(fstest.MapFS{"D01/x": {Data: []byte("a\nb")}}, quietLogger())
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ohsumed_dataset.csv")
	require.NoError(t, WriteFile(path, []Record{{Title: "t", Abstract: "a, b", Label: "C01"}}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header, {"t", "a, b", "C01"}}, recs)
}
