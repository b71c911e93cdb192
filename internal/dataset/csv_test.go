package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meshwup/meshwup/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	pairs := []sampler.Pair{
		{TermI: "Abscess", TermJ: "Tumors", Similarity: 0.29},
		{TermI: "Infection", TermJ: "Infections, Bacterial", Similarity: 1},
	}
	require.NoError(t, Write(&buf, pairs, 2))

	want := "word_i,word_j,wup_similarity\n" +
		"Abscess,Tumors,0.29\n" +
		"Infection,\"Infections, Bacterial\",1.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh_dataset.csv")
	pairs := []sampler.Pair{
		{TermI: "a", TermJ: "b", Similarity: 0.5},
		{TermI: "c", TermJ: "d", Similarity: 0.67},
	}
	require.NoError(t, WriteFile(path, pairs, 2))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[1].WordI)
	require.NotNil(t, rows[1].Similarity)
	assert.Equal(t, 0.67, *rows[1].Similarity)
}

func TestRead_MissingSimilarity(t *testing.T) {
	rows, err := Read(strings.NewReader("word_i,word_j,wup_similarity\na,b,\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Similarity)
}

func TestRead_BadHeader(t *testing.T) {
	_, err := Read(strings.NewReader("a,b,c\nx,y,0.5\n"))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestRead_Empty(t *testing.T) {
	rows, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, rows)
}
