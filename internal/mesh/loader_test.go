package mesh

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/meshwup/meshwup/internal/logging"
	"github.com/meshwup/meshwup/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/mini.nt"

func quietLogger() *slog.Logger {
	return logging.Discard()
}

func loadFixture(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := LoadFile(context.Background(), fixture, quietLogger())
	require.NoError(t, err)
	return v
}

func TestLoadFile(t *testing.T) {
	v := loadFixture(t)

	s := v.Stats()
	assert.Equal(t, 43, s.Triples)
	assert.Equal(t, 6, s.TreeNumbers)
	assert.Equal(t, 6, s.Descriptors)
}

func TestVocabulary_TreeNumberTerms(t *testing.T) {
	terms := loadFixture(t).TreeNumberTerms()

	assert.Equal(t, []string{"Infection", "Infections"}, terms["C01"])
	assert.Equal(t, []string{"Abscess", "Abscesses"}, terms["C01.830.025"])
	assert.Equal(t, []string{"Brain Abscess"}, terms["C01.830.025.160"])
	assert.Equal(t, []string{"Cancer", "Neoplasms", "Tumors"}, terms["C04"])
	assert.NotContains(t, terms, "C04.557", "descriptor without concepts has no terms")
	assert.Contains(t, terms, "A01")
}

func TestVocabulary_Resolver(t *testing.T) {
	v := loadFixture(t)

	ref, ok := v.RefFor("C04.557")
	require.True(t, ok)
	assert.Equal(t, DescriptorIRI("D009370"), ref)

	label, ok := v.LabelForRef(ref)
	require.True(t, ok)
	assert.Equal(t, "Neoplasms by Histologic Type", label)

	assert.Equal(t, []string{"Disease", "Diseases"}, v.TermsForRef(taxonomy.DefaultRootRef))

	_, ok = v.RefFor("C99")
	assert.False(t, ok)
}

func TestLoad_BuildsTaxonomy(t *testing.T) {
	v := loadFixture(t)
	tax, report := taxonomy.Build(taxonomy.Input{Terms: v.TreeNumberTerms(), Resolver: v},
		taxonomy.WithLogger(quietLogger()))

	require.NoError(t, tax.CheckRoot())
	assert.Equal(t, []string{"C", "C01", "C01.830", "C01.830.025", "C01.830.025.160", "C04"}, tax.IDs())
	assert.Equal(t, 1, report.OutOfCategory)
	assert.Equal(t, taxonomy.RootTermsFromFallbackRef, report.RootTermSource)
	assert.Equal(t, []string{"Disease", "Diseases"}, tax.Root().Terms())

	gap, _ := tax.Node("C01.830")
	assert.Equal(t, []string{"C01.830"}, gap.Terms())
}

func TestLoadFile_Gzip(t *testing.T) {
	raw, err := os.ReadFile(fixture)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mini.nt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	v, err := LoadFile(context.Background(), path, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 43, v.Stats().Triples)
}

func TestLoad_NoTreeNumbers(t *testing.T) {
	in := `<http://id.nlm.nih.gov/mesh/D004194> <http://www.w3.org/2000/01/rdf-schema#label> "Diseases"@en .` + "\n"
	_, err := Load(context.Background(), strings.NewReader(in), quietLogger())
	assert.ErrorIs(t, err, ErrNoTreeNumbers)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.nt"), quietLogger())
	assert.Error(t, err)
}

func TestTreeNumberFromIRI(t *testing.T) {
	assert.Equal(t, "C01.830", TreeNumberFromIRI("http://id.nlm.nih.gov/mesh/C01.830"))
	assert.Equal(t, "C01", TreeNumberFromIRI("C01"))
}
