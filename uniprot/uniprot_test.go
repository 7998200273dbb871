package uniprot

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEntry(t *testing.T) *Entry {
	raw, err := os.ReadFile("./testdata/p63166.txt")
	require.NoError(t, err)

	e := &Entry{Accession: "P63166", Raw: raw}
	require.NoError(t, e.extract())
	return e
}

func TestExtractSequence(t *testing.T) {
	e := loadEntry(t)

	assert.Len(t, e.Sequence, 101)
	assert.True(t, strings.HasPrefix(e.Sequence, "MSDQEAKPST"))
	assert.True(t, strings.HasSuffix(e.Sequence, "TGGHSTV"))
}

func TestExtractNames(t *testing.T) {
	e := loadEntry(t)

	assert.Equal(t, "Small ubiquitin-related modifier 1", e.Name)
	assert.Equal(t, "Sumo1", e.Gene)
	assert.Equal(t, "Mus musculus (Mouse)", e.Organism)
}

func TestExtractPDBs(t *testing.T) {
	e := loadEntry(t)

	// X-ray entries only; the NMR structure is skipped.
	assert.Equal(t, []string{"1WYW"}, e.PDBIDs)
	assert.True(t, e.PDBIDExists("1WYW"))
	assert.False(t, e.PDBIDExists("2ASQ"))
}

func TestExtractFams(t *testing.T) {
	e := loadEntry(t)
	assert.Equal(t, []string{"PF11976"}, e.Pfam)
}

func TestExtractMissingSequence(t *testing.T) {
	e := &Entry{Raw: []byte("ID   NOPE\n")}
	assert.Error(t, e.extract())
}

func TestGetEntry(t *testing.T) {
	fixture, err := os.ReadFile("./testdata/p63166.txt")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uniprotkb/P63166.txt", r.URL.Path)
		w.Write(fixture)
	}))
	defer srv.Close()

	e, err := getEntry(srv.URL+"/", "P63166")
	require.NoError(t, err)
	assert.Equal(t, "P63166", e.Accession)
	assert.Equal(t, "Sumo1", e.Gene)
}

func TestSearchList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "list", q.Get("format"))
		assert.Equal(t, "organism_id:10090 AND sumo", q.Get("query"))
		assert.Equal(t, "25", q.Get("size"))
		fmt.Fprint(w, "P63166\nQ9Z172\nQ9Z173\n")
	}))
	defer srv.Close()

	raw, err := searchFormat(srv.URL+"/", "organism_id:10090 AND sumo", "list", 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"P63166", "Q9Z172", "Q9Z173"},
		strings.Split(strings.TrimSpace(raw), "\n"))
}

func TestSearchNoLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("size"), "no size param when unlimited")
		fmt.Fprint(w, "P63166\n")
	}))
	defer srv.Close()

	_, err := searchFormat(srv.URL+"/", "sumo", "list", 0)
	require.NoError(t, err)
}

func TestFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "accession:P63166 OR accession:P05791", q.Get("query"))
		assert.Equal(t, "accession,gene_names,organism_name", q.Get("fields"))
		fmt.Fprint(w, "Entry\tGene Names\tOrganism\n"+
			"P63166\tSumo1 Smt3c\tMus musculus\n"+
			"P05791\t\tEscherichia coli\n")
	}))
	defer srv.Close()

	entries, err := getFields(srv.URL+"/",
		[]string{"P63166", "P05791"},
		[]string{"gene_names", "organism_name"})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "Sumo1 Smt3c", entries["P63166"]["gene_names"])
	assert.Equal(t, "Mus musculus", entries["P63166"]["organism_name"])

	_, ok := entries["P05791"]["gene_names"]
	assert.False(t, ok, "empty cells are absent from the map")
	assert.Equal(t, "Escherichia coli", entries["P05791"]["organism_name"])
}

func TestParseTabColumnMismatch(t *testing.T) {
	_, err := parseTab("Entry\tGene\nP63166\n", []string{"gene_names"})
	assert.Error(t, err)
}

func TestFieldsNoAccessions(t *testing.T) {
	entries, err := Fields(nil, []string{"gene_names"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
