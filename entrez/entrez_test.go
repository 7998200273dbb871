package entrez

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "protein", q.Get("db"))
		assert.Equal(t, "insulin AND srcdb_refseq[prop]", q.Get("term"))
		assert.Equal(t, "20", q.Get("retmax"))
		fmt.Fprint(w, `<?xml version="1.0"?>
<eSearchResult><Count>3</Count><RetMax>3</RetMax>
<IdList><Id>123456</Id><Id>789012</Id><Id>345678</Id></IdList>
</eSearchResult>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ids, err := search(srv.URL+"/", "protein", "insulin", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"123456", "789012", "345678"}, ids)
}

func TestSearchNoHits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<eSearchResult><Count>0</Count><IdList></IdList></eSearchResult>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ids, err := search(srv.URL+"/", "protein", "nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFetchFASTA(t *testing.T) {
	fasta := ">NP_000198.1 insulin preproprotein [Homo sapiens]\nMALWMRLLPLLALLALWGPDPAAA\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/efetch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "fasta", q.Get("rettype"))
		assert.Equal(t, "123456,789012", q.Get("id"))
		fmt.Fprint(w, fasta)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, err := fetchFASTA(srv.URL+"/", "protein", []string{"123456", "789012"})
	require.NoError(t, err)
	assert.Equal(t, fasta, out)
}

func TestFetchFASTANoIDs(t *testing.T) {
	out, err := FetchFASTA("protein", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
