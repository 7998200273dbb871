package dbfetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastaP63166 = ">sp|P63166|SUMO1_MOUSE Small ubiquitin-related modifier 1\nMSDQEAKPSTEDLGDKKEGEYIKLKVIGQDSSEIHFKVKMTTHLKKLKESYCQRQGVPMN\n"

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "raw", q.Get("style"))
		assert.Equal(t, "uniprotkb", q.Get("db"))
		assert.Equal(t, "fasta", q.Get("format"))
		assert.Equal(t, "P63166", q.Get("id"))
		fmt.Fprint(w, fastaP63166)
	}))
	defer srv.Close()

	body, err := fetch(srv.URL, "P63166", "uniprotkb", "fasta")
	require.NoError(t, err)
	assert.Equal(t, fastaP63166, body)
}

func TestFetchErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ERROR 12 No entries found.\n")
	}))
	defer srv.Close()

	_, err := fetch(srv.URL, "NOPE", "uniprotkb", "fasta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No entries found")
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := fetch(srv.URL, "P63166", "uniprotkb", "fasta")
	assert.Error(t, err)
}
