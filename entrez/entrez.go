// Package entrez queries the NCBI Entrez E-utilities, used here to search
// RefSeq and retrieve the matching sequences.
//
// See https://www.ncbi.nlm.nih.gov/books/NBK25499/
package entrez

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/binfgo/ebi/http"
)

// BaseURL points at the public E-utilities endpoint.
const BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

var idPattern = regexp.MustCompile("<Id>([0-9]+)</Id>")

// Search returns the Entrez IDs of RefSeq entries matching a term in the
// given database ("protein", "nucleotide", "pubmed", ...).
func Search(db, term string, limit int) ([]string, error) {
	return search(BaseURL, db, term, limit)
}

func search(baseURL, db, term string, limit int) ([]string, error) {
	query := url.Values{
		"db":     {db},
		"term":   {term + " AND srcdb_refseq[prop]"},
		"retmax": {strconv.Itoa(limit)},
	}

	raw, err := http.Get(baseURL + "esearch.fcgi?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("Entrez search %v in %v: %w", term, db, err)
	}

	var ids []string
	for _, m := range idPattern.FindAllStringSubmatch(string(raw), -1) {
		ids = append(ids, m[1])
	}

	return ids, nil
}

// FetchFASTA retrieves the FASTA records for a batch of Entrez IDs.
func FetchFASTA(db string, ids []string) (string, error) {
	return fetchFASTA(BaseURL, db, ids)
}

func fetchFASTA(baseURL, db string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}

	query := url.Values{
		"db":      {db},
		"rettype": {"fasta"},
		"id":      {strings.Join(ids, ",")},
	}

	raw, err := http.Get(baseURL + "efetch.fcgi?" + query.Encode())
	if err != nil {
		return "", fmt.Errorf("Entrez fetch %d ids from %v: %w", len(ids), db, err)
	}

	return string(raw), nil
}
