package uniprot

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/binfgo/ebi/http"
)

// Search fetches the accession IDs matching a query, e.g.
// "organism_id:9606 AND antigen". A limit of 0 returns all matches.
func Search(query string, limit int) ([]string, error) {
	raw, err := searchFormat(BaseURL, query, "list", limit)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// SearchFormat fetches raw search results in the given format, e.g.
// "fasta" or "txt". A limit of 0 returns all matches.
func SearchFormat(query, format string, limit int) (string, error) {
	return searchFormat(BaseURL, query, format, limit)
}

func searchFormat(baseURL, query, format string, limit int) (string, error) {
	values := url.Values{
		"query":  {query},
		"format": {format},
	}
	if limit > 0 {
		values.Set("size", strconv.Itoa(limit))
	}

	raw, err := http.Get(baseURL + "uniprotkb/search?" + values.Encode())
	if err != nil {
		return "", fmt.Errorf("UniProt search query %v: %w", query, err)
	}

	return string(raw), nil
}
