package uniprot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/binfgo/ebi/http"
)

// Fields retrieves the given database fields for a batch of accessions,
// e.g. Fields([]string{"P63166"}, []string{"gene_names", "organism_name"}).
//
// The result maps each accession to a field name -> value map; fields the
// entry has no value for are absent. Field names are listed at
// https://www.uniprot.org/help/return_fields.
func Fields(accessions, fields []string) (map[string]map[string]string, error) {
	return getFields(BaseURL, accessions, fields)
}

func getFields(baseURL string, accessions, fields []string) (map[string]map[string]string, error) {
	if len(accessions) == 0 {
		return map[string]map[string]string{}, nil
	}

	queries := make([]string, len(accessions))
	for i, acc := range accessions {
		queries[i] = "accession:" + acc
	}

	values := url.Values{
		"query":  {strings.Join(queries, " OR ")},
		"format": {"tsv"},
		"fields": {"accession," + strings.Join(fields, ",")},
	}

	raw, err := http.Get(baseURL + "uniprotkb/search?" + values.Encode())
	if err != nil {
		return nil, fmt.Errorf("UniProt fields for %d accessions: %w", len(accessions), err)
	}

	return parseTab(string(raw), fields)
}

// parseTab parses a TSV response whose first column is the accession and
// whose remaining columns follow the requested field order. The header row
// holds display names, not field ids, so columns are matched by position.
func parseTab(raw string, fields []string) (map[string]map[string]string, error) {
	entries := make(map[string]map[string]string)

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 1 {
		return entries, nil
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		if len(cells) != len(fields)+1 {
			return nil, fmt.Errorf("expected %d columns, got %d in row %q", len(fields)+1, len(cells), line)
		}

		row := make(map[string]string)
		for i, field := range fields {
			if cells[i+1] != "" {
				row[field] = cells[i+1]
			}
		}
		entries[cells[0]] = row
	}

	return entries, nil
}
