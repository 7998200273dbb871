// Package dbfetch retrieves single entries from the EBI dbfetch service,
// a uniform gateway over UniProtKB, PDB, RefSeq and dozens of other
// databases.
//
// See https://www.ebi.ac.uk/Tools/dbfetch/syntax.jsp for the URL syntax and
// https://www.ebi.ac.uk/Tools/dbfetch/dbfetch.databases for the database
// and format catalog.
package dbfetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/binfgo/ebi/http"
)

// BaseURL points at the public EBI dbfetch endpoint.
const BaseURL = "https://www.ebi.ac.uk/Tools/dbfetch/dbfetch"

// Fetch retrieves one entry in the given format, e.g.
// Fetch("P63166", "uniprotkb", "fasta"). The database decides which entry
// ids and formats are valid; dbfetch reports unknown ones with an ERROR
// body, which is surfaced as an error here.
func Fetch(entryID, db, format string) (string, error) {
	return fetch(BaseURL, entryID, db, format)
}

func fetch(baseURL, entryID, db, format string) (string, error) {
	query := url.Values{
		"style":    {"raw"},
		"Retrieve": {"Retrieve"},
		"db":       {db},
		"format":   {format},
		"id":       {entryID},
	}

	raw, err := http.Get(baseURL + "?" + query.Encode())
	if err != nil {
		return "", fmt.Errorf("dbfetch %s from %s: %w", entryID, db, err)
	}

	body := string(raw)
	if strings.HasPrefix(body, "ERROR") {
		return "", fmt.Errorf("dbfetch %s from %s: %s", entryID, db, strings.TrimSpace(body))
	}

	return body, nil
}
