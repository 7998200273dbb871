// Package quickgo queries the QuickGO gene ontology services: GO term
// lookups and annotation searches mapping gene products to GO terms and
// back.
//
// Annotation queries are batched and paginated the way the service
// expects; large result sets are requested gzip-compressed. Queries
// involving many entries can be slow on the provider side.
//
// See https://www.ebi.ac.uk/QuickGO/api/index.html
package quickgo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/binfgo/ebi/http"
)

// BaseURL points at the public QuickGO services endpoint.
const BaseURL = "https://www.ebi.ac.uk/QuickGO/services/"

const (
	geneBatchSize = 100 // gene products per annotation query
	termBatchSize = 10  // GO terms per annotation query
	pageLimit     = 100 // records per returned page
)

type annotation struct {
	GeneProductID string `json:"geneProductId"` // e.g. "UniProtKB:P63166"
	GoID          string `json:"goId"`          // e.g. "GO:0002080"
}

type annotationPage struct {
	NumberOfHits int          `json:"numberOfHits"`
	Results      []annotation `json:"results"`
}

// TermsForGenes retrieves all GO terms annotated to the given gene
// products. The result maps each gene product ID, as reported by QuickGO
// (e.g. "UniProtKB:P63166"), to its unique GO term IDs.
func TermsForGenes(genes []string) (map[string][]string, error) {
	return termsForGenes(BaseURL, genes)
}

func termsForGenes(baseURL string, genes []string) (map[string][]string, error) {
	sets := make(map[string]map[string]struct{})

	for start := 0; start < len(genes); start += geneBatchSize {
		batch := genes[start:min(start+geneBatchSize, len(genes))]
		query := url.Values{
			"limit":         {strconv.Itoa(pageLimit)},
			"geneProductId": {strings.Join(batch, ",")},
		}

		err := forEachAnnotation(baseURL, query, func(a annotation) {
			addTo(sets, a.GeneProductID, a.GoID)
		})
		if err != nil {
			return nil, err
		}
	}

	return flatten(sets), nil
}

// GenesForTerms retrieves all gene products annotated with the given GO
// terms. Gene products annotated with a more specific term than those
// given are included. A taxon ID (e.g. 9606 for human) restricts results
// to one organism; zero means all organisms.
func GenesForTerms(terms []string, taxonID int) (map[string][]string, error) {
	return genesForTerms(BaseURL, terms, taxonID)
}

func genesForTerms(baseURL string, terms []string, taxonID int) (map[string][]string, error) {
	sets := make(map[string]map[string]struct{})

	for start := 0; start < len(terms); start += termBatchSize {
		batch := terms[start:min(start+termBatchSize, len(terms))]
		query := url.Values{
			"limit": {strconv.Itoa(pageLimit)},
			"goId":  {strings.Join(batch, ",")},
		}
		if taxonID > 0 {
			query.Set("taxonId", strconv.Itoa(taxonID))
		}

		err := forEachAnnotation(baseURL, query, func(a annotation) {
			addTo(sets, a.GoID, a.GeneProductID)
		})
		if err != nil {
			return nil, err
		}
	}

	return flatten(sets), nil
}

// forEachAnnotation walks every page of an annotation search, calling fn
// for each record. A page shorter than the page limit is the last one.
func forEachAnnotation(baseURL string, query url.Values, fn func(annotation)) error {
	for page := 1; ; page++ {
		query.Set("page", strconv.Itoa(page))

		raw, err := http.GetGzip(baseURL + "annotation/search?" + query.Encode())
		if err != nil {
			return fmt.Errorf("QuickGO annotation search: %w", err)
		}

		var result annotationPage
		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("unmarshal annotation page: %v", err)
		}

		for _, a := range result.Results {
			fn(a)
		}

		if len(result.Results) < pageLimit {
			return nil
		}
	}
}

func addTo(sets map[string]map[string]struct{}, key, value string) {
	if _, ok := sets[key]; !ok {
		sets[key] = make(map[string]struct{})
	}
	sets[key][value] = struct{}{}
}

func flatten(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for key, values := range sets {
		for v := range values {
			out[key] = append(out[key], v)
		}
		sort.Strings(out[key])
	}
	return out
}
