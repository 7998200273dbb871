package quickgo

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/binfgo/ebi/http"
)

// Term holds the description of a single GO term.
type Term struct {
	ID         string `json:"id"`         // e.g. "GO:0002080"
	Name       string `json:"name"`       // e.g. "acrosomal membrane"
	Aspect     string `json:"aspect"`     // molecular_function, biological_process or cellular_component
	Definition string `json:"definition"` // free-text definition
}

// GetTerm retrieves the description of a GO term, e.g. "GO:0002080".
func GetTerm(goTerm string) (*Term, error) {
	return getTerm(BaseURL, goTerm)
}

func getTerm(baseURL, goTerm string) (*Term, error) {
	raw, err := http.Get(baseURL + "ontology/go/search?query=" + url.QueryEscape(goTerm))
	if err != nil {
		return nil, fmt.Errorf("QuickGO term %s: %w", goTerm, err)
	}

	var result struct {
		Results []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Aspect     string `json:"aspect"`
			Definition struct {
				Text string `json:"text"`
			} `json:"definition"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unmarshal term search: %v", err)
	}

	// The search matches loosely; only the row with the exact ID counts.
	for _, row := range result.Results {
		if row.ID == goTerm {
			return &Term{
				ID:         row.ID,
				Name:       row.Name,
				Aspect:     row.Aspect,
				Definition: row.Definition.Text,
			}, nil
		}
	}

	return nil, fmt.Errorf("QuickGO term %s not found", goTerm)
}
