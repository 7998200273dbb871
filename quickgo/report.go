package quickgo

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// ReportEntry is one row of an enrichment report.
type ReportEntry struct {
	TermID     string  `json:"termId"`
	Name       string  `json:"name"`
	Foreground int     `json:"foreground"` // positives annotated with the term
	Annotated  int     `json:"annotated"`  // positives + background annotated (background reports only)
	EValue     float64 `json:"eValue"`     // Bonferroni-corrected Fisher exact p-value (background reports only)
}

// Report generates a GO term report for a set of gene products.
//
// Without a background, rows carry the number of positives annotated with
// each term, most frequent first. With a background (from which the
// positives are subtracted), each term is additionally assigned a
// one-sided Fisher exact enrichment p-value, Bonferroni-corrected into an
// E-value, and rows are ordered most enriched first.
func Report(positives, background []string) ([]ReportEntry, error) {
	return report(BaseURL, positives, background)
}

func report(baseURL string, positives, background []string) ([]ReportEntry, error) {
	pos := unique(positives)

	fgCounts, err := termCounts(baseURL, pos)
	if err != nil {
		return nil, err
	}

	var entries []ReportEntry
	if background == nil {
		for term, count := range fgCounts {
			entries = append(entries, ReportEntry{TermID: term, Foreground: count})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Foreground != entries[j].Foreground {
				return entries[i].Foreground > entries[j].Foreground
			}
			return entries[i].TermID < entries[j].TermID
		})
	} else {
		neg := subtract(unique(background), pos)
		bgCounts, err := termCounts(baseURL, neg)
		if err != nil {
			return nil, err
		}

		for term, fgHit := range fgCounts {
			bgHit := bgCounts[term]
			p := fisherPval(fgHit, bgHit, len(pos)-fgHit, len(neg)-bgHit)
			entries = append(entries, ReportEntry{
				TermID:     term,
				Foreground: fgHit,
				Annotated:  fgHit + bgHit,
				EValue:     p * float64(len(fgCounts)),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].EValue != entries[j].EValue {
				return entries[i].EValue < entries[j].EValue
			}
			return entries[i].TermID < entries[j].TermID
		})
	}

	for i := range entries {
		term, err := getTerm(baseURL, entries[i].TermID)
		if err != nil {
			return nil, err
		}
		entries[i].Name = term.Name
	}

	return entries, nil
}

// termCounts returns, for each GO term, how many of the given gene
// products are annotated with it.
func termCounts(baseURL string, genes []string) (map[string]int, error) {
	terms, err := termsForGenes(baseURL, genes)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, geneTerms := range terms {
		for _, term := range geneTerms {
			counts[term]++
		}
	}
	return counts, nil
}

// fisherPval computes the one-sided Fisher exact p-value for the 2x2
// contingency table (fgHit, bgHit / fgMiss, bgMiss): the probability of
// the foreground containing fgHit or more annotated entries by chance.
// The hypergeometric tail is summed in log space to stay stable for
// large counts.
func fisherPval(fgHit, bgHit, fgMiss, bgMiss int) float64 {
	population := fgHit + bgHit + fgMiss + bgMiss
	successes := fgHit + bgHit
	draws := fgHit + fgMiss

	if population == 0 || fgHit == 0 {
		return 1
	}

	logTotal := combin.LogGeneralizedBinomial(float64(population), float64(draws))

	p := 0.0
	for x := fgHit; x <= min(successes, draws); x++ {
		logP := combin.LogGeneralizedBinomial(float64(successes), float64(x)) +
			combin.LogGeneralizedBinomial(float64(population-successes), float64(draws-x)) -
			logTotal
		p += math.Exp(logP)
	}

	return math.Min(p, 1)
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// subtract returns the values not present in remove.
func subtract(values, remove []string) []string {
	removeSet := make(map[string]struct{}, len(remove))
	for _, v := range remove {
		removeSet[v] = struct{}{}
	}

	var out []string
	for _, v := range values {
		if _, ok := removeSet[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
