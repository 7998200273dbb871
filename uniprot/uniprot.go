// Package uniprot queries the UniProt REST API: entry retrieval with TXT
// parsing, free-text search, and tabular field retrieval for batches of
// accessions.
package uniprot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/binfgo/ebi/http"
)

// BaseURL points at the public UniProt REST API.
const BaseURL = "https://rest.uniprot.org/"

// Entry contains relevant protein data for a single accession.
type Entry struct {
	Accession string   `json:"accession"` // accession ID
	Name      string   `json:"name"`      // protein name
	Gene      string   `json:"gene"`      // gene code
	Organism  string   `json:"organism"`  // organism
	Sequence  string   `json:"sequence"`  // canonical sequence
	PDBIDs    []string `json:"pdbIds"`    // X-ray PDB cross-references
	Pfam      []string `json:"pfam"`      // Pfam families accessions
	Raw       []byte   `json:"-"`         // TXT API raw bytes
}

// GetEntry retrieves and parses the TXT entry for an UniProt accession ID.
func GetEntry(accession string) (*Entry, error) {
	return getEntry(BaseURL, accession)
}

func getEntry(baseURL, accession string) (*Entry, error) {
	raw, err := http.Get(baseURL + "uniprotkb/" + accession + ".txt")
	if err != nil {
		return nil, fmt.Errorf("get UniProt accession %v: %w", accession, err)
	}

	e := &Entry{
		Accession: accession,
		Raw:       raw,
	}

	if err := e.extract(); err != nil {
		return nil, fmt.Errorf("extract UniProt TXT %v: %v", accession, err)
	}

	return e, nil
}

// extract parses the TXT response.
func (e *Entry) extract() error {
	if err := e.extractSequence(); err != nil {
		return fmt.Errorf("get seq: %v", err)
	}

	if err := e.extractNames(); err != nil {
		return fmt.Errorf("extracting names from UniProt TXT: %v", err)
	}

	e.extractPDBs()
	e.extractFams()

	return nil
}

// extractSequence parses the canonical sequence from the SQ block.
func (e *Entry) extractSequence() error {
	r := regexp.MustCompile("(?ms)^SQ.*?$(.*?)//")
	matches := r.FindAllStringSubmatch(string(e.Raw), -1)

	if len(matches) == 0 {
		return errors.New("canonical sequence not found")
	}

	sequence := strings.ReplaceAll(matches[0][1], " ", "")
	sequence = strings.ReplaceAll(sequence, "\n", "")

	e.Sequence = sequence

	return nil
}

// extractNames parses protein, gene and organism names.
func (e *Entry) extractNames() error {
	r := regexp.MustCompile("(?m)^DE.*?Name.*?Full=(.*?)(;| {)")
	matches := r.FindAllStringSubmatch(string(e.Raw), -1)

	if len(matches) == 0 {
		return errors.New("protein name not found")
	}
	e.Name = matches[0][1]

	r = regexp.MustCompile("(?m)^GN.*?=(.*?)[;| ]")
	matches = r.FindAllStringSubmatch(string(e.Raw), -1)

	if len(matches) == 0 {
		return errors.New("gene name not found")
	}
	e.Gene = matches[0][1]

	r = regexp.MustCompile("(?m)^OS[ ]+(.*?)\\.")
	matches = r.FindAllStringSubmatch(string(e.Raw), -1)

	if len(matches) == 0 {
		return errors.New("organism name not found")
	}
	e.Organism = matches[0][1]

	return nil
}

// extractPDBs parses the TXT for PDB cross-references. X-ray only, ignore
// others (NMR, etc).
func (e *Entry) extractPDBs() {
	r := regexp.MustCompile("PDB;[ ]*(.*?);[ ]*(X.*?ray);[ ]*([0-9\\.]*).*?;.*?\n")
	matches := r.FindAllStringSubmatch(string(e.Raw), -1)

	for _, m := range matches {
		e.PDBIDs = append(e.PDBIDs, m[1])
	}
}

// extractFams parses for Pfam families.
func (e *Entry) extractFams() {
	r := regexp.MustCompile("DR[ ]*Pfam; (.*?);")
	matches := r.FindAllStringSubmatch(string(e.Raw), -1)

	for _, fam := range matches {
		e.Pfam = append(e.Pfam, fam[1])
	}
}

// PDBIDExists returns true if the given PDB ID is cross-referenced by this
// entry, false otherwise.
func (e *Entry) PDBIDExists(pdbID string) bool {
	for _, id := range e.PDBIDs {
		if id == pdbID {
			return true
		}
	}
	return false
}
