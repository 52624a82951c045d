package tables

import (
	"sort"

	"refseq-assign/feature/refseq/assign"
	"refseq-assign/feature/refseq/models"
)

// Snapshot is the serialized form of every lookup table.
type Snapshot struct {
	Matches    map[string]models.MatchVerdict            `json:"matches"`
	References map[string]models.ReferenceDatabaseRecord `json:"references"`
	// Enzymes maps EC class ids at every depth ("5", "5.2", "5.2.1", "5.2.1.8") to names.
	Enzymes map[string]string `json:"enzymes"`
	// Ontology maps GO ids to their term.
	Ontology map[string]OntologyTerm `json:"ontology"`
	// SIFTS maps a lower case PDB id to its chain level alignment segments.
	SIFTS map[string][]SIFTSSegment `json:"sifts"`
}

// OntologyTerm is a GO term and its direct parents.
type OntologyTerm struct {
	Name    string   `json:"name"`
	Parents []string `json:"parents,omitempty"`
}

// SIFTSSegment is one aligned segment of a chain against a reference accession.
type SIFTSSegment struct {
	Chain     string `json:"chain"`
	Accession string `json:"accession"`
	EntityBeg int    `json:"entity_beg"`
	RefBeg    int    `json:"ref_beg"`
	Length    int    `json:"length"`
}

// Tables serves every provider interface of the assign package from an
// in-memory snapshot. It is never modified after New and is safe for
// concurrent reads.
type Tables struct {
	snap       Snapshot
	accessions []string
	enzymes    EnzymeTable
	ontology   *OntologyTable
}

var (
	_ assign.MatchTable         = (*Tables)(nil)
	_ assign.ReferenceStore     = (*Tables)(nil)
	_ assign.EnzymeClassifier   = EnzymeTable(nil)
	_ assign.OntologyService    = (*OntologyTable)(nil)
	_ assign.StructuralFallback = (*Tables)(nil)
)

// New indexes a snapshot. The snapshot must not be modified afterwards.
func New(snap Snapshot) (*Tables, error) {
	ontology, err := NewOntologyTable(snap.Ontology)
	if err != nil {
		return nil, err
	}

	t := &Tables{
		snap:     snap,
		enzymes:  EnzymeTable(snap.Enzymes),
		ontology: ontology,
	}
	t.accessions = make([]string, 0, len(snap.Matches))
	for acc := range snap.Matches {
		t.accessions = append(t.accessions, acc)
	}
	sort.Strings(t.accessions)
	return t, nil
}

// Snapshot returns the indexed snapshot.
func (t *Tables) Snapshot() Snapshot {
	return t.snap
}

// Providers returns the tables as an assign.Providers bundle.
func (t *Tables) Providers() assign.Providers {
	return assign.Providers{
		Matches:    t,
		References: t,
		Enzymes:    t.enzymes,
		Ontology:   t.ontology,
		Fallback:   t,
	}
}

// Stats returns the row count of each table.
func (t *Tables) Stats() map[string]int {
	return map[string]int{
		"matches":    len(t.snap.Matches),
		"references": len(t.snap.References),
		"enzymes":    len(t.snap.Enzymes),
		"ontology":   len(t.snap.Ontology),
		"sifts":      len(t.snap.SIFTS),
	}
}

// LookupMatch returns the match verdict of an accession.
func (t *Tables) LookupMatch(accession string) (models.MatchVerdict, bool) {
	v, ok := t.snap.Matches[accession]
	return v, ok
}

// Accessions returns every accession of the match table in sorted order.
func (t *Tables) Accessions() []string {
	return t.accessions
}

// LookupReference returns the reference record of an accession.
func (t *Tables) LookupReference(accession string) (models.ReferenceDatabaseRecord, bool) {
	r, ok := t.snap.References[accession]
	return r, ok
}
