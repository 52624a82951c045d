package assign

import (
	"errors"

	"refseq-assign/feature/refseq/models"
)

// The provider interfaces below are read-only lookups. Implementations must be
// immutable once handed to an Adapter and safe for concurrent reads; the
// assignment stages never write to them and hold no locks.

// MatchTable maps reference database accessions to match verdicts.
type MatchTable interface {
	// LookupMatch returns the verdict for an accession.
	LookupMatch(accession string) (models.MatchVerdict, bool)
	// Accessions returns every accession in the table.
	Accessions() []string
}

// ReferenceStore resolves reference database records.
type ReferenceStore interface {
	LookupReference(accession string) (models.ReferenceDatabaseRecord, bool)
}

// EnzymeClassifier normalizes, validates and expands EC codes.
type EnzymeClassifier interface {
	// Normalize returns the canonical form of an EC code, or "" if it cannot be parsed.
	Normalize(code string) string
	// Exists reports whether a normalized code is a known class.
	Exists(code string) bool
	// Lineage returns the chain from depth 1 down to the code itself.
	Lineage(code string) []models.EnzymeLineageNode
}

// OntologyService resolves gene ontology terms.
type OntologyService interface {
	TermExists(id string) bool
	Lineage(ids []string) []models.OntologyLineageNode
}

// StructuralFallback returns structure-derived (SIFTS) alignments.
type StructuralFallback interface {
	// LongestAlignments returns the longest known alignment per accession over the
	// given chains of a structure.
	LongestAlignments(structureID string, chainIDs []string) []models.FallbackAlignment
}

// Providers bundles the lookups an Adapter depends on.
// Fallback is optional; without it unconfirmed assignments are simply dropped.
type Providers struct {
	Matches    MatchTable
	References ReferenceStore
	Enzymes    EnzymeClassifier
	Ontology   OntologyService
	Fallback   StructuralFallback
}

// Validate checks that every required provider is set.
func (p Providers) Validate() error {
	var errs []error
	if p.Matches == nil {
		errs = append(errs, errors.New("match table provider is required"))
	}
	if p.References == nil {
		errs = append(errs, errors.New("reference record provider is required"))
	}
	if p.Enzymes == nil {
		errs = append(errs, errors.New("enzyme classifier provider is required"))
	}
	if p.Ontology == nil {
		errs = append(errs, errors.New("ontology provider is required"))
	}
	return errors.Join(errs...)
}
