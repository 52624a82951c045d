package models

import (
	"encoding/json"
	"fmt"
)

// Provenance tags used across reference sequence assignments.
const (
	ProvenancePDB     = "PDB"
	ProvenanceRCSB    = "RCSB"
	ProvenanceSIFTS   = "SIFTS"
	ProvenanceUniProt = "UniProt"
)

// EntityRecord is a polymer entity document as stored in the core_entity collection.
// Only the members touched by reference sequence assignment are typed. Every other
// member, at the top level and inside the typed sub-objects, is kept in an Extra
// map and written back unchanged.
type EntityRecord struct {
	// RCSBID is the entity key, e.g. "1ABC_1". The first four characters identify the structure.
	RCSBID string `json:"rcsb_id"`

	SourceOrganisms      []SourceOrganism      `json:"rcsb_entity_source_organism,omitempty"`
	PolymerEntity        *PolymerEntity        `json:"rcsb_polymer_entity,omitempty"`
	ContainerIdentifiers *ContainerIdentifiers `json:"rcsb_polymer_entity_container_identifiers,omitempty"`
	Alignments           []AlignmentRecord     `json:"rcsb_polymer_entity_align,omitempty"`

	// Extra holds top-level members this package does not interpret.
	Extra map[string]json.RawMessage `json:"-"`
}

// SourceOrganism is one entry of rcsb_entity_source_organism.
type SourceOrganism struct {
	// NCBITaxonomyID is nil when the organism carries no taxonomy assignment.
	NCBITaxonomyID *int       `json:"ncbi_taxonomy_id,omitempty"`
	GeneNames      []GeneName `json:"rcsb_gene_name,omitempty"`
	ScientificName string     `json:"scientific_name,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// GeneName is a provenance tagged gene name.
type GeneName struct {
	ProvenanceCode string `json:"provenance_code"`
	Value          string `json:"value"`
}

// PolymerEntity carries the enzyme classification members of rcsb_polymer_entity.
type PolymerEntity struct {
	EnzymeClassCombined []EnzymeAssignment  `json:"rcsb_enzyme_class_combined,omitempty"`
	ECLineage           []EnzymeLineageNode `json:"rcsb_ec_lineage,omitempty"`
	Description         string              `json:"pdbx_description,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// EnzymeAssignment is one combined EC assignment.
type EnzymeAssignment struct {
	EC               string `json:"ec"`
	ProvenanceSource string `json:"provenance_source"`
}

// ContainerIdentifiers is rcsb_polymer_entity_container_identifiers.
type ContainerIdentifiers struct {
	EntryID                      string                        `json:"entry_id,omitempty"`
	EntityID                     string                        `json:"entity_id,omitempty"`
	AuthAsymIDs                  []string                      `json:"auth_asym_ids,omitempty"`
	ReferenceSequenceIdentifiers []ReferenceSequenceIdentifier `json:"reference_sequence_identifiers,omitempty"`
	RelatedAnnotationIdentifiers []AnnotationEntry             `json:"related_annotation_identifiers,omitempty"`
	RelatedAnnotationLineage     []OntologyLineageNode         `json:"related_annotation_lineage,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ReferenceSequenceIdentifier is an accession assigned to the entity.
type ReferenceSequenceIdentifier struct {
	DatabaseName      string `json:"database_name"`
	DatabaseAccession string `json:"database_accession"`
	ProvenanceSource  string `json:"provenance_source"`

	Extra map[string]json.RawMessage `json:"-"`
}

// AlignmentRecord aligns the entity sequence to a reference sequence.
type AlignmentRecord struct {
	ReferenceDatabaseName      string          `json:"reference_database_name"`
	ReferenceDatabaseAccession string          `json:"reference_database_accession"`
	ProvenanceCode             string          `json:"provenance_code"`
	AlignedRegions             []AlignedRegion `json:"aligned_regions"`

	Extra map[string]json.RawMessage `json:"-"`
}

// AlignedRegion is a contiguous aligned segment.
type AlignedRegion struct {
	EntityBegSeqID int `json:"entity_beg_seq_id"`
	RefBegSeqID    int `json:"ref_beg_seq_id"`
	Length         int `json:"length"`
}

// AnnotationEntry is a related annotation identifier (GO, Pfam, InterPro, ...).
type AnnotationEntry struct {
	ProvenanceSource   string `json:"provenance_source"`
	ResourceIdentifier string `json:"resource_identifier"`
	ResourceName       string `json:"resource_name"`
}

// EnzymeLineageNode is one level of an EC classification chain.
type EnzymeLineageNode struct {
	Depth int    `json:"depth"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// OntologyLineageNode is one ancestor of a gene ontology term.
type OntologyLineageNode struct {
	Depth int    `json:"depth"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// StructureID returns the parent structure identifier of the entity.
func (r *EntityRecord) StructureID() string {
	if len(r.RCSBID) < 4 {
		return r.RCSBID
	}
	return r.RCSBID[:4]
}

// TaxonomyIDs returns the distinct taxonomy ids of the source organisms in input order.
func (r *EntityRecord) TaxonomyIDs() []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, so := range r.SourceOrganisms {
		if so.NCBITaxonomyID == nil {
			continue
		}
		id := *so.NCBITaxonomyID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Hash returns the dedup identity of an alignment: accession plus every region triple.
func (a AlignmentRecord) Hash() string {
	h := a.ReferenceDatabaseAccession
	for _, r := range a.AlignedRegions {
		h += fmt.Sprintf("|%d:%d:%d", r.EntityBegSeqID, r.RefBegSeqID, r.Length)
	}
	return h
}
