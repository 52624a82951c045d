package models

// MatchKind is the verdict of the accession matching table.
type MatchKind string

const (
	// MatchNone means the accession is unknown to the current reference database.
	MatchNone MatchKind = "none"
	// MatchPrimary means the accession is still a primary accession.
	MatchPrimary MatchKind = "primary"
	// MatchSecondary means the accession was superseded by one or more successors.
	MatchSecondary MatchKind = "secondary"
)

// MatchVerdict is one row of the accession matching table.
//
//	"P14118": {"matched": "secondary", "matchedIds": {"P84099": {"taxId": 10090}, "P84098": {"taxId": 9606}}}
type MatchVerdict struct {
	Matched    MatchKind                 `json:"matched"`
	MatchedIDs map[string]MatchCandidate `json:"matchedIds,omitempty"`
}

// MatchCandidate is a successor accession of a secondary match.
type MatchCandidate struct {
	TaxonomyID int `json:"taxId"`
}

// Reference database cross-reference resources.
const (
	ResourceEC       = "EC"
	ResourceGO       = "GO"
	ResourcePfam     = "Pfam"
	ResourceInterPro = "InterPro"
)

// ReferenceDatabaseRecord is the subset of a UniProt entry used for annotation.
type ReferenceDatabaseRecord struct {
	Accession    string          `json:"accession,omitempty"`
	TaxonomyID   int             `json:"taxonomy_id,omitempty"`
	Genes        []ReferenceGene `json:"gene,omitempty"`
	DBReferences []DBReference   `json:"dbReferences,omitempty"`
}

// ReferenceGene is a gene name of a reference record.
// A zero TaxonomyID means the gene inherits the record taxonomy.
type ReferenceGene struct {
	Name       string `json:"name"`
	TaxonomyID int    `json:"taxonomy_id,omitempty"`
}

// DBReference is a typed cross-reference of a reference record.
type DBReference struct {
	Resource string `json:"resource"`
	IDCode   string `json:"id_code"`
}

// FallbackAlignment is a structure-derived alignment of one accession.
type FallbackAlignment struct {
	Accession string
	Regions   []AlignedRegion
}
