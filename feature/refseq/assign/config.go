package assign

import "refseq-assign/feature/refseq/models"

// Config holds the reference sequence assignment policy.
type Config struct {
	// ReferenceDatabase is the canonical reference sequence database. It is also the
	// provenance tag written on derived gene names, annotations and EC assignments.
	ReferenceDatabase string `mapstructure:"reference_database" default:"UniProt"`
	// ProvenanceSources are the assignment sources whose accessions are verified.
	ProvenanceSources []string `mapstructure:"provenance_sources" default:"PDB"`
	// ExcludedDatabases are never confirmed and always fall back to SIFTS.
	ExcludedDatabases []string `mapstructure:"excluded_databases" default:"PDB"`
	// ReferenceDatabases are retained without a match table lookup when assigned
	// by an accepted provenance source.
	ReferenceDatabases []string `mapstructure:"reference_databases" default:"UniProt,GenBank,EMBL,NDB,NORINE,PIR,PRF,RefSeq"`
	// AnnotationResources are the cross-reference resources copied into related annotations.
	AnnotationResources []string `mapstructure:"annotation_resources" default:"GO,Pfam,InterPro"`
	// DropAllowListedAlignments drops alignments to allow-listed databases in favor of
	// SIFTS. By default they are kept the same way accessions are kept.
	DropAllowListedAlignments bool `mapstructure:"drop_allow_listed_alignments" default:"false"`
	// TaxonomyPolicy names the secondary match tie-break (singleton-taxonomy, strict).
	TaxonomyPolicy string `mapstructure:"taxonomy_policy" default:"singleton-taxonomy"`
	// Isolated runs the stages on a deep copy and returns the input record unchanged.
	Isolated bool `mapstructure:"isolated" default:"false"`
}

// DefaultConfig returns the policy used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ReferenceDatabase:   models.ProvenanceUniProt,
		ProvenanceSources:   []string{models.ProvenancePDB},
		ExcludedDatabases:   []string{models.ProvenancePDB},
		ReferenceDatabases:  []string{"UniProt", "GenBank", "EMBL", "NDB", "NORINE", "PIR", "PRF", "RefSeq"},
		AnnotationResources: []string{models.ResourceGO, models.ResourcePfam, models.ResourceInterPro},
	}
}

// withDefaults fills empty members from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ReferenceDatabase == "" {
		c.ReferenceDatabase = d.ReferenceDatabase
	}
	if len(c.ProvenanceSources) == 0 {
		c.ProvenanceSources = d.ProvenanceSources
	}
	if len(c.ExcludedDatabases) == 0 {
		c.ExcludedDatabases = d.ExcludedDatabases
	}
	if len(c.ReferenceDatabases) == 0 {
		c.ReferenceDatabases = d.ReferenceDatabases
	}
	if len(c.AnnotationResources) == 0 {
		c.AnnotationResources = d.AnnotationResources
	}
	return c
}

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}
