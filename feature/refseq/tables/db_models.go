package tables

// MatchRow is one row of the 'refseq_match' table.
type MatchRow struct {
	Accession string `gorm:"column:accession;type:varchar(32);primaryKey"`
	Matched   string `gorm:"column:matched;type:varchar(16)"`
}

// TableName overrides the table name.
func (MatchRow) TableName() string {
	return "refseq_match"
}

// MatchCandidateRow is one row of the 'refseq_match_candidate' table.
type MatchCandidateRow struct {
	Accession   string `gorm:"column:accession;type:varchar(32);primaryKey"`
	CandidateID string `gorm:"column:candidate_id;type:varchar(32);primaryKey"`
	TaxonomyID  int    `gorm:"column:taxonomy_id;type:int"`
}

// TableName overrides the table name.
func (MatchCandidateRow) TableName() string {
	return "refseq_match_candidate"
}

// ReferenceRow is one row of the 'refseq_reference' table.
type ReferenceRow struct {
	Accession  string `gorm:"column:accession;type:varchar(32);primaryKey"`
	TaxonomyID int    `gorm:"column:taxonomy_id;type:int"`
}

// TableName overrides the table name.
func (ReferenceRow) TableName() string {
	return "refseq_reference"
}

// GeneRow is one row of the 'refseq_gene' table.
type GeneRow struct {
	ID         int    `gorm:"column:id;primaryKey;autoIncrement"`
	Accession  string `gorm:"column:accession;type:varchar(32);index"`
	Name       string `gorm:"column:name;type:varchar(255)"`
	TaxonomyID int    `gorm:"column:taxonomy_id;type:int"`
}

// TableName overrides the table name.
func (GeneRow) TableName() string {
	return "refseq_gene"
}

// DBRefRow is one row of the 'refseq_dbref' table.
type DBRefRow struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	Accession string `gorm:"column:accession;type:varchar(32);index"`
	Resource  string `gorm:"column:resource;type:varchar(32)"`
	IDCode    string `gorm:"column:id_code;type:varchar(64)"`
}

// TableName overrides the table name.
func (DBRefRow) TableName() string {
	return "refseq_dbref"
}

// EnzymeClassRow is one row of the 'enzyme_class' table.
type EnzymeClassRow struct {
	ID   string `gorm:"column:id;type:varchar(32);primaryKey"`
	Name string `gorm:"column:name;type:varchar(255)"`
}

// TableName overrides the table name.
func (EnzymeClassRow) TableName() string {
	return "enzyme_class"
}

// GOTermRow is one row of the 'go_term' table.
type GOTermRow struct {
	ID   string `gorm:"column:id;type:varchar(16);primaryKey"`
	Name string `gorm:"column:name;type:varchar(255)"`
}

// TableName overrides the table name.
func (GOTermRow) TableName() string {
	return "go_term"
}

// GOTermParentRow is one row of the 'go_term_parent' table.
type GOTermParentRow struct {
	TermID   string `gorm:"column:term_id;type:varchar(16);primaryKey"`
	ParentID string `gorm:"column:parent_id;type:varchar(16);primaryKey"`
}

// TableName overrides the table name.
func (GOTermParentRow) TableName() string {
	return "go_term_parent"
}

// SIFTSSegmentRow is one row of the 'sifts_segment' table.
type SIFTSSegmentRow struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	PDBID     string `gorm:"column:pdb_id;type:varchar(8);index"`
	Chain     string `gorm:"column:chain;type:varchar(8)"`
	Accession string `gorm:"column:accession;type:varchar(32)"`
	EntityBeg int    `gorm:"column:entity_beg;type:int"`
	RefBeg    int    `gorm:"column:ref_beg;type:int"`
	Length    int    `gorm:"column:length;type:int"`
}

// TableName overrides the table name.
func (SIFTSSegmentRow) TableName() string {
	return "sifts_segment"
}

// schemaModels lists every table model in load order.
func schemaModels() []any {
	return []any{
		&MatchRow{},
		&MatchCandidateRow{},
		&ReferenceRow{},
		&GeneRow{},
		&DBRefRow{},
		&EnzymeClassRow{},
		&GOTermRow{},
		&GOTermParentRow{},
		&SIFTSSegmentRow{},
	}
}
