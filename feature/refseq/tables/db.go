package tables

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"refseq-assign/core/database"
	"refseq-assign/feature/refseq/models"

	"gorm.io/gorm"
)

// LoadFromDB reads every table into a snapshot and indexes it.
func LoadFromDB(ctx context.Context, db *gorm.DB) (*Tables, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	db = db.WithContext(ctx)

	var (
		matches    []MatchRow
		candidates []MatchCandidateRow
		refs       []ReferenceRow
		genes      []GeneRow
		dbrefs     []DBRefRow
		enzymes    []EnzymeClassRow
		terms      []GOTermRow
		parents    []GOTermParentRow
		segments   []SIFTSSegmentRow
	)
	for _, q := range []struct {
		table string
		dest  any
		order string
	}{
		{MatchRow{}.TableName(), &matches, "accession"},
		{MatchCandidateRow{}.TableName(), &candidates, "accession, candidate_id"},
		{ReferenceRow{}.TableName(), &refs, "accession"},
		{GeneRow{}.TableName(), &genes, "id"},
		{DBRefRow{}.TableName(), &dbrefs, "id"},
		{EnzymeClassRow{}.TableName(), &enzymes, "id"},
		{GOTermRow{}.TableName(), &terms, "id"},
		{GOTermParentRow{}.TableName(), &parents, "term_id, parent_id"},
		{SIFTSSegmentRow{}.TableName(), &segments, "id"},
	} {
		if err := db.Order(q.order).Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", q.table, err)
		}
	}

	snap := Snapshot{
		Matches:    make(map[string]models.MatchVerdict, len(matches)),
		References: make(map[string]models.ReferenceDatabaseRecord, len(refs)),
		Enzymes:    make(map[string]string, len(enzymes)),
		Ontology:   make(map[string]OntologyTerm, len(terms)),
		SIFTS:      make(map[string][]SIFTSSegment),
	}

	for _, m := range matches {
		snap.Matches[m.Accession] = models.MatchVerdict{Matched: models.MatchKind(m.Matched)}
	}
	for _, c := range candidates {
		v, ok := snap.Matches[c.Accession]
		if !ok {
			return nil, fmt.Errorf("match candidate %s references unknown accession %s", c.CandidateID, c.Accession)
		}
		if v.MatchedIDs == nil {
			v.MatchedIDs = make(map[string]models.MatchCandidate)
		}
		v.MatchedIDs[c.CandidateID] = models.MatchCandidate{TaxonomyID: c.TaxonomyID}
		snap.Matches[c.Accession] = v
	}

	for _, r := range refs {
		snap.References[r.Accession] = models.ReferenceDatabaseRecord{Accession: r.Accession, TaxonomyID: r.TaxonomyID}
	}
	for _, g := range genes {
		r, ok := snap.References[g.Accession]
		if !ok {
			continue
		}
		r.Genes = append(r.Genes, models.ReferenceGene{Name: g.Name, TaxonomyID: g.TaxonomyID})
		snap.References[g.Accession] = r
	}
	for _, d := range dbrefs {
		r, ok := snap.References[d.Accession]
		if !ok {
			continue
		}
		r.DBReferences = append(r.DBReferences, models.DBReference{Resource: d.Resource, IDCode: d.IDCode})
		snap.References[d.Accession] = r
	}

	for _, e := range enzymes {
		snap.Enzymes[e.ID] = e.Name
	}
	for _, term := range terms {
		snap.Ontology[term.ID] = OntologyTerm{Name: term.Name}
	}
	for _, p := range parents {
		term, ok := snap.Ontology[p.TermID]
		if !ok {
			return nil, fmt.Errorf("ontology parent link references unknown term %s", p.TermID)
		}
		term.Parents = append(term.Parents, p.ParentID)
		snap.Ontology[p.TermID] = term
	}

	for _, s := range segments {
		pdbID := strings.ToLower(s.PDBID)
		snap.SIFTS[pdbID] = append(snap.SIFTS[pdbID], SIFTSSegment{
			Chain:     s.Chain,
			Accession: s.Accession,
			EntityBeg: s.EntityBeg,
			RefBeg:    s.RefBeg,
			Length:    s.Length,
		})
	}

	return New(snap)
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(schemaModels()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// WriteToDB replaces the content of every table with the snapshot of t.
func WriteToDB(ctx context.Context, db *gorm.DB, t *Tables) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	snap := t.Snapshot()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range schemaModels() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}

		var (
			matches    []MatchRow
			candidates []MatchCandidateRow
			refs       []ReferenceRow
			genes      []GeneRow
			dbrefs     []DBRefRow
			enzymes    []EnzymeClassRow
			terms      []GOTermRow
			parents    []GOTermParentRow
			segments   []SIFTSSegmentRow
		)
		for _, acc := range t.Accessions() {
			v := snap.Matches[acc]
			matches = append(matches, MatchRow{Accession: acc, Matched: string(v.Matched)})
			for _, id := range sortedKeys(v.MatchedIDs) {
				candidates = append(candidates, MatchCandidateRow{Accession: acc, CandidateID: id, TaxonomyID: v.MatchedIDs[id].TaxonomyID})
			}
		}
		for _, acc := range sortedKeys(snap.References) {
			r := snap.References[acc]
			refs = append(refs, ReferenceRow{Accession: acc, TaxonomyID: r.TaxonomyID})
			for _, g := range r.Genes {
				genes = append(genes, GeneRow{Accession: acc, Name: g.Name, TaxonomyID: g.TaxonomyID})
			}
			for _, d := range r.DBReferences {
				dbrefs = append(dbrefs, DBRefRow{Accession: acc, Resource: d.Resource, IDCode: d.IDCode})
			}
		}
		for _, id := range sortedKeys(snap.Enzymes) {
			enzymes = append(enzymes, EnzymeClassRow{ID: id, Name: snap.Enzymes[id]})
		}
		for _, id := range sortedKeys(snap.Ontology) {
			term := snap.Ontology[id]
			terms = append(terms, GOTermRow{ID: id, Name: term.Name})
			for _, p := range term.Parents {
				parents = append(parents, GOTermParentRow{TermID: id, ParentID: p})
			}
		}
		for _, pdbID := range sortedKeys(snap.SIFTS) {
			for _, s := range snap.SIFTS[pdbID] {
				segments = append(segments, SIFTSSegmentRow{
					PDBID:     pdbID,
					Chain:     s.Chain,
					Accession: s.Accession,
					EntityBeg: s.EntityBeg,
					RefBeg:    s.RefBeg,
					Length:    s.Length,
				})
			}
		}

		for _, batch := range []struct {
			table string
			rows  any
			n     int
		}{
			{MatchRow{}.TableName(), matches, len(matches)},
			{MatchCandidateRow{}.TableName(), candidates, len(candidates)},
			{ReferenceRow{}.TableName(), refs, len(refs)},
			{GeneRow{}.TableName(), genes, len(genes)},
			{DBRefRow{}.TableName(), dbrefs, len(dbrefs)},
			{EnzymeClassRow{}.TableName(), enzymes, len(enzymes)},
			{GOTermRow{}.TableName(), terms, len(terms)},
			{GOTermParentRow{}.TableName(), parents, len(parents)},
			{SIFTSSegmentRow{}.TableName(), segments, len(segments)},
		} {
			if batch.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(batch.rows, 500).Error; err != nil {
				return fmt.Errorf("failed to write %s: %w", batch.table, err)
			}
		}
		return nil
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SchemaReport is the result of comparing the table models against the database.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists the problems of one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the table models as the source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range schemaModels() {
		tableName := model.(interface{ TableName() string }).TableName()
		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		if len(actualCols) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s does not exist", tableName))
			report.Matched = false
			tblReport.Status = "error"
			report.Tables[tableName] = tblReport
			continue
		}

		actualMap := make(map[string]database.ColumnInfo)
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		val := reflect.TypeOf(model).Elem()
		for i := 0; i < val.NumField(); i++ {
			gormTag := val.Field(i).Tag.Get("gorm")
			colName := gormTagValue(gormTag, "column")
			if colName == "" {
				continue
			}

			actCol, exists := actualMap[colName]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
				tblReport.Status = "error"
				report.Matched = false
				continue
			}

			// Soft check, only when the model declares a type
			expType := strings.ToLower(gormTagValue(gormTag, "type"))
			if expType != "" && !strings.Contains(actCol.Type, expType) {
				tblReport.TypeMismatches = append(tblReport.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[tableName] = tblReport
	}

	return report, nil
}

func gormTagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(p, key+":"); ok {
			return v
		}
	}
	return ""
}
