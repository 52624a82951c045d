package tables

import "refseq-assign/feature/refseq/models"

func testSnapshot() Snapshot {
	return Snapshot{
		Matches: map[string]models.MatchVerdict{
			"P06881": {Matched: models.MatchPrimary},
			"P14118": {Matched: models.MatchSecondary, MatchedIDs: map[string]models.MatchCandidate{
				"P84098": {TaxonomyID: 9606},
				"P84099": {TaxonomyID: 10090},
			}},
			"Q00000": {Matched: models.MatchNone},
		},
		References: map[string]models.ReferenceDatabaseRecord{
			"P06881": {
				Accession:  "P06881",
				TaxonomyID: 9606,
				Genes:      []models.ReferenceGene{{Name: "CALCA", TaxonomyID: 9606}},
				DBReferences: []models.DBReference{
					{Resource: models.ResourceEC, IDCode: "5.2.1.8"},
					{Resource: models.ResourceGO, IDCode: "GO:0003755"},
				},
			},
		},
		Enzymes: map[string]string{
			"5":       "Isomerases",
			"5.2":     "cis-trans-Isomerases",
			"5.2.1":   "cis-trans Isomerases",
			"5.2.1.8": "peptidylprolyl isomerase",
		},
		Ontology: map[string]OntologyTerm{
			"GO:0003674": {Name: "molecular_function"},
			"GO:0003824": {Name: "catalytic activity", Parents: []string{"GO:0003674"}},
			"GO:0016853": {Name: "isomerase activity", Parents: []string{"GO:0003824"}},
			"GO:0003755": {Name: "peptidyl-prolyl cis-trans isomerase activity", Parents: []string{"GO:0003674", "GO:0016853"}},
		},
		SIFTS: map[string][]SIFTSSegment{
			"1abc": {
				{Chain: "A", Accession: "P06881", EntityBeg: 40, RefBeg: 60, Length: 20},
				{Chain: "A", Accession: "P06881", EntityBeg: 1, RefBeg: 21, Length: 30},
				{Chain: "B", Accession: "P06881", EntityBeg: 1, RefBeg: 21, Length: 45},
				{Chain: "B", Accession: "P12345", EntityBeg: 1, RefBeg: 1, Length: 10},
				{Chain: "C", Accession: "P99999", EntityBeg: 1, RefBeg: 1, Length: 100},
			},
		},
	}
}
