package assign

import (
	"sort"
	"strings"

	"refseq-assign/feature/refseq/models"

	"github.com/stretchr/testify/mock"
)

func intPtr(v int) *int { return &v }

type fakeMatches map[string]models.MatchVerdict

func (f fakeMatches) LookupMatch(acc string) (models.MatchVerdict, bool) {
	v, ok := f[acc]
	return v, ok
}

func (f fakeMatches) Accessions() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type fakeReferences map[string]models.ReferenceDatabaseRecord

func (f fakeReferences) LookupReference(acc string) (models.ReferenceDatabaseRecord, bool) {
	r, ok := f[acc]
	return r, ok
}

// fakeEnzymes maps full EC codes to names; lineage walks the dotted prefixes.
type fakeEnzymes map[string]string

func (f fakeEnzymes) Normalize(code string) string {
	code = strings.TrimSpace(strings.TrimPrefix(code, "EC"))
	return strings.TrimSpace(code)
}

func (f fakeEnzymes) Exists(code string) bool {
	_, ok := f[code]
	return ok
}

func (f fakeEnzymes) Lineage(code string) []models.EnzymeLineageNode {
	parts := strings.Split(code, ".")
	var out []models.EnzymeLineageNode
	for i := range parts {
		id := strings.Join(parts[:i+1], ".")
		name, ok := f[id]
		if !ok {
			break
		}
		out = append(out, models.EnzymeLineageNode{Depth: i + 1, ID: id, Name: name})
	}
	return out
}

type fakeOntology map[string]string

func (f fakeOntology) TermExists(id string) bool {
	_, ok := f[id]
	return ok
}

func (f fakeOntology) Lineage(ids []string) []models.OntologyLineageNode {
	var out []models.OntologyLineageNode
	for _, id := range ids {
		out = append(out, models.OntologyLineageNode{Depth: 1, ID: id, Name: f[id]})
	}
	return out
}

// mockFallback is a testify mock of StructuralFallback.
type mockFallback struct {
	mock.Mock
}

func (m *mockFallback) LongestAlignments(structureID string, chainIDs []string) []models.FallbackAlignment {
	args := m.Called(structureID, chainIDs)
	if v := args.Get(0); v != nil {
		return v.([]models.FallbackAlignment)
	}
	return nil
}

func peptidylprolylEnzymes() fakeEnzymes {
	return fakeEnzymes{
		"5":        "Isomerases",
		"5.2":      "cis-trans-Isomerases",
		"5.2.1":    "cis-trans Isomerases",
		"5.2.1.8":  "peptidylprolyl isomerase",
		"3":        "Hydrolases",
		"3.4":      "Acting on peptide bonds (peptidases)",
		"3.4.21":   "Serine endopeptidases",
		"3.4.21.4": "trypsin",
	}
}

func testProviders() Providers {
	return Providers{
		Matches: fakeMatches{
			"P06881": {Matched: models.MatchPrimary},
			"Q99999": {Matched: models.MatchPrimary},
			"Q00001": {Matched: models.MatchSecondary, MatchedIDs: map[string]models.MatchCandidate{"Q99999": {TaxonomyID: 9606}}},
			"P14118": {Matched: models.MatchSecondary, MatchedIDs: map[string]models.MatchCandidate{
				"A00001": {TaxonomyID: 10090},
				"B00001": {TaxonomyID: 9606},
			}},
			"X00000": {Matched: models.MatchNone},
		},
		References: fakeReferences{
			"P06881": {
				Accession:  "P06881",
				TaxonomyID: 9606,
				Genes:      []models.ReferenceGene{{Name: "X", TaxonomyID: 9606}},
				DBReferences: []models.DBReference{
					{Resource: models.ResourceEC, IDCode: "5.2.1.8"},
				},
			},
		},
		Enzymes:  peptidylprolylEnzymes(),
		Ontology: fakeOntology{"GO:0003755": "peptidyl-prolyl cis-trans isomerase activity"},
	}
}

func uniprotRef(acc string) models.ReferenceSequenceIdentifier {
	return models.ReferenceSequenceIdentifier{DatabaseName: "UniProt", DatabaseAccession: acc, ProvenanceSource: "PDB"}
}

func newRecord(taxIDs []int, refs ...models.ReferenceSequenceIdentifier) *models.EntityRecord {
	rec := &models.EntityRecord{
		RCSBID: "1ABC_1",
		ContainerIdentifiers: &models.ContainerIdentifiers{
			EntryID:                      "1ABC",
			EntityID:                     "1",
			AuthAsymIDs:                  []string{"A"},
			ReferenceSequenceIdentifiers: refs,
		},
	}
	for _, id := range taxIDs {
		rec.SourceOrganisms = append(rec.SourceOrganisms, models.SourceOrganism{NCBITaxonomyID: intPtr(id)})
	}
	return rec
}

func accessionsOf(rec *models.EntityRecord) []string {
	if rec.ContainerIdentifiers == nil {
		return nil
	}
	var out []string
	for _, r := range rec.ContainerIdentifiers.ReferenceSequenceIdentifiers {
		out = append(out, r.DatabaseAccession)
	}
	return out
}

func diagnosticKinds(rep *Report) []ErrorKind {
	var out []ErrorKind
	for _, d := range rep.Diagnostics {
		out = append(out, d.Kind)
	}
	return out
}
