package assign

import (
	"testing"

	"refseq-assign/feature/refseq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnnotator(refs fakeReferences) *FeatureAnnotator {
	p := testProviders()
	if refs == nil {
		refs = p.References.(fakeReferences)
	}
	return NewFeatureAnnotator(DefaultConfig(), refs, p.Enzymes, p.Ontology, nil)
}

func TestFeatureAnnotator_GeneNames(t *testing.T) {
	t.Run("idempotent provenance merge", func(t *testing.T) {
		a := newAnnotator(nil)
		rec := newRecord([]int{9606}, uniprotRef("P06881"))
		rec.SourceOrganisms[0].GeneNames = []models.GeneName{{ProvenanceCode: "PDB", Value: "AUTH"}}

		require.True(t, a.Annotate(rec).OK())
		first := append([]models.GeneName(nil), rec.SourceOrganisms[0].GeneNames...)
		require.True(t, a.Annotate(rec).OK())

		assert.Equal(t, first, rec.SourceOrganisms[0].GeneNames)
		assert.Equal(t, []models.GeneName{
			{ProvenanceCode: "PDB", Value: "AUTH"},
			{ProvenanceCode: "UniProt", Value: "X"},
		}, rec.SourceOrganisms[0].GeneNames)
	})

	t.Run("chimeric source is skipped", func(t *testing.T) {
		a := newAnnotator(nil)
		rec := newRecord([]int{9606, 10090}, uniprotRef("P06881"))
		existing := []models.GeneName{{ProvenanceCode: "UniProt", Value: "OLD"}}
		rec.SourceOrganisms[0].GeneNames = existing

		rep := a.Annotate(rec)
		require.True(t, rep.OK())
		assert.Equal(t, existing, rec.SourceOrganisms[0].GeneNames)
		assert.Nil(t, rec.SourceOrganisms[1].GeneNames)
		assert.Contains(t, diagnosticKinds(rep), KindChimericConflict)
	})

	t.Run("chimeric source without names is merged", func(t *testing.T) {
		a := newAnnotator(nil)
		rec := newRecord([]int{9606, 10090}, uniprotRef("P06881"))

		require.True(t, a.Annotate(rec).OK())
		assert.Equal(t, []models.GeneName{{ProvenanceCode: "UniProt", Value: "X"}}, rec.SourceOrganisms[0].GeneNames)
		assert.Nil(t, rec.SourceOrganisms[1].GeneNames)
	})

	t.Run("gene without taxonomy inherits the record taxonomy", func(t *testing.T) {
		a := newAnnotator(fakeReferences{
			"P11111": {Accession: "P11111", TaxonomyID: 10090, Genes: []models.ReferenceGene{{Name: "Mus1"}, {Name: "Mus1"}}},
		})
		rec := newRecord([]int{10090}, uniprotRef("P11111"))

		require.True(t, a.Annotate(rec).OK())
		assert.Equal(t, []models.GeneName{{ProvenanceCode: "UniProt", Value: "Mus1"}}, rec.SourceOrganisms[0].GeneNames)
	})
}

func TestFeatureAnnotator_Annotations(t *testing.T) {
	a := newAnnotator(fakeReferences{
		"P22222": {
			Accession:  "P22222",
			TaxonomyID: 9606,
			DBReferences: []models.DBReference{
				{Resource: models.ResourceGO, IDCode: "GO:0003755"},
				{Resource: models.ResourceGO, IDCode: "GO:9999999"},
				{Resource: models.ResourcePfam, IDCode: "PF00254"},
				{Resource: models.ResourcePfam, IDCode: "PF00254"},
				{Resource: "PROSITE", IDCode: "PS50059"},
			},
		},
	})
	rec := newRecord([]int{9606}, uniprotRef("P22222"), uniprotRef("P00000"))
	rec.ContainerIdentifiers.RelatedAnnotationIdentifiers = []models.AnnotationEntry{
		{ProvenanceSource: "UniProt", ResourceIdentifier: "PF99999", ResourceName: "Pfam"},
		{ProvenanceSource: "CATH", ResourceIdentifier: "3.10.50.40", ResourceName: "CATH"},
	}

	rep := a.Annotate(rec)
	require.True(t, rep.OK())

	ci := rec.ContainerIdentifiers
	assert.Equal(t, []models.AnnotationEntry{
		{ProvenanceSource: "CATH", ResourceIdentifier: "3.10.50.40", ResourceName: "CATH"},
		{ProvenanceSource: "UniProt", ResourceIdentifier: "GO:0003755", ResourceName: "GO"},
		{ProvenanceSource: "UniProt", ResourceIdentifier: "PF00254", ResourceName: "Pfam"},
	}, ci.RelatedAnnotationIdentifiers)
	require.Len(t, ci.RelatedAnnotationLineage, 1)
	assert.Equal(t, "GO:0003755", ci.RelatedAnnotationLineage[0].ID)

	var subjects []string
	for _, d := range rep.Diagnostics {
		subjects = append(subjects, d.Subject)
	}
	assert.ElementsMatch(t, []string{"P00000", "GO:9999999"}, subjects)
}

func TestFeatureAnnotator_AnnotationsEmptiedStayPresent(t *testing.T) {
	a := newAnnotator(fakeReferences{})
	rec := newRecord([]int{9606}, uniprotRef("P00000"))
	rec.ContainerIdentifiers.RelatedAnnotationIdentifiers = []models.AnnotationEntry{
		{ProvenanceSource: "UniProt", ResourceIdentifier: "PF99999", ResourceName: "Pfam"},
	}

	require.True(t, a.Annotate(rec).OK())
	require.NotNil(t, rec.ContainerIdentifiers.RelatedAnnotationIdentifiers)
	assert.Empty(t, rec.ContainerIdentifiers.RelatedAnnotationIdentifiers)

	t.Run("absent list stays absent", func(t *testing.T) {
		rec := newRecord([]int{9606}, uniprotRef("P00000"))
		require.True(t, a.Annotate(rec).OK())
		assert.Nil(t, rec.ContainerIdentifiers.RelatedAnnotationIdentifiers)
	})
}

func TestFeatureAnnotator_Enzymes(t *testing.T) {
	a := newAnnotator(fakeReferences{
		"P06881": {
			Accession:  "P06881",
			TaxonomyID: 9606,
			DBReferences: []models.DBReference{
				{Resource: models.ResourceEC, IDCode: "EC 5.2.1.8"},
				{Resource: models.ResourceEC, IDCode: "3.4.21.4"},
				{Resource: models.ResourceEC, IDCode: "9.9.9.9"},
			},
		},
	})
	rec := newRecord([]int{9606}, uniprotRef("P06881"))
	rec.PolymerEntity = &models.PolymerEntity{
		EnzymeClassCombined: []models.EnzymeAssignment{{EC: "3.4.21.4", ProvenanceSource: "PDB-Primary-Data"}},
		ECLineage:           []models.EnzymeLineageNode{{Depth: 1, ID: "stale", Name: "stale"}},
	}

	rep := a.Annotate(rec)
	require.True(t, rep.OK())

	pe := rec.PolymerEntity
	assert.Equal(t, []models.EnzymeAssignment{
		{EC: "3.4.21.4", ProvenanceSource: "PDB-Primary-Data"},
		{EC: "5.2.1.8", ProvenanceSource: "UniProt"},
	}, pe.EnzymeClassCombined)

	// one lineage node per depth for each assigned code and nothing else
	depths := make(map[string][]int)
	for _, node := range pe.ECLineage {
		switch {
		case node.ID[0] == '3':
			depths["3.4.21.4"] = append(depths["3.4.21.4"], node.Depth)
		case node.ID[0] == '5':
			depths["5.2.1.8"] = append(depths["5.2.1.8"], node.Depth)
		default:
			t.Errorf("unexpected lineage node %q", node.ID)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4}, depths["3.4.21.4"])
	assert.Equal(t, []int{1, 2, 3, 4}, depths["5.2.1.8"])
	assert.Contains(t, diagnosticKinds(rep), KindUnresolvedReference)
}

func TestFeatureAnnotator_StructuralInput(t *testing.T) {
	t.Run("missing container identifiers", func(t *testing.T) {
		a := newAnnotator(nil)
		rec := newRecord([]int{9606})
		rec.ContainerIdentifiers = nil

		ok, _ := a.Filter(rec)
		assert.False(t, ok)
	})

	t.Run("assignment without ec", func(t *testing.T) {
		a := newAnnotator(nil)
		rec := newRecord([]int{9606}, uniprotRef("P06881"))
		rec.PolymerEntity = &models.PolymerEntity{EnzymeClassCombined: []models.EnzymeAssignment{{ProvenanceSource: "PDB"}}}

		rep := a.Annotate(rec)
		require.False(t, rep.OK())
		assert.Equal(t, KindStructuralInput, rep.Err.Kind)
		// gene names were merged before the failure
		assert.NotEmpty(t, rec.SourceOrganisms[0].GeneNames)
	})
}
