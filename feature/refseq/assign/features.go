package assign

import (
	"fmt"
	"sort"

	"refseq-assign/feature/refseq/models"

	"go.uber.org/zap"
)

// FeatureAnnotator folds gene names, related annotations and EC assignments derived
// from reference database records into an entity record.
type FeatureAnnotator struct {
	cfg       Config
	refs      ReferenceStore
	enzymes   EnzymeClassifier
	ontology  OntologyService
	logger    *zap.Logger
	resources stringSet
}

// NewFeatureAnnotator creates an annotator.
func NewFeatureAnnotator(cfg Config, refs ReferenceStore, enzymes EnzymeClassifier, ontology OntologyService, logger *zap.Logger) *FeatureAnnotator {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureAnnotator{
		cfg:       cfg,
		refs:      refs,
		enzymes:   enzymes,
		ontology:  ontology,
		logger:    logger,
		resources: newStringSet(cfg.AnnotationResources),
	}
}

// Name returns the stage name.
func (a *FeatureAnnotator) Name() string {
	return "features"
}

// Filter annotates the record and reports whether it was structurally valid.
func (a *FeatureAnnotator) Filter(rec *models.EntityRecord) (bool, *models.EntityRecord) {
	return a.Annotate(rec).OK(), rec
}

// staged holds everything derived from the resolved reference records.
type staged struct {
	records     []models.ReferenceDatabaseRecord
	genes       []stagedGene
	annotations []models.AnnotationEntry
	goIDs       []string
}

type stagedGene struct {
	value      string
	taxonomyID int
}

// Annotate merges reference database features into rec in place.
// Entries written by earlier runs under the reference database provenance are
// replaced, so repeated runs with unchanged inputs yield the same record.
func (a *FeatureAnnotator) Annotate(rec *models.EntityRecord) *Report {
	if rec == nil {
		rep := newReport(a.Name(), "")
		rep.fail("record", "record is nil")
		return rep
	}
	rep := newReport(a.Name(), rec.RCSBID)
	if rec.RCSBID == "" {
		a.logFailure(rep.fail("rcsb_id", "missing entity key"))
		return rep
	}
	ci := rec.ContainerIdentifiers
	if ci == nil {
		a.logFailure(rep.fail("rcsb_polymer_entity_container_identifiers", "missing container identifiers"))
		return rep
	}
	if _, err := recordTaxonomyIDs(rep, rec); err != nil {
		a.logFailure(err)
		return rep
	}
	a.logger.Debug("Running feature filter", zap.String("entity", rec.RCSBID))

	st := a.stage(rep, ci)

	a.mergeAnnotations(rep, ci, st)
	a.mergeGeneNames(rep, rec, st)

	if rec.PolymerEntity != nil {
		if err := a.mergeEnzymes(rep, rec.PolymerEntity, st); err != nil {
			a.logFailure(err)
			return rep
		}
	}
	return rep
}

// referenceAccessions returns the sorted distinct reference database accessions of ci.
func (a *FeatureAnnotator) referenceAccessions(ci *models.ContainerIdentifiers) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, rsi := range ci.ReferenceSequenceIdentifiers {
		if rsi.DatabaseName != a.cfg.ReferenceDatabase || rsi.DatabaseAccession == "" {
			continue
		}
		if _, ok := seen[rsi.DatabaseAccession]; ok {
			continue
		}
		seen[rsi.DatabaseAccession] = struct{}{}
		ids = append(ids, rsi.DatabaseAccession)
	}
	sort.Strings(ids)
	return ids
}

func (a *FeatureAnnotator) stage(rep *Report, ci *models.ContainerIdentifiers) staged {
	var st staged
	seenAnn := make(map[string]struct{})
	seenGO := make(map[string]struct{})

	for _, acc := range a.referenceAccessions(ci) {
		ref, ok := a.refs.LookupReference(acc)
		if !ok {
			rep.note(KindUnresolvedReference, acc, "no reference record")
			a.logger.Info("No data for reference accession", zap.String("entity", rep.EntityKey), zap.String("accession", acc))
			continue
		}
		st.records = append(st.records, ref)

		for _, g := range ref.Genes {
			if g.Name == "" {
				continue
			}
			taxID := g.TaxonomyID
			if taxID == 0 {
				taxID = ref.TaxonomyID
			}
			st.genes = append(st.genes, stagedGene{value: g.Name, taxonomyID: taxID})
		}

		for _, d := range ref.DBReferences {
			if d.IDCode == "" || !a.resources.has(d.Resource) {
				continue
			}
			if d.Resource == models.ResourceGO {
				if !a.ontology.TermExists(d.IDCode) {
					rep.note(KindUnresolvedReference, d.IDCode, "unknown ontology term")
					continue
				}
				if _, ok := seenGO[d.IDCode]; !ok {
					seenGO[d.IDCode] = struct{}{}
					st.goIDs = append(st.goIDs, d.IDCode)
				}
			}
			key := d.Resource + "|" + d.IDCode
			if _, ok := seenAnn[key]; ok {
				continue
			}
			seenAnn[key] = struct{}{}
			st.annotations = append(st.annotations, models.AnnotationEntry{
				ProvenanceSource:   a.cfg.ReferenceDatabase,
				ResourceIdentifier: d.IDCode,
				ResourceName:       d.Resource,
			})
		}
	}
	return st
}

func (a *FeatureAnnotator) mergeAnnotations(rep *Report, ci *models.ContainerIdentifiers, st staged) {
	if ci.RelatedAnnotationIdentifiers != nil || len(st.annotations) > 0 {
		merged := make([]models.AnnotationEntry, 0, len(ci.RelatedAnnotationIdentifiers)+len(st.annotations))
		for _, ann := range ci.RelatedAnnotationIdentifiers {
			if ann.ProvenanceSource != a.cfg.ReferenceDatabase {
				merged = append(merged, ann)
			}
		}
		ci.RelatedAnnotationIdentifiers = append(merged, st.annotations...)
	}

	if len(st.goIDs) > 0 {
		if lineage := a.ontology.Lineage(st.goIDs); len(lineage) > 0 {
			ci.RelatedAnnotationLineage = lineage
		}
	}
	a.logger.Debug("Merged related annotations", zap.String("entity", rep.EntityKey), zap.Int("staged", len(st.annotations)), zap.Int("go_terms", len(st.goIDs)))
}

func (a *FeatureAnnotator) mergeGeneNames(rep *Report, rec *models.EntityRecord, st staged) {
	numSource := len(rec.SourceOrganisms)
	for i := range rec.SourceOrganisms {
		so := &rec.SourceOrganisms[i]
		if so.NCBITaxonomyID == nil {
			continue
		}
		taxID := *so.NCBITaxonomyID

		var names []string
		seen := make(map[string]struct{})
		for _, g := range st.genes {
			if g.taxonomyID != taxID {
				continue
			}
			if _, ok := seen[g.value]; ok {
				continue
			}
			seen[g.value] = struct{}{}
			names = append(names, g.value)
		}

		// skip cases with existing annotations and multiple sources
		if len(names) > 0 && numSource > 1 && len(so.GeneNames) > 0 {
			rep.note(KindChimericConflict, fmt.Sprintf("rcsb_entity_source_organism[%d]", i), "taxonomy %d already has gene names", taxID)
			a.logger.Warn("Skipping chimeric gene name assignment", zap.String("entity", rep.EntityKey), zap.Int("taxonomy_id", taxID))
			continue
		}

		var merged []models.GeneName
		for _, gn := range so.GeneNames {
			if gn.ProvenanceCode != a.cfg.ReferenceDatabase {
				merged = append(merged, gn)
			}
		}
		for _, name := range names {
			merged = append(merged, models.GeneName{ProvenanceCode: a.cfg.ReferenceDatabase, Value: name})
		}
		so.GeneNames = merged
	}
}

// mergeEnzymes replaces the combined EC assignment with the union of the existing
// assignments and the reference record EC cross-references, then rebuilds the lineage.
func (a *FeatureAnnotator) mergeEnzymes(rep *Report, pe *models.PolymerEntity, st staged) *Error {
	var combined []models.EnzymeAssignment
	assigned := make(map[string]struct{})

	for i, ec := range pe.EnzymeClassCombined {
		if ec.EC == "" {
			return rep.fail(fmt.Sprintf("rcsb_enzyme_class_combined[%d]", i), "missing ec")
		}
		if _, ok := assigned[ec.EC]; ok {
			continue
		}
		assigned[ec.EC] = struct{}{}
		combined = append(combined, ec)
	}
	existing := len(combined)

	for _, ref := range st.records {
		for _, d := range ref.DBReferences {
			if d.Resource != models.ResourceEC {
				continue
			}
			code := a.enzymes.Normalize(d.IDCode)
			if code == "" || !a.enzymes.Exists(code) {
				rep.note(KindUnresolvedReference, d.IDCode, "unknown EC class")
				continue
			}
			if _, ok := assigned[code]; ok {
				continue
			}
			assigned[code] = struct{}{}
			combined = append(combined, models.EnzymeAssignment{EC: code, ProvenanceSource: a.cfg.ReferenceDatabase})
		}
	}

	if len(combined) == 0 {
		return nil
	}
	if len(combined) > existing {
		a.logger.Info("Reference EC assignment", zap.String("entity", rep.EntityKey), zap.Int("added", len(combined)-existing))
	}

	var lineage []models.EnzymeLineageNode
	seen := make(map[string]struct{})
	for _, ec := range combined {
		for _, node := range a.enzymes.Lineage(ec.EC) {
			if _, ok := seen[node.ID]; ok {
				continue
			}
			seen[node.ID] = struct{}{}
			lineage = append(lineage, node)
		}
	}

	pe.EnzymeClassCombined = combined
	pe.ECLineage = lineage
	return nil
}

func (a *FeatureAnnotator) logFailure(err *Error) {
	a.logger.Error("Feature filter failed", zap.String("entity", err.EntityKey), zap.Error(err))
}
