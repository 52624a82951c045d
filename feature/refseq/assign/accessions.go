package assign

import (
	"fmt"

	"refseq-assign/feature/refseq/models"

	"go.uber.org/zap"
)

// AccessionReconciler remaps reference sequence accessions and alignments against
// the match table and falls back to SIFTS alignments for anything it cannot confirm.
type AccessionReconciler struct {
	cfg         Config
	matches     MatchTable
	fallback    StructuralFallback
	policy      TaxonomyPolicy
	logger      *zap.Logger
	excluded    stringSet
	provenance  stringSet
	referenceDB stringSet
}

// NewAccessionReconciler creates a reconciler. A nil fallback disables the SIFTS
// fallback and a nil policy selects SingletonTaxonomyPolicy.
func NewAccessionReconciler(cfg Config, matches MatchTable, fallback StructuralFallback, policy TaxonomyPolicy, logger *zap.Logger) *AccessionReconciler {
	cfg = cfg.withDefaults()
	if policy == nil {
		policy = SingletonTaxonomyPolicy{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessionReconciler{
		cfg:         cfg,
		matches:     matches,
		fallback:    fallback,
		policy:      policy,
		logger:      logger,
		excluded:    newStringSet(cfg.ExcludedDatabases),
		provenance:  newStringSet(cfg.ProvenanceSources),
		referenceDB: newStringSet(cfg.ReferenceDatabases),
	}
}

// Name returns the stage name.
func (r *AccessionReconciler) Name() string {
	return "accessions"
}

// Filter reconciles the record and reports whether it was structurally valid.
func (r *AccessionReconciler) Filter(rec *models.EntityRecord) (bool, *models.EntityRecord) {
	return r.Reconcile(rec).OK(), rec
}

// Reconcile remaps the reference sequence identifiers and alignments of rec in place.
// On a structural failure the record keeps whatever changes were already applied.
func (r *AccessionReconciler) Reconcile(rec *models.EntityRecord) *Report {
	if rec == nil {
		rep := newReport(r.Name(), "")
		rep.fail("record", "record is nil")
		return rep
	}
	rep := newReport(r.Name(), rec.RCSBID)
	if rec.RCSBID == "" {
		r.logFailure(rep.fail("rcsb_id", "missing entity key"))
		return rep
	}
	r.logger.Debug("Running accession filter", zap.String("entity", rec.RCSBID))

	taxIDs, err := recordTaxonomyIDs(rep, rec)
	if err != nil {
		r.logFailure(err)
		return rep
	}

	var chainIDs []string
	if rec.ContainerIdentifiers != nil {
		chainIDs = rec.ContainerIdentifiers.AuthAsymIDs
	}
	fb := &fallbackLookup{reconciler: r, rep: rep, structureID: rec.StructureID(), chainIDs: chainIDs}

	if ci := rec.ContainerIdentifiers; ci != nil && len(ci.ReferenceSequenceIdentifiers) > 0 {
		if err := r.reconcileIdentifiers(rep, ci, taxIDs, fb); err != nil {
			r.logFailure(err)
			return rep
		}
	}

	if len(rec.Alignments) > 0 && len(chainIDs) > 0 {
		if err := r.reconcileAlignments(rep, rec, taxIDs, fb); err != nil {
			r.logFailure(err)
			return rep
		}
	}

	return rep
}

func (r *AccessionReconciler) reconcileIdentifiers(rep *Report, ci *models.ContainerIdentifiers, taxIDs []int, fb *fallbackLookup) *Error {
	var kept []models.ReferenceSequenceIdentifier
	seen := make(map[string]struct{})
	unconfirmed := false

	for i := range ci.ReferenceSequenceIdentifiers {
		rsi := &ci.ReferenceSequenceIdentifiers[i]
		subject := fmt.Sprintf("reference_sequence_identifiers[%d]", i)
		if rsi.DatabaseName == "" || rsi.DatabaseAccession == "" || rsi.ProvenanceSource == "" {
			return rep.fail(subject, "database_name, database_accession and provenance_source are required")
		}

		if !r.remap(rep, rsi.DatabaseName, rsi.ProvenanceSource, &rsi.DatabaseAccession, taxIDs, true) {
			unconfirmed = true
			continue
		}
		if _, dup := seen[rsi.DatabaseAccession]; dup {
			continue
		}
		seen[rsi.DatabaseAccession] = struct{}{}
		kept = append(kept, *rsi)
	}

	if unconfirmed {
		for _, fa := range fb.get() {
			if _, dup := seen[fa.Accession]; dup {
				continue
			}
			seen[fa.Accession] = struct{}{}
			r.logger.Info("Using SIFTS accession mapping", zap.String("entity", rep.EntityKey), zap.String("accession", fa.Accession))
			kept = append(kept, models.ReferenceSequenceIdentifier{
				DatabaseName:      r.cfg.ReferenceDatabase,
				DatabaseAccession: fa.Accession,
				ProvenanceSource:  models.ProvenanceSIFTS,
			})
		}
	}

	if len(kept) == 0 {
		ci.ReferenceSequenceIdentifiers = nil
		r.logger.Info("Incomplete reference sequence mapping update", zap.String("entity", rep.EntityKey))
		return nil
	}
	ci.ReferenceSequenceIdentifiers = kept
	return nil
}

func (r *AccessionReconciler) reconcileAlignments(rep *Report, rec *models.EntityRecord, taxIDs []int, fb *fallbackLookup) *Error {
	var kept []models.AlignmentRecord
	seen := make(map[string]struct{})
	unconfirmed := false

	for i := range rec.Alignments {
		al := &rec.Alignments[i]
		if al.ReferenceDatabaseName == "" || al.ReferenceDatabaseAccession == "" {
			return rep.fail(fmt.Sprintf("rcsb_polymer_entity_align[%d]", i), "reference_database_name and reference_database_accession are required")
		}

		if !r.remap(rep, al.ReferenceDatabaseName, al.ProvenanceCode, &al.ReferenceDatabaseAccession, taxIDs, !r.cfg.DropAllowListedAlignments) {
			unconfirmed = true
			continue
		}
		h := al.Hash()
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		kept = append(kept, *al)
	}

	if unconfirmed {
		for _, fa := range fb.get() {
			al := models.AlignmentRecord{
				ReferenceDatabaseName:      r.cfg.ReferenceDatabase,
				ReferenceDatabaseAccession: fa.Accession,
				ProvenanceCode:             models.ProvenanceSIFTS,
				AlignedRegions:             append([]models.AlignedRegion(nil), fa.Regions...),
			}
			h := al.Hash()
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			r.logger.Info("Using SIFTS alignment", zap.String("entity", rep.EntityKey), zap.String("accession", fa.Accession))
			kept = append(kept, al)
		}
	}

	if len(kept) == 0 {
		rec.Alignments = nil
		r.logger.Info("Incomplete reference sequence alignment update", zap.String("entity", rep.EntityKey))
		return nil
	}
	rec.Alignments = kept
	return nil
}

// remap applies the assignment policy to one accession and rewrites it in place when
// the match table names a successor. It reports whether the accession is confirmed.
func (r *AccessionReconciler) remap(rep *Report, database, provenance string, accession *string, taxIDs []int, allowListConfirms bool) bool {
	log := r.logger.With(zap.String("entity", rep.EntityKey), zap.String("accession", *accession), zap.String("database", database))

	switch {
	case r.excluded.has(database):
		log.Debug("Excluded reference database")
		return false
	case database == r.cfg.ReferenceDatabase && r.provenance.has(provenance):
		return r.remapReference(rep, log, accession, taxIDs)
	case r.provenance.has(provenance) && r.referenceDB.has(database):
		log.Info("Leaving reference assignment", zap.String("provenance", provenance), zap.Bool("retained", allowListConfirms))
		return allowListConfirms
	default:
		log.Info("Leaving informational reference assignment", zap.String("provenance", provenance))
		return false
	}
}

func (r *AccessionReconciler) remapReference(rep *Report, log *zap.Logger, accession *string, taxIDs []int) bool {
	acc := *accession
	verdict, found := r.matches.LookupMatch(acc)
	if !found {
		rep.note(KindUnresolvedReference, acc, "no match table entry")
		log.Info("No match table entry")
		return false
	}

	switch verdict.Matched {
	case models.MatchPrimary:
		return true
	case models.MatchSecondary:
		switch len(verdict.MatchedIDs) {
		case 0:
			rep.note(KindUnresolvedReference, acc, "secondary match without candidates")
			log.Info("Secondary match without candidates")
			return false
		case 1:
			for id := range verdict.MatchedIDs {
				*accession = id
			}
			log.Info("Matched secondary accession", zap.String("successor", *accession))
			return true
		}

		id, err := r.policy.Resolve(verdict, taxIDs)
		if err != nil {
			rep.note(KindAmbiguousMapping, acc, "%v", err)
			log.Info("Ambiguous secondary mapping", zap.String("policy", r.policy.Name()), zap.Ints("taxonomy_ids", taxIDs), zap.Error(err))
			return false
		}
		*accession = id
		log.Info("Matched secondary accession by taxonomy", zap.String("successor", id), zap.Ints("taxonomy_ids", taxIDs))
		return true
	default:
		rep.note(KindUnresolvedReference, acc, "match verdict %q", verdict.Matched)
		log.Debug("Accession not matched", zap.String("verdict", string(verdict.Matched)))
		return false
	}
}

func (r *AccessionReconciler) logFailure(err *Error) {
	r.logger.Error("Accession filter failed", zap.String("entity", err.EntityKey), zap.Error(err))
}

// fallbackLookup queries the structural fallback at most once per record.
type fallbackLookup struct {
	reconciler  *AccessionReconciler
	rep         *Report
	structureID string
	chainIDs    []string
	done        bool
	result      []models.FallbackAlignment
}

func (f *fallbackLookup) get() []models.FallbackAlignment {
	if f.done {
		return f.result
	}
	f.done = true

	r := f.reconciler
	if r.fallback == nil || len(f.chainIDs) == 0 {
		f.rep.note(KindUnresolvedReference, f.structureID, "no structural fallback available")
		return nil
	}
	f.result = r.fallback.LongestAlignments(f.structureID, f.chainIDs)
	if len(f.result) == 0 {
		f.rep.note(KindUnresolvedReference, f.structureID, "no SIFTS alignment for chains %v", f.chainIDs)
		r.logger.Info("No alternative SIFTS mapping", zap.String("entity", f.rep.EntityKey))
	}
	return f.result
}

// recordTaxonomyIDs returns the distinct taxonomy ids of rec, rejecting invalid ones.
func recordTaxonomyIDs(rep *Report, rec *models.EntityRecord) ([]int, *Error) {
	for i, so := range rec.SourceOrganisms {
		if so.NCBITaxonomyID != nil && *so.NCBITaxonomyID <= 0 {
			return nil, rep.fail(fmt.Sprintf("rcsb_entity_source_organism[%d]", i), "invalid ncbi_taxonomy_id %d", *so.NCBITaxonomyID)
		}
	}
	return rec.TaxonomyIDs(), nil
}
