package assign

import (
	"fmt"

	"refseq-assign/core/reconcile"
	"refseq-assign/feature/refseq/models"

	"go.uber.org/zap"
)

// Adapter runs accession reconciliation followed by feature annotation over one
// entity record. Providers are only read, so one Adapter may serve concurrent
// Filter calls on distinct records.
type Adapter struct {
	cfg        Config
	matches    MatchTable
	accessions *AccessionReconciler
	features   *FeatureAnnotator
	chain      *reconcile.Chain[*models.EntityRecord]
	logger     *zap.Logger
}

// Option customizes an Adapter.
type Option func(*adapterOptions)

type adapterOptions struct {
	policy TaxonomyPolicy
}

// WithTaxonomyPolicy overrides the policy named in the configuration.
func WithTaxonomyPolicy(p TaxonomyPolicy) Option {
	return func(o *adapterOptions) {
		o.policy = p
	}
}

// Result is the detailed outcome of Adapter.FilterReport.
type Result struct {
	OK      bool                 `json:"ok"`
	Record  *models.EntityRecord `json:"record"`
	Reports []*Report            `json:"reports"`
}

// NewAdapter validates the providers and builds both stages.
func NewAdapter(cfg Config, p Providers, logger *zap.Logger, opts ...Option) (*Adapter, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid providers: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()

	var o adapterOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == nil {
		policy, err := PolicyByName(cfg.TaxonomyPolicy)
		if err != nil {
			return nil, err
		}
		o.policy = policy
	}

	acc := NewAccessionReconciler(cfg, p.Matches, p.Fallback, o.policy, logger)
	feat := NewFeatureAnnotator(cfg, p.References, p.Enzymes, p.Ontology, logger)

	return &Adapter{
		cfg:        cfg,
		matches:    p.Matches,
		accessions: acc,
		features:   feat,
		chain:      reconcile.NewChain[*models.EntityRecord]("refseq", acc, feat),
		logger:     logger,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "refseq"
}

// Filter runs both stages and returns the conjunction of their results. The
// annotation stage runs even when reconciliation failed.
func (a *Adapter) Filter(rec *models.EntityRecord) (bool, *models.EntityRecord) {
	if a.cfg.Isolated {
		ok, _ := a.chain.Filter(rec.Clone())
		return ok, rec
	}
	return a.chain.Filter(rec)
}

// FilterReport behaves like Filter and also returns the per-stage reports.
func (a *Adapter) FilterReport(rec *models.EntityRecord) *Result {
	target := rec
	if a.cfg.Isolated {
		target = rec.Clone()
	}
	accRep := a.accessions.Reconcile(target)
	featRep := a.features.Annotate(target)

	res := &Result{
		OK:      accRep.OK() && featRep.OK(),
		Record:  target,
		Reports: []*Report{accRep, featRep},
	}
	if a.cfg.Isolated {
		res.Record = rec
	}
	return res
}

// AccessionAlignSummary tallies the verdicts of the whole match table.
func (a *Adapter) AccessionAlignSummary() (primary, secondary, unmatched int) {
	for _, acc := range a.matches.Accessions() {
		verdict, ok := a.matches.LookupMatch(acc)
		if !ok {
			unmatched++
			continue
		}
		switch verdict.Matched {
		case models.MatchPrimary:
			primary++
		case models.MatchSecondary:
			secondary++
		default:
			unmatched++
		}
	}
	a.logger.Info("Accession match summary", zap.Int("primary", primary), zap.Int("secondary", secondary), zap.Int("unmatched", unmatched))
	return primary, secondary, unmatched
}
