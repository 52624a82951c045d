package refseq

import (
	"context"
	"fmt"
	"time"

	"refseq-assign/core/reconcile"
	"refseq-assign/feature/refseq/assign"
	"refseq-assign/feature/refseq/models"
	"refseq-assign/feature/refseq/tables"

	"go.uber.org/zap"
)

const cacheKey = "tables"

// TableLoader loads a fresh set of lookup tables.
type TableLoader func(ctx context.Context) (*tables.Tables, error)

// loaded pairs the tables with the adapter built on them.
type loaded struct {
	tables  *tables.Tables
	adapter *assign.Adapter
}

// Summary is the match table tally returned by the summary endpoint.
type Summary struct {
	Primary   int            `json:"primary"`
	Secondary int            `json:"secondary"`
	Unmatched int            `json:"unmatched"`
	Tables    map[string]int `json:"tables"`
}

// Service runs reference sequence assignment against cached lookup tables.
type Service struct {
	cfg    assign.Config
	load   TableLoader
	cache  *reconcile.Cache[*loaded]
	logger *zap.Logger
}

// NewService creates a new refseq service. Tables are loaded on first use and
// kept for ttl, or until Reload when ttl is zero.
func NewService(cfg assign.Config, load TableLoader, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		load:   load,
		cache:  reconcile.NewCache[*loaded](ttl),
		logger: logger,
	}
}

func (s *Service) current(ctx context.Context) (*loaded, error) {
	return s.cache.GetOrBuild(ctx, cacheKey, func(ctx context.Context) (*loaded, error) {
		start := time.Now()
		t, err := s.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load tables: %w", err)
		}
		a, err := assign.NewAdapter(s.cfg, t.Providers(), s.logger)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Loaded lookup tables", zap.Any("tables", t.Stats()), zap.Duration("elapsed", time.Since(start)))
		return &loaded{tables: t, adapter: a}, nil
	})
}

// Filter runs both assignment stages over each record.
func (s *Service) Filter(ctx context.Context, records []*models.EntityRecord) ([]*assign.Result, error) {
	l, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]*assign.Result, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, l.adapter.FilterReport(rec))
	}
	return results, nil
}

// Summary tallies the verdicts of the loaded match table.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	l, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	primary, secondary, unmatched := l.adapter.AccessionAlignSummary()
	return &Summary{
		Primary:   primary,
		Secondary: secondary,
		Unmatched: unmatched,
		Tables:    l.tables.Stats(),
	}, nil
}

// Reload drops the cached tables and loads them again.
func (s *Service) Reload(ctx context.Context) (map[string]int, error) {
	s.cache.Invalidate(cacheKey)
	l, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return l.tables.Stats(), nil
}
