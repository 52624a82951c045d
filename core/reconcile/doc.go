// Package reconcile provides a generic, per-record reconciliation pipeline.
//
// A batch job streams one record at a time through a chain of adapters. Each
// adapter repairs one concern of the record in place and reports whether the
// record was structurally valid for it. A failing adapter never stops the chain
// or the stream: the record is returned in its partially updated state and the
// caller decides whether to keep or quarantine it.
//
// # Architecture
//
// The reconcile system consists of three main components:
//
// 1. Adapter: a named Filter(record) (ok, record) stage with model-specific logic.
//
// 2. Chain: runs adapters in order, unconditionally, and combines their results
// with AND.
//
// 3. Cache: TTL-based cache with stampede protection for the read-only lookup
// tables adapters depend on.
//
// ProcessStream drives an adapter over a JSON-lines stream and reports a
// StreamSummary.
//
// # Usage Example
//
//	chain := reconcile.NewChain[*models.EntityRecord]("refseq", accessions, features)
//	summary, err := reconcile.ProcessStream[models.EntityRecord](ctx, in, out, chain,
//	    reconcile.StreamOptions{Quarantine: q}, logger)
package reconcile
