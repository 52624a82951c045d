package reconcile

import "go.uber.org/zap"

// Adapter defines one stage of a per-record reconciliation pipeline.
// Each adapter implements how a single record is checked and repaired for a
// specific concern (e.g., accession remapping, feature annotation).
//
// Adapters mutate the record they are given and return it. A false result
// signals that the record is structurally invalid for this stage; the record is
// still returned in whatever state the stage reached.
type Adapter[T any] interface {
	// Name returns the unique name of this adapter (e.g., "accessions", "features").
	Name() string

	// Filter processes one record and reports whether it succeeded.
	Filter(record T) (bool, T)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc[T any] struct {
	name string
	fn   func(T) (bool, T)
}

// NewAdapterFunc wraps fn as a named Adapter.
func NewAdapterFunc[T any](name string, fn func(T) (bool, T)) AdapterFunc[T] {
	return AdapterFunc[T]{name: name, fn: fn}
}

// Name returns the adapter name.
func (a AdapterFunc[T]) Name() string {
	return a.name
}

// Filter calls the wrapped function.
func (a AdapterFunc[T]) Filter(record T) (bool, T) {
	return a.fn(record)
}

// Progress returns a pass-through stage that logs a running count every n records.
// It never rejects a record, so it can be appended to any chain.
func Progress[T any](every int, logger *zap.Logger) AdapterFunc[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	seen := 0
	return NewAdapterFunc("progress", func(record T) (bool, T) {
		seen++
		if every > 0 && seen%every == 0 {
			logger.Info("Processed records", zap.Int("count", seen))
		}
		return true, record
	})
}
