package reconcile

// Chain runs adapters in order over the same record.
// Every adapter runs even if an earlier one failed; later stages operate on
// whatever state the earlier ones left behind.
type Chain[T any] struct {
	name     string
	adapters []Adapter[T]
}

// NewChain builds a chain from the given adapters.
func NewChain[T any](name string, adapters ...Adapter[T]) *Chain[T] {
	return &Chain[T]{name: name, adapters: adapters}
}

// Name returns the chain name.
func (c *Chain[T]) Name() string {
	return c.name
}

// Filter runs every adapter and returns the conjunction of their results.
func (c *Chain[T]) Filter(record T) (bool, T) {
	ok, record, _ := c.FilterDetailed(record)
	return ok, record
}

// FilterDetailed runs every adapter and also returns the per-adapter results in order.
func (c *Chain[T]) FilterDetailed(record T) (bool, T, []StageResult) {
	ok := true
	results := make([]StageResult, 0, len(c.adapters))
	for _, a := range c.adapters {
		var stageOK bool
		stageOK, record = a.Filter(record)
		results = append(results, StageResult{Stage: a.Name(), OK: stageOK})
		ok = ok && stageOK
	}
	return ok, record, results
}
