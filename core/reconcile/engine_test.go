package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// item is a simple test record
type item struct {
	ID    string   `json:"id"`
	Steps []string `json:"steps,omitempty"`
}

// stepAdapter appends its name to the record and returns a fixed result.
func stepAdapter(name string, ok bool) Adapter[*item] {
	return NewAdapterFunc(name, func(r *item) (bool, *item) {
		r.Steps = append(r.Steps, name)
		return ok, r
	})
}

// TestChain_RunsAllAdapters tests that every adapter runs even after a failure.
func TestChain_RunsAllAdapters(t *testing.T) {
	chain := NewChain("test", stepAdapter("first", false), stepAdapter("second", true))

	ok, rec, results := chain.FilterDetailed(&item{ID: "a"})
	assert.False(t, ok)
	assert.Equal(t, []string{"first", "second"}, rec.Steps)
	assert.Equal(t, []StageResult{{Stage: "first", OK: false}, {Stage: "second", OK: true}}, results)
}

// TestChain_CombinedResult tests the AND semantics of the chain result.
func TestChain_CombinedResult(t *testing.T) {
	tests := []struct {
		name   string
		first  bool
		second bool
		want   bool
	}{
		{"both ok", true, true, true},
		{"first fails", false, true, false},
		{"second fails", true, false, false},
		{"both fail", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain("test", stepAdapter("first", tt.first), stepAdapter("second", tt.second))
			ok, _ := chain.Filter(&item{})
			assert.Equal(t, tt.want, ok)
		})
	}
}

// TestChain_Empty tests that an empty chain accepts every record.
func TestChain_Empty(t *testing.T) {
	chain := NewChain[*item]("empty")
	ok, rec := chain.Filter(&item{ID: "a"})
	assert.True(t, ok)
	assert.Equal(t, "a", rec.ID)
	assert.Equal(t, "empty", chain.Name())
}

// TestProgress tests that the progress stage passes records through and logs every n.
func TestProgress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	chain := NewChain[*item]("test", stepAdapter("a", true), Progress[*item](2, zap.New(core)))

	for i := 0; i < 5; i++ {
		ok, out := chain.Filter(&item{ID: "x"})
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, out.Steps)
	}

	entries := logs.FilterMessage("Processed records").All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
		assert.Equal(t, int64(4), entries[1].ContextMap()["count"])
	}
}
