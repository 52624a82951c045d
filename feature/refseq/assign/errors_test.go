package assign

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rep := newReport("accessions", "1ABC_1")
	rep.note(KindAmbiguousMapping, "P14118", "%d candidates", 2)
	err := rep.fail("rcsb_id", "missing")

	assert.Equal(t, "1ABC_1: structural_input: rcsb_id: missing", err.Error())
	assert.Equal(t, "1ABC_1: ambiguous_mapping: P14118: 2 candidates", rep.Diagnostics[0].Error())

	wrapped := fmt.Errorf("stage failed: %w", err)
	assert.True(t, errors.Is(wrapped, ErrStructuralInput))
	assert.False(t, errors.Is(wrapped, ErrAmbiguousMapping))

	var target *Error
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, KindStructuralInput, target.Kind)

	text, mErr := KindChimericConflict.MarshalText()
	require.NoError(t, mErr)
	assert.Equal(t, "chimeric_conflict", string(text))
}

func TestErrorKind_UnmarshalText(t *testing.T) {
	var k ErrorKind
	require.NoError(t, k.UnmarshalText([]byte("ambiguous_mapping")))
	assert.Equal(t, KindAmbiguousMapping, k)
	assert.Error(t, k.UnmarshalText([]byte("fatal")))
}
