package assign

import (
	"testing"

	"refseq-assign/feature/refseq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonTaxonomyPolicy(t *testing.T) {
	verdict := models.MatchVerdict{
		Matched: models.MatchSecondary,
		MatchedIDs: map[string]models.MatchCandidate{
			"A": {TaxonomyID: 10090},
			"B": {TaxonomyID: 9606},
			"C": {TaxonomyID: 7227},
			"D": {TaxonomyID: 7227},
		},
	}

	tests := []struct {
		name    string
		taxIDs  []int
		want    string
		wantErr bool
	}{
		{"single match", []int{9606}, "B", false},
		{"other single match", []int{10090}, "A", false},
		{"no taxonomy", nil, "", true},
		{"not a singleton", []int{9606, 10090}, "", true},
		{"no candidate shares taxonomy", []int{4932}, "", true},
		{"several candidates share taxonomy", []int{7227}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SingletonTaxonomyPolicy{}.Resolve(verdict, tt.taxIDs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, "singleton-taxonomy", p.Name())

	p, err = PolicyByName("strict")
	require.NoError(t, err)
	assert.Equal(t, "strict", p.Name())

	_, err = PolicyByName("loose")
	assert.Error(t, err)
}
