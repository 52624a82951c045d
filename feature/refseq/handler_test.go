package refseq_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"refseq-assign/feature/refseq"
	"refseq-assign/feature/refseq/assign"
	"refseq-assign/feature/refseq/models"
	"refseq-assign/feature/refseq/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTables() (*tables.Tables, error) {
	return tables.New(tables.Snapshot{
		Matches: map[string]models.MatchVerdict{
			"P06881": {Matched: models.MatchPrimary},
			"P14118": {Matched: models.MatchSecondary, MatchedIDs: map[string]models.MatchCandidate{
				"P84098": {TaxonomyID: 9606},
				"P84099": {TaxonomyID: 10090},
			}},
			"Q00000": {Matched: models.MatchNone},
		},
		References: map[string]models.ReferenceDatabaseRecord{
			"P06881": {
				Accession:    "P06881",
				TaxonomyID:   9606,
				Genes:        []models.ReferenceGene{{Name: "X"}},
				DBReferences: []models.DBReference{{Resource: models.ResourceEC, IDCode: "5.2.1.8"}},
			},
		},
		Enzymes: map[string]string{
			"5":       "Isomerases",
			"5.2":     "cis-trans-Isomerases",
			"5.2.1":   "cis-trans Isomerases",
			"5.2.1.8": "peptidylprolyl isomerase",
		},
	})
}

func setupApp(t *testing.T, load refseq.TableLoader) *fiber.App {
	t.Helper()
	feature := refseq.NewFeature(assign.DefaultConfig(), load, 0, zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func staticLoader(calls *int32) refseq.TableLoader {
	return func(ctx context.Context) (*tables.Tables, error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return testTables()
	}
}

const singleRecord = `{
	"rcsb_id": "1ABC_1",
	"entity_poly": {"type": "polypeptide(L)"},
	"rcsb_entity_source_organism": [{"ncbi_taxonomy_id": 9606}],
	"rcsb_polymer_entity": {},
	"rcsb_polymer_entity_container_identifiers": {
		"entry_id": "1ABC",
		"entity_id": "1",
		"auth_asym_ids": ["A"],
		"reference_sequence_identifiers": [
			{"database_name": "UniProt", "database_accession": "P06881", "provenance_source": "PDB"}
		]
	}
}`

func TestHandleFilter(t *testing.T) {
	app := setupApp(t, staticLoader(nil))

	t.Run("Single Record", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refseq/filter", strings.NewReader(singleRecord))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result assign.Result
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.OK)
		require.NotNil(t, result.Record)
		assert.Equal(t, []models.GeneName{{ProvenanceCode: "UniProt", Value: "X"}}, result.Record.SourceOrganisms[0].GeneNames)
		assert.Len(t, result.Record.PolymerEntity.ECLineage, 4)
		assert.Contains(t, result.Record.Extra, "entity_poly")
		assert.Len(t, result.Reports, 2)
	})

	t.Run("Batch", func(t *testing.T) {
		body := "[" + singleRecord + `, {"rcsb_entity_source_organism": [{"ncbi_taxonomy_id": 9606}]}]`
		req := httptest.NewRequest("POST", "/refseq/filter", strings.NewReader(body))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var results []assign.Result
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
		require.Len(t, results, 2)
		assert.True(t, results[0].OK)
		assert.False(t, results[1].OK)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refseq/filter", strings.NewReader("{broken"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Empty Body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/refseq/filter", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleFilter_TablesUnavailable(t *testing.T) {
	app := setupApp(t, func(ctx context.Context) (*tables.Tables, error) {
		return nil, errors.New("bucket unreachable")
	})

	req := httptest.NewRequest("POST", "/refseq/filter", strings.NewReader(singleRecord))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "bucket unreachable")
}

func TestHandleSummaryAndReload(t *testing.T) {
	var calls int32
	app := setupApp(t, staticLoader(&calls))

	resp, err := app.Test(httptest.NewRequest("GET", "/refseq/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary refseq.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Primary)
	assert.Equal(t, 1, summary.Secondary)
	assert.Equal(t, 1, summary.Unmatched)
	assert.Equal(t, 3, summary.Tables["matches"])

	// cached
	_, err = app.Test(httptest.NewRequest("GET", "/refseq/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	resp, err = app.Test(httptest.NewRequest("POST", "/refseq/tables/reload", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
