package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "storage", cfg.Tables.Source)
	assert.Equal(t, "UniProt", cfg.Assign.ReferenceDatabase)
	assert.Equal(t, []string{"PDB"}, cfg.Assign.ProvenanceSources)
	assert.Equal(t, []string{"UniProt", "GenBank", "EMBL", "NDB", "NORINE", "PIR", "PRF", "RefSeq"}, cfg.Assign.ReferenceDatabases)
	assert.False(t, cfg.Assign.DropAllowListedAlignments)
	assert.False(t, cfg.Assign.Isolated)
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	env := "ASSIGN_TAXONOMY_POLICY=strict\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ASSIGN_TAXONOMY_POLICY")
		os.Unsetenv("LOG_LEVEL")
	})

	t.Setenv("ASSIGN_PROVENANCE_SOURCES", "PDB,RCSB")
	t.Setenv("TABLES_CACHE_TTL_SECONDS", "600")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.Assign.TaxonomyPolicy)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"PDB", "RCSB"}, cfg.Assign.ProvenanceSources)
	assert.Equal(t, 600, cfg.Tables.CacheTTLSeconds)
}
