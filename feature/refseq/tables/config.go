package tables

// Source names where the lookup tables are loaded from.
const (
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// Config holds configuration for loading the lookup tables.
type Config struct {
	// Source is where tables are loaded from (storage, database).
	Source string `mapstructure:"source" default:"storage"`
	// Object is the snapshot object name in the storage bucket.
	Object string `mapstructure:"object" default:"refseq/tables.json"`
	// CacheTTLSeconds is how long loaded tables are served before reloading. Zero keeps them until a reload.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}
