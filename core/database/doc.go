// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application
// configuration. The reference sequence lookup tables can be loaded from and
// published to either backend.
//
// # Schema Inspection
//
// GetTableColumns returns the column definitions of a table so that the table
// models can be checked against a live schema before loading.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "refseq_match")
package database
