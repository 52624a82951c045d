// Package config loads the application configuration.
//
// Values come from struct tag defaults, an optional .env file and the process
// environment, in increasing order of precedence. Nested keys map to upper case
// environment variables joined by underscores, so assign.reference_database is
// read from ASSIGN_REFERENCE_DATABASE.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Database: MySQL or SQLite connection
//   - Tables: where the lookup tables are loaded from
//   - Assign: reference sequence assignment policy
//
// List values are comma separated.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Assign.ReferenceDatabase)
package config
