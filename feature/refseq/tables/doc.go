// Package tables holds the reference sequence lookup tables in memory and
// serves them through the provider interfaces of the assign package.
//
// Tables are loaded from a JSON snapshot in object storage or from relational
// tables through GORM, and are read-only once built.
package tables
