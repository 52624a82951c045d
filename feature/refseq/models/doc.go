// Package models defines the polymer entity record and the reference data shapes
// consumed by reference sequence assignment.
//
// The JSON member names follow the core_entity document schema, e.g.
//
//	{"database_name": "UniProt", "database_accession": "P06881", "provenance_source": "PDB"}
//
// EntityRecord round-trips members it does not model, so a record read from a
// pipeline stream is written back with only the assignment members changed.
package models
