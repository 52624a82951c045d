// Package refseq exposes reference sequence assignment over HTTP.
//
// Routes:
//
//	POST /refseq/filter         run both stages on one record or an array of records
//	GET  /refseq/summary        match table verdict tally
//	POST /refseq/tables/reload  reload the lookup tables
//
// Lookup tables are loaded lazily through a TableLoader and cached; records are
// processed against whichever table set is current when the request starts.
package refseq
