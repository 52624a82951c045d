// Package assign reconciles the reference sequence assignments of polymer entity
// records and annotates them with features of the referenced sequence records.
//
// An Adapter chains two stages. AccessionReconciler confirms or rewrites
// reference database accessions and alignments through a match table and falls
// back to SIFTS alignments for anything left unconfirmed. FeatureAnnotator then
// merges gene names, related annotations and EC classes from the referenced
// records.
//
// Both stages mutate the record in place and report success as a boolean; only a
// structurally invalid record yields false. Lookup misses, ambiguous mappings and
// chimeric conflicts are recorded as diagnostics on the stage Report.
package assign
