package reconcile

import "io"

// StageResult is the outcome of one adapter in a chain.
type StageResult struct {
	// Stage is the adapter name.
	Stage string `json:"stage"`

	// OK is false when the adapter reported a structural failure.
	OK bool `json:"ok"`
}

// StreamOptions controls stream processing.
type StreamOptions struct {
	// Quarantine receives records that failed a stage and lines that could not be decoded.
	// If nil, failed records are written to the main output and undecodable lines are dropped.
	Quarantine io.Writer

	// MaxRecordBytes bounds a single input line. Zero selects DefaultMaxRecordBytes.
	MaxRecordBytes int
}

// DefaultMaxRecordBytes is the default upper bound for one JSON line.
const DefaultMaxRecordBytes = 64 << 20

// StreamSummary provides aggregate counts for a processed stream.
type StreamSummary struct {
	// Total is the number of non-empty input lines.
	Total int `json:"total"`

	// Succeeded counts records every stage accepted.
	Succeeded int `json:"succeeded"`

	// Failed counts records at least one stage rejected.
	Failed int `json:"failed"`

	// Invalid counts lines that were not valid JSON records.
	Invalid int `json:"invalid"`

	// Quarantined counts records and lines written to the quarantine writer.
	Quarantined int `json:"quarantined"`
}
