package reconcile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ProcessStream reads one JSON record per line from r, runs the adapter on each,
// and writes the resulting records as JSON lines to w.
//
// A record rejected by the adapter is not fatal for the stream: it is counted and
// written to opts.Quarantine (or to w when no quarantine is set). Only I/O errors
// and context cancellation stop the stream.
func ProcessStream[T any](ctx context.Context, r io.Reader, w io.Writer, adapter Adapter[*T], opts StreamOptions, logger *zap.Logger) (*StreamSummary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := opts.MaxRecordBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRecordBytes
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxBytes)), maxBytes)

	out := bufio.NewWriter(w)
	defer out.Flush()

	var quarantine *bufio.Writer
	if opts.Quarantine != nil {
		quarantine = bufio.NewWriter(opts.Quarantine)
		defer quarantine.Flush()
	}

	summary := &StreamSummary{}
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		lineNo++

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		summary.Total++

		record := new(T)
		if err := json.Unmarshal(line, record); err != nil {
			summary.Invalid++
			logger.Warn("Skipping undecodable record", zap.Int("line", lineNo), zap.Error(err))
			if quarantine != nil {
				if err := writeLine(quarantine, line); err != nil {
					return summary, err
				}
				summary.Quarantined++
			}
			continue
		}

		ok, record := adapter.Filter(record)
		encoded, err := json.Marshal(record)
		if err != nil {
			return summary, fmt.Errorf("failed to encode record at line %d: %w", lineNo, err)
		}

		if ok {
			summary.Succeeded++
		} else {
			summary.Failed++
			logger.Warn("Record failed reconciliation", zap.String("adapter", adapter.Name()), zap.Int("line", lineNo))
		}

		target := out
		if !ok && quarantine != nil {
			target = quarantine
			summary.Quarantined++
		}
		if err := writeLine(target, encoded); err != nil {
			return summary, err
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read records: %w", err)
	}

	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("failed to flush output: %w", err)
	}
	if quarantine != nil {
		if err := quarantine.Flush(); err != nil {
			return summary, fmt.Errorf("failed to flush quarantine: %w", err)
		}
	}
	return summary, nil
}

func writeLine(w *bufio.Writer, line []byte) error {
	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}
