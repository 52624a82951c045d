package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"refseq-assign/core/reconcile"
	"refseq-assign/feature/refseq/assign"
	"refseq-assign/feature/refseq/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for filter command
	filterInput      string
	filterOutput     string
	filterQuarantine string
	filterMaxMB      int
	filterProgress   int
)

// filterCmd runs reference sequence assignment over a JSON lines stream.
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Reconcile and annotate entity records from a JSON lines stream",
	Long: `Reads one polymer entity record per line, remaps its reference sequence
accessions and alignments, merges reference database features and writes the
updated records as JSON lines.

Records rejected by a stage are still written, in their partially updated
state, to the quarantine file when one is given, otherwise to the output.

Examples:
  # stdin to stdout
  filter < entities.jsonl > updated.jsonl

  # Files, rejected records kept apart
  filter --input entities.jsonl --output updated.jsonl --quarantine rejected.jsonl`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterInput, "input", "i", "-", "Input JSON lines file (- for stdin)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "-", "Output JSON lines file (- for stdout)")
	filterCmd.Flags().StringVar(&filterQuarantine, "quarantine", "", "File receiving rejected records and undecodable lines")
	filterCmd.Flags().IntVar(&filterMaxMB, "max-record-mb", 64, "Maximum size of one input record in megabytes")
	filterCmd.Flags().IntVar(&filterProgress, "progress-every", 10000, "Log a running count every n records (0 disables)")

	RootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	load, err := tableLoader(cfg)
	if err != nil {
		return err
	}
	t, err := load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	adapter, err := assign.NewAdapter(cfg.Assign, t.Providers(), l)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(filterInput)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(filterOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := reconcile.StreamOptions{MaxRecordBytes: filterMaxMB << 20}
	if filterQuarantine != "" {
		q, closeQ, err := openOutput(filterQuarantine)
		if err != nil {
			return err
		}
		defer closeQ()
		opts.Quarantine = q
	}

	chain := reconcile.NewChain[*models.EntityRecord](adapter.Name(), adapter, reconcile.Progress[*models.EntityRecord](filterProgress, l))

	summary, err := reconcile.ProcessStream[models.EntityRecord](ctx, in, out, chain, opts, l)
	if summary != nil {
		l.Info("Filter summary",
			zap.Int("total", summary.Total),
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed),
			zap.Int("invalid", summary.Invalid),
			zap.Int("quarantined", summary.Quarantined),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to process records: %w", err)
	}
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
