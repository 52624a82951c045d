package cmd

import (
	"context"
	"fmt"

	"refseq-assign/feature/refseq/assign"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// summaryCmd reports how the match table verdicts are distributed.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize match table verdicts",
	Long:  `Loads the lookup tables and counts primary, secondary and unmatched accessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

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

		primary, secondary, unmatched := adapter.AccessionAlignSummary()
		l.Info("Lookup tables", zap.Any("rows", t.Stats()))
		fmt.Printf("primary\t%d\nsecondary\t%d\nunmatched\t%d\n", primary, secondary, unmatched)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(summaryCmd)
}
