package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"refseq-assign/core/config"
	"refseq-assign/core/database"
	"refseq-assign/core/storage"
	"refseq-assign/feature/refseq/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for tables commands
	yesConfirm bool
)

// tablesCmd groups the lookup table maintenance commands.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Maintain the reference sequence lookup tables",
	Long: `The lookup tables (match table, reference records, EC classes, GO ontology and
SIFTS segments) live either in a database or as a JSON snapshot in the storage
bucket. These commands inspect the database schema and move tables between both.`,
}

var tablesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database schema of the lookup tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, l, db, err := connectTables()
		if err != nil {
			return err
		}
		defer l.Sync()

		report, err := tables.CheckSchema(db)
		if err != nil {
			return err
		}
		for name, tbl := range report.Tables {
			if tbl.Status == "ok" {
				l.Info("Table ok", zap.String("table", name))
				continue
			}
			l.Warn("Table mismatch",
				zap.String("table", name),
				zap.Strings("missing_columns", tbl.MissingColumns),
				zap.Strings("type_mismatches", tbl.TypeMismatches),
			)
		}
		for _, e := range report.Errors {
			l.Error("Schema error", zap.String("error", e))
		}
		if !report.Matched {
			return fmt.Errorf("schema does not match")
		}
		return nil
	},
}

var tablesMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the lookup table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, l, db, err := connectTables()
		if err != nil {
			return err
		}
		defer l.Sync()

		if err := tables.Migrate(db); err != nil {
			return err
		}
		l.Info("Schema migrated")
		return nil
	},
}

var tablesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the database tables as a snapshot to the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, l, db, err := connectTables()
		if err != nil {
			return err
		}
		defer l.Sync()

		t, err := tables.LoadFromDB(ctx, db)
		if err != nil {
			return err
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return err
		}
		if err := tables.Save(ctx, client, cfg.Storage.Bucket, cfg.Tables.Object, t); err != nil {
			return err
		}

		l.Info("Exported tables",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("object", cfg.Tables.Object),
			zap.Any("rows", t.Stats()),
		)
		return nil
	},
}

var tablesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the database tables with the snapshot from the storage bucket",
	Long: `Loads the snapshot object from the storage bucket and replaces every lookup
table in the database with its content. Requires confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, l, db, err := connectTables()
		if err != nil {
			return err
		}
		defer l.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		t, err := tables.LoadFromStorage(ctx, client, cfg.Storage.Bucket, cfg.Tables.Object)
		if err != nil {
			return err
		}
		l.Info("Loaded snapshot", zap.String("object", cfg.Tables.Object), zap.Any("rows", t.Stats()))

		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		if err := tables.Migrate(db); err != nil {
			return err
		}
		if err := tables.WriteToDB(ctx, db, t); err != nil {
			return err
		}
		l.Info("Imported tables")
		return nil
	},
}

func init() {
	tablesImportCmd.Flags().BoolVarP(&yesConfirm, "yes", "y", false, "Skip confirmation prompt")

	tablesCmd.AddCommand(tablesCheckCmd, tablesMigrateCmd, tablesExportCmd, tablesImportCmd)
	RootCmd.AddCommand(tablesCmd)
}

// connectTables loads the configuration and opens the lookup table database.
func connectTables() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, l, err := setup()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, l, db, nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("Type 'yes' to replace the database tables: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(response)) == "yes"
}
