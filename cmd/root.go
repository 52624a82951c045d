package cmd

import (
	"context"
	"fmt"
	"os"

	"refseq-assign/core/config"
	"refseq-assign/core/database"
	"refseq-assign/core/logger"
	"refseq-assign/core/storage"
	"refseq-assign/feature/refseq/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configPath is the directory holding the optional .env file.
var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "refseq-assign",
	Short: "Reference sequence assignment service",
	Long: `refseq-assign reconciles the reference sequence accessions and alignments of
polymer entity records against the current reference database and annotates
them with gene names, GO/Pfam/InterPro cross-references and EC classes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing the .env file")
}

// setup loads the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// tableLoader returns a loader for the configured table source.
func tableLoader(cfg *config.Config) (func(ctx context.Context) (*tables.Tables, error), error) {
	switch cfg.Tables.Source {
	case tables.SourceStorage:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return func(ctx context.Context) (*tables.Tables, error) {
			return tables.LoadFromStorage(ctx, client, cfg.Storage.Bucket, cfg.Tables.Object)
		}, nil
	case tables.SourceDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return func(ctx context.Context) (*tables.Tables, error) {
			return tables.LoadFromDB(ctx, db)
		}, nil
	default:
		return nil, fmt.Errorf("unknown tables source %q", cfg.Tables.Source)
	}
}
