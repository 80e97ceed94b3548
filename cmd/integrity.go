package cmd

import (
	"context"
	"fmt"
	"os"

	"asset-bridge/core/config"
	"asset-bridge/core/database"
	"asset-bridge/core/engine/obj"
	"asset-bridge/core/logger"
	"asset-bridge/core/storage"
	"asset-bridge/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

const (
	checkStorage = 1 << iota
	checkModels
	checkHistory
	checkAll = checkStorage | checkModels | checkHistory
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and import history",
	Long:  `Checks the asset bucket layout, the stored models and the import history schema.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), checkAll)
	},
}

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the bucket folder structure",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkStorage)
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Check stored models are importable",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkModels)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Check the import history schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkHistory)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, modelsCmd, historyCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, which int) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	var db *gorm.DB
	if which&checkHistory != 0 {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}
	}

	svc := integrity.NewService(store, cfg.Storage.Bucket, logg, db, obj.Extensions)

	if which&checkStorage != 0 {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			logg.Fatal("Structure check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if which == checkStorage && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					logg.Fatal("Failed to fix structure", zap.Error(err))
				}
				logg.Info("Structure fixed successfully.")
			} else if which == checkStorage {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if which&checkModels != 0 {
		logg.Info("Checking stored models...")
		report, err := svc.CheckModels(ctx)
		if err != nil {
			logg.Fatal("Models check failed", zap.Error(err))
		}
		if len(report.Unsupported) == 0 {
			logg.Info("All stored models are importable.", zap.Int("total", report.Total))
		} else {
			logg.Warn("Unsupported models detected",
				zap.Int("total", report.Total),
				zap.Strings("unsupported", report.Unsupported))
		}
	}

	if which&checkHistory != 0 {
		if db == nil {
			logg.Warn("Skipping history check, no database connection")
			return
		}
		logg.Info("Checking import history schema...")
		report, err := svc.CheckHistory()
		if err != nil {
			logg.Fatal("History check failed", zap.Error(err))
		}
		if report.Matched {
			logg.Info("Import history schema is intact.")
		} else {
			logg.Warn("Import history schema mismatch",
				zap.Bool("exists", report.Exists),
				zap.Strings("missing_columns", report.MissingColumns),
				zap.Strings("errors", report.Errors))
		}
	}
}
