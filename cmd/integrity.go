package cmd

import (
	"context"

	"dat-manager/core/storage"
	"dat-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks the storage prefixes, the stored catalogs and the catalog database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the storage prefixes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// catalogsCmd represents the integrity catalogs command
var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "Parse every catalog stored under the input prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the catalog database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, catalogsCmd, serverCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing prefixes")
}

func runIntegrityChecks(ctx context.Context, runStructure, runCatalogs, runServer bool) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	var store storage.Client
	if runStructure || runCatalogs {
		store = rt.openStorage()
	}
	var db *gorm.DB
	if runServer {
		db = rt.openDatabase()
	}
	svc := integrity.NewService(store, rt.cfg.Storage, logg, db, rt.cfg.Reconcile.Workers)

	if runStructure {
		logg.Info("Checking storage structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return err
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return err
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run integrity structure with --fix to create missing folders.")
			}
		}
	}

	if runCatalogs {
		logg.Info("Parsing stored catalogs...")
		report, err := svc.CheckCatalogs(ctx)
		if err != nil {
			return err
		}
		logg.Info("Catalog check completed",
			zap.Int("total", report.Total),
			zap.Int("valid", report.Valid),
			zap.Int("items", report.Items),
			zap.Strings("unknown", report.Unknown),
		)
		for _, inv := range report.Invalid {
			logg.Warn("Invalid catalog", zap.String("key", inv.Key), zap.String("error", inv.Error))
		}
	}

	if runServer {
		logg.Info("Checking database schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Database schema matches the catalog models.", zap.String("driver", report.Driver))
			return nil
		}
		logg.Warn("Database schema mismatches found", zap.String("driver", report.Driver))
		for table, tblReport := range report.Tables {
			if tblReport.Status == "ok" {
				continue
			}
			if len(tblReport.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
			}
			if len(tblReport.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
	return nil
}
