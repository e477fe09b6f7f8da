package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"dat-manager/core/formats"
	"dat-manager/core/reconcile"
	"dat-manager/core/storage"
	"dat-manager/feature/catalog"
	"dat-manager/feature/update"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogName         string
	catalogReplace      bool
	catalogFormat       string
	catalogOut          string
	catalogIgnoreBlanks bool
)

// catalogCmd is the parent command for stored catalog operations.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage catalogs stored in the database",
	Long: `Import, export, list and delete catalogs kept in the catalog database.
Stored catalogs can be used as db://name inputs by update.`,
}

// withCatalogs connects to the database and runs fn with the catalog service.
func withCatalogs(cmd *cobra.Command, fn func(ctx context.Context, rt *env, svc *catalog.Service) error) error {
	ctx := cmd.Context()
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	db := rt.openDatabase()
	if db == nil {
		return catalog.ErrNoDatabase
	}
	svc, err := rt.openCatalogs(ctx, db)
	if err != nil {
		return err
	}
	return fn(ctx, rt, svc)
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <inputs...>",
	Short: "Import DAT files, directories or s3:// objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogs(cmd, func(ctx context.Context, rt *env, svc *catalog.Service) error {
			opts, err := rt.cfg.Reconcile.Options(rt.logger)
			if err != nil {
				return err
			}

			var store storage.Client
			if usesScheme(update.Request{Inputs: args}, update.S3Scheme) {
				store = rt.openStorage()
			}
			resolver := update.NewResolver(store, rt.cfg.Storage.Bucket, nil)
			inputs, err := resolver.Expand(ctx, args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return update.ErrNoInputs
			}
			if catalogName != "" && len(inputs) > 1 {
				return fmt.Errorf("--name needs a single input, got %d", len(inputs))
			}

			for _, in := range inputs {
				dat, err := reconcile.LoadOne(ctx, in, resolver, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", in.Path, err)
				}
				if catalogName != "" {
					dat.Header.Name = catalogName
				}
				cat, err := svc.Import(ctx, dat, catalogReplace)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d items\n", cat.Name, cat.ItemCount)
			}
			return nil
		})
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a stored catalog to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogs(cmd, func(ctx context.Context, rt *env, svc *catalog.Service) error {
			format := catalogFormat
			if format == "" {
				format = rt.cfg.Reconcile.OutputFormat
			}
			f, err := formats.Lookup(format)
			if err != nil {
				return err
			}
			dat, err := svc.Export(ctx, args[0])
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if catalogOut != "" {
				file, err := os.Create(catalogOut)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", catalogOut, err)
				}
				defer file.Close()
				w = file
			}
			if err := f.Write(ctx, w, dat, catalogIgnoreBlanks); err != nil {
				return err
			}
			if catalogOut != "" {
				rt.logger.Info("Catalog exported", zap.String("name", args[0]), zap.String("file", catalogOut))
			}
			return nil
		})
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalogs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogs(cmd, func(ctx context.Context, rt *env, svc *catalog.Service) error {
			cats, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Printf("%-40s %8d items  %s\n", c.Name, c.ItemCount, c.Version)
			}
			return nil
		})
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats <name>",
	Short: "Show statistics of a stored catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogs(cmd, func(ctx context.Context, rt *env, svc *catalog.Service) error {
			stats, err := svc.Stats(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		})
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogs(cmd, func(ctx context.Context, rt *env, svc *catalog.Service) error {
			if err := svc.Delete(ctx, args[0]); err != nil {
				return err
			}
			rt.logger.Info("Catalog deleted", zap.String("name", args[0]))
			return nil
		})
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&catalogName, "name", "", "Store under this name instead of the header name")
	catalogImportCmd.Flags().BoolVar(&catalogReplace, "replace", false, "Replace an existing catalog of the same name")
	catalogExportCmd.Flags().StringVar(&catalogFormat, "format", "", "Output format (logiqx, json, yaml)")
	catalogExportCmd.Flags().StringVarP(&catalogOut, "out", "o", "", "Output file (default stdout)")
	catalogExportCmd.Flags().BoolVar(&catalogIgnoreBlanks, "ignore-blanks", false, "Skip blank placeholders")

	catalogCmd.AddCommand(catalogImportCmd, catalogExportCmd, catalogListCmd, catalogStatsCmd, catalogDeleteCmd)
	RootCmd.AddCommand(catalogCmd)
}
